package fractal

import "fmt"

// Region is a rectangular window into the complex plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Full view of the set with some margin around it
	FullSet = Region{
		Xmin: -2.2,
		Xmax: 0.8,
		Ymin: -1.2,
		Ymax: 1.2,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}
)

// Well known Julia seeds for the z² + c recurrence
var (
	// Douady rabbit – three-eared rotating blob
	DouadyRabbit = complex(-0.122561, 0.744862)

	// Stem – long filament structure, good for tall renders
	StemSeed = complex(-0.75, 0.11)

	// Petal – soft rounded lobes
	PetalSeed = complex(0.285, 0.01)

	// San Marco – basilica-like arches along the real axis
	SanMarco = complex(-0.75, 0)
)

// TopLeft returns the region corner with the smallest real and largest
// imaginary part, matching the grid's top-to-bottom scan order.
func (r Region) TopLeft() complex128 {
	return complex(r.Xmin, r.Ymax)
}

// BottomRight returns the corner opposite to TopLeft.
func (r Region) BottomRight() complex128 {
	return complex(r.Xmax, r.Ymin)
}

// Grid discretizes the region into roughly cols columns.
// The step is derived from the region width, so the row count follows
// from the region's aspect ratio.
func (r Region) Grid(cols int) (*Grid, error) {
	if cols < 2 {
		return nil, fmt.Errorf("cols %d: need at least 2: %w", cols, ErrInvalidParameter)
	}
	step := (r.Xmax - r.Xmin) / float64(cols-1)
	return SampleGrid(r.TopLeft(), r.BottomRight(), step)
}
