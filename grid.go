package fractal

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter marks a rejected input value (non-positive step,
// negative iteration budget and the like). Callers can test for it with
// errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// Grid holds sample points of the complex plane in row-major order.
// Row index grows downwards (decreasing imaginary part), column index
// grows to the right (increasing real part). A Grid is never modified
// after SampleGrid returns it.
type Grid struct {
	Rows, Cols int
	Step       float64
	Samples    []complex128
}

// At returns the sample at row r, column c.
func (g *Grid) At(r, c int) complex128 {
	return g.Samples[r*g.Cols+c]
}

// Empty reports whether the grid holds no samples.
func (g *Grid) Empty() bool {
	return g.Rows == 0 || g.Cols == 0
}

// SampleGrid discretizes the rectangle spanned by topLeft and bottomRight
// into samples spaced step apart along both axes. Both boundary rows and
// columns are included. An inverted rectangle (bottomRight left of or
// above topLeft) yields an empty grid rather than an error.
func SampleGrid(topLeft, bottomRight complex128, step float64) (*Grid, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("step %v must be positive: %w", step, ErrInvalidParameter)
	}

	width := real(bottomRight) - real(topLeft)
	height := imag(topLeft) - imag(bottomRight)
	if width < 0 || height < 0 {
		return &Grid{Step: step}, nil
	}

	rows := int(math.Floor(height/step)) + 1
	cols := int(math.Floor(width/step)) + 1

	g := &Grid{
		Rows:    rows,
		Cols:    cols,
		Step:    step,
		Samples: make([]complex128, rows*cols),
	}
	for r := 0; r < rows; r++ {
		im := imag(topLeft) - float64(r)*step
		for c := 0; c < cols; c++ {
			g.Samples[r*cols+c] = complex(real(topLeft)+float64(c)*step, im)
		}
	}
	return g, nil
}
