package fractal

import (
	"fmt"
	"runtime"
	"sync"
)

// IntensityField is the terminal output of a render: one normalized
// brightness per grid sample, row-major, every value in [0, 1].
type IntensityField struct {
	Rows, Cols int
	Values     []float64
}

// At returns the intensity at row r, column c.
func (f *IntensityField) At(r, c int) float64 {
	return f.Values[r*f.Cols+c]
}

// intensity maps an escape outcome to a brightness.
// Bounded points are black; escaped points fade with 1/(n+1), so an
// immediate escape is full brightness and deep escapes approach zero.
func intensity(e Escape) float64 {
	if !e.Escaped {
		return 0
	}
	return 1 / float64(e.Iteration+1)
}

// RenderField evaluates the Mandelbrot escape time of every grid sample
// and normalizes it into an IntensityField. Samples are independent, so
// rows are swept by one worker per CPU; the output does not depend on
// the split. The grid is not modified.
func RenderField(g *Grid, maxIterations int) (*IntensityField, error) {
	if maxIterations < 1 {
		return nil, fmt.Errorf("maxIterations %d must be positive: %w", maxIterations, ErrInvalidParameter)
	}

	f := &IntensityField{
		Rows:   g.Rows,
		Cols:   g.Cols,
		Values: make([]float64, len(g.Samples)),
	}

	workers := runtime.NumCPU()
	if workers > g.Rows {
		workers = g.Rows
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for r := w; r < g.Rows; r += workers {
				for c := 0; c < g.Cols; c++ {
					// maxIterations is validated above; per-sample error impossible
					e, _ := EscapeTime(g.At(r, c), maxIterations)
					f.Values[r*g.Cols+c] = intensity(e)
				}
			}
		}(w)
	}
	wg.Wait()

	return f, nil
}

// RenderJuliaField runs the batched Julia sweep for the seed c and
// normalizes the per-point escape iterations with the same policy as
// RenderField (bounded → 0, escaped at n → 1/(n+1)).
func RenderJuliaField(g *Grid, c complex128, maxIterations int) (*IntensityField, error) {
	counts, err := EscapeField(g, c, maxIterations)
	if err != nil {
		return nil, err
	}

	f := &IntensityField{
		Rows:   g.Rows,
		Cols:   g.Cols,
		Values: make([]float64, len(counts)),
	}
	for i, n := range counts {
		f.Values[i] = intensity(Escape{Iteration: n, Escaped: n != JuliaBounded})
	}
	return f, nil
}
