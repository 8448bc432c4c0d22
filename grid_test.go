package fractal

import (
	"errors"
	"testing"
)

func TestSampleGridCorners(t *testing.T) {
	g, err := SampleGrid(complex(-1, 1), complex(1, -1), 1)
	if err != nil {
		t.Fatalf("SampleGrid: %v", err)
	}
	if g.Rows != 3 || g.Cols != 3 {
		t.Fatalf("got %dx%d grid, want 3x3", g.Rows, g.Cols)
	}

	corners := []struct {
		r, c int
		want complex128
	}{
		{0, 0, complex(-1, 1)},
		{0, 2, complex(1, 1)},
		{2, 0, complex(-1, -1)},
		{2, 2, complex(1, -1)},
	}
	for _, tc := range corners {
		if got := g.At(tc.r, tc.c); got != tc.want {
			t.Errorf("At(%d,%d) = %v, want %v", tc.r, tc.c, got, tc.want)
		}
	}
}

func TestSampleGridSpacing(t *testing.T) {
	const step = 0.25
	g, err := SampleGrid(complex(-1, 1), complex(0, 0), step)
	if err != nil {
		t.Fatalf("SampleGrid: %v", err)
	}
	for r := 0; r < g.Rows; r++ {
		for c := 1; c < g.Cols; c++ {
			if d := real(g.At(r, c)) - real(g.At(r, c-1)); d != step {
				t.Fatalf("row %d: real spacing %v, want %v", r, d, step)
			}
		}
	}
	for c := 0; c < g.Cols; c++ {
		for r := 1; r < g.Rows; r++ {
			if d := imag(g.At(r-1, c)) - imag(g.At(r, c)); d != step {
				t.Fatalf("col %d: imag spacing %v, want %v", c, d, step)
			}
		}
	}
}

func TestSampleGridInvertedRegion(t *testing.T) {
	tests := []struct {
		name   string
		tl, br complex128
	}{
		{"real inverted", complex(1, 1), complex(-1, -1)},
		{"imag inverted", complex(-1, -1), complex(1, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := SampleGrid(tc.tl, tc.br, 0.5)
			if err != nil {
				t.Fatalf("SampleGrid: %v", err)
			}
			if !g.Empty() || len(g.Samples) != 0 {
				t.Errorf("got %dx%d grid with %d samples, want empty", g.Rows, g.Cols, len(g.Samples))
			}
		})
	}
}

func TestSampleGridRejectsBadStep(t *testing.T) {
	for _, step := range []float64{0, -1} {
		if _, err := SampleGrid(complex(-1, 1), complex(1, -1), step); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("step %v: err = %v, want ErrInvalidParameter", step, err)
		}
	}
}

func TestRegionGrid(t *testing.T) {
	r := Region{Xmin: -1, Xmax: 1, Ymin: -1, Ymax: 1}
	g, err := r.Grid(5)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if g.Rows != 5 || g.Cols != 5 {
		t.Fatalf("got %dx%d grid, want 5x5", g.Rows, g.Cols)
	}
	if got := g.At(0, 0); got != complex(-1, 1) {
		t.Errorf("top left = %v, want (-1+1i)", got)
	}

	if _, err := r.Grid(1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Grid(1): err = %v, want ErrInvalidParameter", err)
	}
}
