package fractal

import (
	"errors"
	"testing"
)

func TestEscapeTimeOutsideRadius(t *testing.T) {
	// |c| > 2 escapes at iteration 0 under any budget, since the very
	// first check sees z₀ = c.
	points := []complex128{3, complex(0, 3), complex(-2.1, 0), complex(2, 2)}
	for _, c := range points {
		for _, budget := range []int{0, 1, 100} {
			e, err := EscapeTime(c, budget)
			if err != nil {
				t.Fatalf("EscapeTime(%v, %d): %v", c, budget, err)
			}
			if !e.Escaped || e.Iteration != 0 {
				t.Errorf("EscapeTime(%v, %d) = %+v, want Escaped(0)", c, budget, e)
			}
		}
	}
}

func TestEscapeTimeBounded(t *testing.T) {
	// Known members of the Mandelbrot set: orbits stay inside forever.
	points := []complex128{0, -1, complex(0, 1), -2, complex(0.25, 0)}
	for _, c := range points {
		e, err := EscapeTime(c, 100)
		if err != nil {
			t.Fatalf("EscapeTime(%v, 100): %v", c, err)
		}
		if e.Escaped {
			t.Errorf("EscapeTime(%v, 100) = %+v, want Bounded", c, e)
		}
	}
}

func TestEscapeTimeZeroBudget(t *testing.T) {
	// With no iterations allowed, the final check still applies to z = c.
	if e, _ := EscapeTime(complex(1, 0), 0); e.Escaped {
		t.Errorf("EscapeTime(1, 0) = %+v, want Bounded", e)
	}
	if e, _ := EscapeTime(complex(3, 0), 0); !e.Escaped || e.Iteration != 0 {
		t.Errorf("EscapeTime(3, 0) = %+v, want Escaped(0)", e)
	}
}

func TestEscapeTimeFinalCheck(t *testing.T) {
	// c = 2: z₀ = 2 sits exactly on the radius (not beyond it), the
	// first update takes it to 6, which only the post-loop check sees
	// when the budget is 1.
	e, err := EscapeTime(complex(2, 0), 1)
	if err != nil {
		t.Fatalf("EscapeTime(2, 1): %v", err)
	}
	if !e.Escaped || e.Iteration != 1 {
		t.Errorf("EscapeTime(2, 1) = %+v, want Escaped(1)", e)
	}

	// With a bigger budget the in-loop check fires first.
	e, _ = EscapeTime(complex(2, 0), 5)
	if !e.Escaped || e.Iteration != 1 {
		t.Errorf("EscapeTime(2, 5) = %+v, want Escaped(1)", e)
	}
}

func TestEscapeTimeRejectsNegativeBudget(t *testing.T) {
	if _, err := EscapeTime(0, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestEscapeFieldKnownPoints(t *testing.T) {
	g := &Grid{
		Rows:    1,
		Cols:    3,
		Step:    1,
		Samples: []complex128{3, complex(1.5, 0), 0},
	}
	// c = 0: 3 is already outside, 1.5 squares past the radius after
	// one update, 0 never moves.
	counts, err := EscapeField(g, 0, 20)
	if err != nil {
		t.Fatalf("EscapeField: %v", err)
	}
	want := []int{0, 1, JuliaBounded}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %d, want %d", i, counts[i], want[i])
		}
	}
}

// juliaEscapeTime is an independent per-point reference for the batched
// sweep: same recurrence, same check-before-update ordering.
func juliaEscapeTime(z, c complex128, maxIterations int) int {
	for n := 0; n < maxIterations; n++ {
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return n
		}
		z = z*z + c
	}
	return JuliaBounded
}

func TestEscapeFieldMatchesPerPointEvaluation(t *testing.T) {
	g, err := SampleGrid(complex(-1.5, 1), complex(1.5, -1), 0.125)
	if err != nil {
		t.Fatalf("SampleGrid: %v", err)
	}

	const maxIter = 64
	for _, seed := range []complex128{PetalSeed, StemSeed, DouadyRabbit} {
		counts, err := EscapeField(g, seed, maxIter)
		if err != nil {
			t.Fatalf("EscapeField(seed %v): %v", seed, err)
		}
		for i, z := range g.Samples {
			if want := juliaEscapeTime(z, seed, maxIter); counts[i] != want {
				t.Fatalf("seed %v, sample %d (%v): batched %d, per-point %d",
					seed, i, z, counts[i], want)
			}
		}
	}
}

func TestEscapeFieldRejectsBadBudget(t *testing.T) {
	g := &Grid{Rows: 1, Cols: 1, Step: 1, Samples: []complex128{0}}
	for _, budget := range []int{0, -3} {
		if _, err := EscapeField(g, 0, budget); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("budget %d: err = %v, want ErrInvalidParameter", budget, err)
		}
	}
}
