package fractal

import "fmt"

// escapeRadiusSq is the squared divergence threshold |z| > 2.
const escapeRadiusSq = 4

// JuliaBounded is stored by EscapeField for points that never left the
// escape radius within the iteration budget. Non-negative values are
// always real escape iterations.
const JuliaBounded = -1

// Escape is the outcome of the divergence recurrence for one sample.
// Iteration is only meaningful when Escaped is true.
type Escape struct {
	Iteration int
	Escaped   bool
}

// EscapeTime runs the Mandelbrot recurrence z ← z² + c starting at z = c
// and reports the first iteration at which |z| exceeds 2. The magnitude
// is checked before each update, so a c outside the radius escapes at
// iteration 0. After maxIterations updates one final check is applied to
// the last z; a point that only just left the radius then escapes at
// maxIterations itself.
func EscapeTime(c complex128, maxIterations int) (Escape, error) {
	if maxIterations < 0 {
		return Escape{}, fmt.Errorf("maxIterations %d: %w", maxIterations, ErrInvalidParameter)
	}

	z := c
	for n := 0; n < maxIterations; n++ {
		if real(z)*real(z)+imag(z)*imag(z) > escapeRadiusSq {
			return Escape{Iteration: n, Escaped: true}, nil
		}
		z = z*z + c
	}
	if real(z)*real(z)+imag(z)*imag(z) > escapeRadiusSq {
		return Escape{Iteration: maxIterations, Escaped: true}, nil
	}
	return Escape{}, nil
}

// EscapeField runs the Julia recurrence z ← z² + c for every grid sample
// in lockstep, the constant c shared by all points and the start value
// taken from the grid. The result is row-major, same shape as g; each
// entry is the iteration at which that point escaped, or JuliaBounded if
// it never did. Escaped points are frozen: they take no further updates,
// so Inf or NaN produced past the escape cannot reach the output.
func EscapeField(g *Grid, c complex128, maxIterations int) ([]int, error) {
	if maxIterations < 1 {
		return nil, fmt.Errorf("maxIterations %d must be positive: %w", maxIterations, ErrInvalidParameter)
	}

	out := make([]int, len(g.Samples))
	for i := range out {
		out[i] = JuliaBounded
	}

	z := make([]complex128, len(g.Samples))
	copy(z, g.Samples)

	live := len(z)
	for n := 0; n < maxIterations && live > 0; n++ {
		for i := range z {
			if out[i] != JuliaBounded {
				continue
			}
			if real(z[i])*real(z[i])+imag(z[i])*imag(z[i]) > escapeRadiusSq {
				out[i] = n
				live--
				continue
			}
			z[i] = z[i]*z[i] + c
		}
	}
	return out, nil
}
