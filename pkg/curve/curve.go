// Package curve provides shape-preserving monotone piecewise-cubic
// interpolation over ordered (x, y) samples. The interpolant passes through
// every sample, is continuously differentiable, and introduces no new local
// extrema between knots, so strictly increasing data yields a monotonically
// increasing function. Evaluation is defined for every real x; outside the
// sample domain the boundary segment's cubic polynomial is used, not a
// clamped edge value.
package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidCurveInput is returned when the samples given to New cannot form
// an interpolant.
var ErrInvalidCurveInput = errors.New("invalid curve input")

// Curve is an immutable piecewise-cubic Hermite interpolant. A Curve built
// once is safe for concurrent evaluation.
type Curve struct {
	xs []float64
	ys []float64
	ds []float64
}

// New builds a monotone cubic interpolant through the given samples. It
// requires at least 2 points with strictly increasing x values and returns
// ErrInvalidCurveInput otherwise. Input slices are copied.
func New(xs, ys []float64) (*Curve, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x values against %d y values", ErrInvalidCurveInput, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidCurveInput, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("%w: x values must be strictly increasing (x[%d]=%v, x[%d]=%v)",
				ErrInvalidCurveInput, i-1, xs[i-1], i, xs[i])
		}
	}
	c := &Curve{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}
	c.ds = knotSlopes(c.xs, c.ys)
	return c, nil
}

// Eval evaluates the interpolant at x. Values outside the sample domain are
// extrapolated with the boundary segment's polynomial.
func (c *Curve) Eval(x float64) float64 {
	i := c.segment(x)
	h := c.xs[i+1] - c.xs[i]
	t := (x - c.xs[i]) / h
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*c.ys[i] + h10*h*c.ds[i] + h01*c.ys[i+1] + h11*h*c.ds[i+1]
}

// EvalAll evaluates the interpolant at every x in xs and returns the results
// in matching order.
func (c *Curve) EvalAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = c.Eval(x)
	}
	return out
}

// segment returns the index of the cubic segment covering x. Out-of-domain
// values map to the first or last segment.
func (c *Curve) segment(x float64) int {
	n := len(c.xs)
	if x <= c.xs[0] {
		return 0
	}
	if x >= c.xs[n-1] {
		return n - 2
	}
	return sort.SearchFloat64s(c.xs, x) - 1
}

// knotSlopes computes the interpolant's derivative at every knot using the
// Fritsch-Carlson weighted harmonic mean of adjacent secants. A zero slope is
// assigned wherever adjacent secants disagree in sign, which is what keeps
// the interpolant from overshooting local extrema in the data.
func knotSlopes(xs, ys []float64) []float64 {
	n := len(xs)
	d := make([]float64, n)
	if n == 2 {
		s := (ys[1] - ys[0]) / (xs[1] - xs[0])
		d[0], d[1] = s, s
		return d
	}
	h := make([]float64, n-1)
	m := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
		m[i] = (ys[i+1] - ys[i]) / h[i]
	}
	for i := 1; i < n-1; i++ {
		if m[i-1] == 0 || m[i] == 0 || sign(m[i-1]) != sign(m[i]) {
			continue
		}
		w1 := 2*h[i] + h[i-1]
		w2 := h[i] + 2*h[i-1]
		d[i] = (w1 + w2) / (w1/m[i-1] + w2/m[i])
	}
	d[0] = edgeSlope(h[0], h[1], m[0], m[1])
	d[n-1] = edgeSlope(h[n-2], h[n-3], m[n-2], m[n-3])
	return d
}

// edgeSlope is the one-sided three-point estimate for an endpoint slope. The
// estimate is zeroed when it points against the boundary secant and capped at
// three times the boundary secant when the two nearest secants disagree in
// sign, keeping the boundary segment monotone.
func edgeSlope(h0, h1, m0, m1 float64) float64 {
	d := ((2*h0+h1)*m0 - h0*m1) / (h0 + h1)
	if sign(d) != sign(m0) {
		return 0
	}
	if sign(m0) != sign(m1) && math.Abs(d) > 3*math.Abs(m0) {
		return 3 * m0
	}
	return d
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
