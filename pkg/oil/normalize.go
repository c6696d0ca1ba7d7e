package oil

import (
	"fmt"
	"math"

	"github.com/petrolab/distillation-converter/pkg/units"
)

// normalizeToD86 maps raw input points of any family onto the canonical D86
// representation every downstream derivation runs from. D86 input passes
// through unchanged; the other families are sampled at their correlation's
// key points and mapped through the published constants.
func normalizeToD86(points []Point, family Family) ([]Point, error) {
	switch family {
	case FamilyD86:
		return points, nil
	case FamilyD2887:
		return d2887ToD86(points)
	case FamilyTBP:
		return tbpToD86(points)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFamily, family)
	}
}

// d2887ToD86 converts a SimDist curve to D86 key points. The 50% point is
// anchored through API 3A3.2-1, which predicts the D86 point from the
// SimDist point directly and is fit in Fahrenheit; applying it there makes
// the anchor the exact inverse of the one the synthesizer uses in the
// opposite direction. The remaining key points go through the Riazi power
// law in Rankine.
func d2887ToD86(points []Point) ([]Point, error) {
	c, err := newCurve(points)
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(riaziKeys))
	for _, v := range riaziKeys {
		t := c.Eval(v)
		var d86C float64
		if v == 50 {
			d86C = units.FToC(simDist50A * math.Pow(units.CToF(t), simDist50B))
		} else {
			p := riaziD2887D86[v]
			d86C = units.RToC(p.A * math.Pow(units.CToR(t), p.B))
		}
		out = append(out, Point{VolumePercent: v, TemperatureC: d86C})
	}
	return out, nil
}

// tbpToD86 converts a TBP curve to D86 key points by inverting the API
// power law, D86_R = (TBP_R / a)^(1/b).
func tbpToD86(points []Point) ([]Point, error) {
	c, err := newCurve(points)
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(tbpInverseKeys))
	for _, v := range tbpInverseKeys {
		p := apiPair(v)
		r := units.CToR(c.Eval(v))
		d86R := math.Pow(r/p.A, 1/p.B)
		out = append(out, Point{VolumePercent: v, TemperatureC: units.RToC(d86R)})
	}
	return out, nil
}
