package oil

import (
	"math"

	"github.com/petrolab/distillation-converter/pkg/curve"
	"github.com/petrolab/distillation-converter/pkg/units"
)

// synthesize builds the four exposed interpolants from the canonical D86
// points plus the raw input. The raw points matter for D2887 and TBP inputs,
// whose own family's curve is built directly from them so the operator's
// actual measurements survive without round-trip artifacts.
func synthesize(canonical, raw []Point, family Family) (curveSet, error) {
	var cs curveSet

	d86, err := newCurve(canonical)
	if err != nil {
		return cs, err
	}
	cs.d86 = d86

	switch family {
	case FamilyTBP:
		cs.tbpAPI, err = newCurve(raw)
	case FamilyD2887:
		cs.tbpAPI, err = riaziTBPCurve(raw)
	default:
		cs.tbpAPI, err = newCurve(apiTBPPoints(d86))
	}
	if err != nil {
		return cs, err
	}

	// The Daubert method always runs from the canonical curve; it is the
	// second, independent TBP derivation.
	cs.tbpDaubert, err = newCurve(daubertTBPPoints(d86))
	if err != nil {
		return cs, err
	}

	if family == FamilyD2887 {
		cs.d2887, err = newCurve(raw)
	} else {
		cs.d2887, err = blendD2887(d86)
	}
	if err != nil {
		return cs, err
	}
	return cs, nil
}

// apiTBPPoints samples the D86 curve at the API key points and applies the
// forward power law TBP_R = a * D86_R^b.
func apiTBPPoints(d86 *curve.Curve) []Point {
	out := make([]Point, 0, len(apiKeys))
	for _, v := range apiKeys {
		p := apiD86TBP[v]
		r := units.CToR(d86.Eval(v))
		out = append(out, Point{VolumePercent: v, TemperatureC: units.RToC(p.A * math.Pow(r, p.B))})
	}
	return out
}

// daubertTBPPoints derives TBP key points with the Daubert incremental
// method. The D86 curve is sampled at the standard key points in Celsius,
// converted to Fahrenheit, anchored at the 50% point and walked outward gap
// by gap, each gap scaled by its published increment pair.
func daubertTBPPoints(d86 *curve.Curve) []Point {
	f := make(map[float64]float64, len(apiKeys))
	for _, v := range apiKeys {
		f[v] = units.CToF(d86.Eval(v))
	}
	incr := func(i int, gap float64) float64 {
		p := daubertIncrements[i]
		return p.A * math.Pow(gap, p.B)
	}

	anchor := daubertIncrements[4]
	tbp50 := anchor.A * math.Pow(f[50], anchor.B)
	tbp30 := tbp50 - incr(3, f[50]-f[30])
	tbp10 := tbp30 - incr(2, f[30]-f[10])
	tbp0 := tbp10 - incr(1, f[10]-f[0])
	tbp70 := tbp50 + incr(5, f[70]-f[50])
	tbp90 := tbp70 + incr(6, f[90]-f[70])
	tbp95 := tbp90 + incr(7, f[95]-f[90])

	fahrenheit := []struct {
		vol  float64
		temp float64
	}{{0, tbp0}, {10, tbp10}, {30, tbp30}, {50, tbp50}, {70, tbp70}, {90, tbp90}, {95, tbp95}}

	out := make([]Point, 0, len(fahrenheit))
	for _, p := range fahrenheit {
		out = append(out, Point{VolumePercent: p.vol, TemperatureC: units.FToC(p.temp)})
	}
	return out
}

// blendD2887 synthesizes the SimDist curve from canonical D86. The 50%
// point comes from the inverse of API 3A3.2-1 in Fahrenheit; every other key
// point sits simDistBlendWeight of the way from D86 toward the API-method
// TBP, reflecting that SimDist tracks the equilibrium methods much more
// closely than it tracks D86.
func blendD2887(d86 *curve.Curve) (*curve.Curve, error) {
	guide, err := newCurve(apiTBPPoints(d86))
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(riaziKeys))
	for _, v := range riaziKeys {
		var t float64
		if v == 50 {
			f := units.CToF(d86.Eval(50))
			t = units.FToC(math.Pow(f/simDist50A, 1/simDist50B))
		} else {
			// At 100% the guide extrapolates past its last knot (95%).
			d := d86.Eval(v)
			t = d + simDistBlendWeight*(guide.Eval(v)-d)
		}
		out = append(out, Point{VolumePercent: v, TemperatureC: t})
	}
	return newCurve(out)
}

// riaziTBPCurve converts a raw SimDist curve directly to TBP through the
// near-unity Riazi power law, preserving the operator's input as the basis
// instead of round-tripping through D86.
func riaziTBPCurve(points []Point) (*curve.Curve, error) {
	c, err := newCurve(points)
	if err != nil {
		return nil, err
	}
	out := make([]Point, 0, len(riaziKeys))
	for _, v := range riaziKeys {
		p := riaziD2887TBP[v]
		r := units.CToR(c.Eval(v))
		out = append(out, Point{VolumePercent: v, TemperatureC: units.RToC(p.A * math.Pow(r, p.B))})
	}
	return newCurve(out)
}
