package oil

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/petrolab/distillation-converter/pkg/curve"
	"github.com/petrolab/distillation-converter/pkg/units"
)

// waterDensity is the reference density for specific gravity, kg/m³ at
// 15.6 °C (60 °F).
const waterDensity = 999.013

// Characterization labels for the Watson K bands.
const (
	CharacterizationNaphthenic = "Naphthenic (aromatic)"
	CharacterizationMixed      = "Mixed"
	CharacterizationParaffinic = "Paraffinic (alkane)"
)

// properties holds the bulk scalars derived from the canonical D86 curve.
type properties struct {
	vabpF   float64
	meabpF  float64
	sg      float64
	watsonK float64
}

// computeProperties derives VABP, MeABP, specific gravity and Watson K from
// the canonical D86 curve and the sample density. Non-physical inputs (a
// negative base under a fractional power) propagate NaN rather than
// returning an error; supplying physically valid curves is the caller's
// responsibility.
func computeProperties(d86 *curve.Curve, density float64) properties {
	d86F := func(v float64) float64 { return units.CToF(d86.Eval(v)) }

	vabp := stat.Mean([]float64{d86F(10), d86F(30), d86F(50), d86F(70), d86F(90)}, nil)
	slope := (d86F(90) - d86F(10)) / 80
	delta := math.Exp(-0.94402 - 0.00865*math.Pow(vabp-32, 0.6667) + 2.99791*math.Pow(slope, 0.333))
	meabp := vabp - delta
	sg := density / waterDensity

	return properties{
		vabpF:   vabp,
		meabpF:  meabp,
		sg:      sg,
		watsonK: math.Pow(meabp+460, 1.0/3.0) / sg,
	}
}

// Characterize labels a Watson K factor by fraction type. Values below 11.5
// indicate naphthenic or aromatic stock, values of 12.5 and above indicate
// paraffinic stock, and the band between them is mixed.
func Characterize(watsonK float64) string {
	switch {
	case watsonK < 11.5:
		return CharacterizationNaphthenic
	case watsonK < 12.5:
		return CharacterizationMixed
	default:
		return CharacterizationParaffinic
	}
}
