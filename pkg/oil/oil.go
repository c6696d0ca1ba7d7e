package oil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petrolab/distillation-converter/pkg/curve"
)

// ErrInvalidFamily is returned when a curve family tag cannot be resolved to
// D86, D2887 or TBP.
var ErrInvalidFamily = errors.New("invalid curve family")

// minSamplePoints is the physical minimum for the standard correlations.
const minSamplePoints = 3

// Family identifies the distillation method a raw curve was measured by.
type Family string

const (
	// FamilyD86 is ASTM D86 atmospheric batch distillation.
	FamilyD86 Family = "D86"
	// FamilyD2887 is ASTM D2887 simulated distillation by gas
	// chromatography, also known as SimDist.
	FamilyD2887 Family = "D2887"
	// FamilyTBP is the true boiling point curve, theoretical equilibrium
	// distillation at infinite reflux.
	FamilyTBP Family = "TBP"
)

// ParseFamily resolves a family tag case-insensitively. "SimDis" and
// "SimDist" are accepted aliases for D2887. Unknown tags yield
// ErrInvalidFamily.
func ParseFamily(s string) (Family, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "D86":
		return FamilyD86, nil
	case "D2887", "SIMDIS", "SIMDIST":
		return FamilyD2887, nil
	case "TBP":
		return FamilyTBP, nil
	default:
		return "", fmt.Errorf("%w: %q (must be D86, D2887 or TBP)", ErrInvalidFamily, s)
	}
}

// Point is a single distillation sample: the volume fraction distilled in
// percent and the temperature in Celsius at which it came over.
type Point struct {
	VolumePercent float64
	TemperatureC  float64
}

// Sample bundles the four interconverted distillation curves and the bulk
// properties derived from one raw input curve. All conversion work happens
// in New; a constructed Sample is immutable and safe for concurrent
// evaluation without locking.
type Sample struct {
	points    []Point
	canonical []Point
	family    Family
	density   float64

	curves curveSet
	props  properties
}

// curveSet holds the four exposed interpolants.
type curveSet struct {
	d86        *curve.Curve
	d2887      *curve.Curve
	tbpAPI     *curve.Curve
	tbpDaubert *curve.Curve
}

// New constructs a Sample from raw distillation points, a density in kg/m³
// and the family the points were measured in. The family tag is parsed
// case-insensitively, so both oil.FamilyD2887 and "simdist" are accepted.
//
// At least 3 points are required, sorted by strictly increasing volume
// percent. Construction normalizes the input
// to canonical D86, synthesizes the remaining curves and computes the bulk
// properties in one pass; it is the only mutating event in the Sample's
// lifetime.
//
// The density is not range-checked here. Callers feeding user input should
// validate it first (petroleum fractions sit in roughly 600-1200 kg/m³).
func New(points []Point, density float64, family Family) (*Sample, error) {
	fam, err := ParseFamily(string(family))
	if err != nil {
		return nil, err
	}
	if len(points) < minSamplePoints {
		return nil, fmt.Errorf("%w: a sample requires at least %d points, got %d",
			curve.ErrInvalidCurveInput, minSamplePoints, len(points))
	}

	canonical, err := normalizeToD86(points, fam)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s input: %w", fam, err)
	}
	curves, err := synthesize(canonical, points, fam)
	if err != nil {
		return nil, fmt.Errorf("synthesizing curves from %s input: %w", fam, err)
	}

	return &Sample{
		points:    append([]Point(nil), points...),
		canonical: append([]Point(nil), canonical...),
		family:    fam,
		density:   density,
		curves:    curves,
		props:     computeProperties(curves.d86, density),
	}, nil
}

// D86 evaluates the canonical D86 curve at a volume percent, in Celsius.
// Like all curve accessors, values outside [0, 100] are extrapolated from
// the boundary segment rather than clamped.
func (s *Sample) D86(volumePercent float64) float64 {
	return s.curves.d86.Eval(volumePercent)
}

// D2887 evaluates the SimDist curve at a volume percent, in Celsius.
func (s *Sample) D2887(volumePercent float64) float64 {
	return s.curves.d2887.Eval(volumePercent)
}

// TBPAPI evaluates the TBP curve derived with the API power-law method, in
// Celsius.
func (s *Sample) TBPAPI(volumePercent float64) float64 {
	return s.curves.tbpAPI.Eval(volumePercent)
}

// TBPDaubert evaluates the TBP curve derived with the Daubert incremental
// method, in Celsius.
func (s *Sample) TBPDaubert(volumePercent float64) float64 {
	return s.curves.tbpDaubert.Eval(volumePercent)
}

// VABP returns the volume average boiling point in Fahrenheit.
func (s *Sample) VABP() float64 { return s.props.vabpF }

// MeABP returns the mean average boiling point in Fahrenheit.
func (s *Sample) MeABP() float64 { return s.props.meabpF }

// SpecificGravity returns the specific gravity derived from the density.
func (s *Sample) SpecificGravity() float64 { return s.props.sg }

// WatsonK returns the Watson K characterization factor.
func (s *Sample) WatsonK() float64 { return s.props.watsonK }

// Family returns the family the raw input was measured in.
func (s *Sample) Family() Family { return s.family }

// Density returns the density the sample was constructed with, in kg/m³.
func (s *Sample) Density() float64 { return s.density }

// Points returns a copy of the raw input points.
func (s *Sample) Points() []Point {
	return append([]Point(nil), s.points...)
}

// CanonicalD86 returns a copy of the canonical D86 key points the derived
// curves were built from. For D86 input these are the input points
// themselves.
func (s *Sample) CanonicalD86() []Point {
	return append([]Point(nil), s.canonical...)
}

// newCurve builds the monotone interpolant over raw points.
func newCurve(points []Point) (*curve.Curve, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.VolumePercent
		ys[i] = p.TemperatureC
	}
	return curve.New(xs, ys)
}
