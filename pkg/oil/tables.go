package oil

// coefficientPair holds the (a, b) constants of one power-law or incremental
// correlation entry, applied as a*x^b.
type coefficientPair struct {
	A float64
	B float64
}

// Key volume-percent sets the published correlations are defined at. The
// correlation tables below are process-wide constants; they are initialized
// here and never written again.
var (
	// apiKeys are the points the API D86↔TBP constants cover.
	apiKeys = []float64{0, 10, 30, 50, 70, 90, 95}
	// riaziKeys are the points the Riazi D2887 correlations cover.
	riaziKeys = []float64{0, 10, 30, 50, 70, 90, 100}
	// tbpInverseKeys are the points sampled when normalizing a TBP input;
	// the 100% point has no published constants and falls back to the 0%
	// pair (see apiPair).
	tbpInverseKeys = []float64{0, 10, 30, 50, 70, 90, 95, 100}
)

// apiD86TBP holds the API Technical Data Book (1993) constants for
// TBP_R = a * D86_R^b, keyed by volume percent. The inverse direction is
// D86_R = (TBP_R / a)^(1/b).
var apiD86TBP = map[float64]coefficientPair{
	0:  {0.9167, 1.0019},
	10: {0.5277, 1.0900},
	30: {0.7429, 1.0425},
	50: {0.8920, 1.0176},
	70: {0.8705, 1.0226},
	90: {0.9490, 1.0110},
	95: {0.8008, 1.0355},
}

// apiPair returns the API coefficient pair for a key point, reusing the 0%
// pair for points the published table does not define (the 100% point).
func apiPair(key float64) coefficientPair {
	if p, ok := apiD86TBP[key]; ok {
		return p
	}
	return apiD86TBP[0]
}

// daubertIncrements holds the constants of Daubert (1994), keyed by the
// published increment index. Indices 1-3 and 5-7 are applied to the
// Fahrenheit gaps between adjacent D86 key points as dT_TBP = a * dT_D86^b
// for the gaps 10-0, 30-10, 50-30, 70-50, 90-70 and 95-90 respectively.
// Index 4 is the 50% anchor, applied to the absolute Fahrenheit temperature
// as TBP(50) = a * D86(50)^b.
var daubertIncrements = map[int]coefficientPair{
	1: {7.4012, 0.6024},
	2: {4.9004, 0.7164},
	3: {3.0305, 0.8008},
	4: {0.8718, 1.0258},
	5: {2.5282, 0.8200},
	6: {3.0419, 0.7750},
	7: {0.1180, 1.6606},
}

// riaziD2887D86 holds Riazi-style constants for D86_R = a * D2887_R^b,
// keyed by volume percent. The pairs are fit for the D2887→D86 direction
// directly and yield D86 temperatures 3-7 °C below D2887.
var riaziD2887D86 = map[float64]coefficientPair{
	0:   {0.9965, 0.9985},
	10:  {0.9970, 0.9988},
	30:  {0.9975, 0.9990},
	50:  {0.9977, 0.9992},
	70:  {0.9975, 0.9990},
	90:  {0.9968, 0.9986},
	100: {0.9960, 0.9982},
}

// riaziD2887TBP holds Riazi-style constants for TBP_R = a * D2887_R^b,
// keyed by volume percent. Both methods are equilibrium based, so the pairs
// sit near unity and lift TBP 0-2 °C above D2887.
var riaziD2887TBP = map[float64]coefficientPair{
	0:   {1.0010, 1.0005},
	10:  {1.0008, 1.0004},
	30:  {1.0005, 1.0003},
	50:  {1.0003, 1.0002},
	70:  {1.0005, 1.0003},
	90:  {1.0008, 1.0004},
	100: {1.0010, 1.0005},
}

// API Procedure 3A3.2-1 relates the D86 and SimDist 50% points as
// ASTM(50) = simDist50A * SD(50)^simDist50B, fit in Fahrenheit. The
// normalizer applies the relation as published and the synthesizer applies
// its algebraic inverse, so the two 50% anchors cancel exactly.
const (
	simDist50A = 0.77601
	simDist50B = 1.0395
)

// simDistBlendWeight places synthesized D2887 temperatures 85% of the way
// from D86 toward TBP at the non-anchor key points. Empirical; carries no
// ordering guarantee at curve extremes.
const simDistBlendWeight = 0.85
