// Package oil implements the distillation curve interconversion engine.
//
// The package converts petroleum distillation curves between the three
// standard representations, ASTM D86 (atmospheric batch distillation),
// ASTM D2887 (simulated distillation by gas chromatography) and TBP (true
// boiling point), and derives the bulk characterization properties VABP,
// MeABP, specific gravity and Watson K.
//
// Architecture:
//
// Construction runs a fixed pipeline once, eagerly:
//
//	Normalize → Synthesize → Properties
//	(any family → canonical D86 → four curves → four scalars)
//
// The resulting Sample is immutable: no setters, no lazy recomputation, and
// therefore safe for concurrent evaluation from multiple goroutines.
//
// Example usage:
//
//	sample, err := oil.New([]oil.Point{
//	    {VolumePercent: 0, TemperatureC: 160},
//	    {VolumePercent: 50, TemperatureC: 225},
//	    {VolumePercent: 100, TemperatureC: 290},
//	}, 820, oil.FamilyD86)
//	if err != nil {
//	    return err
//	}
//
//	t50 := sample.D2887(50)      // SimDist temperature at 50% distilled, °C
//	k := sample.WatsonK()        // characterization factor
//
// Conversion Flow:
//
//  1. Normalize
//     - D86 input passes through unchanged
//     - D2887 input maps to D86 through the API 3A3.2-1 50% anchor plus the
//       Riazi power laws at the other key points
//     - TBP input maps to D86 through the inverted API power laws
//
//  2. Synthesize
//     - TBP via the API forward power laws and, independently, via the
//       Daubert incremental method
//     - D2887 via the API 3A3.2-1 inverse anchor and an empirical blend
//       between D86 and TBP
//     - a raw D2887 or TBP input also backs its own family's exposed curve
//       directly, avoiding a round trip through the correlations
//
//  3. Properties
//     - VABP from the D86 curve at the five standard key points
//     - MeABP from VABP and the 10-90% slope
//     - specific gravity and Watson K from MeABP and density
//
// The correlations were fit independently of each other, so the physical
// ordering D86 ≤ D2887 ≤ TBP is a design goal rather than a guarantee;
// violations at curve extremes are a known limitation of the published
// constant sets and are not detected here.
package oil
