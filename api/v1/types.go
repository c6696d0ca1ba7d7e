// Package v1 defines the wire types of the conversion HTTP API.
// Temperatures are Celsius unless a field name says otherwise.
package v1

import (
	"errors"
	"fmt"

	"github.com/petrolab/distillation-converter/pkg/oil"
)

// Version is the API contract version reported by the service and its
// tools.
const Version = "0.2.0"

// ErrInvalidRequest tags request validation failures so transport code can
// map them to a 400 without matching on message text.
var ErrInvalidRequest = errors.New("invalid request")

// Validation bounds for incoming conversion requests. The density and
// temperature windows cover everything from light naphtha to vacuum resid;
// values outside them are almost certainly unit mistakes.
const (
	MinPoints       = 3
	MinDensityKgM3  = 600
	MaxDensityKgM3  = 1200
	MinTemperatureC = -50
	MaxTemperatureC = 400
)

// Output curve identifiers accepted in ConversionRequest.OutputTypes.
// Unknown identifiers are ignored rather than rejected.
const (
	OutputD86        = "D86"
	OutputD2887      = "D2887"
	OutputTBP        = "TBP"
	OutputTBPDaubert = "TBP_DAUBERT"
)

// Batch item statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DefaultOutputTypes returns the curves reported when a request does not
// name any.
func DefaultOutputTypes() []string {
	return []string{OutputD86, OutputD2887, OutputTBP}
}

// DistillationPoint is a single measured point of the input curve.
type DistillationPoint struct {
	// VolumePercent is the fraction distilled, 0 to 100.
	VolumePercent float64 `json:"volume_percent"`
	// TemperatureC is the temperature at that fraction in Celsius.
	TemperatureC float64 `json:"temperature_c"`
}

// ConversionRequest carries one curve to convert plus the sample density.
type ConversionRequest struct {
	// DistillationData holds at least MinPoints points sorted by volume
	// percent.
	DistillationData []DistillationPoint `json:"distillation_data"`
	// DensityKgM3 is the bulk density in kg/m³, between MinDensityKgM3 and
	// MaxDensityKgM3.
	DensityKgM3 float64 `json:"density_kg_m3"`
	// InputType names the method the curve was measured by: D86, D2887 or
	// TBP. Defaults to D86. SimDis and SimDist are accepted aliases for
	// D2887.
	InputType string `json:"input_type,omitempty"`
	// OutputTypes selects the curves to report. Defaults to
	// DefaultOutputTypes.
	OutputTypes []string `json:"output_types,omitempty"`
}

// ApplyDefaults fills the optional request fields in place.
func (r *ConversionRequest) ApplyDefaults() {
	if r.InputType == "" {
		r.InputType = string(oil.FamilyD86)
	}
	if len(r.OutputTypes) == 0 {
		r.OutputTypes = DefaultOutputTypes()
	}
}

// Validate checks the request against the documented bounds. All failures
// wrap ErrInvalidRequest.
func (r *ConversionRequest) Validate() error {
	if len(r.DistillationData) < MinPoints {
		return fmt.Errorf("%w: at least %d distillation points required, got %d",
			ErrInvalidRequest, MinPoints, len(r.DistillationData))
	}
	if r.DensityKgM3 < MinDensityKgM3 || r.DensityKgM3 > MaxDensityKgM3 {
		return fmt.Errorf("%w: density %g kg/m³ outside typical bounds (%d to %d)",
			ErrInvalidRequest, r.DensityKgM3, MinDensityKgM3, MaxDensityKgM3)
	}
	if _, err := oil.ParseFamily(r.InputType); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	for i, p := range r.DistillationData {
		if p.VolumePercent < 0 || p.VolumePercent > 100 {
			return fmt.Errorf("%w: point %d: volume percent %g outside [0, 100]",
				ErrInvalidRequest, i, p.VolumePercent)
		}
		if p.TemperatureC < MinTemperatureC || p.TemperatureC > MaxTemperatureC {
			return fmt.Errorf("%w: point %d: temperature %g °C outside typical bounds (%d to %d)",
				ErrInvalidRequest, i, p.TemperatureC, MinTemperatureC, MaxTemperatureC)
		}
		if i == 0 {
			continue
		}
		if p.VolumePercent <= r.DistillationData[i-1].VolumePercent {
			return fmt.Errorf("%w: volume percents must be strictly increasing", ErrInvalidRequest)
		}
		if p.TemperatureC <= r.DistillationData[i-1].TemperatureC {
			return fmt.Errorf("%w: temperatures must be strictly increasing", ErrInvalidRequest)
		}
	}
	return nil
}

// Points converts the wire points into engine points.
func (r *ConversionRequest) Points() []oil.Point {
	pts := make([]oil.Point, len(r.DistillationData))
	for i, p := range r.DistillationData {
		pts[i] = oil.Point{VolumePercent: p.VolumePercent, TemperatureC: p.TemperatureC}
	}
	return pts
}

// ConversionPoint is one row of the converted grid. Curves the request did
// not ask for are omitted.
type ConversionPoint struct {
	VolumePercent float64  `json:"volume_percent"`
	D86C          *float64 `json:"d86_c,omitempty"`
	D2887C        *float64 `json:"d2887_c,omitempty"`
	TBPC          *float64 `json:"tbp_c,omitempty"`
	TBPDaubertC   *float64 `json:"tbp_daubert_c,omitempty"`
}

// Properties holds the derived bulk properties. Both average boiling points
// are Fahrenheit, the scale their correlations are defined in.
type Properties struct {
	VABPFahrenheit  float64 `json:"vabp_fahrenheit"`
	MeABPFahrenheit float64 `json:"meabp_fahrenheit"`
	WatsonK         float64 `json:"watson_k"`
	DensityKgM3     float64 `json:"density_kg_m3"`
}

// PropertiesResponse is the /properties payload: the bulk properties plus
// the Watson K characterization band.
type PropertiesResponse struct {
	Properties
	Characterization string `json:"characterization"`
}

// ConversionMetadata echoes what was asked of /convert.
type ConversionMetadata struct {
	InputType      string   `json:"input_type"`
	NumInputPoints int      `json:"num_input_points"`
	OutputTypes    []string `json:"output_types"`
}

// ConversionResponse is the /convert payload.
type ConversionResponse struct {
	Conversions []ConversionPoint  `json:"conversions"`
	Properties  Properties         `json:"properties"`
	Metadata    ConversionMetadata `json:"metadata"`
}

// BatchResult is the outcome of one request inside a batch. Data is set on
// success, Error on failure.
type BatchResult struct {
	Index  int                 `json:"index"`
	Status string              `json:"status"`
	Data   *ConversionResponse `json:"data,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// BatchResponse summarizes a /batch run. Failed items do not abort the
// batch; each result stands alone.
type BatchResponse struct {
	Total      int           `json:"total"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Results    []BatchResult `json:"results"`
}

// ErrorResponse is the envelope for 4xx/5xx bodies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RootResponse describes the service on GET /.
type RootResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}
