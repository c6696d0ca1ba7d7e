package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	apiv1 "github.com/petrolab/distillation-converter/api/v1"
	"github.com/petrolab/distillation-converter/internal/export"
	"github.com/petrolab/distillation-converter/internal/logging"
	"github.com/petrolab/distillation-converter/pkg/oil"
)

const (
	// Version is reported by the root and health endpoints and stamped
	// into the build info metric.
	Version = apiv1.Version

	apiName        = "Distillation Curve Interconversion API"
	apiDescription = "Convert between D86, D2887, and TBP distillation curves"
)

// conversionGrid is the volume-percent grid reported by the conversion
// endpoints.
var conversionGrid = []float64{0, 10, 30, 50, 70, 90, 100}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, apiv1.RootResponse{
		Name:        apiName,
		Version:     Version,
		Description: apiDescription,
		Endpoints: map[string]string{
			"health":     "GET /health",
			"convert":    "POST /convert",
			"properties": "POST /properties",
			"batch":      "POST /batch",
			"export-csv": "POST /export-csv",
			"metrics":    "GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, apiv1.HealthResponse{
		Status:  "healthy",
		Version: Version,
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	sample, err := s.newSample(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input: %v", err)
		return
	}

	logging.FromContext(r.Context()).V(logging.DEBUG).Info("Converted curves",
		"inputType", req.InputType, "points", len(req.DistillationData))
	s.writeJSON(w, http.StatusOK, conversionResponse(req, sample))
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	sample, err := s.newSample(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input: %v", err)
		return
	}

	s.writeJSON(w, http.StatusOK, apiv1.PropertiesResponse{
		Properties:       buildProperties(sample),
		Characterization: oil.Characterize(sample.WatsonK()),
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var requests []apiv1.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&requests); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	resp := apiv1.BatchResponse{
		Total:   len(requests),
		Results: make([]apiv1.BatchResult, 0, len(requests)),
	}
	for i := range requests {
		req := &requests[i]
		req.ApplyDefaults()
		result := apiv1.BatchResult{Index: i}

		data, err := s.convertOne(req)
		if err != nil {
			result.Status = apiv1.StatusError
			result.Error = err.Error()
			resp.Failed++
		} else {
			result.Status = apiv1.StatusSuccess
			result.Data = data
			resp.Successful++
		}
		resp.Results = append(resp.Results, result)
	}

	logging.FromContext(r.Context()).V(logging.DEBUG).Info("Processed batch",
		"total", resp.Total, "successful", resp.Successful, "failed", resp.Failed)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	sample, err := s.newSample(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input: %v", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	if err := export.WriteCurves(w, sample, export.Options{}); err != nil {
		// Headers are already out, so the failure can only be logged.
		logging.FromContext(r.Context()).Error(err, "Writing CSV export failed")
	}
}

// decodeRequest parses and validates a conversion request body, writing
// the 400 response itself when the request is unusable.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*apiv1.ConversionRequest, bool) {
	var req apiv1.ConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input: %v", err)
		return nil, false
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid input: %v", err)
		return nil, false
	}
	return &req, true
}

// convertOne validates one batch entry and runs it through the engine.
func (s *Server) convertOne(req *apiv1.ConversionRequest) (*apiv1.ConversionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sample, err := s.newSample(req)
	if err != nil {
		return nil, err
	}
	return conversionResponse(req, sample), nil
}

func (s *Server) newSample(req *apiv1.ConversionRequest) (*oil.Sample, error) {
	family, err := oil.ParseFamily(req.InputType)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	sample, err := oil.New(req.Points(), req.DensityKgM3, family)
	s.metrics.observeConversion(string(family), err, time.Since(start))
	return sample, err
}

func conversionResponse(req *apiv1.ConversionRequest, sample *oil.Sample) *apiv1.ConversionResponse {
	outputs := make(map[string]bool, len(req.OutputTypes))
	for _, o := range req.OutputTypes {
		outputs[o] = true
	}

	conversions := make([]apiv1.ConversionPoint, 0, len(conversionGrid))
	for _, v := range conversionGrid {
		point := apiv1.ConversionPoint{VolumePercent: v}
		if outputs[apiv1.OutputD86] {
			point.D86C = round1Ptr(sample.D86(v))
		}
		if outputs[apiv1.OutputD2887] {
			point.D2887C = round1Ptr(sample.D2887(v))
		}
		if outputs[apiv1.OutputTBP] {
			point.TBPC = round1Ptr(sample.TBPAPI(v))
		}
		if outputs[apiv1.OutputTBPDaubert] {
			point.TBPDaubertC = round1Ptr(sample.TBPDaubert(v))
		}
		conversions = append(conversions, point)
	}

	return &apiv1.ConversionResponse{
		Conversions: conversions,
		Properties:  buildProperties(sample),
		Metadata: apiv1.ConversionMetadata{
			InputType:      req.InputType,
			NumInputPoints: len(req.DistillationData),
			OutputTypes:    req.OutputTypes,
		},
	}
}

func buildProperties(sample *oil.Sample) apiv1.Properties {
	return apiv1.Properties{
		VABPFahrenheit:  round1(sample.VABP()),
		MeABPFahrenheit: round1(sample.MeABP()),
		WatsonK:         round3(sample.WatsonK()),
		DensityKgM3:     sample.Density(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(err, "Encoding response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, format string, args ...any) {
	s.writeJSON(w, status, apiv1.ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func round1Ptr(v float64) *float64 {
	r := round1(v)
	return &r
}
