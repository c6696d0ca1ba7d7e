/*
Copyright 2025 The petrolab Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/petrolab/distillation-converter/internal/config"
	"github.com/petrolab/distillation-converter/internal/export"
	"github.com/petrolab/distillation-converter/internal/logging"
	"github.com/petrolab/distillation-converter/pkg/oil"
)

// Result records the outcome of processing one input file.
type Result struct {
	Filename     string
	Status       string
	ErrorMessage string
	NumPoints    int
	DensityKgM3  float64
	VABP         float64
	WatsonK      float64
	ProcessedAt  time.Time
}

const (
	// StatusSuccess and StatusError are the Result status values.
	StatusSuccess = "success"
	StatusError   = "error"
)

// Options configure a Processor. Zero values fall back to the
// application defaults.
type Options struct {
	// InputType is the curve family assumed for input files whose
	// profile does not override it.
	InputType string

	// DefaultDensityKgM3 is used when neither the file nor a profile
	// carries a density.
	DefaultDensityKgM3 float64

	// Profiles supplies per-feedstock defaults, matched against the
	// input file's base name without extension.
	Profiles config.SampleProfileData

	// Logger receives progress output. Defaults to the package logger.
	Logger logr.Logger
}

// Processor converts every CSV sample in a directory and writes one
// converted curve table per input, plus an aggregate report.
type Processor struct {
	inputDir       string
	outputDir      string
	inputType      oil.Family
	defaultDensity float64
	profiles       config.SampleProfileData
	logger         logr.Logger

	results []Result
}

// NewProcessor creates a Processor reading from inputDir and writing to
// outputDir. The output directory is created if missing.
func NewProcessor(inputDir, outputDir string, opts Options) (*Processor, error) {
	if opts.InputType == "" {
		opts.InputType = string(oil.FamilyD86)
	}
	family, err := oil.ParseFamily(opts.InputType)
	if err != nil {
		return nil, err
	}
	if opts.DefaultDensityKgM3 == 0 {
		opts.DefaultDensityKgM3 = config.DefaultDensityKgM3
	}
	if opts.Profiles == nil {
		opts.Profiles = make(config.SampleProfileData)
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logging.Log
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	return &Processor{
		inputDir:       inputDir,
		outputDir:      outputDir,
		inputType:      family,
		defaultDensity: opts.DefaultDensityKgM3,
		profiles:       opts.Profiles,
		logger:         opts.Logger,
	}, nil
}

// FindCSVFiles lists the CSV files in the input directory in sorted
// order.
func (p *Processor) FindCSVFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(p.inputDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", p.inputDir, err)
	}
	sort.Strings(files)
	return files, nil
}

// ProcessAll converts every CSV file in the input directory. Files are
// processed in sorted order and one file's failure does not stop the
// rest. The returned slice holds one Result per file.
func (p *Processor) ProcessAll(ctx context.Context) ([]Result, error) {
	files, err := p.FindCSVFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		p.logger.Info("No CSV files found", "inputDir", p.inputDir)
		return nil, nil
	}

	p.logger.Info("Starting batch processing",
		"inputDir", p.inputDir, "outputDir", p.outputDir, "fileCount", len(files))

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return p.results, err
		}
		p.logger.Info("Processing file",
			"file", filepath.Base(file), "index", i+1, "total", len(files))
		p.ProcessFile(file)
	}

	return p.results, nil
}

// ProcessFile converts a single CSV file and records the outcome.
func (p *Processor) ProcessFile(path string) Result {
	result := Result{
		Filename:    filepath.Base(path),
		Status:      StatusSuccess,
		ProcessedAt: time.Now().UTC(),
	}

	sample, numPoints, err := p.convert(path)
	if err != nil {
		result.Status = StatusError
		result.ErrorMessage = err.Error()
		p.logger.Error(err, "Processing failed", "file", result.Filename)
		p.results = append(p.results, result)
		return result
	}

	result.NumPoints = numPoints
	result.DensityKgM3 = sample.Density()
	result.VABP = sample.VABP()
	result.WatsonK = sample.WatsonK()
	p.logger.Info("Converted sample", "file", result.Filename,
		"vabp", fmt.Sprintf("%.1f", sample.VABP()),
		"watsonK", fmt.Sprintf("%.3f", sample.WatsonK()))

	p.results = append(p.results, result)
	return result
}

func (p *Processor) convert(path string) (*oil.Sample, int, error) {
	points, fileDensity, err := ReadPointsCSV(path)
	if err != nil {
		return nil, 0, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	profile := p.profiles.GetProfile(stem)

	// Density precedence: file column, then profile, then default.
	density := fileDensity
	if density == 0 {
		density = profile.DensityKgM3
	}
	if density == 0 {
		density = p.defaultDensity
	}

	family := p.inputType
	if profile.InputType != "" {
		parsed, err := oil.ParseFamily(profile.InputType)
		if err != nil {
			return nil, 0, err
		}
		family = parsed
	}

	sample, err := oil.New(points, density, family)
	if err != nil {
		return nil, 0, err
	}

	outPath := filepath.Join(p.outputDir, stem+"_converted.csv")
	f, err := os.Create(outPath)
	if err != nil {
		return nil, 0, fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	if err := export.WriteCurves(f, sample, export.Options{IncludeDaubert: true}); err != nil {
		return nil, 0, fmt.Errorf("writing %s: %w", outPath, err)
	}

	p.logger.V(logging.DEBUG).Info("Saved conversions", "file", filepath.Base(outPath))
	return sample, len(points), nil
}

// Results returns the outcomes recorded so far.
func (p *Processor) Results() []Result {
	out := make([]Result, len(p.results))
	copy(out, p.results)
	return out
}
