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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultReportFilename is where SaveReport writes unless told
// otherwise.
const DefaultReportFilename = "batch_report.json"

// Summary aggregates the successful conversions. The averages are null
// when nothing succeeded.
type Summary struct {
	SuccessRate    string   `json:"success_rate"`
	AverageWatsonK *float64 `json:"average_watson_k"`
	AverageVABP    *float64 `json:"average_vabp"`
}

// SuccessfulFile is one successfully converted input in the report.
type SuccessfulFile struct {
	Filename    string  `json:"filename"`
	Points      int     `json:"points"`
	DensityKgM3 float64 `json:"density"`
	VABP        float64 `json:"vabp"`
	WatsonK     float64 `json:"watson_k"`
}

// FailedFile is one failed input in the report.
type FailedFile struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// Report summarizes a batch run.
type Report struct {
	Timestamp       time.Time        `json:"timestamp"`
	TotalFiles      int              `json:"total_files"`
	Successful      int              `json:"successful"`
	Failed          int              `json:"failed"`
	Summary         Summary          `json:"summary"`
	SuccessfulFiles []SuccessfulFile `json:"successful_files"`
	FailedFiles     []FailedFile     `json:"failed_files"`
}

// GenerateReport builds the report for the results recorded so far.
func (p *Processor) GenerateReport() Report {
	report := Report{
		Timestamp:       time.Now().UTC(),
		TotalFiles:      len(p.results),
		SuccessfulFiles: []SuccessfulFile{},
		FailedFiles:     []FailedFile{},
	}

	var vabps, watsonKs []float64
	for _, r := range p.results {
		if r.Status == StatusSuccess {
			report.Successful++
			report.SuccessfulFiles = append(report.SuccessfulFiles, SuccessfulFile{
				Filename:    r.Filename,
				Points:      r.NumPoints,
				DensityKgM3: r.DensityKgM3,
				VABP:        r.VABP,
				WatsonK:     r.WatsonK,
			})
			vabps = append(vabps, r.VABP)
			watsonKs = append(watsonKs, r.WatsonK)
		} else {
			report.Failed++
			report.FailedFiles = append(report.FailedFiles, FailedFile{
				Filename: r.Filename,
				Error:    r.ErrorMessage,
			})
		}
	}

	report.Summary.SuccessRate = "N/A"
	if report.TotalFiles > 0 {
		report.Summary.SuccessRate = fmt.Sprintf("%.1f%%",
			100*float64(report.Successful)/float64(report.TotalFiles))
	}
	if len(watsonKs) > 0 {
		avgK := stat.Mean(watsonKs, nil)
		avgVABP := stat.Mean(vabps, nil)
		report.Summary.AverageWatsonK = &avgK
		report.Summary.AverageVABP = &avgVABP
	}

	return report
}

// SaveReport writes the report as indented JSON into the output
// directory and returns the full path. An empty filename uses
// DefaultReportFilename.
func (p *Processor) SaveReport(filename string) (string, error) {
	if filename == "" {
		filename = DefaultReportFilename
	}
	report := p.GenerateReport()

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	path := filepath.Join(p.outputDir, filename)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}

	p.logger.Info("Report saved", "path", path)
	return path, nil
}

// WriteSummary writes a human-readable run summary.
func (r Report) WriteSummary(w io.Writer) {
	line := "============================================================"
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "BATCH PROCESSING REPORT")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Timestamp: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "Total files: %d\n", r.TotalFiles)
	fmt.Fprintf(w, "Successful: %d\n", r.Successful)
	fmt.Fprintf(w, "Failed: %d\n", r.Failed)
	fmt.Fprintf(w, "Success rate: %s\n", r.Summary.SuccessRate)

	if r.Summary.AverageWatsonK != nil {
		fmt.Fprintf(w, "\nAverage Watson K: %.3f\n", *r.Summary.AverageWatsonK)
	}
	if r.Summary.AverageVABP != nil {
		fmt.Fprintf(w, "Average VABP: %.1f F\n", *r.Summary.AverageVABP)
	}

	if len(r.FailedFiles) > 0 {
		fmt.Fprintln(w, "\nFailed files:")
		for _, f := range r.FailedFiles {
			fmt.Fprintf(w, "  - %s: %s\n", f.Filename, f.Error)
		}
	}
	fmt.Fprintln(w, line)
}
