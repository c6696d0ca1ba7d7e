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

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/petrolab/distillation-converter/pkg/oil"
)

// Filename is the download name offered for exported conversion tables.
const Filename = "distillation_conversions.csv"

// Options control the exported table layout.
type Options struct {
	// IncludeDaubert adds the Daubert-method TBP column. Batch output
	// carries it; the HTTP export endpoint keeps the four-column form.
	IncludeDaubert bool
}

// WriteCurves writes the sample's synthesized curves as CSV rows every
// 5 volume percent from 0 to 100, followed by a bulk property block.
// Temperatures are rounded to one decimal, Watson K to three.
func WriteCurves(w io.Writer, sample *oil.Sample, opts Options) error {
	cw := csv.NewWriter(w)

	header := []string{"Volume%", "D86_C", "D2887_C", "TBP_C"}
	if opts.IncludeDaubert {
		header = append(header, "TBP_Daubert_C")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	grid := floats.Span(make([]float64, 21), 0, 100)
	for _, v := range grid {
		row := []string{
			formatVolume(v),
			format1(sample.D86(v)),
			format1(sample.D2887(v)),
			format1(sample.TBPAPI(v)),
		}
		if opts.IncludeDaubert {
			row = append(row, format1(sample.TBPDaubert(v)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row at %.0f%%: %w", v, err)
		}
	}

	if err := writeProperties(cw, sample); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func writeProperties(cw *csv.Writer, sample *oil.Sample) error {
	rows := [][]string{
		{},
		{"Properties"},
		{"VABP (°F)", format1(sample.VABP())},
		{"MeABP (°F)", format1(sample.MeABP())},
		{"Watson K", format3(sample.WatsonK())},
		{"Density (kg/m³)", strconv.FormatFloat(sample.Density(), 'f', -1, 64)},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing properties: %w", err)
		}
	}
	return nil
}

func format1(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func format3(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

func formatVolume(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
