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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/petrolab/distillation-converter/pkg/oil"
)

// Column roles are detected by substring match on the lowercased header,
// so "Vol%", "Volume %" and "volume_percent" all resolve to the volume
// column. Volume is checked before temperature so a header like
// "vol_temp" lands on volume.
var (
	volumeAliases      = []string{"vol%", "volume%", "volume", "vol"}
	temperatureAliases = []string{"temp", "temperature"}
	densityAliases     = []string{"density", "dens"}
)

// ReadPointsCSV reads a distillation sample from a CSV file. The file
// must have a header row with a volume column and a temperature column;
// a density column is optional. The returned density is the first
// parseable value of the density column, or 0 when the file has none.
func ReadPointsCSV(path string) ([]oil.Point, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	// Lab exports often carry the density only on the first data row,
	// so ragged records are allowed.
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("%s: no data rows", path)
	}

	volIdx, tempIdx, densIdx := detectColumns(rows[0])
	if volIdx < 0 || tempIdx < 0 {
		return nil, 0, fmt.Errorf(
			"%s: could not find volume and temperature columns, header: %v", path, rows[0])
	}

	points := make([]oil.Point, 0, len(rows)-1)
	density := 0.0
	for i, row := range rows[1:] {
		if volIdx >= len(row) || tempIdx >= len(row) {
			return nil, 0, fmt.Errorf("%s: row %d has %d fields", path, i+2, len(row))
		}
		vol, err := strconv.ParseFloat(strings.TrimSpace(row[volIdx]), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row %d volume: %w", path, i+2, err)
		}
		temp, err := strconv.ParseFloat(strings.TrimSpace(row[tempIdx]), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row %d temperature: %w", path, i+2, err)
		}
		points = append(points, oil.Point{VolumePercent: vol, TemperatureC: temp})

		if density == 0 && densIdx >= 0 && densIdx < len(row) {
			if d, err := strconv.ParseFloat(strings.TrimSpace(row[densIdx]), 64); err == nil {
				density = d
			}
		}
	}

	return points, density, nil
}

// detectColumns maps header fields to column roles. Later matching
// columns override earlier ones for the same role.
func detectColumns(header []string) (volIdx, tempIdx, densIdx int) {
	volIdx, tempIdx, densIdx = -1, -1, -1
	for i, col := range header {
		lower := strings.ToLower(strings.TrimSpace(col))
		switch {
		case matchesAny(lower, volumeAliases):
			volIdx = i
		case matchesAny(lower, temperatureAliases):
			tempIdx = i
		case matchesAny(lower, densityAliases):
			densIdx = i
		}
	}
	return volIdx, tempIdx, densIdx
}

func matchesAny(col string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(col, alias) {
			return true
		}
	}
	return false
}
