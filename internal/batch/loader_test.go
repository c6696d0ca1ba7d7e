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
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/petrolab/distillation-converter/pkg/oil"
)

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		wantVol  int
		wantTemp int
		wantDens int
	}{
		{
			name:     "Test case 1: plain lab header",
			header:   []string{"Vol%", "Temp_C"},
			wantVol:  0,
			wantTemp: 1,
			wantDens: -1,
		},
		{
			name:     "Test case 2: verbose header with density",
			header:   []string{"Volume %", "Temperature (C)", "Density (kg/m3)"},
			wantVol:  0,
			wantTemp: 1,
			wantDens: 2,
		},
		{
			name:     "Test case 3: snake case header",
			header:   []string{"volume_percent", "temperature_c"},
			wantVol:  0,
			wantTemp: 1,
			wantDens: -1,
		},
		{
			name:     "Test case 4: column order does not matter",
			header:   []string{"Temp_C", "Dens", "Vol%"},
			wantVol:  2,
			wantTemp: 0,
			wantDens: 1,
		},
		{
			name:     "Test case 5: unknown header",
			header:   []string{"foo", "bar"},
			wantVol:  -1,
			wantTemp: -1,
			wantDens: -1,
		},
		{
			name:     "Test case 6: later match wins for the same role",
			header:   []string{"Vol%", "Volume"},
			wantVol:  1,
			wantTemp: -1,
			wantDens: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vol, temp, dens := detectColumns(tt.header)
			if vol != tt.wantVol || temp != tt.wantTemp || dens != tt.wantDens {
				t.Errorf("detectColumns(%v) = (%d, %d, %d), want (%d, %d, %d)",
					tt.header, vol, temp, dens, tt.wantVol, tt.wantTemp, tt.wantDens)
			}
		})
	}
}

func TestReadPointsCSV(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantPoints  []oil.Point
		wantDensity float64
		wantErr     bool
	}{
		{
			name:    "Test case 1: volume and temperature only",
			content: "Vol%,Temp_C\n0,160\n50,225\n100,290\n",
			wantPoints: []oil.Point{
				{VolumePercent: 0, TemperatureC: 160},
				{VolumePercent: 50, TemperatureC: 225},
				{VolumePercent: 100, TemperatureC: 290},
			},
			wantDensity: 0,
		},
		{
			name:    "Test case 2: density column with blanks",
			content: "Vol%,Temp_C,Density\n0,160,820\n50,225,\n100,290,\n",
			wantPoints: []oil.Point{
				{VolumePercent: 0, TemperatureC: 160},
				{VolumePercent: 50, TemperatureC: 225},
				{VolumePercent: 100, TemperatureC: 290},
			},
			wantDensity: 820,
		},
		{
			name:    "Test case 3: density only on the first ragged row",
			content: "Vol%,Temp_C,Density\n0,160,815\n50,225\n100,290\n",
			wantPoints: []oil.Point{
				{VolumePercent: 0, TemperatureC: 160},
				{VolumePercent: 50, TemperatureC: 225},
				{VolumePercent: 100, TemperatureC: 290},
			},
			wantDensity: 815,
		},
		{
			name:    "Test case 4: padded fields",
			content: "Vol%, Temp_C\n0, 160 \n50, 225\n100, 290\n",
			wantPoints: []oil.Point{
				{VolumePercent: 0, TemperatureC: 160},
				{VolumePercent: 50, TemperatureC: 225},
				{VolumePercent: 100, TemperatureC: 290},
			},
			wantDensity: 0,
		},
		{
			name:    "Test case 5: unknown header",
			content: "foo,bar\n0,160\n",
			wantErr: true,
		},
		{
			name:    "Test case 6: unparseable temperature",
			content: "Vol%,Temp_C\n0,160\n50,hot\n",
			wantErr: true,
		},
		{
			name:    "Test case 7: header only",
			content: "Vol%,Temp_C\n",
			wantErr: true,
		},
		{
			name:    "Test case 8: empty file",
			content: "",
			wantErr: true,
		},
		{
			name:    "Test case 9: row missing the temperature field",
			content: "Vol%,Temp_C\n0,160\n50\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing sample file: %v", err)
			}

			points, density, gotErr := ReadPointsCSV(path)
			if gotErr != nil {
				if !tt.wantErr {
					t.Errorf("ReadPointsCSV() failed: %v", gotErr)
				}
				return
			}
			if tt.wantErr {
				t.Fatal("ReadPointsCSV() succeeded unexpectedly")
			}
			if diff := cmp.Diff(tt.wantPoints, points); diff != "" {
				t.Errorf("ReadPointsCSV() points mismatch (-want +got):\n%s", diff)
			}
			if density != tt.wantDensity {
				t.Errorf("ReadPointsCSV() density = %.1f, want %.1f", density, tt.wantDensity)
			}
		})
	}
}

func TestReadPointsCSVMissingFile(t *testing.T) {
	if _, _, err := ReadPointsCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("ReadPointsCSV() succeeded unexpectedly for missing file")
	}
}
