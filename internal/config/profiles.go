package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	apiv1 "github.com/petrolab/distillation-converter/api/v1"
	"github.com/petrolab/distillation-converter/internal/logging"
	"github.com/petrolab/distillation-converter/pkg/oil"
)

// GlobalDefaultsKey identifies the profile entry whose values are
// inherited by every other profile.
const GlobalDefaultsKey = "default"

// SampleProfile carries per-feedstock defaults applied to batch inputs
// that do not specify them. A profile for "kerosene" lets a lab submit
// bare distillation columns and still get the right density and family.
type SampleProfile struct {
	// ProfileID is the identifier batch inputs reference. Entries
	// without one are skipped, except the global defaults entry.
	ProfileID string `yaml:"profile_id,omitempty" json:"profile_id,omitempty"`

	// Description is free-form operator text.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// DensityKgM3 overrides the density assumed for the sample.
	DensityKgM3 float64 `yaml:"densityKgM3,omitempty" json:"densityKgM3,omitempty"`

	// InputType overrides the curve family assumed for the sample.
	InputType string `yaml:"inputType,omitempty" json:"inputType,omitempty"`

	// OutputTypes overrides the curve families reported for the sample.
	OutputTypes []string `yaml:"outputTypes,omitempty" json:"outputTypes,omitempty"`
}

// Validate checks the profile values.
func (p *SampleProfile) Validate() error {
	if p.DensityKgM3 != 0 && (p.DensityKgM3 < 600 || p.DensityKgM3 > 1200) {
		return fmt.Errorf("densityKgM3 must be between 600 and 1200, got %.1f", p.DensityKgM3)
	}
	if p.InputType != "" {
		if _, err := oil.ParseFamily(p.InputType); err != nil {
			return err
		}
	}
	for _, out := range p.OutputTypes {
		switch out {
		case apiv1.OutputD86, apiv1.OutputD2887, apiv1.OutputTBP, apiv1.OutputTBPDaubert:
		default:
			return fmt.Errorf("unknown output type %q", out)
		}
	}
	return nil
}

// SampleProfileData maps profile IDs to their profiles.
type SampleProfileData map[string]SampleProfile

// LoadSampleProfiles reads and parses a profile YAML file. A missing
// path yields an empty set rather than an error so the feature stays
// optional.
func LoadSampleProfiles(path string) (SampleProfileData, error) {
	if path == "" {
		return make(SampleProfileData), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sample profiles %s: %w", path, err)
	}
	return ParseSampleProfiles(raw), nil
}

// ParseSampleProfiles parses the profile map from YAML. Malformed or
// invalid entries are skipped with a log line so one bad profile cannot
// take the whole set down.
func ParseSampleProfiles(raw []byte) SampleProfileData {
	var entries map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		logging.Log.Info("Failed to parse sample profile data, using empty set", "error", err)
		return make(SampleProfileData)
	}

	profiles := make(SampleProfileData)

	// Sort keys for deterministic processing order.
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		node := entries[key]

		var profile SampleProfile
		if err := node.Decode(&profile); err != nil {
			logging.Log.Info("Failed to parse sample profile entry, skipping",
				"key", key, "error", err)
			continue
		}
		if err := profile.Validate(); err != nil {
			logging.Log.Info("Invalid sample profile entry, skipping",
				"key", key, "error", err)
			continue
		}

		if key == GlobalDefaultsKey {
			profiles[GlobalDefaultsKey] = profile
			continue
		}
		if profile.ProfileID == "" {
			logging.Log.Info("Sample profile entry without profile_id, skipping", "key", key)
			continue
		}
		if _, exists := profiles[profile.ProfileID]; exists {
			logging.Log.Info("Duplicate profile_id, keeping first entry",
				"key", key, "profileID", profile.ProfileID)
			continue
		}
		profiles[profile.ProfileID] = profile
	}

	logging.Log.V(logging.DEBUG).Info("Parsed sample profiles", "profileCount", len(profiles))
	return profiles
}

// GetProfile returns the profile for the given ID with global defaults
// merged in. Fields the profile leaves unset inherit the default entry's
// values. A missing ID yields just the defaults.
func (d SampleProfileData) GetProfile(id string) SampleProfile {
	result := d[GlobalDefaultsKey]
	profile, exists := d[id]
	if !exists {
		return result
	}

	result.ProfileID = profile.ProfileID
	if profile.Description != "" {
		result.Description = profile.Description
	}
	if profile.DensityKgM3 != 0 {
		result.DensityKgM3 = profile.DensityKgM3
	}
	if profile.InputType != "" {
		result.InputType = profile.InputType
	}
	if len(profile.OutputTypes) > 0 {
		result.OutputTypes = profile.OutputTypes
	}
	return result
}

// DensityFor returns the merged density for the profile ID, falling back
// to the application-wide default when neither the profile nor the
// defaults entry set one.
func (d SampleProfileData) DensityFor(id string) float64 {
	merged := d.GetProfile(id)
	if merged.DensityKgM3 != 0 {
		return merged.DensityKgM3
	}
	return DefaultDensityKgM3
}

// InputTypeFor returns the merged curve family for the profile ID,
// falling back to D86.
func (d SampleProfileData) InputTypeFor(id string) string {
	merged := d.GetProfile(id)
	if merged.InputType != "" {
		return merged.InputType
	}
	return string(oil.FamilyD86)
}
