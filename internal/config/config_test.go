package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.ListenAddress != ":8080" {
		t.Errorf("Load() ListenAddress = %s, want :8080", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Load() ReadTimeout = %s, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Load() ShutdownTimeout = %s, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Load() Logging.Level = %s, want info", cfg.Logging.Level)
	}
	if cfg.Batch.DensityKgM3 != DefaultDensityKgM3 {
		t.Errorf("Load() Batch.DensityKgM3 = %.1f, want %d", cfg.Batch.DensityKgM3, DefaultDensityKgM3)
	}
	if cfg.Batch.InputType != "D86" {
		t.Errorf("Load() Batch.InputType = %s, want D86", cfg.Batch.InputType)
	}
}

func TestLoadFromFile(t *testing.T) {
	raw := `server:
  listenAddress: "127.0.0.1:9090"
  readTimeout: 5s
logging:
  level: debug
  development: true
batch:
  densityKgM3: 850
  inputType: D2887
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.ListenAddress != "127.0.0.1:9090" {
		t.Errorf("Load() ListenAddress = %s, want 127.0.0.1:9090", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Load() ReadTimeout = %s, want 5s", cfg.Server.ReadTimeout)
	}
	// Values the file does not set keep their defaults.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Load() WriteTimeout = %s, want 30s", cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Development {
		t.Errorf("Load() Logging = %+v, want level=debug development=true", cfg.Logging)
	}
	if cfg.Batch.DensityKgM3 != 850 {
		t.Errorf("Load() Batch.DensityKgM3 = %.1f, want 850", cfg.Batch.DensityKgM3)
	}
	if cfg.Batch.InputType != "D2887" {
		t.Errorf("Load() Batch.InputType = %s, want D2887", cfg.Batch.InputType)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	raw := `batch:
  densityKgM3: 5000
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() succeeded unexpectedly for out-of-range density")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() succeeded unexpectedly for missing file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "Test case 1: defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "Test case 2: empty listen address",
			mutate:  func(c *Config) { c.Server.ListenAddress = "" },
			wantErr: true,
		},
		{
			name:    "Test case 3: zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "Test case 4: negative shutdown timeout",
			mutate:  func(c *Config) { c.Server.ShutdownTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "Test case 5: batch density below range",
			mutate:  func(c *Config) { c.Batch.DensityKgM3 = 400 },
			wantErr: true,
		},
		{
			name:    "Test case 6: unknown batch input type",
			mutate:  func(c *Config) { c.Batch.InputType = "D1160" },
			wantErr: true,
		},
		{
			name:   "Test case 7: SimDist alias accepted as batch input type",
			mutate: func(c *Config) { c.Batch.InputType = "SimDist" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			gotErr := cfg.Validate()
			if gotErr != nil {
				if !tt.wantErr {
					t.Errorf("Validate() failed: %v", gotErr)
				}
				return
			}
			if tt.wantErr {
				t.Fatal("Validate() succeeded unexpectedly")
			}
		})
	}
}
