package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/petrolab/distillation-converter/pkg/oil"
)

// Environment variables override file values with this prefix, e.g.
// DISTILL_SERVER_LISTENADDRESS.
const EnvPrefix = "DISTILL"

// DefaultDensityKgM3 is assumed for batch inputs that carry no density
// column and no profile override. A mid-range kerosene density.
const DefaultDensityKgM3 = 820

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the host:port the API binds to.
	ListenAddress string `yaml:"listenAddress" json:"listenAddress" mapstructure:"listenAddress"`

	// ReadTimeout and WriteTimeout bound a single request's I/O.
	ReadTimeout  time.Duration `yaml:"readTimeout" json:"readTimeout" mapstructure:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout" json:"writeTimeout" mapstructure:"writeTimeout"`

	// ShutdownTimeout bounds the drain period after a termination signal.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout" mapstructure:"shutdownTimeout"`
}

// LoggingConfig holds the process logging settings.
type LoggingConfig struct {
	// Level is info, debug or trace.
	Level string `yaml:"level" json:"level" mapstructure:"level"`

	// Development switches to console encoding with readable timestamps.
	Development bool `yaml:"development" json:"development" mapstructure:"development"`
}

// BatchConfig holds the defaults applied by the batch processor when an
// input file or profile does not specify them.
type BatchConfig struct {
	// DensityKgM3 is used for files without a density column.
	DensityKgM3 float64 `yaml:"densityKgM3" json:"densityKgM3" mapstructure:"densityKgM3"`

	// InputType is the curve family assumed for batch files.
	InputType string `yaml:"inputType" json:"inputType" mapstructure:"inputType"`

	// ProfilesPath points to the optional sample profile YAML file.
	ProfilesPath string `yaml:"profilesPath" json:"profilesPath" mapstructure:"profilesPath"`
}

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server" mapstructure:"server"`
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
	Batch   BatchConfig   `yaml:"batch" json:"batch" mapstructure:"batch"`
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress:   ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Batch: BatchConfig{
			DensityKgM3: DefaultDensityKgM3,
			InputType:   string(oil.FamilyD86),
		},
	}
}

// Load reads the configuration from an optional YAML file and the
// environment. File values override defaults; environment variables
// override both. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults := Default()
	v.SetDefault("server.listenAddress", defaults.Server.ListenAddress)
	v.SetDefault("server.readTimeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.shutdownTimeout", defaults.Server.ShutdownTimeout)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.development", defaults.Logging.Development)
	v.SetDefault("batch.densityKgM3", defaults.Batch.DensityKgM3)
	v.SetDefault("batch.inputType", defaults.Batch.InputType)
	v.SetDefault("batch.profilesPath", defaults.Batch.ProfilesPath)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Server.ListenAddress == "" {
		return fmt.Errorf("server.listenAddress must not be empty")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read/write timeouts must be positive, got %s/%s",
			c.Server.ReadTimeout, c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdownTimeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Batch.DensityKgM3 < 600 || c.Batch.DensityKgM3 > 1200 {
		return fmt.Errorf("batch.densityKgM3 must be between 600 and 1200, got %.1f", c.Batch.DensityKgM3)
	}
	if _, err := oil.ParseFamily(c.Batch.InputType); err != nil {
		return fmt.Errorf("batch.inputType: %w", err)
	}
	return nil
}
