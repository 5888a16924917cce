package pipeline

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/tabprep/modelselection"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// Config holds every knob a pipeline run reads. Zero values are filled with
// defaults by ApplyDefaults, so a partial YAML document is valid.
type Config struct {
	// Dataset is the input CSV path. The positional CLI argument overrides it.
	Dataset string `yaml:"dataset,omitempty"`

	// OutputDir receives the partition CSVs and the label mapping.
	OutputDir string `yaml:"output_dir,omitempty"`

	// WorkDir holds the intermediate blobs of staged runs.
	WorkDir string `yaml:"work_dir,omitempty"`

	// TestSize is the test partition fraction, strictly between 0 and 1.
	TestSize float64 `yaml:"test_size,omitempty"`

	// Seed feeds the split's random source. Runs with the same seed and input
	// produce byte-identical artifacts.
	Seed int `yaml:"seed,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default configuration values.
const (
	DefaultOutputDir = "output"
	DefaultWorkDir   = "work"
	DefaultLogLevel  = "info"
)

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// LoadConfig reads a YAML config file, fills defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("pipeline.LoadConfig", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "pipeline.LoadConfig: %s", path)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "pipeline.LoadConfig: %s", path)
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.WorkDir == "" {
		c.WorkDir = DefaultWorkDir
	}
	if c.TestSize == 0 {
		c.TestSize = modelselection.DefaultTestSize
	}
	if c.Seed == 0 {
		c.Seed = modelselection.DefaultSeed
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks the configuration for values no run could honor.
func (c *Config) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.NewValueError("Config.Validate",
			"test_size must be greater than 0 and less than 1")
	}
	if c.OutputDir == "" {
		return errors.NewValueError("Config.Validate", "output_dir must not be empty")
	}
	if c.WorkDir == "" {
		return errors.NewValueError("Config.Validate", "work_dir must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewValueError("Config.Validate",
			"log_level must be one of debug, info, warn, error")
	}
	return nil
}
