// Package commands wires the tabprep CLI: the full pipeline run, the staged
// extract/transform/load invocations and the dataset inspector.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tabprep/pipeline"
	pkglog "github.com/YuminosukeSato/tabprep/pkg/log"
)

var (
	version string
	commit  string
	date    string
)

var (
	configPath string
	outputDir  string
	workDir    string
	logLevel   string
	testSize   float64
	seed       int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tabprep",
	Short: "tabprep - clean, encode and split labeled tabular datasets",
	Long: `tabprep prepares a labeled CSV dataset for model training: it fills
missing values, encodes the trailing categorical label into dense integer
codes and produces a deterministic stratified train/test split.

The artifacts (X_train.csv, X_test.csv, y_train.csv, y_test.csv and
label_mapping.json) are written to the output directory. Identical inputs
and settings always produce byte-identical artifacts.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&outputDir, "out", "", "Output directory for the artifacts")
	rootCmd.PersistentFlags().StringVar(&workDir, "work-dir", "", "Work directory for staged-run blobs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Float64Var(&testSize, "test-size", 0, "Test partition fraction (default 0.2)")
	rootCmd.PersistentFlags().IntVar(&seed, "seed", 0, "Random seed for the split (default 42)")
}

// loadConfig builds the effective configuration: the config file (when given)
// under the defaults, with any set flags overriding both.
func loadConfig() (*pipeline.Config, error) {
	var cfg *pipeline.Config
	if configPath != "" {
		loaded, err := pipeline.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = pipeline.DefaultConfig()
	}

	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if workDir != "" {
		cfg.WorkDir = workDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if testSize != 0 {
		cfg.TestSize = testSize
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPipeline sets up the process logger and builds a Pipeline from the
// effective configuration.
func newPipeline() (*pipeline.Pipeline, *pipeline.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	pkglog.SetupLogger(cfg.LogLevel)
	return pipeline.New(cfg, slog.Default()), cfg, nil
}
