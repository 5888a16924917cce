// Package tabprep prepares labeled tabular datasets for model training:
// it cleans missing values, encodes the trailing categorical label into
// dense integer codes and produces a deterministic stratified train/test
// split, persisting the partitions as CSV artifacts.
//
// # Features
//
// - Deterministic: identical inputs and settings yield byte-identical artifacts
// - Stratified Splitting: per-class proportions preserved within rounding
// - Robust Error Handling: structured error types with stack traces
// - Staged Execution: extract/transform/load can run as separate processes
//
// # Quick Start
//
// Run the full pipeline programmatically:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/tabprep/pipeline"
//	)
//
//	func main() {
//	    cfg := pipeline.DefaultConfig()
//	    cfg.OutputDir = "artifacts"
//
//	    p := pipeline.New(cfg, nil)
//	    result, err := p.Run("symptoms.csv")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Printf("train=%d test=%d classes=%v\n",
//	        result.TrainRows, result.TestRows, result.Classes)
//	}
//
// Or from the command line:
//
//	tabprep run symptoms.csv --out artifacts
//
// # Packages
//
// The module is organized into several packages:
//
//   - core/table: typed column table with missing-value masks
//   - dataset: CSV reader, artifact writer, dataset profiling
//   - preprocessing: missing-value imputation and label encoding
//   - modelselection: stratified train/test splitting
//   - pipeline: orchestration, staged execution, configuration
//   - pkg/errors: structured error types and warnings
//   - pkg/log: structured logging helpers
package tabprep
