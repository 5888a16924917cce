// Package log defines standard attribute keys for pipeline operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in tabprep. Using these standard keys enables better
// log analysis, monitoring, and debugging of batch pipeline runs.
//
// The attributes are organized into categories:
//   - Run and Stage Context
//   - Data Shape and Characteristics
//   - Split and Encoding Results
//   - Performance Metrics
//   - Error Context
//
// These keys follow a hierarchical naming convention (e.g., "run.id",
// "data.rows") to enable structured log analysis and filtering.

package log

// Run and Stage Context
// These attributes identify the pipeline run and the stage being executed.
const (
	// RunIDKey provides a unique identifier for a single pipeline run.
	// Populated with a UUID at the start of each run.
	RunIDKey = "run.id"

	// StageKey specifies the pipeline stage being performed.
	// Standard values: "extract", "clean", "encode", "split", "load"
	StageKey = "pipeline.stage"

	// ComponentKey identifies which component or package is performing the operation.
	// Examples: "dataset", "preprocessing", "modelselection"
	ComponentKey = "pipeline.component"

	// DatasetKey records the input dataset path for the run.
	DatasetKey = "run.dataset"

	// OutputDirKey records the output directory receiving the artifacts.
	OutputDirKey = "run.output_dir"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of the table being processed.
const (
	// RowsKey indicates the number of rows in the table.
	RowsKey = "data.rows"

	// ColumnsKey indicates the number of columns in the table, label included.
	ColumnsKey = "data.columns"

	// FeaturesKey indicates the number of feature columns (all but the label).
	FeaturesKey = "data.features"

	// LabelColumnKey records the name of the trailing label column.
	LabelColumnKey = "data.label_column"

	// MissingCellsKey indicates the number of missing cells found before cleaning.
	MissingCellsKey = "data.missing_cells"

	// ImputedFeaturesKey indicates the number of feature cells imputed with zero.
	ImputedFeaturesKey = "clean.imputed_features"

	// ImputedLabelsKey indicates the number of label cells imputed with the mode.
	ImputedLabelsKey = "clean.imputed_labels"

	// LabelModeKey records the mode value used for label imputation.
	LabelModeKey = "clean.label_mode"
)

// Split and Encoding Results
// These attributes capture the outcome of label encoding and stratified splitting.
const (
	// ClassesKey indicates the number of distinct label classes.
	ClassesKey = "encode.classes"

	// TrainRowsKey indicates the number of rows in the training partition.
	TrainRowsKey = "split.train_rows"

	// TestRowsKey indicates the number of rows in the test partition.
	TestRowsKey = "split.test_rows"

	// TestSizeKey records the configured test fraction.
	TestSizeKey = "split.test_size"

	// SeedKey records the random seed used for the split, for reproducibility.
	SeedKey = "split.seed"
)

// Performance Metrics
// These attributes capture timing information for stages and runs.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error and Warning Context
// These attributes provide additional context for error and warning messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "SOURCE_NOT_FOUND", "SCHEMA_INVALID", "INSUFFICIENT_DATA", "STORAGE_FAILURE"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "SchemaError", "InsufficientDataError", "StorageError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by the error logging handler.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard pipeline stages
	StageExtract = "extract"
	StageClean   = "clean"
	StageEncode  = "encode"
	StageSplit   = "split"
	StageLoad    = "load"

	// Standard error codes
	ErrorSourceNotFound   = "SOURCE_NOT_FOUND"
	ErrorSchemaInvalid    = "SCHEMA_INVALID"
	ErrorInsufficientData = "INSUFFICIENT_DATA"
	ErrorStorageFailure   = "STORAGE_FAILURE"
)
