// Package pipeline orchestrates the clean/encode/split data preparation flow:
// ingest a labeled CSV, impute missing values, encode the label, produce a
// stratified train/test split and persist the partition artifacts.
//
// Run executes the whole flow in-process. The Extract, Transform and Load
// stages do the same work as three separate invocations communicating through
// blobs in a work directory, so an external scheduler can drive them as
// individual tasks.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/dataset"
	"github.com/YuminosukeSato/tabprep/modelselection"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
	"github.com/YuminosukeSato/tabprep/preprocessing"
)

// Pipeline runs the full data preparation flow against one dataset.
//
// A Pipeline is single-threaded and performs no retries; transient-failure
// policy belongs to the caller. Every failure is returned immediately with
// the stage that produced it attached.
type Pipeline struct {
	cfg    *Config
	logger *slog.Logger
	runID  string
}

// Result summarizes a completed run.
type Result struct {
	RunID     string
	OutputDir string

	Rows      int
	Features  int
	TrainRows int
	TestRows  int

	Classes []string
	Mapping map[string]int
	Clean   *preprocessing.CleanReport
}

// New builds a Pipeline. A nil logger falls back to slog.Default(). Each
// Pipeline carries its own run ID so log lines from concurrent runs can be
// told apart.
func New(cfg *Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	return &Pipeline{
		cfg:    cfg,
		logger: logger.With(log.RunIDKey, runID),
		runID:  runID,
	}
}

// RunID returns the identifier attached to this run's log lines.
func (p *Pipeline) RunID() string { return p.runID }

// Run executes extract, clean, encode, split and load in order and returns a
// run summary. datasetPath overrides the configured dataset path when
// non-empty.
func (p *Pipeline) Run(datasetPath string) (*Result, error) {
	start := time.Now()
	if datasetPath == "" {
		datasetPath = p.cfg.Dataset
	}
	p.logger.Info("pipeline run started",
		log.DatasetKey, datasetPath,
		log.OutputDirKey, p.cfg.OutputDir,
		log.TestSizeKey, p.cfg.TestSize,
		log.SeedKey, p.cfg.Seed,
	)

	restore := p.routeWarnings()
	defer restore()

	raw, err := p.extract(datasetPath)
	if err != nil {
		return nil, err
	}
	cleaned, report, err := p.clean(raw)
	if err != nil {
		return nil, err
	}
	features, codes, encoder, err := p.encode(cleaned)
	if err != nil {
		return nil, err
	}
	split, err := p.split(features, codes, encoder.NumClasses())
	if err != nil {
		return nil, err
	}
	if err := p.load(split, encoder.Mapping()); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     p.runID,
		OutputDir: p.cfg.OutputDir,
		Rows:      raw.NumRows(),
		Features:  features.NumCols(),
		TrainRows: split.XTrain.NumRows(),
		TestRows:  split.XTest.NumRows(),
		Classes:   encoder.Classes,
		Mapping:   encoder.Mapping(),
		Clean:     report,
	}
	p.logger.Info("pipeline run finished",
		log.RowsKey, result.Rows,
		log.TrainRowsKey, result.TrainRows,
		log.TestRowsKey, result.TestRows,
		log.ClassesKey, len(result.Classes),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// extract loads the source CSV and enforces the schema contract: the file
// must exist, hold at least one data row and carry one feature column plus
// the trailing label column.
func (p *Pipeline) extract(path string) (*table.Table, error) {
	start := time.Now()
	t, err := dataset.ReadCSV(path)
	if err != nil {
		p.logStageError(log.StageExtract, log.ErrorStorageFailure, err)
		return nil, err
	}
	// The zero-column sentinel means the path itself did not resolve; a
	// readable file with columns but no rows is a schema violation instead.
	if t.NumCols() == 0 {
		err := errors.NewSourceNotFoundError(path)
		p.logStageError(log.StageExtract, log.ErrorSourceNotFound, err)
		return nil, err
	}
	if t.NumCols() < 2 || t.NumRows() == 0 {
		err := errors.NewSchemaError("Pipeline.Run", t.NumCols(), t.NumRows(),
			"dataset needs at least one feature column, a label column and one row")
		p.logStageError(log.StageExtract, log.ErrorSchemaInvalid, err)
		return nil, err
	}
	p.logger.Info("dataset extracted",
		log.StageKey, log.StageExtract,
		log.DatasetKey, path,
		log.RowsKey, t.NumRows(),
		log.ColumnsKey, t.NumCols(),
		log.MissingCellsKey, t.MissingCount(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return t, nil
}

func (p *Pipeline) clean(t *table.Table) (*table.Table, *preprocessing.CleanReport, error) {
	start := time.Now()
	cleaned, report, err := preprocessing.NewCleaner().Clean(t)
	if err != nil {
		p.logStageError(log.StageClean, log.ErrorSchemaInvalid, err)
		return nil, nil, err
	}
	p.logger.Info("dataset cleaned",
		log.StageKey, log.StageClean,
		log.ImputedFeaturesKey, report.ImputedFeatureTotal,
		log.ImputedLabelsKey, report.ImputedLabelCells,
		log.LabelModeKey, report.LabelMode,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return cleaned, report, nil
}

func (p *Pipeline) encode(t *table.Table) (*table.Table, []int, *preprocessing.LabelEncoder, error) {
	start := time.Now()
	features, codes, encoder, err := preprocessing.EncodeTable(t)
	if err != nil {
		p.logStageError(log.StageEncode, log.ErrorSchemaInvalid, err)
		return nil, nil, nil, err
	}
	p.logger.Info("labels encoded",
		log.StageKey, log.StageEncode,
		log.ClassesKey, encoder.NumClasses(),
		log.FeaturesKey, features.NumCols(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return features, codes, encoder, nil
}

func (p *Pipeline) split(features *table.Table, codes []int, numClasses int) (*modelselection.Split, error) {
	start := time.Now()
	split, err := modelselection.TrainTestSplit(features, codes, modelselection.SplitOptions{
		TestSize:   p.cfg.TestSize,
		Seed:       p.cfg.Seed,
		NumClasses: numClasses,
	})
	if err != nil {
		p.logStageError(log.StageSplit, log.ErrorInsufficientData, err)
		return nil, err
	}
	p.logger.Info("dataset split",
		log.StageKey, log.StageSplit,
		log.TrainRowsKey, split.XTrain.NumRows(),
		log.TestRowsKey, split.XTest.NumRows(),
		log.TestSizeKey, p.cfg.TestSize,
		log.SeedKey, p.cfg.Seed,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return split, nil
}

func (p *Pipeline) load(split *modelselection.Split, mapping map[string]int) error {
	start := time.Now()
	w := dataset.NewWriter(p.cfg.OutputDir)
	err := w.WriteArtifacts(split.XTrain, split.XTest, split.YTrain, split.YTest, mapping)
	if err != nil {
		p.logStageError(log.StageLoad, log.ErrorStorageFailure, err)
		return err
	}
	p.logger.Info("artifacts written",
		log.StageKey, log.StageLoad,
		log.OutputDirKey, p.cfg.OutputDir,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// routeWarnings directs library warnings (data conversions, singleton
// classes) to this run's logger for the duration of the run. The returned
// function restores the previous handler.
func (p *Pipeline) routeWarnings() func() {
	prev := errors.SetWarningHandler(func(w error) {
		p.logger.Warn("data preparation warning", log.ErrAttr(w))
	})
	return func() { errors.SetWarningHandler(prev) }
}

func (p *Pipeline) logStageError(stage, code string, err error) {
	p.logger.Error("pipeline stage failed",
		log.StageKey, stage,
		log.ErrorCodeKey, code,
		log.ErrAttr(err),
	)
}
