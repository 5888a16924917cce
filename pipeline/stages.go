package pipeline

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/dataset"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
	"github.com/YuminosukeSato/tabprep/pkg/log"
)

// Blob file names used for the staged hand-off inside the work directory.
const (
	extractedBlobFile = "extracted.gob"
	trainBlobFile     = "x_train.gob"
	testBlobFile      = "x_test.gob"
	labelsBlobFile    = "labels.gob"
)

// labelsBlobVersion guards the labels blob format. Bump it whenever the
// labelsBlob struct changes shape.
const labelsBlobVersion = 1

// labelsBlob carries the split label codes and the class mapping between the
// transform and load stages.
type labelsBlob struct {
	Version int
	YTrain  []int
	YTest   []int
	Mapping map[string]int
}

// Extract runs the ingest stage on its own: it loads and validates the source
// CSV, then persists the raw table to the work directory for a later
// Transform invocation, possibly in a different process.
func (p *Pipeline) Extract(datasetPath string) error {
	if datasetPath == "" {
		datasetPath = p.cfg.Dataset
	}
	restore := p.routeWarnings()
	defer restore()

	t, err := p.extract(datasetPath)
	if err != nil {
		return err
	}
	if err := p.ensureWorkDir(); err != nil {
		return err
	}
	if err := t.Save(filepath.Join(p.cfg.WorkDir, extractedBlobFile)); err != nil {
		p.logStageError(log.StageExtract, log.ErrorStorageFailure, err)
		return err
	}
	return nil
}

// Transform runs the clean, encode and split stages against a previously
// extracted blob and persists the partitions back to the work directory.
func (p *Pipeline) Transform() error {
	restore := p.routeWarnings()
	defer restore()

	raw, err := p.loadTable(log.StageClean, extractedBlobFile)
	if err != nil {
		return err
	}
	cleaned, _, err := p.clean(raw)
	if err != nil {
		return err
	}
	features, codes, encoder, err := p.encode(cleaned)
	if err != nil {
		return err
	}
	split, err := p.split(features, codes, encoder.NumClasses())
	if err != nil {
		return err
	}

	if err := split.XTrain.Save(filepath.Join(p.cfg.WorkDir, trainBlobFile)); err != nil {
		p.logStageError(log.StageSplit, log.ErrorStorageFailure, err)
		return err
	}
	if err := split.XTest.Save(filepath.Join(p.cfg.WorkDir, testBlobFile)); err != nil {
		p.logStageError(log.StageSplit, log.ErrorStorageFailure, err)
		return err
	}
	blob := labelsBlob{
		Version: labelsBlobVersion,
		YTrain:  split.YTrain,
		YTest:   split.YTest,
		Mapping: encoder.Mapping(),
	}
	if err := p.saveLabels(blob); err != nil {
		p.logStageError(log.StageSplit, log.ErrorStorageFailure, err)
		return err
	}
	return nil
}

// Load runs the persistence stage on its own: it reads the partition blobs a
// previous Transform produced and writes the final CSV and JSON artifacts.
func (p *Pipeline) Load() error {
	start := time.Now()
	xTrain, err := p.loadTable(log.StageLoad, trainBlobFile)
	if err != nil {
		return err
	}
	xTest, err := p.loadTable(log.StageLoad, testBlobFile)
	if err != nil {
		return err
	}
	blob, err := p.loadLabels()
	if err != nil {
		return err
	}

	w := dataset.NewWriter(p.cfg.OutputDir)
	if err := w.WriteArtifacts(xTrain, xTest, blob.YTrain, blob.YTest, blob.Mapping); err != nil {
		p.logStageError(log.StageLoad, log.ErrorStorageFailure, err)
		return err
	}
	p.logger.Info("artifacts written",
		log.StageKey, log.StageLoad,
		log.OutputDirKey, p.cfg.OutputDir,
		log.TrainRowsKey, xTrain.NumRows(),
		log.TestRowsKey, xTest.NumRows(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Pipeline) ensureWorkDir() error {
	if err := os.MkdirAll(p.cfg.WorkDir, 0o755); err != nil {
		err = errors.NewStorageError("Pipeline", p.cfg.WorkDir, err)
		p.logStageError(log.StageExtract, log.ErrorStorageFailure, err)
		return err
	}
	return nil
}

func (p *Pipeline) loadTable(stage, name string) (*table.Table, error) {
	path := filepath.Join(p.cfg.WorkDir, name)
	t, err := table.Load(path)
	if err != nil {
		p.logStageError(stage, log.ErrorStorageFailure, err)
		return nil, err
	}
	return t, nil
}

func (p *Pipeline) saveLabels(blob labelsBlob) error {
	path := filepath.Join(p.cfg.WorkDir, labelsBlobFile)
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("Pipeline.Transform", path, err)
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(blob); err != nil {
		return errors.NewStorageError("Pipeline.Transform", path, err)
	}
	return file.Close()
}

func (p *Pipeline) loadLabels() (*labelsBlob, error) {
	path := filepath.Join(p.cfg.WorkDir, labelsBlobFile)
	file, err := os.Open(path)
	if err != nil {
		err = errors.NewStorageError("Pipeline.Load", path, err)
		p.logStageError(log.StageLoad, log.ErrorStorageFailure, err)
		return nil, err
	}
	defer file.Close()

	var blob labelsBlob
	if err := gob.NewDecoder(file).Decode(&blob); err != nil {
		err = errors.NewStorageError("Pipeline.Load", path, err)
		p.logStageError(log.StageLoad, log.ErrorStorageFailure, err)
		return nil, err
	}
	if blob.Version != labelsBlobVersion {
		err := errors.Newf("pipeline: unsupported labels blob version %d (expected %d)",
			blob.Version, labelsBlobVersion)
		p.logStageError(log.StageLoad, log.ErrorStorageFailure, err)
		return nil, err
	}
	return &blob, nil
}
