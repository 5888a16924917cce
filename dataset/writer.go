package dataset

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// Canonical artifact file names within an output directory.
const (
	TrainFeaturesFile = "X_train.csv"
	TestFeaturesFile  = "X_test.csv"
	TrainLabelsFile   = "y_train.csv"
	TestLabelsFile    = "y_test.csv"
	LabelMappingFile  = "label_mapping.json"

	// LabelColumnName is the header written for the single-column label files.
	LabelColumnName = "target"
)

// Writer persists split artifacts under a single output directory.
//
// Every write overwrites any file already present, so re-running a pipeline
// against the same directory yields a clean set of artifacts.
type Writer struct {
	dir string
}

// NewWriter returns a Writer rooted at dir. The directory is created on the
// first write, not here.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory the Writer targets.
func (w *Writer) Dir() string { return w.dir }

// WriteArtifacts persists the four partition files and the label mapping.
//
// Feature partitions keep their column headers; label partitions are written
// as a single column named by LabelColumnName. The mapping is serialized as
// indented JSON with keys in the encoder's lexicographic class order.
func (w *Writer) WriteArtifacts(xTrain, xTest *table.Table, yTrain, yTest []int, mapping map[string]int) error {
	if err := w.ensureDir(); err != nil {
		return err
	}
	if err := w.writeFeatures(TrainFeaturesFile, xTrain); err != nil {
		return err
	}
	if err := w.writeFeatures(TestFeaturesFile, xTest); err != nil {
		return err
	}
	if err := w.writeLabels(TrainLabelsFile, yTrain); err != nil {
		return err
	}
	if err := w.writeLabels(TestLabelsFile, yTest); err != nil {
		return err
	}
	return w.WriteMapping(mapping)
}

// WriteMapping persists the label mapping as indented JSON.
func (w *Writer) WriteMapping(mapping map[string]int) error {
	if err := w.ensureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(mapping, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize label mapping")
	}
	data = append(data, '\n')
	path := filepath.Join(w.dir, LabelMappingFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewStorageError("Writer.WriteMapping", path, err)
	}
	return nil
}

// ReadMapping loads a label mapping previously written by WriteMapping.
func ReadMapping(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewStorageError("dataset.ReadMapping", path, err)
	}
	var mapping map[string]int
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, errors.Wrapf(err, "dataset.ReadMapping: %s", path)
	}
	return mapping, nil
}

func (w *Writer) ensureDir() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.NewStorageError("Writer", w.dir, err)
	}
	return nil
}

func (w *Writer) writeFeatures(name string, t *table.Table) error {
	path := filepath.Join(w.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	record := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j := 0; j < t.NumCols(); j++ {
			record[j] = t.Col(j).ValueString(i)
		}
		if err := cw.Write(record); err != nil {
			return errors.NewStorageError("Writer.WriteArtifacts", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	if err := file.Close(); err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	return nil
}

func (w *Writer) writeLabels(name string, codes []int) error {
	path := filepath.Join(w.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write([]string{LabelColumnName}); err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	for _, code := range codes {
		if err := cw.Write([]string{strconv.Itoa(code)}); err != nil {
			return errors.NewStorageError("Writer.WriteArtifacts", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	if err := file.Close(); err != nil {
		return errors.NewStorageError("Writer.WriteArtifacts", path, err)
	}
	return nil
}
