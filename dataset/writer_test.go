package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

func buildFeatures(t *testing.T, fever, cough []int64) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.NewIntColumn("fever", fever, nil),
		table.NewIntColumn("cough", cough, nil),
	)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return tbl
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestWriter_WriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir)

	xTrain := buildFeatures(t, []int64{1, 0, 1}, []int64{0, 1, 1})
	xTest := buildFeatures(t, []int64{0}, []int64{0})
	err := w.WriteArtifacts(xTrain, xTest, []int{1, 0, 1}, []int{0},
		map[string]int{"COLD": 0, "FLU": 1})
	if err != nil {
		t.Fatalf("WriteArtifacts failed: %v", err)
	}

	if got := readFile(t, filepath.Join(dir, TrainFeaturesFile)); got != "fever,cough\n1,0\n0,1\n1,1\n" {
		t.Errorf("X_train.csv = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, TestFeaturesFile)); got != "fever,cough\n0,0\n" {
		t.Errorf("X_test.csv = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, TrainLabelsFile)); got != "target\n1\n0\n1\n" {
		t.Errorf("y_train.csv = %q", got)
	}
	if got := readFile(t, filepath.Join(dir, TestLabelsFile)); got != "target\n0\n" {
		t.Errorf("y_test.csv = %q", got)
	}
}

func TestWriter_MappingIndentationAndOrder(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	err := w.WriteMapping(map[string]int{"FLU": 1, "ALLERGY": 0, "COLD": 2})
	if err != nil {
		t.Fatalf("WriteMapping failed: %v", err)
	}

	want := "{\n    \"ALLERGY\": 0,\n    \"COLD\": 2,\n    \"FLU\": 1\n}\n"
	if got := readFile(t, filepath.Join(dir, LabelMappingFile)); got != want {
		t.Errorf("label_mapping.json = %q, want %q", got, want)
	}
}

func TestWriter_MappingRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	mapping := map[string]int{"COLD": 0, "FLU": 1}

	if err := w.WriteMapping(mapping); err != nil {
		t.Fatalf("WriteMapping failed: %v", err)
	}
	got, err := ReadMapping(filepath.Join(dir, LabelMappingFile))
	if err != nil {
		t.Fatalf("ReadMapping failed: %v", err)
	}
	if len(got) != 2 || got["COLD"] != 0 || got["FLU"] != 1 {
		t.Errorf("round-tripped mapping = %v", got)
	}
}

func TestWriter_OverwritesExistingArtifacts(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, TrainFeaturesFile)
	if err := os.WriteFile(stale, []byte("stale contents\n"), 0o644); err != nil {
		t.Fatalf("failed to seed stale file: %v", err)
	}
	w := NewWriter(dir)

	xTrain := buildFeatures(t, []int64{1}, []int64{0})
	xTest := buildFeatures(t, []int64{0}, []int64{1})
	err := w.WriteArtifacts(xTrain, xTest, []int{0}, []int{1}, map[string]int{"A": 0})
	if err != nil {
		t.Fatalf("WriteArtifacts failed: %v", err)
	}
	if got := readFile(t, stale); got != "fever,cough\n1,0\n" {
		t.Errorf("stale artifact not overwritten: %q", got)
	}
}

func TestWriter_UnwritableDirIsStorageError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(dir, []byte("a file, not a directory"), 0o644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}
	w := NewWriter(dir)

	err := w.WriteMapping(map[string]int{"A": 0})
	var storageErr *errors.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if storageErr.Path != dir {
		t.Errorf("StorageError path = %q, want %q", storageErr.Path, dir)
	}
}
