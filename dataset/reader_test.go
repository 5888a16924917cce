package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp CSV: %v", err)
	}
	return path
}

func TestReadCSV_InfersColumnKinds(t *testing.T) {
	path := writeTempCSV(t, "fever,temp,disease\n1,37.5,FLU\n0,36.2,COLD\n")

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got.NumRows() != 2 || got.NumCols() != 3 {
		t.Fatalf("shape = %s, want (2, 3)", got.Shape())
	}

	tests := []struct {
		name string
		kind table.Kind
	}{
		{"fever", table.KindInt},
		{"temp", table.KindFloat},
		{"disease", table.KindString},
	}
	for _, tt := range tests {
		col, ok := got.ColByName(tt.name)
		if !ok {
			t.Fatalf("column %q not found", tt.name)
		}
		if col.Kind != tt.kind {
			t.Errorf("column %q kind = %v, want %v", tt.name, col.Kind, tt.kind)
		}
	}
	col, _ := got.ColByName("fever")
	if col.Ints[0] != 1 || col.Ints[1] != 0 {
		t.Errorf("fever values = %v, want [1 0]", col.Ints)
	}
}

func TestReadCSV_NullTokens(t *testing.T) {
	path := writeTempCSV(t, "fever,disease\n1,FLU\n,COLD\nNaN,null\nNA,nan\n")

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	fever, _ := got.ColByName("fever")
	if fever.Kind != table.KindInt {
		t.Fatalf("fever kind = %v, want int despite null tokens", fever.Kind)
	}
	if fever.MissingCount() != 3 {
		t.Errorf("fever missing = %d, want 3", fever.MissingCount())
	}
	disease, _ := got.ColByName("disease")
	if disease.MissingCount() != 2 {
		t.Errorf("disease missing = %d, want 2", disease.MissingCount())
	}
	if disease.IsMissing(0) || !disease.IsMissing(2) || !disease.IsMissing(3) {
		t.Errorf("disease missing mask wrong: %v", disease.Missing)
	}
}

func TestReadCSV_MissingFileReturnsEmptySentinel(t *testing.T) {
	got, err := ReadCSV(filepath.Join(t.TempDir(), "does_not_exist.csv"))
	if err != nil {
		t.Fatalf("unexpected error for missing file: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("expected empty sentinel, got %s", got.Shape())
	}
}

func TestReadCSV_EmptyFileIsSchemaError(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := ReadCSV(path)
	var schemaErr *errors.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError for empty file, got %v", err)
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "fever,disease\n")

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got.NumRows() != 0 || got.NumCols() != 2 {
		t.Errorf("shape = %s, want (0, 2)", got.Shape())
	}
}

func TestReadCSV_MalformedRows(t *testing.T) {
	path := writeTempCSV(t, "fever,disease\n1,FLU,extra\n")

	_, err := ReadCSV(path)
	if err == nil {
		t.Fatal("expected error for ragged rows")
	}
	if !strings.Contains(err.Error(), "dataset.ReadCSV") {
		t.Errorf("error should carry the operation, got %v", err)
	}
}

func TestReadCSVFrom_DuplicateColumns(t *testing.T) {
	_, err := ReadCSVFrom(strings.NewReader("fever,fever\n1,0\n"))
	if err == nil {
		t.Fatal("expected error for duplicate column names")
	}
}

func TestReadCSV_NegativeAndLargeInts(t *testing.T) {
	path := writeTempCSV(t, "count,disease\n-3,A\n9000000000,B\n")

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	col, _ := got.ColByName("count")
	if col.Kind != table.KindInt {
		t.Fatalf("count kind = %v, want int", col.Kind)
	}
	if col.Ints[0] != -3 || col.Ints[1] != 9000000000 {
		t.Errorf("count values = %v", col.Ints)
	}
}
