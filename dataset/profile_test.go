package dataset

import (
	"testing"

	"github.com/YuminosukeSato/tabprep/core/table"
)

func buildProfileTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		table.NewIntColumn("fever", []int64{1, 0, 1, 1}, nil),
		table.NewIntColumn("cough", []int64{0, 1, 0, 0}, []bool{false, false, true, false}),
		table.NewStringColumn("disease", []string{"FLU", "COLD", "FLU", ""},
			[]bool{false, false, false, true}),
	)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return tbl
}

func TestSummarize(t *testing.T) {
	p, err := Summarize(buildProfileTable(t))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if p.Rows != 4 || p.Columns != 3 {
		t.Errorf("shape = (%d, %d), want (4, 3)", p.Rows, p.Columns)
	}
	if p.LabelColumn != "disease" {
		t.Errorf("label column = %q, want disease", p.LabelColumn)
	}
	if p.MissingCells["cough"] != 1 || p.MissingCells["disease"] != 1 {
		t.Errorf("missing cells = %v", p.MissingCells)
	}
	if p.MissingTotal() != 2 {
		t.Errorf("missing total = %d, want 2", p.MissingTotal())
	}
	if p.LabelCounts["FLU"] != 2 || p.LabelCounts["COLD"] != 1 {
		t.Errorf("label counts = %v", p.LabelCounts)
	}
	if _, ok := p.LabelCounts[""]; ok {
		t.Error("missing labels must not be counted")
	}
}

func TestSummarize_FeatureSumOrdering(t *testing.T) {
	p, err := Summarize(buildProfileTable(t))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	// fever sums to 3, cough to 1 (missing cells contribute zero).
	want := []FeatureSum{{Name: "fever", Sum: 3}, {Name: "cough", Sum: 1}}
	if len(p.FeatureSums) != len(want) {
		t.Fatalf("feature sums = %v, want %v", p.FeatureSums, want)
	}
	for i := range want {
		if p.FeatureSums[i] != want[i] {
			t.Errorf("feature sum[%d] = %v, want %v", i, p.FeatureSums[i], want[i])
		}
	}

	if top := p.Top(1); len(top) != 1 || top[0].Name != "fever" {
		t.Errorf("Top(1) = %v", top)
	}
	if top := p.Top(10); len(top) != 2 {
		t.Errorf("Top(10) should clamp to available features, got %v", top)
	}
}

func TestSummarize_EmptyTable(t *testing.T) {
	if _, err := Summarize(table.Empty()); err == nil {
		t.Fatal("expected error for empty table")
	}
}
