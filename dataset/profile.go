package dataset

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabprep/core/table"
)

// FeatureSum is the per-feature activation total across a dataset. For binary
// indicator features the sum equals the number of rows where the indicator
// is set.
type FeatureSum struct {
	Name string
	Sum  float64
}

// Profile is a compact summary of an ingested dataset, produced before any
// cleaning so it reports the data as found.
type Profile struct {
	Rows         int
	Columns      int
	LabelColumn  string
	MissingCells map[string]int
	LabelCounts  map[string]int
	FeatureSums  []FeatureSum
}

// Summarize computes a Profile for t. The last column is treated as the
// label. Missing feature cells contribute zero to the feature sums.
func Summarize(t *table.Table) (*Profile, error) {
	features, label, err := t.SplitLabel("dataset.Summarize")
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Rows:         t.NumRows(),
		Columns:      t.NumCols(),
		LabelColumn:  label.Name,
		MissingCells: make(map[string]int),
		LabelCounts:  make(map[string]int),
	}
	for j := 0; j < t.NumCols(); j++ {
		col := t.Col(j)
		if n := col.MissingCount(); n > 0 {
			p.MissingCells[col.Name] = n
		}
	}
	for i := 0; i < label.Len(); i++ {
		if label.IsMissing(i) {
			continue
		}
		p.LabelCounts[label.ValueString(i)]++
	}

	p.FeatureSums = featureSums(features)
	return p, nil
}

// featureSums totals each numeric feature column, sorted by descending sum
// and then by name so the ordering is stable. String columns are skipped.
func featureSums(features *table.Table) []FeatureSum {
	sums := make([]FeatureSum, 0, features.NumCols())
	for j := 0; j < features.NumCols(); j++ {
		col := features.Col(j)
		if col.Kind == table.KindString {
			continue
		}
		values := make([]float64, col.Len())
		for i := 0; i < col.Len(); i++ {
			if v, ok := col.Float(i); ok {
				values[i] = v
			}
		}
		sum := 0.0
		if len(values) > 0 {
			sum = mat.Sum(mat.NewVecDense(len(values), values))
		}
		sums = append(sums, FeatureSum{Name: col.Name, Sum: sum})
	}
	sort.Slice(sums, func(a, b int) bool {
		if sums[a].Sum != sums[b].Sum {
			return sums[a].Sum > sums[b].Sum
		}
		return sums[a].Name < sums[b].Name
	})
	return sums
}

// Top returns the n features with the largest sums, or all of them when the
// dataset has fewer than n numeric features.
func (p *Profile) Top(n int) []FeatureSum {
	if n < 0 {
		return nil
	}
	if n > len(p.FeatureSums) {
		n = len(p.FeatureSums)
	}
	return p.FeatureSums[:n]
}

// MissingTotal returns the total number of missing cells across all columns.
func (p *Profile) MissingTotal() int {
	total := 0
	for _, n := range p.MissingCells {
		total += n
	}
	return total
}
