package modelselection

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// buildDataset creates a feature table with one indicator column and the given
// label codes.
func buildDataset(t *testing.T, y []int) *table.Table {
	t.Helper()
	values := make([]int64, len(y))
	for i := range values {
		values[i] = int64(i % 2)
	}
	tbl, err := table.New(table.NewIntColumn("fever", values, nil))
	if err != nil {
		t.Fatalf("table.New failed: %v", err)
	}
	return tbl
}

// labeledCodes builds a code slice with the given per-class counts, classes
// interleaved to exercise grouping.
func labeledCodes(counts ...int) []int {
	var y []int
	for code, n := range counts {
		for i := 0; i < n; i++ {
			y = append(y, code)
		}
	}
	return y
}

func TestTrainTestSplit_Completeness(t *testing.T) {
	y := labeledCodes(70, 30)
	X := buildDataset(t, y)

	split, err := TrainTestSplit(X, y, SplitOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	if got := split.XTrain.NumRows() + split.XTest.NumRows(); got != 100 {
		t.Errorf("train+test rows = %d, want 100", got)
	}
	if split.XTrain.NumRows() != len(split.YTrain) {
		t.Errorf("train features %d rows, labels %d: misaligned",
			split.XTrain.NumRows(), len(split.YTrain))
	}
	if split.XTest.NumRows() != len(split.YTest) {
		t.Errorf("test features %d rows, labels %d: misaligned",
			split.XTest.NumRows(), len(split.YTest))
	}
}

func TestTrainTestSplit_StratifiedCounts(t *testing.T) {
	// 100 rows, class 0 with 70 and class 1 with 30 occurrences: the test
	// partition takes round(0.2*70)=14 and round(0.2*30)=6 rows.
	y := labeledCodes(70, 30)
	X := buildDataset(t, y)

	split, err := TrainTestSplit(X, y, SplitOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	counts := func(codes []int) map[int]int {
		m := make(map[int]int)
		for _, c := range codes {
			m[c]++
		}
		return m
	}

	testCounts := counts(split.YTest)
	if testCounts[0] != 14 || testCounts[1] != 6 {
		t.Errorf("test class counts = %v, want map[0:14 1:6]", testCounts)
	}
	trainCounts := counts(split.YTrain)
	if trainCounts[0] != 56 || trainCounts[1] != 24 {
		t.Errorf("train class counts = %v, want map[0:56 1:24]", trainCounts)
	}
}

func TestTrainTestSplit_StratificationBound(t *testing.T) {
	// Every class with at least 10 occurrences stays within ±5% of the 0.2
	// test fraction.
	y := labeledCodes(40, 25, 10, 25)
	X := buildDataset(t, y)

	split, err := TrainTestSplit(X, y, SplitOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	total := make(map[int]int)
	for _, c := range y {
		total[c]++
	}
	inTest := make(map[int]int)
	for _, c := range split.YTest {
		inTest[c]++
	}

	for code, n := range total {
		frac := float64(inTest[code]) / float64(n)
		if math.Abs(frac-0.2) > 0.05 {
			t.Errorf("class %d test fraction = %.3f, want within 0.2±0.05", code, frac)
		}
	}
}

func TestTrainTestSplit_Determinism(t *testing.T) {
	y := labeledCodes(34, 21, 13)
	X := buildDataset(t, y)

	a, err := TrainTestSplit(X, y, SplitOptions{Seed: 42})
	if err != nil {
		t.Fatalf("first split failed: %v", err)
	}
	b, err := TrainTestSplit(X, y, SplitOptions{Seed: 42})
	if err != nil {
		t.Fatalf("second split failed: %v", err)
	}

	if !a.XTrain.Equal(b.XTrain) || !a.XTest.Equal(b.XTest) {
		t.Error("two runs with the same seed produced different feature partitions")
	}
	for i := range a.YTest {
		if a.YTest[i] != b.YTest[i] {
			t.Fatalf("test labels differ at %d: %d vs %d", i, a.YTest[i], b.YTest[i])
		}
	}

	c, err := TrainTestSplit(X, y, SplitOptions{Seed: 43})
	if err != nil {
		t.Fatalf("third split failed: %v", err)
	}
	if a.XTest.Equal(c.XTest) && len(a.TestIndices) == len(c.TestIndices) {
		same := true
		for i := range a.TestIndices {
			if a.TestIndices[i] != c.TestIndices[i] {
				same = false
				break
			}
		}
		if same {
			t.Error("different seeds produced identical test partitions")
		}
	}
}

func TestTrainTestSplit_SingletonClassGoesToTrain(t *testing.T) {
	var warned error
	prev := errors.SetWarningHandler(func(w error) { warned = w })
	defer errors.SetWarningHandler(prev)

	// 50 rows, one class occurring exactly once.
	y := labeledCodes(30, 19, 1)
	X := buildDataset(t, y)

	split, err := TrainTestSplit(X, y, SplitOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("TrainTestSplit must not fail on a singleton class: %v", err)
	}

	for _, c := range split.YTest {
		if c == 2 {
			t.Error("singleton class leaked into the test partition")
		}
	}
	found := false
	for _, c := range split.YTrain {
		if c == 2 {
			found = true
		}
	}
	if !found {
		t.Error("singleton class missing from the training partition")
	}

	var singleton *errors.SingletonClassWarning
	if !errors.As(warned, &singleton) {
		t.Errorf("expected SingletonClassWarning, got %v", warned)
	}
}

func TestTrainTestSplit_SmallClassInBothPartitions(t *testing.T) {
	// A class with 2 occurrences must appear in both partitions even though
	// round(0.2*2) = 0.
	y := labeledCodes(48, 2)
	X := buildDataset(t, y)

	split, err := TrainTestSplit(X, y, SplitOptions{Seed: DefaultSeed})
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}

	inTest, inTrain := 0, 0
	for _, c := range split.YTest {
		if c == 1 {
			inTest++
		}
	}
	for _, c := range split.YTrain {
		if c == 1 {
			inTrain++
		}
	}
	if inTest != 1 || inTrain != 1 {
		t.Errorf("class 1 split = train %d / test %d, want 1/1", inTrain, inTest)
	}
}

func TestTrainTestSplit_Errors(t *testing.T) {
	tests := []struct {
		name       string
		y          []int
		opts       SplitOptions
		wantInsuff bool
	}{
		{
			name:       "too few rows",
			y:          labeledCodes(2, 2),
			opts:       SplitOptions{},
			wantInsuff: true,
		},
		{
			name:       "declared class absent",
			y:          labeledCodes(30, 20),
			opts:       SplitOptions{NumClasses: 3},
			wantInsuff: true,
		},
		{
			name: "invalid test size",
			y:    labeledCodes(30, 20),
			opts: SplitOptions{TestSize: 1.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := buildDataset(t, tt.y)
			_, err := TrainTestSplit(X, tt.y, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			var insuff *errors.InsufficientDataError
			if got := errors.As(err, &insuff); got != tt.wantInsuff {
				t.Errorf("InsufficientDataError = %v, want %v (err: %v)", got, tt.wantInsuff, err)
			}
		})
	}
}

func TestTrainTestSplit_LengthMismatch(t *testing.T) {
	y := labeledCodes(30, 20)
	X := buildDataset(t, y[:40])

	if _, err := TrainTestSplit(X, y, SplitOptions{}); !errors.Is(err, errors.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}
