// Package modelselection provides dataset partitioning utilities compatible
// with scikit-learn's model_selection helpers.
package modelselection

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

const (
	// DefaultTestSize is the fraction of rows assigned to the test partition.
	DefaultTestSize = 0.2

	// DefaultSeed is the random seed used when none is configured.
	DefaultSeed = 42

	// MinTotalRows is the practical minimum number of rows for a split.
	MinTotalRows = 5
)

// SplitOptions configures TrainTestSplit.
type SplitOptions struct {
	// TestSize is the fraction of rows assigned to the test partition.
	// Zero means DefaultTestSize.
	TestSize float64

	// Seed is the random seed for the per-class shuffle. The same seed on the
	// same input produces byte-identical partitions.
	Seed int

	// NumClasses, when positive, declares the expected number of label codes.
	// Every code in [0, NumClasses) must occur at least once in y.
	NumClasses int
}

// Split holds the four partitions produced by a stratified train/test split.
// XTrain is row-aligned with YTrain, and XTest with YTest.
type Split struct {
	XTrain *table.Table
	XTest  *table.Table
	YTrain []int
	YTest  []int

	// TrainIndices and TestIndices are the source row indices of each
	// partition, in ascending order.
	TrainIndices []int
	TestIndices  []int
}

// TrainTestSplit partitions features and label codes into stratified train and
// test partitions.
//
// For every label code the fraction of that code's rows assigned to the test
// partition is as close to TestSize as integer rounding allows, clamped so that
// every code with at least 2 occurrences appears in both partitions. A code
// with exactly 1 occurrence falls back to the training partition without error
// (a SingletonClassWarning is emitted).
//
// Rows are shuffled per class with a PCG source seeded from Seed, classes are
// visited in ascending code order, and partition indices are kept in ascending
// source order, so two runs over the same input are byte-identical.
func TrainTestSplit(X *table.Table, y []int, opts SplitOptions) (*Split, error) {
	const op = "TrainTestSplit"

	if X.NumRows() != len(y) {
		return nil, errors.Wrapf(errors.ErrLengthMismatch,
			"%s: %d feature rows vs %d label codes", op, X.NumRows(), len(y))
	}

	testSize := opts.TestSize
	if testSize == 0 {
		testSize = DefaultTestSize
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, errors.NewValueError(op, "test size must be in (0, 1)")
	}

	n := len(y)
	if n == 0 {
		return nil, errors.NewInsufficientDataError(op, 0, -1, "no rows to split")
	}
	if n < MinTotalRows {
		return nil, errors.NewInsufficientDataError(op, n, -1,
			"fewer rows than the practical minimum of 5")
	}

	// Group row indices by class, preserving input order.
	classIndices := make(map[int][]int)
	for i, code := range y {
		if code < 0 {
			return nil, errors.NewValueError(op, "label codes must be non-negative")
		}
		classIndices[code] = append(classIndices[code], i)
	}

	if opts.NumClasses > 0 {
		for code := 0; code < opts.NumClasses; code++ {
			if len(classIndices[code]) == 0 {
				return nil, errors.NewInsufficientDataError(op, n, code,
					"class has zero occurrences")
			}
		}
	}

	// Classes are visited in ascending code order so the PCG stream is
	// consumed identically on every run.
	codes := make([]int, 0, len(classIndices))
	for code := range classIndices {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	r := rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)))

	var trainIdx, testIdx []int
	for _, code := range codes {
		indices := classIndices[code]
		nClass := len(indices)

		if nClass == 1 {
			// A singleton class cannot appear in both partitions; it lands in
			// the training partition deterministically.
			errors.Warn(errors.NewSingletonClassWarning(code, nClass))
			trainIdx = append(trainIdx, indices[0])
			continue
		}

		testN := int(math.Round(testSize * float64(nClass)))
		if testN < 1 {
			testN = 1
		}
		if testN > nClass-1 {
			testN = nClass - 1
		}

		shuffled := append([]int(nil), indices...)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		testIdx = append(testIdx, shuffled[:testN]...)
		trainIdx = append(trainIdx, shuffled[testN:]...)
	}

	// Ascending source order keeps identical runs byte-identical and the
	// output diffable.
	sort.Ints(trainIdx)
	sort.Ints(testIdx)

	split := &Split{
		XTrain:       X.Select(trainIdx),
		XTest:        X.Select(testIdx),
		YTrain:       takeCodes(y, trainIdx),
		YTest:        takeCodes(y, testIdx),
		TrainIndices: trainIdx,
		TestIndices:  testIdx,
	}
	return split, nil
}

func takeCodes(y []int, indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = y[idx]
	}
	return out
}
