// Package dataset provides loading, profiling and persistence for delimited
// tabular datasets with a trailing categorical label column.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// nullTokens are the cell values treated as missing, matching the null
// conventions of common CSV producers.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

// ReadCSV loads a rectangular table from a CSV file with a header row.
//
// On file-not-found it returns the empty-table sentinel with a nil error so
// that callers can decide how to react; callers must treat an empty result as
// a failure condition and halt the pipeline. Any other I/O or parse failure is
// returned as an error.
func ReadCSV(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table.Empty(), nil
		}
		return nil, errors.NewStorageError("dataset.ReadCSV", path, err)
	}
	defer file.Close()

	t, err := ReadCSVFrom(file)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset.ReadCSV: %s", path)
	}
	return t, nil
}

// ReadCSVFrom parses a CSV document with a header row from r.
//
// Column types are inferred per column: a column whose non-missing cells all
// parse as integers becomes an int column, then float is tried, otherwise the
// column stays a string column. Cells matching a null token are recorded in
// the column's missing mask.
func ReadCSVFrom(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse CSV")
	}
	if len(records) == 0 {
		return nil, errors.NewSchemaError("dataset.ReadCSVFrom", 0, 0,
			"document has no header row")
	}

	header := records[0]
	rows := records[1:]

	cols := make([]table.Column, len(header))
	for j, name := range header {
		cells := make([]string, len(rows))
		missing := make([]bool, len(rows))
		for i, record := range rows {
			cells[i] = record[j]
			missing[i] = nullTokens[record[j]]
		}
		cols[j] = inferColumn(name, cells, missing)
	}

	t, err := table.New(cols...)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// inferColumn picks the narrowest kind that represents every non-missing cell.
func inferColumn(name string, cells []string, missing []bool) table.Column {
	if ints, ok := parseInts(cells, missing); ok {
		return table.NewIntColumn(name, ints, missing)
	}
	if floats, ok := parseFloats(cells, missing); ok {
		return table.NewFloatColumn(name, floats, missing)
	}
	values := make([]string, len(cells))
	for i, c := range cells {
		if !missing[i] {
			values[i] = c
		}
	}
	return table.NewStringColumn(name, values, missing)
}

func parseInts(cells []string, missing []bool) ([]int64, bool) {
	out := make([]int64, len(cells))
	for i, c := range cells {
		if missing[i] {
			continue
		}
		v, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseFloats(cells []string, missing []bool) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		if missing[i] {
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
