// Package table は型付きの列指向テーブル抽象を提供します。
// pandasのDataFrameに相当する動的なテーブルを、宣言的な列名と
// 列ごとのスカラー型を持つ明示的なコンテナとして表現します。
// 末尾の列がラベル列であるという規約を検証付きの前提条件として扱います。
package table

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// Kind は列の論理型を表す
type Kind int

const (
	// KindInt は整数列
	KindInt Kind = iota
	// KindFloat は浮動小数列
	KindFloat
	// KindString は文字列列
	KindString
)

// String はKindの文字列表現を返す
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Column は単一の型付き列を表す
// Kindに対応するスライスのみが有効で、Missingは欠損セルの位置を示す
type Column struct {
	Name    string
	Kind    Kind
	Ints    []int64
	Floats  []float64
	Strings []string
	Missing []bool
}

// NewIntColumn は整数列を作成する
// missingがnilの場合は欠損なしとして扱う
func NewIntColumn(name string, values []int64, missing []bool) Column {
	if missing == nil {
		missing = make([]bool, len(values))
	}
	return Column{Name: name, Kind: KindInt, Ints: values, Missing: missing}
}

// NewFloatColumn は浮動小数列を作成する
func NewFloatColumn(name string, values []float64, missing []bool) Column {
	if missing == nil {
		missing = make([]bool, len(values))
	}
	return Column{Name: name, Kind: KindFloat, Floats: values, Missing: missing}
}

// NewStringColumn は文字列列を作成する
func NewStringColumn(name string, values []string, missing []bool) Column {
	if missing == nil {
		missing = make([]bool, len(values))
	}
	return Column{Name: name, Kind: KindString, Strings: values, Missing: missing}
}

// Len は列の行数を返す
func (c *Column) Len() int {
	switch c.Kind {
	case KindInt:
		return len(c.Ints)
	case KindFloat:
		return len(c.Floats)
	case KindString:
		return len(c.Strings)
	default:
		return 0
	}
}

// IsMissing は指定行が欠損セルかどうかを返す
func (c *Column) IsMissing(i int) bool {
	return i < len(c.Missing) && c.Missing[i]
}

// MissingCount は列内の欠損セル数を返す
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// ValueString は指定行の値を正準的な文字列表現で返す
// 欠損セルは空文字列になる
func (c *Column) ValueString(i int) string {
	if c.IsMissing(i) {
		return ""
	}
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Ints[i], 10)
	case KindFloat:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case KindString:
		return c.Strings[i]
	default:
		return ""
	}
}

// Float は指定行の値をfloat64として返す
// 文字列列または欠損セルの場合はokがfalseになる
func (c *Column) Float(i int) (float64, bool) {
	if c.IsMissing(i) {
		return 0, false
	}
	switch c.Kind {
	case KindInt:
		return float64(c.Ints[i]), true
	case KindFloat:
		return c.Floats[i], true
	default:
		return 0, false
	}
}

// Clone は列の深いコピーを返す
func (c *Column) Clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Ints != nil {
		out.Ints = append([]int64(nil), c.Ints...)
	}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Missing != nil {
		out.Missing = append([]bool(nil), c.Missing...)
	}
	return out
}

// take は指定行インデックスのみを含む新しい列を返す
func (c *Column) take(rows []int) Column {
	out := Column{Name: c.Name, Kind: c.Kind, Missing: make([]bool, len(rows))}
	switch c.Kind {
	case KindInt:
		out.Ints = make([]int64, len(rows))
		for i, r := range rows {
			out.Ints[i] = c.Ints[r]
		}
	case KindFloat:
		out.Floats = make([]float64, len(rows))
		for i, r := range rows {
			out.Floats[i] = c.Floats[r]
		}
	case KindString:
		out.Strings = make([]string, len(rows))
		for i, r := range rows {
			out.Strings[i] = c.Strings[r]
		}
	}
	for i, r := range rows {
		out.Missing[i] = c.IsMissing(r)
	}
	return out
}

// Table は名前付きの型付き列の順序付き集合を表す
// 全ての列は同じ行数を持ち、宣言順が保たれる
// 規約として末尾の列がラベル列、それ以外が特徴量列となる
type Table struct {
	cols []Column
}

// New は列の集合からテーブルを作成する
// 列の行数が揃っていない場合、または列名が重複している場合はエラーを返す
func New(cols ...Column) (*Table, error) {
	if len(cols) > 0 {
		rows := cols[0].Len()
		seen := make(map[string]bool, len(cols))
		for _, c := range cols {
			if c.Len() != rows {
				return nil, errors.Wrapf(errors.ErrLengthMismatch,
					"column %q has %d rows, expected %d", c.Name, c.Len(), rows)
			}
			if seen[c.Name] {
				return nil, errors.Newf("duplicate column name %q", c.Name)
			}
			seen[c.Name] = true
		}
	}
	return &Table{cols: cols}, nil
}

// Empty は空テーブルのセンチネル（0行・0列）を返す
// Readerが入力ファイルを見つけられなかった場合に使用される
func Empty() *Table {
	return &Table{}
}

// NumRows はテーブルの行数を返す
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols はテーブルの列数を返す
func (t *Table) NumCols() int {
	return len(t.cols)
}

// IsEmpty はテーブルが空センチネル（0行・0列）かどうかを返す
// 列はあるが行が無いテーブルはセンチネルではない
func (t *Table) IsEmpty() bool {
	return t.NumCols() == 0
}

// ColumnNames は宣言順の列名を返す
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Col は指定位置の列を返す
func (t *Table) Col(i int) *Column {
	return &t.cols[i]
}

// ColByName は指定名の列を返す
func (t *Table) ColByName(name string) (*Column, bool) {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i], true
		}
	}
	return nil, false
}

// MissingCount はテーブル全体の欠損セル数を返す
func (t *Table) MissingCount() int {
	n := 0
	for i := range t.cols {
		n += t.cols[i].MissingCount()
	}
	return n
}

// SplitLabel はテーブルを特徴量テーブルとラベル列に分割する
// 列数が2未満、または行が1件もない場合はSchemaErrorを返す
func (t *Table) SplitLabel(op string) (*Table, *Column, error) {
	if t.NumCols() < 2 {
		return nil, nil, errors.NewSchemaError(op, t.NumCols(), t.NumRows(),
			"table must have at least 2 columns (features + trailing label)")
	}
	if t.NumRows() == 0 {
		return nil, nil, errors.NewSchemaError(op, t.NumCols(), t.NumRows(),
			"table has no rows")
	}
	features := &Table{cols: t.cols[:len(t.cols)-1]}
	label := &t.cols[len(t.cols)-1]
	return features, label, nil
}

// Select は指定行インデックスのみを含む新しいテーブルを返す
// 元のテーブルは変更されない
func (t *Table) Select(rows []int) *Table {
	cols := make([]Column, len(t.cols))
	for i := range t.cols {
		cols[i] = t.cols[i].take(rows)
	}
	return &Table{cols: cols}
}

// Clone はテーブルの深いコピーを返す
// パイプラインの各ステージは共有状態を変更せず、新しいテーブルを生成する
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.cols))
	for i := range t.cols {
		cols[i] = t.cols[i].Clone()
	}
	return &Table{cols: cols}
}

// Append は列を末尾に追加した新しいテーブルを返す
func (t *Table) Append(c Column) (*Table, error) {
	cols := make([]Column, 0, len(t.cols)+1)
	cols = append(cols, t.cols...)
	cols = append(cols, c)
	return New(cols...)
}

// Matrix はテーブルをgonumの密行列（n_samples × n_features）へ変換する
// 下流の学習コンシューマへの受け渡しに使用する
// 文字列列または欠損セルが残っている場合はエラーを返す
func (t *Table) Matrix() (*mat.Dense, error) {
	rows, cols := t.NumRows(), t.NumCols()
	if rows == 0 || cols == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Table.Matrix")
	}
	data := make([]float64, rows*cols)
	for j := range t.cols {
		c := &t.cols[j]
		if c.Kind == KindString {
			return nil, errors.Newf("Table.Matrix: column %q is a string column", c.Name)
		}
		for i := 0; i < rows; i++ {
			v, ok := c.Float(i)
			if !ok {
				return nil, errors.Newf("Table.Matrix: column %q has a missing value at row %d", c.Name, i)
			}
			data[i*cols+j] = v
		}
	}
	return mat.NewDense(rows, cols, data), nil
}

// Equal は2つのテーブルが形状・列名・型・値・欠損マスクの全てで一致するかを返す
func (t *Table) Equal(other *Table) bool {
	if t.NumCols() != other.NumCols() || t.NumRows() != other.NumRows() {
		return false
	}
	for i := range t.cols {
		a, b := &t.cols[i], &other.cols[i]
		if a.Name != b.Name || a.Kind != b.Kind || a.Len() != b.Len() {
			return false
		}
		for r := 0; r < a.Len(); r++ {
			if a.IsMissing(r) != b.IsMissing(r) {
				return false
			}
			if !a.IsMissing(r) && a.ValueString(r) != b.ValueString(r) {
				return false
			}
		}
	}
	return true
}

// Shape はテーブルの形状を "(rows, cols)" 形式で返す
func (t *Table) Shape() string {
	return fmt.Sprintf("(%d, %d)", t.NumRows(), t.NumCols())
}
