// Package preprocessing はテーブルのクリーニングとラベルエンコーディングを提供します。
// scikit-learnの前処理コンポーネントにインスパイアされたAPIを持ち、
// 全ての変換は入力テーブルを変更せず新しいテーブルを生成します。
package preprocessing

import (
	"sort"
	"strconv"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// Cleaner は生テーブルの欠損値補完と特徴量の整数化を行う
//
// 補完ポリシー:
//   - 特徴量列（末尾以外）の欠損値はFeatureFill（デフォルト0）で埋める。
//     このドメインでは欠損した症状インジケータは「症状なし」を意味するため、
//     汎用的な数値デフォルトではなく明示的なドメイン仮定である
//   - ラベル列（末尾）の欠損値は最頻値（mode）で埋める。
//     最頻値は特徴量補完の後、ラベル置換の前に計算する
//   - 最頻値が同数の場合は辞書順で最小のラベルを採用する（再現性のための決定的タイブレーク）
type Cleaner struct {
	// FeatureFill は特徴量列の欠損値を埋める値（デフォルト: 0）
	FeatureFill int64
}

// CleanReport はクリーニングの診断情報
// 外部のログシンクへの報告に使用する
type CleanReport struct {
	// ImputedFeatureCells は列ごとの0埋めされた特徴量セル数
	ImputedFeatureCells map[string]int

	// ImputedFeatureTotal は0埋めされた特徴量セルの総数
	ImputedFeatureTotal int

	// ImputedLabelCells は最頻値で埋められたラベルセル数
	ImputedLabelCells int

	// LabelMode はラベル補完に使用した最頻値（補完が無かった場合は空文字列）
	LabelMode string

	// CoercedColumns は整数表現へ変換された浮動小数・文字列の特徴量列名
	CoercedColumns []string
}

// NewCleaner はデフォルト設定（0埋め）のCleanerを作成する
func NewCleaner() *Cleaner {
	return &Cleaner{FeatureFill: 0}
}

// Clean はテーブルをクリーニングし、同じ形状・同じ列名で欠損値のない
// 新しいテーブルと診断レポートを返す
//
// アルゴリズム:
//  1. 特徴量列（末尾以外）とラベル列（末尾）を識別する
//  2. 各特徴量列の欠損値をFeatureFillで置換する
//  3. ラベル列に欠損があれば、ステップ2の後に計算した最頻値で置換する
//  4. 全ての特徴量列を整数表現へ変換する（値域の検証は行わない）
//
// この操作は冪等であり、Cleanの出力に再度Cleanを適用しても変化しない
//
// パラメータ:
//   - t: Readerが生成した生テーブル
//
// 戻り値:
//   - *table.Table: 欠損値のないクリーニング済みテーブル
//   - *CleanReport: 診断レポート
//   - error: スキーマが不正な場合のエラー
func (c *Cleaner) Clean(t *table.Table) (*table.Table, *CleanReport, error) {
	// 末尾がラベル列という規約を検証付きの前提条件として扱う
	if _, _, err := t.SplitLabel("Cleaner.Clean"); err != nil {
		return nil, nil, err
	}

	out := t.Clone()
	report := &CleanReport{ImputedFeatureCells: make(map[string]int)}

	// ステップ2: 特徴量列の欠損値を0で埋める
	for j := 0; j < out.NumCols()-1; j++ {
		col := out.Col(j)
		filled := c.fillFeature(col)
		if filled > 0 {
			report.ImputedFeatureCells[col.Name] = filled
			report.ImputedFeatureTotal += filled
		}
	}

	// ステップ3: ラベル列の欠損値を最頻値で埋める
	label := out.Col(out.NumCols() - 1)
	if label.MissingCount() > 0 {
		mode, err := labelMode(label)
		if err != nil {
			return nil, nil, err
		}
		report.LabelMode = mode
		report.ImputedLabelCells = fillLabel(label, mode)
	}

	// ステップ4: 特徴量列を整数表現へ変換する
	for j := 0; j < out.NumCols()-1; j++ {
		col := out.Col(j)
		coerced, err := coerceToInt(col)
		if err != nil {
			return nil, nil, err
		}
		if coerced {
			report.CoercedColumns = append(report.CoercedColumns, col.Name)
		}
	}

	return out, report, nil
}

// fillFeature は特徴量列の欠損セルをFeatureFillで埋め、埋めたセル数を返す
func (c *Cleaner) fillFeature(col *table.Column) int {
	filled := 0
	for i := 0; i < col.Len(); i++ {
		if !col.IsMissing(i) {
			continue
		}
		switch col.Kind {
		case table.KindInt:
			col.Ints[i] = c.FeatureFill
		case table.KindFloat:
			col.Floats[i] = float64(c.FeatureFill)
		case table.KindString:
			col.Strings[i] = strconv.FormatInt(c.FeatureFill, 10)
		}
		col.Missing[i] = false
		filled++
	}
	return filled
}

// labelMode はラベル列の非欠損値の最頻値を返す
// 同数の場合は辞書順で最小の値を採用する
func labelMode(col *table.Column) (string, error) {
	counts := make(map[string]int)
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		counts[col.ValueString(i)]++
	}
	if len(counts) == 0 {
		return "", errors.NewValueError("Cleaner.Clean", "label column has no observed values to compute a mode from")
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	// 辞書順に走査することでタイブレークを決定的にする
	sort.Strings(values)

	best, bestCount := values[0], counts[values[0]]
	for _, v := range values[1:] {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, nil
}

// fillLabel はラベル列の欠損セルをmodeで埋め、埋めたセル数を返す
func fillLabel(col *table.Column, mode string) int {
	filled := 0
	for i := 0; i < col.Len(); i++ {
		if !col.IsMissing(i) {
			continue
		}
		switch col.Kind {
		case table.KindString:
			col.Strings[i] = mode
		case table.KindInt:
			// 整数ラベル列の場合、最頻値の文字列表現を数値へ戻す
			v, err := strconv.ParseInt(mode, 10, 64)
			if err == nil {
				col.Ints[i] = v
			}
		case table.KindFloat:
			v, err := strconv.ParseFloat(mode, 64)
			if err == nil {
				col.Floats[i] = v
			}
		}
		col.Missing[i] = false
		filled++
	}
	return filled
}

// coerceToInt は特徴量列を整数列へ変換する
// 浮動小数はゼロ方向への切り捨て（pandasのastype(int)と同じ）、
// 数値文字列はパースして変換する。変換が行われた場合はDataConversionWarningを発生させる
func coerceToInt(col *table.Column) (bool, error) {
	switch col.Kind {
	case table.KindInt:
		return false, nil
	case table.KindFloat:
		ints := make([]int64, col.Len())
		for i, v := range col.Floats {
			ints[i] = int64(v)
		}
		col.Kind = table.KindInt
		col.Ints = ints
		col.Floats = nil
		errors.Warn(errors.NewDataConversionWarning(col.Name, "float64", "int64",
			"feature columns are whole-number indicators"))
		return true, nil
	case table.KindString:
		ints := make([]int64, col.Len())
		for i, s := range col.Strings {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return false, errors.NewValueError("Cleaner.Clean",
					"feature column "+strconv.Quote(col.Name)+" contains non-numeric value "+strconv.Quote(s))
			}
			ints[i] = int64(f)
		}
		col.Kind = table.KindInt
		col.Ints = ints
		col.Strings = nil
		errors.Warn(errors.NewDataConversionWarning(col.Name, "string", "int64",
			"feature columns are whole-number indicators"))
		return true, nil
	default:
		return false, nil
	}
}
