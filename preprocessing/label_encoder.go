package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// LabelEncoder はscikit-learn互換のラベルエンコーダー
// カテゴリカルなラベルを密なゼロ始まりの整数コードへ変換する
//
// コードの割り当ては相異なるラベル値のソート順（文字列の辞書順）で決定される。
// 初出順ではなくソート順を採用するのは強い契約である:
// 下流のコンシューマはマッピングファイルを使って予測をデコードするため、
// 行順が実行間で変わってもコード割り当てが変わってはならない
type LabelEncoder struct {
	// Classes はソート順に並んだ相異なるラベル値
	// Classes[code] が code に対応する元のラベルとなる
	Classes []string

	index  map[string]int
	fitted bool
}

// NewLabelEncoder は新しいLabelEncoderを作成する
//
// 使用例:
//
//	encoder := preprocessing.NewLabelEncoder()
//	codes, err := encoder.FitTransform(labels)
//	mapping := encoder.Mapping()
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// IsFitted はエンコーダーが学習済みかどうかを返す
func (e *LabelEncoder) IsFitted() bool {
	return e.fitted
}

// Fit はラベル集合から相異なる値を収集し、ソート順にコードを割り当てる
//
// パラメータ:
//   - labels: ラベル値の列
//
// 戻り値:
//   - error: ラベルが空の場合のエラー
func (e *LabelEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LabelEncoder.Fit")
	}

	seen := make(map[string]bool)
	for _, l := range labels {
		seen[l] = true
	}

	classes := make([]string, 0, len(seen))
	for l := range seen {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for code, l := range classes {
		index[l] = code
	}

	e.Classes = classes
	e.index = index
	e.fitted = true
	return nil
}

// Transform はラベル値を整数コードへ変換する
// 学習時に出現しなかったラベルはエラーになる
//
// パラメータ:
//   - labels: 変換するラベル値の列
//
// 戻り値:
//   - []int: 行ごとに揃った整数コードの列
//   - error: 未学習または未知のラベルの場合のエラー
func (e *LabelEncoder) Transform(labels []string) ([]int, error) {
	if !e.fitted {
		return nil, errors.NewNotFittedError("LabelEncoder", "Transform")
	}

	codes := make([]int, len(labels))
	for i, l := range labels {
		code, ok := e.index[l]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.Transform", "unseen label "+l)
		}
		codes[i] = code
	}
	return codes, nil
}

// FitTransform はFitとTransformを同時に実行する
func (e *LabelEncoder) FitTransform(labels []string) ([]int, error) {
	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform は整数コードを元のラベル値へ戻す
// Transformの出力に適用すると元のラベル多重集合が正確に復元される
//
// パラメータ:
//   - codes: 整数コードの列
//
// 戻り値:
//   - []string: 元のラベル値の列
//   - error: 未学習または範囲外のコードの場合のエラー
func (e *LabelEncoder) InverseTransform(codes []int) ([]string, error) {
	if !e.fitted {
		return nil, errors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}

	labels := make([]string, len(codes))
	for i, code := range codes {
		if code < 0 || code >= len(e.Classes) {
			return nil, errors.Newf("tabprep: LabelEncoder.InverseTransform: code %d out of range [0, %d)", code, len(e.Classes))
		}
		labels[i] = e.Classes[code]
	}
	return labels, nil
}

// Mapping は元のラベルから整数コードへの正準マッピングを返す
// コードは密で、K個のラベルに対して 0..K-1 となる
func (e *LabelEncoder) Mapping() map[string]int {
	mapping := make(map[string]int, len(e.Classes))
	for code, l := range e.Classes {
		mapping[l] = code
	}
	return mapping
}

// NumClasses は相異なるラベル値の数を返す
func (e *LabelEncoder) NumClasses() int {
	return len(e.Classes)
}

// EncodeTable はクリーニング済みテーブルのラベル列をエンコードする
//
// 戻り値:
//   - *table.Table: ラベル列を除いた特徴量テーブル
//   - []int: 入力と行ごとに揃った整数ラベルコードの列
//   - *LabelEncoder: 学習済みエンコーダー（マッピングの取得に使用）
//   - error: スキーマが不正な場合のエラー
func EncodeTable(t *table.Table) (*table.Table, []int, *LabelEncoder, error) {
	features, label, err := t.SplitLabel("preprocessing.EncodeTable")
	if err != nil {
		return nil, nil, nil, err
	}

	labels := make([]string, label.Len())
	for i := range labels {
		labels[i] = label.ValueString(i)
	}

	encoder := NewLabelEncoder()
	codes, err := encoder.FitTransform(labels)
	if err != nil {
		return nil, nil, nil, err
	}
	return features, codes, encoder, nil
}
