package table

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

// BlobVersion はテーブル直列化フォーマットの現行バージョン
// フォーマットを互換性なく変更する場合はこの値を上げる
const BlobVersion = 1

// blobEnvelope は直列化されたテーブルのエンベロープ
// バージョン番号を持つことで、プロセス境界を越えた
// パイプライン再実行を安全にする
type blobEnvelope struct {
	Version int
	Cols    []Column
}

// Encode はテーブルをio.Writerへ直列化する
// 往復（Encode → Decode）はテーブルの形状・値・列順・欠損マスクを
// 正確に保存することが契約である
//
// 使用例:
//
//	var buf bytes.Buffer
//	err := t.Encode(&buf)
func (t *Table) Encode(w io.Writer) error {
	env := blobEnvelope{Version: BlobVersion, Cols: t.cols}
	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(&env); err != nil {
		return errors.Wrap(err, "failed to encode table")
	}
	return nil
}

// Decode はio.Readerからテーブルを復元する
// 未知のフォーマットバージョンはエラーとして拒否する
func Decode(r io.Reader) (*Table, error) {
	var env blobEnvelope
	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(&env); err != nil {
		return nil, errors.Wrap(err, "failed to decode table")
	}
	if env.Version != BlobVersion {
		return nil, errors.Newf("unsupported table blob version %d (supported: %d)", env.Version, BlobVersion)
	}
	return &Table{cols: env.Cols}, nil
}

// Save はテーブルをファイルに保存する
//
// パラメータ:
//   - filename: 保存先のファイルパス
//
// 戻り値:
//   - error: 保存に失敗した場合のエラー
func (t *Table) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.NewStorageError("Table.Save", filename, err)
	}
	defer file.Close()

	if err := t.Encode(file); err != nil {
		return errors.NewStorageError("Table.Save", filename, err)
	}
	return nil
}

// Load はファイルからテーブルを読み込む
//
// パラメータ:
//   - filename: 読み込み元のファイルパス
//
// 戻り値:
//   - *Table: 復元されたテーブル
//   - error: 読み込みに失敗した場合のエラー
func Load(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.NewStorageError("table.Load", filename, err)
	}
	defer file.Close()

	return Decode(file)
}
