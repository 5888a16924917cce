// Package errors はパイプライン全体のエラーハンドリングと警告システムを提供します。
// pandasやscikit-learnの例外・警告システムにインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("tabprep-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定し、
// それまでのハンドラを返します。一時的に差し替える場合は戻り値を保存し、
// 処理後に復元してください。
//
// 例:
//
//	prev := errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
//	defer errors.SetWarningHandler(prev)
func SetWarningHandler(handler func(w error)) func(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	prev := warningHandler
	warningHandler = handler
	return prev
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DataConversionWarning はデータの型が暗黙的に変換された場合に発生する警告です。
// 例えば、浮動小数の特徴量列を整数表現へ丸めた場合など。
type DataConversionWarning struct {
	Column   string
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("column %q converted from %s to %s. Reason: %s", w.Column, w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("column", w.Column).
		Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(column, from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{Column: column, FromType: from, ToType: to, Reason: reason}
}

// SingletonClassWarning はあるラベルクラスの出現回数が1件しかなく、
// 層化分割でテスト側に配置できない場合に発生する警告です。
// 該当行は訓練パーティションに確定的に配置されます。
type SingletonClassWarning struct {
	Code  int
	Count int
}

func (w *SingletonClassWarning) Error() string {
	return fmt.Sprintf("label class %d occurs %d time(s); assigning its row(s) to the training partition", w.Code, w.Count)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *SingletonClassWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("code", w.Code).
		Int("count", w.Count).
		Str("type", "SingletonClassWarning")
}

// NewSingletonClassWarning は新しいSingletonClassWarningを作成します。
func NewSingletonClassWarning(code, count int) *SingletonClassWarning {
	return &SingletonClassWarning{Code: code, Count: count}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// SourceNotFoundError は入力パスが読み取り可能なテーブルに解決できない場合のエラーです。
// Readerが空テーブルのセンチネルを返した際に、パイプライン層がこのエラーへ変換します。
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("tabprep: source %q did not resolve to a readable table", e.Path)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SourceNotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("type", "SourceNotFoundError")
}

// NewSourceNotFoundError は新しいSourceNotFoundErrorを作成し、スタックトレースを付与します。
func NewSourceNotFoundError(path string) error {
	err := &SourceNotFoundError{Path: path}
	return errors.WithStack(err)
}

// SchemaError はロードしたテーブルが期待する形状を満たさない場合のエラーです。
// 列数が2未満、または行が1件もない場合に発生します。
type SchemaError struct {
	Op      string
	Columns int
	Rows    int
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("tabprep: %s: invalid table schema (%d columns, %d rows): %s", e.Op, e.Columns, e.Rows, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("columns", e.Columns).
		Int("rows", e.Rows).
		Str("reason", e.Reason).
		Str("type", "SchemaError")
}

// NewSchemaError は新しいSchemaErrorを作成し、スタックトレースを付与します。
func NewSchemaError(op string, columns, rows int, reason string) error {
	err := &SchemaError{Op: op, Columns: columns, Rows: rows, Reason: reason}
	return errors.WithStack(err)
}

// InsufficientDataError は層化分割の要件を満たすだけのデータがない場合のエラーです。
// あるクラスの出現数が0件、または総行数が実用的な下限を下回る場合に発生します。
type InsufficientDataError struct {
	Op     string
	Rows   int
	Class  int // 問題のあるクラスコード（クラス起因でない場合は -1）
	Reason string
}

func (e *InsufficientDataError) Error() string {
	if e.Class >= 0 {
		return fmt.Sprintf("tabprep: %s: insufficient data for class %d (%d rows): %s", e.Op, e.Class, e.Rows, e.Reason)
	}
	return fmt.Sprintf("tabprep: %s: insufficient data (%d rows): %s", e.Op, e.Rows, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Int("class", e.Class).
		Str("reason", e.Reason).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError は新しいInsufficientDataErrorを作成し、スタックトレースを付与します。
func NewInsufficientDataError(op string, rows, class int, reason string) error {
	err := &InsufficientDataError{Op: op, Rows: rows, Class: class, Reason: reason}
	return errors.WithStack(err)
}

// StorageError は出力ディレクトリの作成やアーティファクトの書き込みに失敗した場合のエラーです。
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tabprep: %s: storage failure at %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("tabprep: %s: storage failure at %q", e.Op, e.Path)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *StorageError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("path", e.Path).
		Str("type", "StorageError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewStorageError は新しいStorageErrorを作成し、スタックトレースを付与します。
func NewStorageError(op, path string, err error) error {
	storageErr := &StorageError{Op: op, Path: path, Err: err}
	return errors.WithStack(storageErr)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、テスト割合に0以下や1以上を指定した場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("tabprep: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NotFittedError は変換器が未学習の状態で `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	TransformerName string
	Method          string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("tabprep: %s: this transformer is not fitted yet. Call Fit() before using %s()", e.TransformerName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("transformer_name", e.TransformerName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(name, method string) error {
	err := &NotFittedError{TransformerName: name, Method: method}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrLengthMismatch は行数の揃っていない列やラベル列が渡された場合のエラーです。
	ErrLengthMismatch = New("length mismatch")
)
