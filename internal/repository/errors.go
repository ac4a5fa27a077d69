package repository

import "fmt"

// StoreError はストレージ層の障害を表す。
// 接続断や想定外の制約違反など、呼び出し元が区別して扱うべきエラーをラップする。
type StoreError struct {
	Op  string // 失敗した操作（upsert, list など）
	Err error
}

// Error はerrorインターフェースを実装する。
func (e *StoreError) Error() string {
	return fmt.Sprintf("subscriber store %s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返す。
func (e *StoreError) Unwrap() error {
	return e.Err
}
