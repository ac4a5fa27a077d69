package model

import "fmt"

// APIError はクライアントに返すエラーを表す。
// Messageはそのままレスポンスボディの error フィールドになる。
type APIError struct {
	Code    string // エラーコード
	Message string // クライアント向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidEmail = "INVALID_EMAIL"
	ErrCodeNoInterest   = "NO_INTEREST"
	ErrCodeSaveFailed   = "SAVE_FAILED"
)

// NewInvalidEmailError はメールアドレス不正エラーを生成する。
func NewInvalidEmailError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidEmail,
		Message: "Invalid email.",
	}
}

// NewNoInterestError は関心カテゴリ未選択エラーを生成する。
func NewNoInterestError() *APIError {
	return &APIError{
		Code:    ErrCodeNoInterest,
		Message: "Select at least one interest.",
	}
}

// NewSaveFailedError は保存失敗エラーを生成する。
// ストレージ障害の詳細はクライアントに返さず、ログにのみ記録する。
func NewSaveFailedError() *APIError {
	return &APIError{
		Code:    ErrCodeSaveFailed,
		Message: "Failed to save subscription. Please try again.",
	}
}
