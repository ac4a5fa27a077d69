package model

import (
	"regexp"
	"strings"
	"unicode"
)

// EmailPattern はメールアドレスの簡易構文チェックに使う正規表現。
// RFC準拠の検証ではなく「空白と@を含まない文字列 @ 同 . 同」の形だけを確認する。
// ランディングページのクライアント側チェックも同じパターンを使う。
// Goの\sはASCIIの空白にしか一致しないため、それ以外の空白はisEmailSpaceで弾く。
const EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

var emailRegexp = regexp.MustCompile(EmailPattern)

// isEmailSpace はブラウザの正規表現で\sに一致する文字かを返す。
// unicode.IsSpaceにBOM（U+FEFF）を加えたもの。
func isEmailSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// NormalizeEmail はメールアドレスの前後の空白を除去し、小文字に変換する。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimFunc(email, isEmailSpace))
}

// IsValidEmail は正規化後のメールアドレスが空でなく、EmailPatternに一致するかを返す。
// 途中に空白文字（全角スペースやノーブレークスペースを含む）があれば不正とする。
func IsValidEmail(email string) bool {
	normalized := NormalizeEmail(email)
	if normalized == "" || strings.IndexFunc(normalized, isEmailSpace) >= 0 {
		return false
	}
	return emailRegexp.MatchString(normalized)
}
