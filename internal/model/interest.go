package model

import "strings"

// Interest は登録者が関心を示す商品カテゴリ。
// 値は閉じた列挙 {oil, salt} に限られる。
type Interest string

const (
	// InterestOil はインフューズドオイル。
	InterestOil Interest = "oil"
	// InterestSalt はフィニッシングソルト。
	InterestSalt Interest = "salt"
)

// AllInterests は定義済みのInterestを表示順に返す。
// フォームの初期選択状態もこの全件となる。
func AllInterests() []Interest {
	return []Interest{InterestOil, InterestSalt}
}

// ParseInterest は文字列をInterestに変換する。
// 前後の空白と大文字小文字は無視する。未定義の値の場合はfalseを返す。
func ParseInterest(s string) (Interest, bool) {
	switch Interest(strings.ToLower(strings.TrimSpace(s))) {
	case InterestOil:
		return InterestOil, true
	case InterestSalt:
		return InterestSalt, true
	default:
		return "", false
	}
}

// NormalizeInterests は入力値のうち定義済みのものだけを残し、重複を除いて返す。
// 順序は最初の出現位置を維持する。
func NormalizeInterests(values []string) []Interest {
	seen := make(map[Interest]bool, len(values))
	result := make([]Interest, 0, len(values))
	for _, v := range values {
		in, ok := ParseInterest(v)
		if !ok || seen[in] {
			continue
		}
		seen[in] = true
		result = append(result, in)
	}
	return result
}
