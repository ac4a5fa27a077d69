// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// SourceLanding はランディングページ経由の登録を示すsourceタグ。
const SourceLanding = "landing"

// interestSeparator はinterestsカラムの区切り文字列。
const interestSeparator = ", "

// Subscriber はウェイトリストの登録者を表す。
// emailが自然キーとなり、再登録時はinterests、zip、CreatedAtのみ更新される。
type Subscriber struct {
	ID        string
	Email     string
	Interests string // "oil, salt" のようにカンマ区切りで永続化される
	Zip       *string
	Source    string
	CreatedAt time.Time
}

// InterestTags は永続化されたinterestsを個別のタグに分割して返す。
func (s *Subscriber) InterestTags() []string {
	return SplitInterests(s.Interests)
}

// JoinInterests はinterestsを永続化用の文字列に結合する。
func JoinInterests(interests []Interest) string {
	parts := make([]string, len(interests))
	for i, in := range interests {
		parts[i] = string(in)
	}
	return strings.Join(parts, interestSeparator)
}

// SplitInterests は永続化されたinterests文字列を表示用のタグに分割する。
// 空文字列の場合は空スライスを返す。
func SplitInterests(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, interestSeparator)
}
