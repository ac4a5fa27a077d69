// Package view はHTMLテンプレートに渡す表示用モデルを構築する。
package view

import (
	"time"

	"golang.org/x/text/language"
)

// dateLayout は閲覧者のロケールごとの日付表記。
type dateLayout struct {
	tag    language.Tag
	layout string
}

// supportedDateLayouts の先頭がマッチしなかった場合のデフォルトになる。
var supportedDateLayouts = []dateLayout{
	{tag: language.AmericanEnglish, layout: "Jan 2, 2006"},
	{tag: language.BritishEnglish, layout: "2 Jan 2006"},
	{tag: language.Japanese, layout: "2006年1月2日"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(supportedDateLayouts))
	for i, l := range supportedDateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateFormatter はAccept-Languageに応じて日付を短い表記に整形する。
type DateFormatter struct {
	layout string
}

// NewDateFormatter はAccept-Languageヘッダーの値からDateFormatterを生成する。
// 解釈できない、または未対応の言語の場合は米国英語の表記（"Jan 5, 2025"）を使う。
func NewDateFormatter(acceptLanguage string) DateFormatter {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DateFormatter{layout: supportedDateLayouts[0].layout}
	}

	_, index, confidence := dateMatcher.Match(tags...)
	if confidence == language.No {
		index = 0
	}
	return DateFormatter{layout: supportedDateLayouts[index].layout}
}

// Format は日付をUTCで整形する。
func (f DateFormatter) Format(t time.Time) string {
	layout := f.layout
	if layout == "" {
		layout = supportedDateLayouts[0].layout
	}
	return t.UTC().Format(layout)
}
