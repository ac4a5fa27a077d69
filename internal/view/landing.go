package view

import (
	"time"

	"github.com/hitoshi/grown/internal/catalog"
	"github.com/hitoshi/grown/internal/model"
)

// InterestOption はフォームの関心カテゴリ選択ボタン1つ分。
type InterestOption struct {
	Value    string
	Label    string
	Selected bool
}

// LandingPage はランディングページの表示用モデル。
type LandingPage struct {
	Catalog      *catalog.Catalog
	Options      []InterestOption
	EmailPattern string
	SubscribeURL string
	Source       string
	Year         int
}

// NewLandingPage はカタログからランディングページの表示用モデルを構築する。
// 関心カテゴリは全件が初期選択された状態になる。
func NewLandingPage(c *catalog.Catalog, now time.Time) LandingPage {
	options := make([]InterestOption, 0, len(c.Products))
	for _, in := range model.AllInterests() {
		p, ok := c.Product(in)
		if !ok {
			continue
		}
		options = append(options, InterestOption{
			Value:    string(in),
			Label:    p.OptionLabel,
			Selected: true,
		})
	}

	return LandingPage{
		Catalog:      c,
		Options:      options,
		EmailPattern: model.EmailPattern,
		SubscribeURL: "/api/subscribe",
		Source:       model.SourceLanding,
		Year:         now.Year(),
	}
}
