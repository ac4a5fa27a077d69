package view

import (
	"fmt"

	"github.com/hitoshi/grown/internal/model"
)

// ZipPlaceholder は郵便番号が未入力の場合に表示する記号。
const ZipPlaceholder = "—"

// defaultListingError はエラーメッセージが取得できない場合の表示文言。
const defaultListingError = "Failed to load subscribers"

// SubscriberRow は登録者一覧テーブルの1行。
type SubscriberRow struct {
	ID        string
	Email     string
	Interests []string
	Zip       string
	Date      string
}

// ListingPage は登録者一覧画面の表示用モデル。
// Errorが空でない場合、テーブルは表示しない。
type ListingPage struct {
	Count      int
	CountLabel string
	Rows       []SubscriberRow
	Error      string
}

// Empty は取得に成功し、登録者が0件であるかを返す。
func (p ListingPage) Empty() bool {
	return p.Error == "" && len(p.Rows) == 0
}

// NewListingPage は登録者一覧と取得時のエラーから表示用モデルを構築する。
func NewListingPage(subs []*model.Subscriber, listErr error, dates DateFormatter) ListingPage {
	if listErr != nil {
		msg := listErr.Error()
		if msg == "" {
			msg = defaultListingError
		}
		return ListingPage{
			CountLabel: countLabel(0),
			Error:      msg,
		}
	}

	rows := make([]SubscriberRow, len(subs))
	for i, s := range subs {
		zip := ZipPlaceholder
		if s.Zip != nil && *s.Zip != "" {
			zip = *s.Zip
		}
		rows[i] = SubscriberRow{
			ID:        s.ID,
			Email:     s.Email,
			Interests: s.InterestTags(),
			Zip:       zip,
			Date:      dates.Format(s.CreatedAt),
		}
	}

	return ListingPage{
		Count:      len(rows),
		CountLabel: countLabel(len(rows)),
		Rows:       rows,
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 subscriber so far"
	}
	return fmt.Sprintf("%d subscribers so far", n)
}
