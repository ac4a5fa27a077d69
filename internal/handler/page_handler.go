package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/grown/internal/catalog"
	"github.com/hitoshi/grown/internal/model"
	"github.com/hitoshi/grown/internal/view"
	"github.com/hitoshi/grown/internal/web"
)

// Renderer はHTMLテンプレートの描画インターフェース。
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// SubscriberListerInterface は一覧画面が必要とするサービスインターフェース。
type SubscriberListerInterface interface {
	// ListSubscribers は全登録者を新しい順に返す。
	ListSubscribers(ctx context.Context) ([]*model.Subscriber, error)
}

// PageHandler はランディングページと登録者一覧画面のHTTPハンドラー。
type PageHandler struct {
	renderer Renderer
	catalog  *catalog.Catalog
	lister   SubscriberListerInterface
	now      func() time.Time
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(renderer Renderer, c *catalog.Catalog, lister SubscriberListerInterface) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		catalog:  c,
		lister:   lister,
		now:      time.Now,
	}
}

// Landing はランディングページを表示する。
// GET /
func (h *PageHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, web.LandingTemplate, view.NewLandingPage(h.catalog, h.now()))
}

// Subscribers は登録者一覧画面を表示する。リクエストごとに全件を取得し、キャッシュしない。
// GET /admin/subscribers
//
// 取得に失敗した場合はテーブルの代わりにエラーバナーを表示する。
func (h *PageHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	subs, err := h.lister.ListSubscribers(r.Context())
	status := http.StatusOK
	if err != nil {
		slog.Error("failed to load subscribers", slog.String("error", err.Error()))
		status = http.StatusInternalServerError
	}

	page := view.NewListingPage(subs, err, view.NewDateFormatter(r.Header.Get("Accept-Language")))
	h.render(w, status, web.SubscribersTemplate, page)
}

// render はテンプレートを描画する。描画に失敗した場合は500を返す。
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, data); err != nil {
		slog.Error("failed to render page",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
