package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/grown/internal/catalog"
	"github.com/hitoshi/grown/internal/metrics"
	"github.com/hitoshi/grown/internal/middleware"
	"github.com/hitoshi/grown/internal/web"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	Recorder          metrics.Recorder
	CORSAllowedOrigin string

	// 登録
	SubscribeService SubscribeServiceInterface

	// 画面
	Renderer         Renderer
	Catalog          *catalog.Catalog
	SubscriberLister SubscriberListerInterface

	// 運用
	DB       Pinger
	Gatherer prometheus.Gatherer
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → Metrics
//
// CORSは/api/*にのみ適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Recorder))

	subscribeHandler := NewSubscribeHandler(deps.SubscribeService)
	pageHandler := NewPageHandler(deps.Renderer, deps.Catalog, deps.SubscriberLister)

	// 画面
	r.Get("/", pageHandler.Landing)
	r.Get("/admin/subscribers", pageHandler.Subscribers)
	r.Handle("/static/*", web.StaticHandler("/static"))

	// 登録API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
		r.Post("/subscribe", subscribeHandler.Subscribe)
		// プリフライトはCORSミドルウェアが204で応答する
		r.Options("/subscribe", func(w http.ResponseWriter, r *http.Request) {})
	})

	// 運用
	r.Get("/health", NewHealthHandler(deps.DB))
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	return r
}
