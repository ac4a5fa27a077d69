// Package web はHTMLテンプレートと静的アセットを埋め込みで提供する。
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

// テンプレート名
const (
	LandingTemplate     = "landing.html"
	SubscribersTemplate = "subscribers.html"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Templates はパース済みのHTMLテンプレート一式。起動時に一度だけ構築する。
type Templates struct {
	set *template.Template
}

// ParseTemplates は埋め込みのテンプレートをパースする。
func ParseTemplates() (*Templates, error) {
	set, err := template.New("").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render は指定テンプレートをバッファに描画してからwに書き出す。
// 描画に失敗した場合はwに何も書き込まない。
func (t *Templates) Render(w io.Writer, name string, data any) error {
	var b bytes.Buffer
	if err := t.set.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// StaticHandler は埋め込みの静的アセットを配信するハンドラーを返す。
// prefixはルーティング上のマウントパス（例: "/static"）。
func StaticHandler(prefix string) http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// embedのパスはコンパイル時に確定しているため到達しない
		panic(fmt.Sprintf("web: static assets not embedded: %v", err))
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub)))
}
