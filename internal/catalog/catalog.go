// Package catalog はランディングページに表示する商品とコピーを提供する。
//
// コピーは埋め込みのproducts.yamlで管理し、Markdownで書かれたフィールドは
// 起動時に一度だけHTMLへ変換・サニタイズしてからテンプレートに渡す。
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/hitoshi/grown/internal/model"
	"github.com/hitoshi/grown/internal/security"
)

//go:embed products.yaml
var defaultCatalogYAML []byte

// Hero はファーストビューのコピー。
type Hero struct {
	Badge          string
	Headline       string
	HeadlineAccent string
	Body           template.HTML
}

// Product はランディングページの商品カード、およびフォームの選択肢1件分。
type Product struct {
	Interest    model.Interest
	Title       string
	OptionLabel string // フォームの選択ボタンに表示するラベル
	Tagline     string
	Tone        string // カードの配色（CSSクラス名の接尾辞）
	Highlights  []template.HTML
}

// Feature はこだわりポイントの1項目。
type Feature struct {
	Label       string
	Description string
}

// Catalog はランディングページのコンテンツ一式。
type Catalog struct {
	Hero     Hero
	Products []Product
	Quote    template.HTML
	Features []Feature
}

// rawCatalog はproducts.yamlの構造。
type rawCatalog struct {
	Hero struct {
		Badge          string `yaml:"badge"`
		Headline       string `yaml:"headline"`
		HeadlineAccent string `yaml:"headline_accent"`
		Body           string `yaml:"body"`
	} `yaml:"hero"`
	Products []struct {
		Interest    string   `yaml:"interest"`
		Title       string   `yaml:"title"`
		OptionLabel string   `yaml:"option_label"`
		Tagline     string   `yaml:"tagline"`
		Tone        string   `yaml:"tone"`
		Highlights  []string `yaml:"highlights"`
	} `yaml:"products"`
	Quote    string `yaml:"quote"`
	Features []struct {
		Label       string `yaml:"label"`
		Description string `yaml:"description"`
	} `yaml:"features"`
}

// Default は埋め込みのproducts.yamlからCatalogを構築する。
func Default(sanitizer security.ContentSanitizerService) (*Catalog, error) {
	return Parse(defaultCatalogYAML, sanitizer)
}

// Parse はYAMLデータからCatalogを構築する。
// 商品のinterestは定義済みのInterestと1対1で対応している必要がある。
func Parse(data []byte, sanitizer security.ContentSanitizerService) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	r := newRenderer(sanitizer)

	body, err := r.block(raw.Hero.Body)
	if err != nil {
		return nil, err
	}
	quote, err := r.inline(raw.Quote)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		Hero: Hero{
			Badge:          raw.Hero.Badge,
			Headline:       raw.Hero.Headline,
			HeadlineAccent: raw.Hero.HeadlineAccent,
			Body:           body,
		},
		Quote: quote,
	}

	seen := make(map[model.Interest]bool)
	for _, rp := range raw.Products {
		in, ok := model.ParseInterest(rp.Interest)
		if !ok {
			return nil, fmt.Errorf("catalog product %q has unknown interest %q", rp.Title, rp.Interest)
		}
		if seen[in] {
			return nil, fmt.Errorf("catalog has duplicate product for interest %q", in)
		}
		seen[in] = true

		p := Product{
			Interest:    in,
			Title:       rp.Title,
			OptionLabel: rp.OptionLabel,
			Tagline:     rp.Tagline,
			Tone:        rp.Tone,
		}
		if p.OptionLabel == "" {
			p.OptionLabel = rp.Title
		}
		for _, h := range rp.Highlights {
			html, err := r.inline(h)
			if err != nil {
				return nil, err
			}
			p.Highlights = append(p.Highlights, html)
		}
		c.Products = append(c.Products, p)
	}

	for _, in := range model.AllInterests() {
		if !seen[in] {
			return nil, fmt.Errorf("catalog has no product for interest %q", in)
		}
	}

	for _, rf := range raw.Features {
		c.Features = append(c.Features, Feature{Label: rf.Label, Description: rf.Description})
	}

	return c, nil
}

// Product は指定Interestの商品を返す。
func (c *Catalog) Product(in model.Interest) (Product, bool) {
	for _, p := range c.Products {
		if p.Interest == in {
			return p, true
		}
	}
	return Product{}, false
}

// renderer はMarkdownをサニタイズ済みHTMLに変換する。
type renderer struct {
	md        goldmark.Markdown
	sanitizer security.ContentSanitizerService
}

func newRenderer(sanitizer security.ContentSanitizerService) *renderer {
	return &renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Typographer,
				extension.Linkify,
			),
		),
		sanitizer: sanitizer,
	}
}

// block はMarkdownを段落を含むHTMLとして変換する。
func (r *renderer) block(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(r.sanitizer.Sanitize(buf.String())), nil
}

// inline は1段落のMarkdownを<p>で囲まないHTMLとして変換する。
func (r *renderer) inline(src string) (template.HTML, error) {
	html, err := r.block(src)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(html))
	s = strings.TrimPrefix(s, "<p>")
	s = strings.TrimSuffix(s, "</p>")
	return template.HTML(s), nil
}
