package security

import (
	"strings"
	"testing"
)

// TestSanitize_AllowedTags は許可タグが正しく通過することを検証する。
func TestSanitize_AllowedTags(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		// want に含まれるべき部分文字列
		wantContains []string
	}{
		{
			name:         "pタグが許可される",
			input:        "<p>Pantry staples.</p>",
			wantContains: []string{"<p>Pantry staples.</p>"},
		},
		{
			name:         "brタグが許可される",
			input:        "line1<br>line2",
			wantContains: []string{"<br>", "line1", "line2"},
		},
		{
			name:         "ulタグとliタグが許可される",
			input:        "<ul><li>oil</li><li>salt</li></ul>",
			wantContains: []string{"<ul>", "<li>", "oil", "salt", "</li>", "</ul>"},
		},
		{
			name:         "strongタグが許可される",
			input:        "<strong>5mg THC</strong>",
			wantContains: []string{"<strong>5mg THC</strong>"},
		},
		{
			name:         "emタグが許可される",
			input:        "<em>an adult.</em>",
			wantContains: []string{"<em>an adult.</em>"},
		},
		{
			name:         "httpsリンクが許可される",
			input:        `<a href="https://example.com">link</a>`,
			wantContains: []string{"<a", "href", "https://example.com", "link", "</a>"},
		},
		{
			name:         "mailtoリンクが許可される",
			input:        `<a href="mailto:hello@example.com">mail</a>`,
			wantContains: []string{"mailto:hello@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize(%q) = %q, expected to contain %q", tt.input, got, want)
				}
			}
		})
	}
}

// TestSanitize_ForbiddenTags は禁止タグが除去されることを検証する。
func TestSanitize_ForbiddenTags(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name       string
		input      string
		wantAbsent []string
	}{
		{"scriptタグ", `<p>ok</p><script>alert(1)</script>`, []string{"<script", "alert"}},
		{"iframeタグ", `<iframe src="https://example.com"></iframe>`, []string{"<iframe"}},
		{"styleタグ", `<style>body{}</style>`, []string{"<style"}},
		{"imgタグ", `<img src="https://example.com/a.png">`, []string{"<img"}},
		{"httpリンク", `<a href="http://example.com">x</a>`, []string{"http://example.com"}},
		{"javascript URI", `<a href="javascript:alert('xss')">x</a>`, []string{"javascript:"}},
		{"イベントハンドラ", `<p OnClick="alert('xss')">x</p>`, []string{"onclick", "alert"}},
		{"style属性", `<p style="color:red">x</p>`, []string{"style="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tt.input)
			for _, absent := range tt.wantAbsent {
				if strings.Contains(strings.ToLower(got), strings.ToLower(absent)) {
					t.Errorf("Sanitize(%q) = %q, should NOT contain %q", tt.input, got, absent)
				}
			}
		})
	}
}

// TestSanitize_AnchorAttributes はリンクにtarget、relが付与されることを検証する。
func TestSanitize_AnchorAttributes(t *testing.T) {
	sanitizer := NewContentSanitizer()

	got := sanitizer.Sanitize(`<a href="https://example.com" target="_self" rel="nofollow">link</a>`)
	for _, want := range []string{`target="_blank"`, "noopener", "noreferrer"} {
		if !strings.Contains(got, want) {
			t.Errorf("Sanitize = %q, expected to contain %q", got, want)
		}
	}
	if strings.Contains(got, `target="_self"`) {
		t.Errorf("Sanitize = %q, should NOT contain target=\"_self\"", got)
	}
}

// TestSanitize_EmptyInput は空文字列の入力を安全に処理できることを検証する。
func TestSanitize_EmptyInput(t *testing.T) {
	sanitizer := NewContentSanitizer()

	if got := sanitizer.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, expected empty string", got)
	}
}

// TestSanitize_PlainText はプレーンテキストがそのまま通過することを検証する。
func TestSanitize_PlainText(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := "Cold-pressed olive blend"
	if got := sanitizer.Sanitize(input); got != input {
		t.Errorf("Sanitize(%q) = %q, expected unchanged", input, got)
	}
}

// TestSanitize_Idempotent は同一入力に対して常に同一出力（冪等性）を検証する。
func TestSanitize_Idempotent(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := `<p>Test <strong>bold</strong></p><a href="https://example.com">link</a>`

	result1 := sanitizer.Sanitize(input)
	result2 := sanitizer.Sanitize(input)
	result3 := sanitizer.Sanitize(result1) // 二重サニタイズ

	if result1 != result2 {
		t.Errorf("冪等性違反: 1回目=%q, 2回目=%q", result1, result2)
	}
	if result1 != result3 {
		t.Errorf("二重サニタイズで結果が変わった: 1回目=%q, 二重=%q", result1, result3)
	}
}

// TestContentSanitizerInterface はContentSanitizerServiceインターフェースの適合を検証する。
func TestContentSanitizerInterface(t *testing.T) {
	var _ ContentSanitizerService = NewContentSanitizer()
}
