package pkg

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t,
		"&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;",
		EscapeHTML(`<script>alert("x")</script>`))
	assert.Equal(t, "a &amp; b &#039;c&#039;", EscapeHTML("a & b 'c'"))
}

func TestRenderBodyEscapesScript(t *testing.T) {
	out := RenderBody("<script>", 1)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderBodyAnchor(t *testing.T) {
	out := RenderBody(">>5", 42)
	assert.Equal(t,
		`<a href="/test/read.cgi/debt/42/5" class="anchor" data-post="5">&gt;&gt;5</a>`,
		out)
}

func TestRenderBodyAnchorKeepsNumberVerbatim(t *testing.T) {
	out := RenderBody("参照 >>123 です", 7)
	assert.Contains(t, out, `/test/read.cgi/debt/7/123`)
	assert.Contains(t, out, `data-post="123"`)
	assert.Contains(t, out, "&gt;&gt;123</a>")
}

func TestRenderBodyURL(t *testing.T) {
	out := RenderBody("見ろ https://example.com/a?x=1 これ", 1)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, `rel="noopener noreferrer"`)
	assert.Contains(t, out, `href="https://example.com/a?x=1"`)
}

func TestRenderBodyURLStopsAtWhitespace(t *testing.T) {
	out := RenderBody("http://a.jp next", 1)
	assert.Contains(t, out, `href="http://a.jp"`)
	assert.Contains(t, out, "</a> next")
}

func TestRenderBodyNewlines(t *testing.T) {
	assert.Equal(t, "line1<br>line2", RenderBody("line1\nline2", 1))
}

// 顺序敏感：转义必须先行，后插入的标签不能被二次转义
func TestRenderBodyOrderIsStable(t *testing.T) {
	out := RenderBody(">>1\n<b>太字</b>", 3)
	assert.Contains(t, out, `<a href="/test/read.cgi/debt/3/1"`)
	assert.Contains(t, out, "&lt;b&gt;")
	assert.Contains(t, out, "<br>")
	// 插入的 anchor 标签本身不能被转义
	assert.NotContains(t, out, "&lt;a href")
}

func TestSizeLabel(t *testing.T) {
	// 1024 字节正好 1KB
	assert.Equal(t, "1KB", SizeLabel([]string{strings.Repeat("a", 1024)}))
	// 多字节安全：按字节数不按字数
	assert.Equal(t, "3KB", SizeLabel([]string{strings.Repeat("あ", 1024)}))
	assert.Equal(t, "0KB", SizeLabel(nil))
}

func TestFormatDate(t *testing.T) {
	// 2025-12-31 是周三（水）
	ts := time.Date(2025, 12, 31, 20, 55, 16, 20_000_000, time.UTC)
	assert.Equal(t, "2025/12/31(水) 20:55:16.02", FormatDate(ts))
}

func TestFormatDateShort(t *testing.T) {
	ts := time.Date(2026, 1, 7, 9, 50, 59, 0, time.UTC)
	assert.Equal(t, "2026年01月07日 09:50", FormatDateShort(ts))
}
