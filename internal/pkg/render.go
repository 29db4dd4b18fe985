package pkg

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	anchorRe = regexp.MustCompile(`&gt;&gt;(\d+)`)
	urlRe    = regexp.MustCompile(`https?://[^\s<]+`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)

	weekdaysJP = [...]string{"日", "月", "火", "水", "木", "金", "土"}
)

// EscapeHTML 转义5个 HTML 字符。必须在整条流水线最前面执行
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// RenderAnchors 把转义后的 >>数字 换成同串内的引用链接
func RenderAnchors(body string, threadID uint64) string {
	repl := fmt.Sprintf(`<a href="/test/read.cgi/debt/%d/$1" class="anchor" data-post="$1">&gt;&gt;$1</a>`, threadID)
	return anchorRe.ReplaceAllString(body, repl)
}

// RenderURLs http(s) 链接自动转可点击。rel=noopener 阻断目标页拿到 window.opener
func RenderURLs(body string) string {
	return urlRe.ReplaceAllString(body, `<a href="$0" target="_blank" rel="noopener noreferrer">$0</a>`)
}

// RenderNewlines 换行转 <br>
func RenderNewlines(body string) string {
	return strings.ReplaceAll(body, "\n", "<br>")
}

// RenderBody 正文渲染，顺序固定：转义 → 引用 → URL → 换行
func RenderBody(body string, threadID uint64) string {
	s := EscapeHTML(body)
	s = RenderAnchors(s, threadID)
	s = RenderURLs(s)
	return RenderNewlines(s)
}

// SizeLabel 所有正文的字节数合计，按整 KB 显示
func SizeLabel(bodies []string) string {
	total := 0
	for _, b := range bodies {
		total += len(b)
	}
	return fmt.Sprintf("%.0fKB", float64(total)/1024)
}

// FormatDate 回复用的时间格式，例：2025/12/31(水) 20:55:16.02
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d(%s) %02d:%02d:%02d.%02d",
		t.Year(), int(t.Month()), t.Day(), weekdaysJP[t.Weekday()],
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/10_000_000)
}

// FormatDateShort 串一览用的时间格式，例：2026年01月07日 09:50
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%04d年%02d月%02d日 %02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}
