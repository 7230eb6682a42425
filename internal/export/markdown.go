package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/nibzard/taskbot-go/internal/tasks"
)

const title = "Tasks"

// markdownEscaper backslash-escapes the punctuation the markdown parser
// would otherwise interpret, so descriptions render literally.
var markdownEscaper = func() *strings.Replacer {
	const special = "\\`*_{}[]()#+-.!:|&<>~^"
	pairs := make([]string, 0, 2*len(special))
	for _, c := range special {
		pairs = append(pairs, string(c), "\\"+string(c))
	}
	return strings.NewReplacer(pairs...)
}()

func escapeMarkdown(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return markdownEscaper.Replace(s)
}

func renderMarkdown(_ *Exporter, r Report, _ []tasks.Entry) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", title)
	if r.Source != "" {
		fmt.Fprintf(&buf, "Source: %s  \n", escapeMarkdown(r.Source))
	}
	fmt.Fprintf(&buf, "Generated: %s\n", r.Generated.Format("2006-01-02 15:04:05 UTC"))

	section := func(heading, mark string, items []string) {
		fmt.Fprintf(&buf, "\n## %s (%d)\n\n", heading, len(items))
		if len(items) == 0 {
			buf.WriteString("_none_\n")
			return
		}
		for _, item := range items {
			fmt.Fprintf(&buf, "- [%s] %s\n", mark, escapeMarkdown(item))
		}
	}
	section("Pending", " ", r.Pending)
	section("Completed", "x", r.Completed)
	return buf.Bytes(), nil
}

func renderHTML(e *Exporter, r Report, entries []tasks.Entry) ([]byte, error) {
	md, err := renderMarkdown(e, r, entries)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: title,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML(md, p, renderer), nil
}
