package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Stylesheet is the fixed print stylesheet embedded in every exported document.
//
//go:embed style.css
var Stylesheet string

// Fenced code blocks are CommonMark core; tables and the rest come from GFM.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// sanitizer strips scripts and event handlers that raw HTML in a reply may carry.
var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	p.AllowAttrs("checked", "disabled", "type").OnElements("input")
	return p
}

// ToHTML converts Markdown into a sanitised HTML fragment.
func ToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// Page wraps a body fragment in a complete HTML document carrying the stylesheet.
func Page(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if title != "" {
		b.WriteString("<title>")
		b.WriteString(html.EscapeString(title))
		b.WriteString("</title>\n")
	}
	b.WriteString("<style>\n")
	b.WriteString(Stylesheet)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// Title returns the text of the first level-1 ATX heading, or "".
func Title(md string) string {
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return trimClosingSequence(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// trimClosingSequence drops an optional closing run of '#'. The run only closes
// the heading when it is preceded by whitespace, so "C#" keeps its hash.
func trimClosingSequence(text string) string {
	text = strings.TrimSpace(text)
	trimmed := strings.TrimRight(text, "#")
	switch {
	case trimmed == "":
		return ""
	case trimmed == text:
		return text
	case strings.HasSuffix(trimmed, " ") || strings.HasSuffix(trimmed, "\t"):
		return strings.TrimSpace(trimmed)
	default:
		return text
	}
}
