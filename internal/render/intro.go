package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var introMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Intro converts the Markdown intro shown above the table of contents.
// Raw HTML in the source is dropped.
func Intro(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := introMarkdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("intro markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
