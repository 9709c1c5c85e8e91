// Package render provides output renderers for the blockpipe pipeline.
// This file implements the Markdown renderer, which converts the HTML
// rendering of an article so both outputs agree on structure.
package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/style"
)

// MarkdownRenderer produces CommonMark from an article body.
type MarkdownRenderer struct {
	html *HTMLRenderer
}

// NewMarkdownRenderer creates a MarkdownRenderer. Class names carry no
// meaning in Markdown, so the body is rendered with an empty class table.
func NewMarkdownRenderer(assets core.AssetResolver) *MarkdownRenderer {
	return &MarkdownRenderer{html: NewHTMLRenderer(style.Classes{}, assets)}
}

// Render converts the article to Markdown with the title as a level-1
// heading.
func (r *MarkdownRenderer) Render(a *core.Article) ([]byte, error) {
	body, err := r.RenderBody(a.Body)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	if a.Title != "" {
		b.WriteString("# " + a.Title + "\n\n")
	}
	b.WriteString(body)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// RenderBody converts blocks only.
func (r *MarkdownRenderer) RenderBody(doc block.Document) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(r.html.RenderBody(doc))
	if err != nil {
		return "", fmt.Errorf("converting HTML to Markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
