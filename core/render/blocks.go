// Package render — block and editor renderers.
// These write the body in the interchange formats rather than a reading
// format: canonical Portable Text, the editor tree, and editor markup.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/editor"
)

// BlocksRenderer writes the body as canonical block JSON.
type BlocksRenderer struct{}

// NewBlocksRenderer creates a BlocksRenderer.
func NewBlocksRenderer() *BlocksRenderer {
	return &BlocksRenderer{}
}

// Render encodes the article body.
func (r *BlocksRenderer) Render(a *core.Article) ([]byte, error) {
	var buf bytes.Buffer
	if err := block.Encode(&buf, a.Body); err != nil {
		return nil, fmt.Errorf("encoding blocks: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for block output.
func (r *BlocksRenderer) Extension() string {
	return ".blocks.json"
}

// EditorRenderer writes the body as an editor document.
type EditorRenderer struct {
	conv *convert.Converter
}

// NewEditorRenderer creates an EditorRenderer around conv.
func NewEditorRenderer(conv *convert.Converter) *EditorRenderer {
	return &EditorRenderer{conv: conv}
}

// Render converts and encodes the article body.
func (r *EditorRenderer) Render(a *core.Article) ([]byte, error) {
	var buf bytes.Buffer
	if err := editor.Encode(&buf, r.conv.ToEditorTree(a.Body)); err != nil {
		return nil, fmt.Errorf("encoding editor document: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for editor output.
func (r *EditorRenderer) Extension() string {
	return ".editor.json"
}

// EditorHTMLRenderer writes the body as the editor's flat markup.
type EditorHTMLRenderer struct {
	conv *convert.Converter
}

// NewEditorHTMLRenderer creates an EditorHTMLRenderer around conv.
func NewEditorHTMLRenderer(conv *convert.Converter) *EditorHTMLRenderer {
	return &EditorHTMLRenderer{conv: conv}
}

// Render converts the article body to editor markup.
func (r *EditorHTMLRenderer) Render(a *core.Article) ([]byte, error) {
	return []byte(r.conv.ToEditorHTML(a.Body) + "\n"), nil
}

// Extension returns the file extension for editor markup.
func (r *EditorHTMLRenderer) Extension() string {
	return ".editor.html"
}
