// Package convert turns canonical block documents into editor trees and
// back. Both directions are total: unknown input degrades to an empty
// paragraph, missing attributes take defaults, nothing returns an error.
//
// Known losses: link marks have no slot in the editor tree and are
// dropped; list grouping is rebuilt from adjacency rather than stored.
package convert

import (
	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/editor"
)

// Converter holds the collaborators used while converting. It keeps no
// state between calls and is safe for concurrent use.
type Converter struct {
	assets core.AssetResolver
	newKey func() string
}

// Option configures a Converter.
type Option func(*Converter)

// WithKeyFunc replaces the key generator used for blocks built from the
// editor tree.
func WithKeyFunc(fn func() string) Option {
	return func(c *Converter) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

// New creates a Converter. A nil resolver treats asset references as URLs.
func New(assets core.AssetResolver, opts ...Option) *Converter {
	c := &Converter{assets: assets, newKey: block.NewKey}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Converter) resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if c.assets == nil {
		return ref
	}
	url, ok := c.assets.Resolve(ref)
	if !ok {
		return ""
	}
	return url
}

func (c *Converter) reference(src string) string {
	if src == "" || c.assets == nil {
		return src
	}
	if ref, ok := c.assets.Reference(src); ok {
		return ref
	}
	return src
}

// ToEditorHTML renders doc as the editor's flat markup.
func (c *Converter) ToEditorHTML(doc block.Document) string {
	return editor.MarshalHTML(c.ToEditorTree(doc).Content)
}

// FromEditorHTML parses editor markup into blocks.
func (c *Converter) FromEditorHTML(markup string) (block.Document, error) {
	nodes, err := editor.ParseHTML(markup)
	if err != nil {
		return nil, err
	}
	return c.ToBlocksFromNodes(nodes), nil
}
