package convert

import (
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/editor"
	"github.com/gaurav-prasanna/blockpipe/core/style"
)

// ToBlocks converts an edited tree back into canonical blocks, one or more
// blocks per top-level node. Every block gets a fresh key.
func (c *Converter) ToBlocks(doc editor.Doc) block.Document {
	return c.ToBlocksFromNodes(doc.Content)
}

// ToBlocksFromNodes is ToBlocks for a bare node list.
func (c *Converter) ToBlocksFromNodes(nodes []editor.Node) block.Document {
	out := make(block.Document, 0, len(nodes))
	for _, n := range nodes {
		out = c.appendNode(out, n)
	}
	return out
}

func (c *Converter) appendNode(out block.Document, n editor.Node) block.Document {
	switch n.Type {
	case editor.TypeParagraph:
		// An empty paragraph is authored intent and is kept.
		return append(out, block.Paragraph{Key: c.newKey(), Style: block.StyleNormal, Children: spans(n.Content)})

	case editor.TypeLeadParagraph:
		text := n.AttrString("text")
		if text == "" && len(n.Content) > 0 {
			text = n.InlineText()
		}
		return append(out, block.Paragraph{
			Key:      c.newKey(),
			Style:    block.StyleLead,
			Children: []block.Span{block.PlainSpan(text)},
		})

	case editor.TypeHeading:
		level, ok := n.AttrInt("level")
		if !ok {
			level = block.MinHeadingLevel
		}
		return append(out, block.Heading{
			Key:      c.newKey(),
			Level:    block.ClampHeadingLevel(level),
			Children: spans(n.Content),
		})

	case editor.TypeBlockquote:
		return append(out, block.Blockquote{Key: c.newKey(), Children: quoteSpans(n)})

	case editor.TypeBulletList, editor.TypeOrderedList:
		return c.appendList(out, n, 1)

	case editor.TypeImage:
		caption := n.AttrString("caption")
		if caption == "" {
			caption = n.AttrString("title")
		}
		return append(out, block.Image{
			Key:      c.newKey(),
			AssetRef: c.reference(n.AttrString("src")),
			Alt:      n.AttrString("alt"),
			Caption:  caption,
		})

	case editor.TypeStyledQuote:
		st, ok := block.ParseQuoteStyle(n.AttrString("style"))
		if !ok {
			st = block.QuoteTeal
		}
		return append(out, block.StyledQuote{
			Key:         c.newKey(),
			Quote:       n.AttrString("quote"),
			Attribution: n.AttrString("attribution"),
			Style:       st,
		})

	case editor.TypeKeyTakeaways:
		items := n.AttrStrings("items")
		if items == nil {
			items = []string{}
		}
		return append(out, block.KeyTakeaways{Key: c.newKey(), Items: items})

	case editor.TypeCalloutBox:
		variant, ok := block.ParseCalloutVariant(n.AttrString("variant"))
		if !ok {
			variant = block.CalloutInfo
		}
		return append(out, block.CalloutBox{
			Key:     c.newKey(),
			Title:   n.AttrString("title"),
			Content: n.AttrString("content"),
			Variant: variant,
		})
	}
	return append(out, block.Paragraph{Key: c.newKey(), Style: block.StyleNormal, Children: spans(nil)})
}

// appendList flattens a list node into list items at the given level.
// Nested lists inside an item continue at level+1. An item holding only
// nested lists emits no block of its own; an item with no content at all
// is an empty entry.
func (c *Converter) appendList(out block.Document, list editor.Node, level int) block.Document {
	kind := block.ListBullet
	if list.Type == editor.TypeOrderedList {
		kind = block.ListNumber
	}
	for _, child := range list.Content {
		if child.Type != editor.TypeListItem {
			out = c.appendNode(out, child)
			continue
		}
		if len(child.Content) == 0 {
			out = append(out, block.ListItem{Key: c.newKey(), Kind: kind, Level: level, Children: spans(nil)})
			continue
		}
		for _, part := range child.Content {
			if part.IsList() {
				out = c.appendList(out, part, level+1)
				continue
			}
			out = append(out, block.ListItem{Key: c.newKey(), Kind: kind, Level: level, Children: spans(part.Content)})
		}
	}
	return out
}

// quoteSpans pulls the spans out of a blockquote's paragraphs. Several
// paragraphs are joined by newline spans.
func quoteSpans(n editor.Node) []block.Span {
	var out []block.Span
	for _, child := range n.Content {
		if child.Type == editor.TypeText || child.Type == editor.TypeHardBreak {
			return spans(n.Content)
		}
		if len(out) > 0 {
			out = append(out, block.PlainSpan("\n"))
		}
		out = append(out, spans(child.Content)...)
	}
	if len(out) == 0 {
		return spans(nil)
	}
	return out
}

// spans converts text runs to spans. Hard breaks become newlines; the
// result always holds at least one span.
func spans(runs []editor.Node) []block.Span {
	var out []block.Span
	for _, r := range runs {
		switch r.Type {
		case editor.TypeText:
			out = append(out, block.Span{Text: r.Text, Marks: blockMarks(r.Marks)})
		case editor.TypeHardBreak:
			if len(out) == 0 {
				out = append(out, block.PlainSpan("\n"))
				continue
			}
			out[len(out)-1].Text += "\n"
		}
	}
	if len(out) == 0 {
		return []block.Span{block.PlainSpan("")}
	}
	return out
}

func blockMarks(marks []editor.Mark) []block.Mark {
	var out []block.Mark
	for _, m := range marks {
		if t, ok := style.FromEditorMark(m.Type); ok {
			out = append(out, block.Mark{Type: t})
		}
	}
	return out
}
