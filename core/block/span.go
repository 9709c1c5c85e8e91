package block

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// MarkType is a span-level emphasis.
type MarkType string

const (
	MarkBold      MarkType = "bold"
	MarkItalic    MarkType = "italic"
	MarkUnderline MarkType = "underline"
	MarkLink      MarkType = "link"
)

// Mark is one emphasis applied to a span. Href and OpenInNewTab are only
// meaningful for MarkLink.
type Mark struct {
	Type         MarkType
	Href         string
	OpenInNewTab bool
}

// Span is a run of text with ordered marks. Marks apply in slice order,
// the first mark being the outermost wrapper.
type Span struct {
	Text  string
	Marks []Mark
}

// PlainSpan returns an unmarked span.
func PlainSpan(text string) Span { return Span{Text: text} }

// Link returns a link mark.
func Link(href string, openInNewTab bool) Mark {
	return Mark{Type: MarkLink, Href: href, OpenInNewTab: openInNewTab}
}

// HasMark reports whether the span carries a mark of type t.
func (s Span) HasMark(t MarkType) bool {
	for _, m := range s.Marks {
		if m.Type == t {
			return true
		}
	}
	return false
}

// Text concatenates the text of all spans.
func Text(spans []Span) string {
	var buf strings.Builder
	for _, s := range spans {
		buf.WriteString(s.Text)
	}
	return buf.String()
}

// JoinText joins the text of all spans with sep.
func JoinText(spans []Span, sep string) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, sep)
}

// NewKey returns a fresh 12 character identity key.
func NewKey() string {
	id := uuid.New()
	return hex.EncodeToString(id[:6])
}

// CloneSpans deep-copies a span slice. nil stays nil.
func CloneSpans(in []Span) []Span {
	if in == nil {
		return nil
	}
	out := make([]Span, len(in))
	for i, s := range in {
		out[i] = Span{Text: s.Text}
		if s.Marks != nil {
			out[i].Marks = append([]Mark(nil), s.Marks...)
		}
	}
	return out
}

// Clone deep-copies a block.
func Clone(b Block) Block {
	switch x := b.(type) {
	case Paragraph:
		x.Children = CloneSpans(x.Children)
		return x
	case Heading:
		x.Children = CloneSpans(x.Children)
		return x
	case Blockquote:
		x.Children = CloneSpans(x.Children)
		return x
	case ListItem:
		x.Children = CloneSpans(x.Children)
		return x
	case LeadParagraph:
		x.Children = CloneSpans(x.Children)
		return x
	case KeyTakeaways:
		if x.Items != nil {
			x.Items = append([]string(nil), x.Items...)
		}
		return x
	case Unknown:
		x.Raw = deepCopyMap(x.Raw)
		return x
	}
	return b
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i, b := range d {
		out[i] = Clone(b)
	}
	return out
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyAny(v)
	}
	return out
}

func deepCopyAny(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return deepCopyMap(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = deepCopyAny(x[i])
		}
		return out
	default:
		return x
	}
}
