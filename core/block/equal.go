package block

import (
	"reflect"
	"strings"
)

// EqualIgnoringKeys reports whether two documents are structurally equal,
// disregarding identity keys. Empty and nil slices compare equal, as do
// span lists that differ only by empty spans or by how same-marked text is
// split.
func EqualIgnoringKeys(a, b Document) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(canonicalize(a[i]), canonicalize(b[i])) {
			return false
		}
	}
	return true
}

func canonicalize(b Block) Block {
	switch x := b.(type) {
	case Paragraph:
		x.Key, x.Children = "", canonicalSpans(x.Children)
		return x
	case Heading:
		x.Key, x.Children = "", canonicalSpans(x.Children)
		return x
	case Blockquote:
		x.Key, x.Children = "", canonicalSpans(x.Children)
		return x
	case ListItem:
		x.Key, x.Children, x.Level = "", canonicalSpans(x.Children), x.ListLevel()
		return x
	case Image:
		x.Key = ""
		return x
	case LeadParagraph:
		x.Key, x.Children = "", canonicalSpans(x.Children)
		return x
	case StyledQuote:
		x.Key = ""
		return x
	case KeyTakeaways:
		x.Key = ""
		if len(x.Items) == 0 {
			x.Items = nil
		}
		return x
	case CalloutBox:
		x.Key = ""
		return x
	case Unknown:
		x.Key = ""
		if len(x.Raw) == 0 {
			x.Raw = nil
		}
		return x
	}
	return b
}

// canonicalSpans drops empty spans and merges neighbours that carry the
// same marks, so a span list compares by the text and formatting it shows.
func canonicalSpans(in []Span) []Span {
	var out []Span
	for _, s := range in {
		if s.Text == "" {
			continue
		}
		var marks []Mark
		if len(s.Marks) > 0 {
			marks = s.Marks
		}
		if n := len(out); n > 0 && reflect.DeepEqual(out[n-1].Marks, marks) {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, Span{Text: s.Text, Marks: marks})
	}
	return out
}

// PlainText returns the readable text of a block: span text for text
// blocks, the scalar text of custom blocks, the caption for images and
// nothing for unknown blocks.
func PlainText(b Block) string {
	var v textVisitor
	Accept(b, &v)
	return v.text
}

type textVisitor struct{ text string }

func (v *textVisitor) VisitParagraph(b Paragraph)   { v.text = Text(b.Children) }
func (v *textVisitor) VisitHeading(b Heading)       { v.text = Text(b.Children) }
func (v *textVisitor) VisitBlockquote(b Blockquote) { v.text = Text(b.Children) }
func (v *textVisitor) VisitListItem(b ListItem)     { v.text = Text(b.Children) }
func (v *textVisitor) VisitImage(b Image)           { v.text = b.Caption }
func (v *textVisitor) VisitLeadParagraph(b LeadParagraph) {
	if len(b.Children) > 0 {
		v.text = Text(b.Children)
		return
	}
	v.text = b.Text
}
func (v *textVisitor) VisitStyledQuote(b StyledQuote) { v.text = b.Quote }
func (v *textVisitor) VisitKeyTakeaways(b KeyTakeaways) {
	v.text = strings.Join(b.Items, "\n")
}
func (v *textVisitor) VisitCalloutBox(b CalloutBox) {
	v.text = strings.TrimSpace(b.Title + "\n" + b.Content)
}
func (v *textVisitor) VisitUnknown(Unknown) {}
