package normalize

import (
	"reflect"
	"testing"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/internal/logger"
)

func spans(texts ...string) []block.Span {
	out := make([]block.Span, len(texts))
	for i, t := range texts {
		out[i] = block.PlainSpan(t)
	}
	return out
}

func item(kind block.ListKind, text string) block.ListItem {
	return block.ListItem{Kind: kind, Level: 1, Children: spans(text)}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   block.Document
		want block.Document
	}{
		{
			name: "legacy quote",
			in:   block.Document{block.Blockquote{Key: "q", Children: spans("Be", "kind.")}},
			want: block.Document{block.StyledQuote{Key: "q", Quote: "Be kind.", Style: block.QuotePurple}},
		},
		{
			name: "quote whitespace collapses",
			in:   block.Document{block.Blockquote{Children: spans("  a\n", " b  ")}},
			want: block.Document{block.StyledQuote{Quote: "a b", Style: DefaultQuoteStyle}},
		},
		{
			name: "takeaways heading with items",
			in: block.Document{
				block.Heading{Key: "h", Level: 2, Children: spans("Key Takeaways")},
				item(block.ListBullet, "A"),
				item(block.ListBullet, "B"),
				block.Paragraph{Style: block.StyleNormal, Children: spans("after")},
			},
			want: block.Document{
				block.KeyTakeaways{Key: "h", Items: []string{"A", "B"}},
				block.Paragraph{Style: block.StyleNormal, Children: spans("after")},
			},
		},
		{
			name: "takeaways heading without items",
			in: block.Document{
				block.Heading{Level: 2, Children: spans("Key Takeaways")},
				block.Paragraph{Style: block.StyleNormal, Children: spans("Body")},
			},
			want: block.Document{
				block.Heading{Level: 2, Children: spans("Key Takeaways")},
				block.Paragraph{Style: block.StyleNormal, Children: spans("Body")},
			},
		},
		{
			name: "takeaways paragraph is case insensitive",
			in: block.Document{
				block.Paragraph{Style: block.StyleNormal, Children: spans("  KEY TAKEAWAYS:")},
				item(block.ListNumber, " one "),
			},
			want: block.Document{block.KeyTakeaways{Items: []string{"one"}}},
		},
		{
			name: "takeaways stop at another list kind",
			in: block.Document{
				block.Heading{Level: 3, Children: spans("Key takeaways")},
				item(block.ListBullet, "A"),
				item(block.ListNumber, "B"),
			},
			want: block.Document{
				block.KeyTakeaways{Items: []string{"A"}},
				item(block.ListNumber, "B"),
			},
		},
		{
			name: "lead paragraph heading is not a takeaways marker",
			in: block.Document{
				block.Paragraph{Style: block.StyleLead, Children: spans("Key takeaways")},
				item(block.ListBullet, "A"),
			},
			want: block.Document{
				block.Paragraph{Style: block.StyleLead, Children: spans("Key takeaways")},
				item(block.ListBullet, "A"),
			},
		},
		{
			name: "lead paragraph with text",
			in:   block.Document{block.LeadParagraph{Key: "l", Text: "Intro"}},
			want: block.Document{block.Paragraph{Key: "l", Style: block.StyleLead, Children: spans("Intro")}},
		},
		{
			name: "lead paragraph keeps children",
			in: block.Document{block.LeadParagraph{Text: "ignored", Children: []block.Span{
				{Text: "Bold", Marks: []block.Mark{{Type: block.MarkBold}}},
			}}},
			want: block.Document{block.Paragraph{Style: block.StyleLead, Children: []block.Span{
				{Text: "Bold", Marks: []block.Mark{{Type: block.MarkBold}}},
			}}},
		},
		{
			name: "canonical blocks pass through",
			in: block.Document{
				block.Image{AssetRef: "image-a-1x1-png"},
				block.StyledQuote{Quote: "q", Style: block.QuoteCoral},
				block.CalloutBox{Content: "c", Variant: block.CalloutNote},
				block.Unknown{Type: "divider"},
			},
			want: block.Document{
				block.Image{AssetRef: "image-a-1x1-png"},
				block.StyledQuote{Quote: "q", Style: block.QuoteCoral},
				block.CalloutBox{Content: "c", Variant: block.CalloutNote},
				block.Unknown{Type: "divider"},
			},
		},
		{
			name: "empty",
			in:   block.Document{},
			want: block.Document{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize()\ngot  %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	docs := []block.Document{
		{
			block.LeadParagraph{Text: "Lead"},
			block.Blockquote{Children: spans("Quote")},
			block.Heading{Level: 2, Children: spans("Key Takeaways")},
			item(block.ListBullet, "A"),
			item(block.ListBullet, "B"),
			block.Heading{Level: 2, Children: spans("Key takeaways")},
			block.Paragraph{Style: block.StyleNormal, Children: spans("nothing follows")},
		},
		{
			// Takeaways followed by more of the same heading.
			block.Paragraph{Style: block.StyleNormal, Children: spans("key takeaways")},
			item(block.ListNumber, "1"),
			block.Paragraph{Style: block.StyleNormal, Children: spans("key takeaways again")},
			item(block.ListNumber, "2"),
		},
	}
	for i, doc := range docs {
		once := Normalize(doc)
		twice := Normalize(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("doc %d: Normalize is not idempotent\nonce  %#v\ntwice %#v", i, once, twice)
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := block.Document{
		block.Paragraph{Style: block.StyleNormal, Children: []block.Span{{Text: "x", Marks: []block.Mark{{Type: block.MarkBold}}}}},
		block.LeadParagraph{Children: spans("lead")},
	}
	snapshot := in.Clone()
	out := Normalize(in)
	out[0].(block.Paragraph).Children[0].Marks[0] = block.Mark{Type: block.MarkItalic}
	out[1].(block.Paragraph).Children[0].Text = "changed"

	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input changed: %#v", in)
	}
}

func TestNormalizeWithStats(t *testing.T) {
	_, st := NormalizeWithStats(block.Document{
		block.Blockquote{Children: spans("a")},
		block.Blockquote{Children: spans("b")},
		block.LeadParagraph{Text: "c"},
		block.Heading{Children: spans("Key takeaways")},
		item(block.ListBullet, "d"),
	})
	want := Stats{Quotes: 2, Takeaways: 1, LeadParagraphs: 1}
	if st != want {
		t.Errorf("Stats = %+v, want %+v", st, want)
	}
	if st.Total() != 4 {
		t.Errorf("Total() = %d, want 4", st.Total())
	}
}

func TestLegacyNormalizer(t *testing.T) {
	n := New(logger.Nop())
	got := n.Normalize(block.Document{block.LeadParagraph{Text: "x"}})
	want := block.Document{block.Paragraph{Style: block.StyleLead, Children: spans("x")}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %#v", got)
	}

	// A nil logger must be usable.
	if out := New(nil).Normalize(nil); len(out) != 0 {
		t.Errorf("Normalize(nil) = %#v", out)
	}
}
