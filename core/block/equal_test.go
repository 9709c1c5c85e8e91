package block

import "testing"

func TestEqualIgnoringKeys(t *testing.T) {
	tests := []struct {
		name string
		a, b Document
		want bool
	}{
		{
			name: "keys differ",
			a:    Document{Paragraph{Key: "a", Style: StyleNormal, Children: []Span{{Text: "x"}}}},
			b:    Document{Paragraph{Key: "b", Style: StyleNormal, Children: []Span{{Text: "x"}}}},
			want: true,
		},
		{
			name: "nil and empty children",
			a:    Document{Heading{Level: 2}},
			b:    Document{Heading{Level: 2, Children: []Span{}}},
			want: true,
		},
		{
			name: "nil and empty marks",
			a:    Document{Paragraph{Children: []Span{{Text: "x"}}}},
			b:    Document{Paragraph{Children: []Span{{Text: "x", Marks: []Mark{}}}}},
			want: true,
		},
		{
			name: "unset list level is level one",
			a:    Document{ListItem{Kind: ListBullet}},
			b:    Document{ListItem{Kind: ListBullet, Level: 1}},
			want: true,
		},
		{
			name: "empty takeaways",
			a:    Document{KeyTakeaways{}},
			b:    Document{KeyTakeaways{Items: []string{}}},
			want: true,
		},
		{
			name: "no spans and one empty span",
			a:    Document{Paragraph{Style: StyleNormal, Children: []Span{}}},
			b:    Document{Paragraph{Style: StyleNormal, Children: []Span{{Text: ""}}}},
			want: true,
		},
		{
			name: "empty span among text",
			a:    Document{Paragraph{Children: []Span{{Text: "a"}, {Text: ""}, {Text: "b", Marks: []Mark{{Type: MarkBold}}}}}},
			b:    Document{Paragraph{Children: []Span{{Text: "a"}, {Text: "b", Marks: []Mark{{Type: MarkBold}}}}}},
			want: true,
		},
		{
			name: "same marks split differently",
			a:    Document{ListItem{Kind: ListBullet, Children: []Span{{Text: "ab", Marks: []Mark{{Type: MarkItalic}}}}}},
			b:    Document{ListItem{Kind: ListBullet, Children: []Span{{Text: "a", Marks: []Mark{{Type: MarkItalic}}}, {Text: "b", Marks: []Mark{{Type: MarkItalic}}}}}},
			want: true,
		},
		{
			name: "different marks stay apart",
			a:    Document{Paragraph{Children: []Span{{Text: "ab"}}}},
			b:    Document{Paragraph{Children: []Span{{Text: "a"}, {Text: "b", Marks: []Mark{{Type: MarkBold}}}}}},
			want: false,
		},
		{
			name: "text differs",
			a:    Document{Paragraph{Children: []Span{{Text: "x"}}}},
			b:    Document{Paragraph{Children: []Span{{Text: "y"}}}},
			want: false,
		},
		{
			name: "mark order matters",
			a:    Document{Paragraph{Children: []Span{{Text: "x", Marks: []Mark{{Type: MarkBold}, {Type: MarkItalic}}}}}},
			b:    Document{Paragraph{Children: []Span{{Text: "x", Marks: []Mark{{Type: MarkItalic}, {Type: MarkBold}}}}}},
			want: false,
		},
		{
			name: "kind differs",
			a:    Document{Blockquote{Children: []Span{{Text: "x"}}}},
			b:    Document{Paragraph{Children: []Span{{Text: "x"}}}},
			want: false,
		},
		{
			name: "length differs",
			a:    Document{CalloutBox{}},
			b:    Document{CalloutBox{}, CalloutBox{}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualIgnoringKeys(tt.a, tt.b); got != tt.want {
				t.Errorf("EqualIgnoringKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		b    Block
		want string
	}{
		{"paragraph", Paragraph{Children: []Span{{Text: "a"}, {Text: "b"}}}, "ab"},
		{"image caption", Image{Caption: "cap", Alt: "alt"}, "cap"},
		{"lead text", LeadParagraph{Text: "lead"}, "lead"},
		{"lead children win", LeadParagraph{Text: "old", Children: []Span{{Text: "new"}}}, "new"},
		{"styled quote", StyledQuote{Quote: "q", Attribution: "a"}, "q"},
		{"takeaways", KeyTakeaways{Items: []string{"one", "two"}}, "one\ntwo"},
		{"callout", CalloutBox{Title: "T", Content: "C"}, "T\nC"},
		{"callout without title", CalloutBox{Content: "C"}, "C"},
		{"unknown", Unknown{Type: "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.b); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}
