package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/editor"
	"github.com/gaurav-prasanna/blockpipe/core/style"
)

func everyKind() *core.Article {
	return &core.Article{
		ID:          "post-1",
		Title:       "Everything “quoted”",
		PublishedAt: "2024-05-01",
		Body: block.Document{
			block.Paragraph{Style: block.StyleLead, Children: plain("Lead in.")},
			block.Heading{Level: 2, Children: plain("Section")},
			block.Paragraph{Style: block.StyleNormal, Children: []block.Span{
				block.PlainSpan("Plain, "),
				{Text: "bold", Marks: []block.Mark{{Type: block.MarkBold}}},
				block.PlainSpan(" and "),
				{Text: "a link", Marks: []block.Mark{block.Link("https://x.test", true)}},
			}},
			block.ListItem{Kind: block.ListNumber, Level: 1, Children: plain("first")},
			block.ListItem{Kind: block.ListNumber, Level: 2, Children: plain("nested")},
			block.ListItem{Kind: block.ListNumber, Level: 1, Children: plain("second")},
			block.Blockquote{Children: plain("Legacy quote")},
			block.Image{AssetRef: "/i.png", Alt: "alt", Caption: "A caption"},
			block.StyledQuote{Quote: "Stay curious", Attribution: "Someone", Style: block.QuoteCoral},
			block.KeyTakeaways{Items: []string{"one", "two"}},
			block.CalloutBox{Title: "Heads up", Content: "Careful.", Variant: block.CalloutWarning},
			block.Unknown{Type: "poll"},
		},
	}
}

// ============================================================================
// Markdown
// ============================================================================

func TestMarkdownRender(t *testing.T) {
	r := NewMarkdownRenderer(nil)
	out, err := r.Render(everyKind())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"# Everything “quoted”\n\n",
		"## Section",
		"**bold**",
		"[a link](https://x.test)",
		"1. first",
		"nested",
		"> Legacy quote",
		"![alt](/i.png)",
		"Stay curious",
		"## Key Takeaways",
		"- one",
		"Careful.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "class=") {
		t.Errorf("markdown leaked class names:\n%s", md)
	}
	if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
		t.Errorf("markdown should end in exactly one newline: %q", md[len(md)-5:])
	}
	if r.Extension() != ".md" {
		t.Errorf("Extension = %q", r.Extension())
	}
}

func TestMarkdownRenderBodyEmpty(t *testing.T) {
	got, err := NewMarkdownRenderer(nil).RenderBody(block.Document{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

// ============================================================================
// PDF
// ============================================================================

func TestPDFRender(t *testing.T) {
	r := NewPDFRenderer(style.DefaultClasses())
	out, err := r.Render(everyKind())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", out[:min(len(out), 16)])
	}
	if r.Extension() != ".pdf" {
		t.Errorf("Extension = %q", r.Extension())
	}
}

func TestPDFRenderEmpty(t *testing.T) {
	out, err := NewPDFRenderer(style.Classes{}).Render(&core.Article{ID: "x"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("empty article did not produce a PDF")
	}
}

// ============================================================================
// Interchange formats
// ============================================================================

func TestBlocksRenderer(t *testing.T) {
	a := everyKind()
	r := NewBlocksRenderer()
	out, err := r.Render(a)
	if err != nil {
		t.Fatal(err)
	}
	back, err := block.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if !block.EqualIgnoringKeys(back, a.Body) {
		t.Errorf("decoded body differs:\n%#v", back)
	}
	if r.Extension() != ".blocks.json" {
		t.Errorf("Extension = %q", r.Extension())
	}
}

func TestEditorRenderer(t *testing.T) {
	r := NewEditorRenderer(convert.New(nil))
	out, err := r.Render(everyKind())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := editor.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	var types []string
	for _, n := range doc.Content {
		types = append(types, n.Type)
	}
	want := []string{
		editor.TypeLeadParagraph,
		editor.TypeHeading,
		editor.TypeParagraph,
		editor.TypeOrderedList,
		editor.TypeStyledQuote,
		editor.TypeImage,
		editor.TypeStyledQuote,
		editor.TypeKeyTakeaways,
		editor.TypeCalloutBox,
		editor.TypeParagraph,
	}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Errorf("types = %v\nwant %v", types, want)
	}
	if r.Extension() != ".editor.json" {
		t.Errorf("Extension = %q", r.Extension())
	}
}

func TestEditorHTMLRenderer(t *testing.T) {
	r := NewEditorHTMLRenderer(convert.New(nil))
	out, err := r.Render(everyKind())
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	for _, want := range []string{
		`data-type="lead-paragraph"`,
		`data-type="styled-quote"`,
		`data-style="purple"`,
		`<ol><li><p>first</p><ol><li><p>nested</p></li></ol></li>`,
		`data-type="callout-box"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("editor markup missing %q:\n%s", want, s)
		}
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("editor markup should end in a newline")
	}
	if r.Extension() != ".editor.html" {
		t.Errorf("Extension = %q", r.Extension())
	}
}
