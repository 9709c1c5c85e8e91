package editor

import (
	"reflect"
	"testing"
)

func run(text string, marks ...string) Node {
	n := Node{Type: TypeText, Text: text}
	for _, m := range marks {
		n.Marks = append(n.Marks, Mark{Type: m})
	}
	return n
}

// ============================================================================
// MarshalHTML
// ============================================================================

func TestMarshalHTML(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "paragraph with marks",
			node: Node{Type: TypeParagraph, Content: []Node{run("a<b", "bold", "italic"), {Type: TypeHardBreak}, run("c")}},
			want: "<p><strong><em>a&lt;b</em></strong><br>c</p>",
		},
		{
			name: "heading",
			node: Node{Type: TypeHeading, Attrs: map[string]any{"level": 3}, Content: []Node{run("h")}},
			want: "<h3>h</h3>",
		},
		{
			name: "heading without level",
			node: Node{Type: TypeHeading, Content: []Node{run("h")}},
			want: "<h2>h</h2>",
		},
		{
			name: "nested list",
			node: Node{Type: TypeOrderedList, Content: []Node{{Type: TypeListItem, Content: []Node{
				{Type: TypeParagraph, Content: []Node{run("a")}},
				{Type: TypeBulletList, Content: []Node{{Type: TypeListItem, Content: []Node{{Type: TypeParagraph, Content: []Node{run("b")}}}}}},
			}}}},
			want: "<ol><li><p>a</p><ul><li><p>b</p></li></ul></li></ol>",
		},
		{
			name: "blockquote",
			node: Node{Type: TypeBlockquote, Content: []Node{{Type: TypeParagraph, Content: []Node{run("q")}}}},
			want: "<blockquote><p>q</p></blockquote>",
		},
		{
			name: "image",
			node: Node{Type: TypeImage, Attrs: map[string]any{"src": "/i.png", "alt": `a"b`}},
			want: `<img src="/i.png" alt="a&#34;b">`,
		},
		{
			name: "lead paragraph",
			node: Node{Type: TypeLeadParagraph, Attrs: map[string]any{"text": "x & y"}},
			want: `<div data-type="lead-paragraph" data-text="x &amp; y"></div>`,
		},
		{
			name: "styled quote",
			node: Node{Type: TypeStyledQuote, Attrs: map[string]any{"quote": "q", "attribution": "a", "style": "coral"}},
			want: `<div data-type="styled-quote" data-quote="q" data-attribution="a" data-style="coral"></div>`,
		},
		{
			name: "key takeaways",
			node: Node{Type: TypeKeyTakeaways, Attrs: map[string]any{"items": []string{"one"}}},
			want: `<div data-type="key-takeaways" data-items="[&#34;one&#34;]"></div>`,
		},
		{
			name: "empty key takeaways",
			node: Node{Type: TypeKeyTakeaways},
			want: `<div data-type="key-takeaways" data-items="[]"></div>`,
		},
		{
			name: "callout",
			node: Node{Type: TypeCalloutBox, Attrs: map[string]any{"title": "t", "content": "c", "variant": "note"}},
			want: `<div data-type="callout-box" data-title="t" data-content="c" data-variant="note"></div>`,
		},
		{
			name: "unknown keeps text",
			node: Node{Type: "mention", Content: []Node{run("@me")}},
			want: "<p>@me</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarshalHTML([]Node{tt.node}); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

// ============================================================================
// ParseHTML
// ============================================================================

func TestParseHTML(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []Node
	}{
		{
			name:   "empty",
			markup: "",
			want:   []Node{},
		},
		{
			name:   "paragraph with aliases",
			markup: "<p>a <b>b <i>c</i></b><br>d</p>",
			want: []Node{{Type: TypeParagraph, Content: []Node{
				run("a "),
				run("b ", "bold"),
				run("c", "bold", "italic"),
				{Type: TypeHardBreak},
				run("d"),
			}}},
		},
		{
			name:   "link mark kept on the run",
			markup: `<p><a href="/x" target="_blank">go</a></p>`,
			want: []Node{{Type: TypeParagraph, Content: []Node{{
				Type:  TypeText,
				Text:  "go",
				Marks: []Mark{{Type: "link", Attrs: map[string]any{"href": "/x", "target": "_blank"}}},
			}}}},
		},
		{
			name:   "heading level",
			markup: "<h4>h</h4>",
			want:   []Node{{Type: TypeHeading, Attrs: map[string]any{"level": 4}, Content: []Node{run("h")}}},
		},
		{
			name:   "bare list items",
			markup: "<ul><li>a</li><li><p>b</p></li></ul>",
			want: []Node{{Type: TypeBulletList, Content: []Node{
				{Type: TypeListItem, Content: []Node{{Type: TypeParagraph, Content: []Node{run("a")}}}},
				{Type: TypeListItem, Content: []Node{{Type: TypeParagraph, Content: []Node{run("b")}}}},
			}}},
		},
		{
			name:   "inline blockquote",
			markup: "<blockquote>q</blockquote>",
			want: []Node{{Type: TypeBlockquote, Content: []Node{
				{Type: TypeParagraph, Content: []Node{run("q")}},
			}}},
		},
		{
			name:   "wrapper elements flattened",
			markup: "<section><div><p>x</p></div></section>stray",
			want: []Node{
				{Type: TypeParagraph, Content: []Node{run("x")}},
				{Type: TypeParagraph, Content: []Node{run("stray")}},
			},
		},
		{
			name:   "takeaways from list markup",
			markup: `<div data-type="key-takeaways"><ul><li> one </li><li>two</li></ul></div>`,
			want:   []Node{{Type: TypeKeyTakeaways, Attrs: map[string]any{"items": []string{"one", "two"}}}},
		},
		{
			name:   "takeaways with bad items json",
			markup: `<div data-type="key-takeaways" data-items="{"></div>`,
			want:   []Node{{Type: TypeKeyTakeaways, Attrs: map[string]any{"items": []string{}}}},
		},
		{
			name:   "lead paragraph without data-text",
			markup: `<div data-type="lead-paragraph">Intro</div>`,
			want:   []Node{{Type: TypeLeadParagraph, Attrs: map[string]any{"text": "Intro"}}},
		},
		{
			name:   "unknown data-type flattened",
			markup: `<div data-type="poll"><p>vote</p></div>`,
			want:   []Node{{Type: TypeParagraph, Content: []Node{run("vote")}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHTML(tt.markup)
			if err != nil {
				t.Fatalf("ParseHTML: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got  %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestMarshalParseRoundTrip(t *testing.T) {
	nodes := []Node{
		{Type: TypeHeading, Attrs: map[string]any{"level": 2}, Content: []Node{run("Title")}},
		{Type: TypeParagraph, Content: []Node{run("x", "underline"), run(" y")}},
		{Type: TypeStyledQuote, Attrs: map[string]any{"quote": `"q" <b>`, "attribution": "a", "style": "teal"}},
		{Type: TypeCalloutBox, Attrs: map[string]any{"title": "t", "content": "c", "variant": "warning"}},
		{Type: TypeKeyTakeaways, Attrs: map[string]any{"items": []string{"a & b", "c"}}},
	}
	got, err := ParseHTML(MarshalHTML(nodes))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, nodes) {
		t.Errorf("got  %#v\nwant %#v", got, nodes)
	}
}
