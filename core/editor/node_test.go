package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestDocUnmarshalShapes(t *testing.T) {
	para := Node{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: "hi"}}}

	tests := []struct {
		name  string
		input string
		want  Doc
	}{
		{"doc object", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]}]}`, NewDoc(para)},
		{"untyped root", `{"content":[{"type":"paragraph","content":[{"type":"text","text":"hi"}]}]}`, NewDoc(para)},
		{"bare array", ` [{"type":"paragraph","content":[{"type":"text","text":"hi"}]}] `, NewDoc(para)},
		{"single node", `{"type":"paragraph","content":[{"type":"text","text":"hi"}]}`, NewDoc(para)},
		{"null", `null`, NewDoc()},
		{"empty doc", `{"type":"doc"}`, NewDoc()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Doc
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDocUnmarshalRejects(t *testing.T) {
	for _, input := range []string{`"text"`, `42`, `true`} {
		var d Doc
		err := d.UnmarshalJSON([]byte(input))
		if !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("UnmarshalJSON(%s) = %v, want ErrInvalidDocument", input, err)
		}
	}
}

func TestDecodeEncode(t *testing.T) {
	in := `{"type":"doc","content":[{"type":"heading","attrs":{"level":3},"content":[{"type":"text","text":"<T>","marks":[{"type":"bold"}]}]}]}`
	d, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if level, ok := d.Content[0].AttrInt("level"); !ok || level != 3 {
		t.Errorf("level = %d, %v", level, ok)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != in {
		t.Errorf("Encode =\n%s\nwant\n%s", got, in)
	}

	if _, err := Decode(strings.NewReader(`"nope"`)); err == nil {
		t.Error("Decode accepted a string")
	}
}

func TestEncodeEmptyDocHasContentArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, NewDoc()); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"type":"doc","content":[]}` {
		t.Errorf("got %s", got)
	}
}

func TestAttrHelpers(t *testing.T) {
	n := Node{Attrs: map[string]any{
		"s":      "text",
		"i":      7,
		"f":      float64(3),
		"num":    json.Number("5"),
		"str":    "9",
		"bad":    "x",
		"list":   []any{"a", 1, "b"},
		"typed":  []string{"c"},
		"notstr": 12,
	}}

	if got := n.AttrString("s"); got != "text" {
		t.Errorf(`AttrString("s") = %q`, got)
	}
	if got := n.AttrString("notstr"); got != "" {
		t.Errorf(`AttrString("notstr") = %q, want empty`, got)
	}
	if got := n.AttrString("missing"); got != "" {
		t.Errorf(`AttrString("missing") = %q, want empty`, got)
	}

	ints := []struct {
		key  string
		want int
		ok   bool
	}{
		{"i", 7, true},
		{"f", 3, true},
		{"num", 5, true},
		{"str", 9, true},
		{"bad", 0, false},
		{"list", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range ints {
		got, ok := n.AttrInt(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("AttrInt(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}

	if got := n.AttrStrings("list"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf(`AttrStrings("list") = %v`, got)
	}
	if got := n.AttrStrings("typed"); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf(`AttrStrings("typed") = %v`, got)
	}
	if got := n.AttrStrings("missing"); got != nil {
		t.Errorf(`AttrStrings("missing") = %v, want nil`, got)
	}

	var empty Node
	if _, ok := empty.Attr("x"); ok {
		t.Error("Attr on nil map reported a value")
	}
}

func TestInlineText(t *testing.T) {
	n := Node{Type: TypeParagraph, Content: []Node{
		{Type: TypeText, Text: "a"},
		{Type: TypeHardBreak},
		{Type: "mention", Content: []Node{{Type: TypeText, Text: "b"}}},
	}}
	if got := n.InlineText(); got != "a\nb" {
		t.Errorf("InlineText = %q, want %q", got, "a\nb")
	}
}

func TestIsList(t *testing.T) {
	for typ, want := range map[string]bool{
		TypeBulletList:  true,
		TypeOrderedList: true,
		TypeListItem:    false,
		TypeParagraph:   false,
	} {
		if got := (Node{Type: typ}).IsList(); got != want {
			t.Errorf("IsList(%s) = %v, want %v", typ, got, want)
		}
	}
}
