// Package editor models the node tree of the interactive block editor:
// ProseMirror-style JSON with typed nodes, attrs, inline text runs and
// marks, plus the flat HTML markup the editor loads and emits.
package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Node types understood by the editing surface.
const (
	TypeDoc           = "doc"
	TypeParagraph     = "paragraph"
	TypeText          = "text"
	TypeHardBreak     = "hardBreak"
	TypeHeading       = "heading"
	TypeBlockquote    = "blockquote"
	TypeBulletList    = "bulletList"
	TypeOrderedList   = "orderedList"
	TypeListItem      = "listItem"
	TypeImage         = "image"
	TypeLeadParagraph = "leadParagraph"
	TypeStyledQuote   = "styledQuote"
	TypeKeyTakeaways  = "keyTakeaways"
	TypeCalloutBox    = "calloutBox"
)

// ErrInvalidDocument is returned when editor JSON is neither a node array
// nor a node object.
var ErrInvalidDocument = errors.New("editor document must be a node array or object")

// Mark is an inline mark on a text run.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node is one editor node. Text and Marks are only set on text runs.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Doc is the root of an editor tree.
type Doc struct {
	Type    string `json:"type"`
	Content []Node `json:"content"`
}

// NewDoc wraps nodes in a doc root.
func NewDoc(nodes ...Node) Doc {
	if nodes == nil {
		nodes = []Node{}
	}
	return Doc{Type: TypeDoc, Content: nodes}
}

// UnmarshalJSON accepts a doc object, a single node object, or a bare
// array of nodes.
func (d *Doc) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return ErrInvalidDocument
	}
	switch trimmed[0] {
	case '[':
		var nodes []Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return err
		}
		*d = NewDoc(nodes...)
		return nil
	case '{':
		var n Node
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		if n.Type == TypeDoc || n.Type == "" {
			*d = NewDoc(n.Content...)
			return nil
		}
		*d = NewDoc(n)
		return nil
	case 'n':
		if string(trimmed) == "null" {
			*d = NewDoc()
			return nil
		}
	}
	return ErrInvalidDocument
}

// Decode reads an editor document.
func Decode(r io.Reader) (Doc, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Doc{}, fmt.Errorf("reading editor document: %w", err)
	}
	var d Doc
	if err := json.Unmarshal(data, &d); err != nil {
		return Doc{}, fmt.Errorf("decoding editor document: %w", err)
	}
	return d, nil
}

// Encode writes d as JSON.
func Encode(w io.Writer, d Doc) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// Attr returns a raw attribute value.
func (n Node) Attr(key string) (any, bool) {
	if n.Attrs == nil {
		return nil, false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// AttrString returns a string attribute, or "" when missing or not a string.
func (n Node) AttrString(key string) string {
	v, _ := n.Attr(key)
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return ""
}

// AttrInt returns an integer attribute. JSON numbers and numeric strings
// are accepted.
func (n Node) AttrInt(key string) (int, bool) {
	v, _ := n.Attr(key)
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	case json.Number:
		i, err := x.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(x)
		return i, err == nil
	}
	return 0, false
}

// AttrStrings returns a string-list attribute. Non-string entries are
// skipped; a missing attribute yields nil.
func (n Node) AttrStrings(key string) []string {
	v, _ := n.Attr(key)
	switch x := v.(type) {
	case []string:
		return append([]string(nil), x...)
	case []any:
		out := make([]string, 0, len(x))
		for _, it := range x {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// IsList reports whether n is a bullet or ordered list.
func (n Node) IsList() bool {
	return n.Type == TypeBulletList || n.Type == TypeOrderedList
}

// InlineText concatenates the text of n's runs, hard breaks as newlines.
func (n Node) InlineText() string {
	var buf bytes.Buffer
	for _, c := range n.Content {
		switch c.Type {
		case TypeText:
			buf.WriteString(c.Text)
		case TypeHardBreak:
			buf.WriteByte('\n')
		default:
			buf.WriteString(c.InlineText())
		}
	}
	return buf.String()
}
