package block

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//
// Errors (typed + path aware)
//

var (
	ErrMissingType     = errors.New("missing _type")
	ErrInvalidType     = errors.New("invalid _type")
	ErrExpectedObject  = errors.New("expected JSON object")
	ErrExpectedArray   = errors.New("expected JSON array")
	ErrInvalidMarks    = errors.New("marks must be an array of strings")
	ErrUnexpectedToken = errors.New("unexpected JSON token")
)

// Error reports where in a document decoding failed.
type Error struct {
	Op   string // "decode", "block", "span", "markDef"
	Path string // e.g. "[3].children[1].marks"
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("block %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("block %s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

// Portable Text decorators for the non-link marks.
var (
	decoratorMarks = map[string]MarkType{
		"strong":    MarkBold,
		"em":        MarkItalic,
		"underline": MarkUnderline,
	}
	markDecorators = map[MarkType]string{
		MarkBold:      "strong",
		MarkItalic:    "em",
		MarkUnderline: "underline",
	}
)

//
// Decoding
//

// Decode parses a stored Portable Text array into a Document.
// Only structurally broken input fails: every node needs a string _type,
// children and markDefs must be arrays, marks must be strings. Anything
// else degrades softly (unknown styles become normal paragraphs, unknown
// decorators are dropped, unknown _types decode as Unknown).
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, wrap("decode", "", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, wrap("decode", "", fmt.Errorf("%w: expected '['", ErrUnexpectedToken))
	}

	doc := Document{}
	for i := 0; dec.More(); i++ {
		path := fmt.Sprintf("[%d]", i)
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return nil, wrap("decode", path, err)
		}
		if obj == nil {
			return nil, wrap("block", path, ErrExpectedObject)
		}
		b, err := parseBlock(obj, path)
		if err != nil {
			return nil, err
		}
		doc = append(doc, b)
	}

	tok, err = dec.Token()
	if err != nil {
		return nil, wrap("decode", "", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != ']' {
		return nil, wrap("decode", "", fmt.Errorf("%w: expected ']'", ErrUnexpectedToken))
	}
	return doc, nil
}

// DecodeString is a convenience wrapper for Decode.
func DecodeString(s string) (Document, error) {
	return Decode(strings.NewReader(s))
}

func parseBlock(obj map[string]any, path string) (Block, error) {
	t, ok := obj["_type"]
	if !ok {
		return nil, wrap("block", path, ErrMissingType)
	}
	typ, ok := t.(string)
	if !ok || typ == "" {
		return nil, wrap("block", path, ErrInvalidType)
	}
	key := stringField(obj, "_key")

	switch typ {
	case "block":
		return parseTextBlock(obj, key, path)
	case "image":
		img := Image{Key: key, Alt: stringField(obj, "alt"), Caption: stringField(obj, "caption")}
		if asset, ok := obj["asset"].(map[string]any); ok {
			img.AssetRef = stringField(asset, "_ref")
		}
		return img, nil
	case string(KindLeadParagraph):
		lead := LeadParagraph{Key: key, Text: stringField(obj, "text")}
		if _, ok := obj["children"]; ok {
			defs, err := parseMarkDefs(obj["markDefs"], path+".markDefs")
			if err != nil {
				return nil, err
			}
			children, err := parseSpans(obj["children"], defs, path+".children")
			if err != nil {
				return nil, err
			}
			lead.Children = children
		}
		return lead, nil
	case string(KindStyledQuote):
		st, ok := ParseQuoteStyle(stringField(obj, "style"))
		if !ok {
			st = QuoteTeal
		}
		return StyledQuote{
			Key:         key,
			Quote:       stringField(obj, "quote"),
			Attribution: stringField(obj, "attribution"),
			Style:       st,
		}, nil
	case string(KindKeyTakeaways):
		items := []string{}
		if arr, ok := obj["items"].([]any); ok {
			for _, it := range arr {
				if s, ok := it.(string); ok {
					items = append(items, s)
				}
			}
		}
		return KeyTakeaways{Key: key, Items: items}, nil
	case string(KindCalloutBox):
		variant, ok := ParseCalloutVariant(stringField(obj, "variant"))
		if !ok {
			variant = CalloutInfo
		}
		return CalloutBox{
			Key:     key,
			Title:   stringField(obj, "title"),
			Content: stringField(obj, "content"),
			Variant: variant,
		}, nil
	}

	raw := make(map[string]any, len(obj))
	for k, v := range obj {
		if k == "_type" || k == "_key" {
			continue
		}
		raw[k] = v
	}
	return Unknown{Key: key, Type: typ, Raw: raw}, nil
}

func parseTextBlock(obj map[string]any, key, path string) (Block, error) {
	defs, err := parseMarkDefs(obj["markDefs"], path+".markDefs")
	if err != nil {
		return nil, err
	}
	children, err := parseSpans(obj["children"], defs, path+".children")
	if err != nil {
		return nil, err
	}

	if li := stringField(obj, "listItem"); li != "" {
		kind, ok := ParseListKind(li)
		if !ok {
			kind = ListBullet
		}
		level, ok := intField(obj, "level")
		if !ok || level < 1 {
			level = 1
		}
		return ListItem{Key: key, Kind: kind, Level: level, Children: children}, nil
	}

	style := stringField(obj, "style")
	switch {
	case style == string(StyleLead):
		return Paragraph{Key: key, Style: StyleLead, Children: children}, nil
	case style == "blockquote":
		return Blockquote{Key: key, Children: children}, nil
	case len(style) == 2 && style[0] == 'h' && style[1] >= '1' && style[1] <= '6':
		return Heading{Key: key, Level: ClampHeadingLevel(int(style[1] - '0')), Children: children}, nil
	}
	return Paragraph{Key: key, Style: StyleNormal, Children: children}, nil
}

func parseSpans(v any, defs map[string]Mark, path string) ([]Span, error) {
	if v == nil {
		return []Span{}, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, wrap("block", path, ErrExpectedArray)
	}
	out := make([]Span, 0, len(arr))
	for i, item := range arr {
		spath := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, wrap("span", spath, ErrExpectedObject)
		}
		t, ok := obj["_type"]
		if !ok {
			return nil, wrap("span", spath, ErrMissingType)
		}
		if ts, ok := t.(string); !ok || ts == "" {
			return nil, wrap("span", spath, ErrInvalidType)
		} else if ts != "span" {
			// Inline objects have no place in the vocabulary.
			continue
		}
		marks, err := parseMarks(obj["marks"], defs, spath+".marks")
		if err != nil {
			return nil, err
		}
		out = append(out, Span{Text: stringField(obj, "text"), Marks: marks})
	}
	return out, nil
}

func parseMarks(v any, defs map[string]Mark, path string) ([]Mark, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, wrap("span", path, ErrInvalidMarks)
	}
	var marks []Mark
	for _, it := range arr {
		name, ok := it.(string)
		if !ok {
			return nil, wrap("span", path, ErrInvalidMarks)
		}
		if mt, ok := decoratorMarks[name]; ok {
			marks = append(marks, Mark{Type: mt})
			continue
		}
		if m, ok := defs[name]; ok {
			marks = append(marks, m)
		}
	}
	return marks, nil
}

func parseMarkDefs(v any, path string) (map[string]Mark, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, wrap("block", path, ErrExpectedArray)
	}
	defs := make(map[string]Mark, len(arr))
	for i, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, wrap("markDef", fmt.Sprintf("%s[%d]", path, i), ErrExpectedObject)
		}
		if stringField(obj, "_type") != "link" {
			continue
		}
		blank, _ := obj["blank"].(bool)
		if nt, ok := obj["openInNewTab"].(bool); ok {
			blank = blank || nt
		}
		defs[stringField(obj, "_key")] = Link(stringField(obj, "href"), blank)
	}
	return defs, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func intField(obj map[string]any, key string) (int, bool) {
	switch x := obj[key].(type) {
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		return int(x), true
	case string:
		i, err := strconv.Atoi(x)
		return i, err == nil
	}
	return 0, false
}

//
// Encoding
//

type wireSpan struct {
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks"`
}

type wireMarkDef struct {
	Key   string `json:"_key"`
	Type  string `json:"_type"`
	Href  string `json:"href"`
	Blank bool   `json:"blank,omitempty"`
}

type wireTextBlock struct {
	Type     string        `json:"_type"`
	Key      string        `json:"_key,omitempty"`
	Style    string        `json:"style"`
	ListItem string        `json:"listItem,omitempty"`
	Level    int           `json:"level,omitempty"`
	Children []wireSpan    `json:"children"`
	MarkDefs []wireMarkDef `json:"markDefs"`
}

type wireRef struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

type wireImage struct {
	Type    string   `json:"_type"`
	Key     string   `json:"_key,omitempty"`
	Asset   *wireRef `json:"asset,omitempty"`
	Alt     string   `json:"alt,omitempty"`
	Caption string   `json:"caption,omitempty"`
}

type wireLead struct {
	Type     string        `json:"_type"`
	Key      string        `json:"_key,omitempty"`
	Text     string        `json:"text"`
	Children []wireSpan    `json:"children,omitempty"`
	MarkDefs []wireMarkDef `json:"markDefs,omitempty"`
}

type wireQuote struct {
	Type        string `json:"_type"`
	Key         string `json:"_key,omitempty"`
	Quote       string `json:"quote"`
	Attribution string `json:"attribution,omitempty"`
	Style       string `json:"style"`
}

type wireTakeaways struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Items []string `json:"items"`
}

type wireCallout struct {
	Type    string `json:"_type"`
	Key     string `json:"_key,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Variant string `json:"variant"`
}

// Encode writes doc as a Portable Text array. It never mutates doc.
func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(toWire(doc))
}

// EncodeString is a convenience wrapper for Encode.
func EncodeString(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MarshalJSON encodes the document as Portable Text.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a Portable Text array. JSON null yields nil.
func (d *Document) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*d = nil
		return nil
	}
	doc, err := Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

func toWire(doc Document) []any {
	out := make([]any, 0, len(doc))
	for _, b := range doc {
		if w := wireBlock(b); w != nil {
			out = append(out, w)
		}
	}
	return out
}

func wireBlock(b Block) any {
	switch x := b.(type) {
	case Paragraph:
		st := x.Style
		if st == "" {
			st = StyleNormal
		}
		return textBlock(x.Key, string(st), x.Children)
	case Heading:
		return textBlock(x.Key, fmt.Sprintf("h%d", ClampHeadingLevel(x.Level)), x.Children)
	case Blockquote:
		return textBlock(x.Key, "blockquote", x.Children)
	case ListItem:
		w := textBlock(x.Key, string(StyleNormal), x.Children)
		kind := x.Kind
		if kind == "" {
			kind = ListBullet
		}
		w.ListItem = string(kind)
		w.Level = x.ListLevel()
		return w
	case Image:
		w := wireImage{Type: "image", Key: x.Key, Alt: x.Alt, Caption: x.Caption}
		if x.AssetRef != "" {
			w.Asset = &wireRef{Type: "reference", Ref: x.AssetRef}
		}
		return w
	case LeadParagraph:
		w := wireLead{Type: string(KindLeadParagraph), Key: x.Key, Text: x.Text}
		if len(x.Children) > 0 {
			w.Children, w.MarkDefs = wireSpans(x.Children)
		}
		return w
	case StyledQuote:
		st := x.Style
		if st == "" {
			st = QuoteTeal
		}
		return wireQuote{Type: string(KindStyledQuote), Key: x.Key, Quote: x.Quote, Attribution: x.Attribution, Style: string(st)}
	case KeyTakeaways:
		items := x.Items
		if items == nil {
			items = []string{}
		}
		return wireTakeaways{Type: string(KindKeyTakeaways), Key: x.Key, Items: items}
	case CalloutBox:
		v := x.Variant
		if v == "" {
			v = CalloutInfo
		}
		return wireCallout{Type: string(KindCalloutBox), Key: x.Key, Title: x.Title, Content: x.Content, Variant: string(v)}
	case Unknown:
		m := make(map[string]any, len(x.Raw)+2)
		for k, v := range x.Raw {
			m[k] = v
		}
		m["_type"] = x.Type
		if x.Key != "" {
			m["_key"] = x.Key
		}
		return m
	}
	return nil
}

func textBlock(key, style string, spans []Span) wireTextBlock {
	children, defs := wireSpans(spans)
	return wireTextBlock{Type: "block", Key: key, Style: style, Children: children, MarkDefs: defs}
}

// wireSpans encodes spans, hoisting link marks into markDefs. Identical
// links share one markDef.
func wireSpans(spans []Span) ([]wireSpan, []wireMarkDef) {
	children := make([]wireSpan, 0, len(spans))
	defs := []wireMarkDef{}
	seen := map[Mark]string{}
	for _, s := range spans {
		marks := make([]string, 0, len(s.Marks))
		for _, m := range s.Marks {
			if m.Type != MarkLink {
				if name, ok := markDecorators[m.Type]; ok {
					marks = append(marks, name)
				}
				continue
			}
			key, ok := seen[m]
			if !ok {
				key = fmt.Sprintf("link%d", len(defs))
				seen[m] = key
				defs = append(defs, wireMarkDef{Key: key, Type: "link", Href: m.Href, Blank: m.OpenInNewTab})
			}
			marks = append(marks, key)
		}
		children = append(children, wireSpan{Type: "span", Text: s.Text, Marks: marks})
	}
	return children, defs
}
