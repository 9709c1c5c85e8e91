// Package style holds the fixed lookup tables shared by the converter and
// the renderers: how each mark is spelled in the editor and in HTML, and
// which class names give each block kind and variant its look.
//
// The tables are values. Nothing here is mutable process state; renderers
// receive a Classes value by injection.
package style

import "github.com/gaurav-prasanna/blockpipe/core/block"

type markEntry struct {
	mark    block.MarkType
	editor  string // editor mark name; empty when the editor carries no equivalent
	htmlTag string
}

var markTable = [...]markEntry{
	{block.MarkBold, "bold", "strong"},
	{block.MarkItalic, "italic", "em"},
	{block.MarkUnderline, "underline", "u"},
	// Links carry an href the editor tree has no annotation slot for.
	{block.MarkLink, "", "a"},
}

// Tags browsers and older editor markup use for the same emphasis.
var htmlAliases = map[string]string{
	"b": "strong",
	"i": "em",
}

// EditorMark returns the editor mark name for t.
func EditorMark(t block.MarkType) (string, bool) {
	for _, e := range markTable {
		if e.mark == t && e.editor != "" {
			return e.editor, true
		}
	}
	return "", false
}

// FromEditorMark maps an editor mark name back to a mark type.
func FromEditorMark(name string) (block.MarkType, bool) {
	if name == "" {
		return "", false
	}
	for _, e := range markTable {
		if e.editor == name {
			return e.mark, true
		}
	}
	return "", false
}

// HTMLTag returns the element used to render t.
func HTMLTag(t block.MarkType) (string, bool) {
	for _, e := range markTable {
		if e.mark == t {
			return e.htmlTag, true
		}
	}
	return "", false
}

// FromHTMLTag maps an element name to a mark type, accepting b and i.
func FromHTMLTag(tag string) (block.MarkType, bool) {
	if canonical, ok := htmlAliases[tag]; ok {
		tag = canonical
	}
	for _, e := range markTable {
		if e.htmlTag == tag {
			return e.mark, true
		}
	}
	return "", false
}

// EditorMarkTag returns the element for an editor mark name.
func EditorMarkTag(name string) (string, bool) {
	t, ok := FromEditorMark(name)
	if !ok {
		return "", false
	}
	return HTMLTag(t)
}

// EditorMarkFromTag returns the editor mark name for an element.
func EditorMarkFromTag(tag string) (string, bool) {
	t, ok := FromHTMLTag(tag)
	if !ok {
		return "", false
	}
	return EditorMark(t)
}
