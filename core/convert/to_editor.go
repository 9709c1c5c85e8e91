package convert

import (
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/editor"
	"github.com/gaurav-prasanna/blockpipe/core/normalize"
	"github.com/gaurav-prasanna/blockpipe/core/style"
)

// ToEditorTree normalizes doc and maps every block to one editor node.
// Runs of adjacent list items become a single list node. The result
// always holds at least one node.
func (c *Converter) ToEditorTree(doc block.Document) editor.Doc {
	blocks := normalize.Normalize(doc)
	nodes := make([]editor.Node, 0, len(blocks)+1)
	for i := 0; i < len(blocks); {
		if items := listRun(blocks, i); len(items) > 0 {
			for pos := 0; pos < len(items); {
				nodes = append(nodes, buildList(items, &pos, 1))
			}
			i += len(items)
			continue
		}
		v := nodeVisitor{c: c}
		block.Accept(blocks[i], &v)
		nodes = append(nodes, v.node)
		i++
	}
	if len(nodes) == 0 {
		nodes = append(nodes, editor.Node{Type: editor.TypeParagraph})
	}
	return editor.NewDoc(nodes...)
}

// listRun returns the adjacent list items starting at doc[i].
func listRun(doc block.Document, i int) []block.ListItem {
	var items []block.ListItem
	for ; i < len(doc); i++ {
		li, ok := doc[i].(block.ListItem)
		if !ok {
			break
		}
		items = append(items, li)
	}
	return items
}

// buildList consumes items from *pos into one list at the given depth,
// taking its kind from the first item. Deeper items nest under the
// preceding item; when there is none, or the level jumps by more than one,
// an item holding only the sub-list keeps the depth. A shallower item or a
// sibling of another kind ends the list.
func buildList(items []block.ListItem, pos *int, depth int) editor.Node {
	kind := items[*pos].Kind
	list := editor.Node{Type: listNodeType(kind)}
	for *pos < len(items) {
		it := items[*pos]
		level := it.ListLevel()
		switch {
		case level < depth:
			return list
		case level == depth:
			if it.Kind != kind {
				return list
			}
			list.Content = append(list.Content, editor.Node{
				Type:    editor.TypeListItem,
				Content: []editor.Node{paragraphNode(it.Children)},
			})
			*pos++
		default:
			if len(list.Content) == 0 {
				list.Content = append(list.Content, editor.Node{Type: editor.TypeListItem})
			}
			last := &list.Content[len(list.Content)-1]
			last.Content = append(last.Content, buildList(items, pos, depth+1))
		}
	}
	return list
}

func listNodeType(kind block.ListKind) string {
	if kind == block.ListNumber {
		return editor.TypeOrderedList
	}
	return editor.TypeBulletList
}

func paragraphNode(spans []block.Span) editor.Node {
	return editor.Node{Type: editor.TypeParagraph, Content: textRuns(spans)}
}

// textRuns converts spans to text runs. The editor rejects empty text
// nodes, so empty spans produce no run.
func textRuns(spans []block.Span) []editor.Node {
	var runs []editor.Node
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		runs = append(runs, editor.Node{Type: editor.TypeText, Text: s.Text, Marks: editorMarks(s.Marks)})
	}
	return runs
}

func editorMarks(marks []block.Mark) []editor.Mark {
	var out []editor.Mark
	for _, m := range marks {
		if name, ok := style.EditorMark(m.Type); ok {
			out = append(out, editor.Mark{Type: name})
		}
	}
	return out
}

// nodeVisitor maps a single non-list block to its editor node.
type nodeVisitor struct {
	c    *Converter
	node editor.Node
}

func (v *nodeVisitor) VisitParagraph(b block.Paragraph) {
	if b.IsLead() {
		v.node = leadNode(block.Text(b.Children))
		return
	}
	v.node = paragraphNode(b.Children)
}

func (v *nodeVisitor) VisitHeading(b block.Heading) {
	v.node = editor.Node{
		Type:    editor.TypeHeading,
		Attrs:   map[string]any{"level": block.ClampHeadingLevel(b.Level)},
		Content: textRuns(b.Children),
	}
}

func (v *nodeVisitor) VisitBlockquote(b block.Blockquote) {
	v.node = editor.Node{Type: editor.TypeBlockquote, Content: []editor.Node{paragraphNode(b.Children)}}
}

// VisitListItem handles a list item outside a run, which ToEditorTree
// never produces; it still yields a well-formed one-item list.
func (v *nodeVisitor) VisitListItem(b block.ListItem) {
	pos := 0
	v.node = buildList([]block.ListItem{b}, &pos, 1)
}

func (v *nodeVisitor) VisitImage(b block.Image) {
	v.node = editor.Node{
		Type: editor.TypeImage,
		Attrs: map[string]any{
			"src":   v.c.resolve(b.AssetRef),
			"alt":   b.Alt,
			"title": b.Caption,
		},
	}
}

// VisitLeadParagraph covers un-normalized input; Normalize has already
// rewritten these to lead paragraphs.
func (v *nodeVisitor) VisitLeadParagraph(b block.LeadParagraph) {
	v.node = leadNode(block.PlainText(b))
}

func (v *nodeVisitor) VisitStyledQuote(b block.StyledQuote) {
	v.node = editor.Node{
		Type: editor.TypeStyledQuote,
		Attrs: map[string]any{
			"quote":       b.Quote,
			"attribution": b.Attribution,
			"style":       string(b.Style),
		},
	}
}

func (v *nodeVisitor) VisitKeyTakeaways(b block.KeyTakeaways) {
	items := append([]string{}, b.Items...)
	v.node = editor.Node{Type: editor.TypeKeyTakeaways, Attrs: map[string]any{"items": items}}
}

func (v *nodeVisitor) VisitCalloutBox(b block.CalloutBox) {
	v.node = editor.Node{
		Type: editor.TypeCalloutBox,
		Attrs: map[string]any{
			"title":   b.Title,
			"content": b.Content,
			"variant": string(b.Variant),
		},
	}
}

func (v *nodeVisitor) VisitUnknown(block.Unknown) {
	v.node = editor.Node{Type: editor.TypeParagraph}
}

func leadNode(text string) editor.Node {
	return editor.Node{Type: editor.TypeLeadParagraph, Attrs: map[string]any{"text": text}}
}
