package editor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/blockpipe/core/style"
	"golang.org/x/net/html"
)

// data-type values of the custom atoms in flat markup.
const (
	dataLeadParagraph = "lead-paragraph"
	dataStyledQuote   = "styled-quote"
	dataKeyTakeaways  = "key-takeaways"
	dataCalloutBox    = "callout-box"
)

// MarshalHTML serializes nodes to the editor's flat markup. Custom atoms
// become empty <div data-type="..."> elements carrying their attrs.
func MarshalHTML(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch n.Type {
	case TypeParagraph:
		b.WriteString("<p>")
		writeInline(b, n.Content)
		b.WriteString("</p>")
	case TypeHeading:
		level, ok := n.AttrInt("level")
		if !ok || level < 1 || level > 6 {
			level = 2
		}
		fmt.Fprintf(b, "<h%d>", level)
		writeInline(b, n.Content)
		fmt.Fprintf(b, "</h%d>", level)
	case TypeBlockquote:
		b.WriteString("<blockquote>")
		for _, c := range n.Content {
			writeNode(b, c)
		}
		b.WriteString("</blockquote>")
	case TypeBulletList, TypeOrderedList:
		tag := "ul"
		if n.Type == TypeOrderedList {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">")
		for _, c := range n.Content {
			writeNode(b, c)
		}
		b.WriteString("</" + tag + ">")
	case TypeListItem:
		b.WriteString("<li>")
		for _, c := range n.Content {
			writeNode(b, c)
		}
		b.WriteString("</li>")
	case TypeImage:
		b.WriteString("<img")
		writeAttr(b, "src", n.AttrString("src"))
		writeAttr(b, "alt", n.AttrString("alt"))
		if title := n.AttrString("title"); title != "" {
			writeAttr(b, "title", title)
		}
		b.WriteString(">")
	case TypeLeadParagraph:
		writeAtom(b, dataLeadParagraph, "text", n.AttrString("text"))
	case TypeStyledQuote:
		writeAtom(b, dataStyledQuote,
			"quote", n.AttrString("quote"),
			"attribution", n.AttrString("attribution"),
			"style", n.AttrString("style"),
		)
	case TypeKeyTakeaways:
		items := n.AttrStrings("items")
		if items == nil {
			items = []string{}
		}
		raw, _ := json.Marshal(items)
		writeAtom(b, dataKeyTakeaways, "items", string(raw))
	case TypeCalloutBox:
		writeAtom(b, dataCalloutBox,
			"title", n.AttrString("title"),
			"content", n.AttrString("content"),
			"variant", n.AttrString("variant"),
		)
	default:
		// Unknown nodes keep their text so nothing typed is lost.
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(n.InlineText()))
		b.WriteString("</p>")
	}
}

func writeAtom(b *strings.Builder, dataType string, kv ...string) {
	b.WriteString("<div")
	writeAttr(b, "data-type", dataType)
	for i := 0; i+1 < len(kv); i += 2 {
		writeAttr(b, "data-"+kv[i], kv[i+1])
	}
	b.WriteString("></div>")
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
}

func writeInline(b *strings.Builder, runs []Node) {
	for _, r := range runs {
		switch r.Type {
		case TypeText:
			var closers []string
			for _, m := range r.Marks {
				tag, ok := style.EditorMarkTag(m.Type)
				if !ok {
					continue
				}
				b.WriteString("<" + tag + ">")
				closers = append(closers, "</"+tag+">")
			}
			b.WriteString(html.EscapeString(r.Text))
			for i := len(closers) - 1; i >= 0; i-- {
				b.WriteString(closers[i])
			}
		case TypeHardBreak:
			b.WriteString("<br>")
		}
	}
}

// ParseHTML reads the editor's flat markup back into nodes. Unrecognized
// wrapper elements are flattened into their children.
func ParseHTML(markup string) ([]Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing editor markup: %w", err)
	}
	return parseBlocks(doc.Find("body").First()), nil
}

func parseBlocks(sel *goquery.Selection) []Node {
	nodes := []Node{}
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				nodes = append(nodes, Node{Type: TypeParagraph, Content: []Node{{Type: TypeText, Text: n.Data}}})
			}
		case html.ElementNode:
			nodes = append(nodes, parseBlock(s)...)
		}
	})
	return nodes
}

func parseBlock(s *goquery.Selection) []Node {
	name := goquery.NodeName(s)
	switch name {
	case "p":
		return []Node{{Type: TypeParagraph, Content: parseInline(s, nil)}}
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(name[1:])
		return []Node{{
			Type:    TypeHeading,
			Attrs:   map[string]any{"level": level},
			Content: parseInline(s, nil),
		}}
	case "blockquote":
		content := parseBlocks(s)
		if !hasBlockChildren(s) {
			content = []Node{{Type: TypeParagraph, Content: parseInline(s, nil)}}
		}
		return []Node{{Type: TypeBlockquote, Content: content}}
	case "ul", "ol":
		list := Node{Type: TypeBulletList}
		if name == "ol" {
			list.Type = TypeOrderedList
		}
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			list.Content = append(list.Content, parseListItem(li))
		})
		return []Node{list}
	case "img":
		return []Node{{
			Type: TypeImage,
			Attrs: map[string]any{
				"src":   s.AttrOr("src", ""),
				"alt":   s.AttrOr("alt", ""),
				"title": s.AttrOr("title", ""),
			},
		}}
	case "br":
		return nil
	}
	if dataType, ok := s.Attr("data-type"); ok {
		if n, ok := parseAtom(s, dataType); ok {
			return []Node{n}
		}
	}
	return parseBlocks(s)
}

func parseAtom(s *goquery.Selection, dataType string) (Node, bool) {
	switch dataType {
	case dataLeadParagraph:
		text, ok := s.Attr("data-text")
		if !ok {
			text = s.Text()
		}
		return Node{Type: TypeLeadParagraph, Attrs: map[string]any{"text": text}}, true
	case dataStyledQuote:
		return Node{Type: TypeStyledQuote, Attrs: map[string]any{
			"quote":       s.AttrOr("data-quote", ""),
			"attribution": s.AttrOr("data-attribution", ""),
			"style":       s.AttrOr("data-style", ""),
		}}, true
	case dataKeyTakeaways:
		items := []string{}
		if raw, ok := s.Attr("data-items"); ok {
			if err := json.Unmarshal([]byte(raw), &items); err != nil {
				items = []string{}
			}
		}
		if len(items) == 0 {
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				items = append(items, strings.TrimSpace(li.Text()))
			})
		}
		return Node{Type: TypeKeyTakeaways, Attrs: map[string]any{"items": items}}, true
	case dataCalloutBox:
		return Node{Type: TypeCalloutBox, Attrs: map[string]any{
			"title":   s.AttrOr("data-title", ""),
			"content": s.AttrOr("data-content", ""),
			"variant": s.AttrOr("data-variant", ""),
		}}, true
	}
	return Node{}, false
}

func parseListItem(li *goquery.Selection) Node {
	item := Node{Type: TypeListItem}
	if hasBlockChildren(li) {
		item.Content = parseBlocks(li)
	} else {
		item.Content = []Node{{Type: TypeParagraph, Content: parseInline(li, nil)}}
	}
	return item
}

func hasBlockChildren(s *goquery.Selection) bool {
	return s.ChildrenFiltered("p, ul, ol, h1, h2, h3, h4, h5, h6, div, blockquote").Length() > 0
}

// parseInline flattens inline markup into text runs, stacking the marks of
// the enclosing elements outermost first.
func parseInline(s *goquery.Selection, marks []Mark) []Node {
	var runs []Node
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		n := c.Get(0)
		switch n.Type {
		case html.TextNode:
			if n.Data == "" {
				return
			}
			runs = append(runs, Node{Type: TypeText, Text: n.Data, Marks: cloneMarks(marks)})
		case html.ElementNode:
			tag := goquery.NodeName(c)
			switch {
			case tag == "br":
				runs = append(runs, Node{Type: TypeHardBreak})
			case tag == "a":
				link := Mark{Type: "link", Attrs: map[string]any{"href": c.AttrOr("href", "")}}
				if target, ok := c.Attr("target"); ok {
					link.Attrs["target"] = target
				}
				runs = append(runs, parseInline(c, appendMark(marks, link))...)
			default:
				if name, ok := style.EditorMarkFromTag(tag); ok {
					runs = append(runs, parseInline(c, appendMark(marks, Mark{Type: name}))...)
					return
				}
				runs = append(runs, parseInline(c, marks)...)
			}
		}
	})
	return runs
}

func appendMark(marks []Mark, m Mark) []Mark {
	out := make([]Mark, 0, len(marks)+1)
	out = append(out, marks...)
	return append(out, m)
}

func cloneMarks(marks []Mark) []Mark {
	if len(marks) == 0 {
		return nil
	}
	return append([]Mark(nil), marks...)
}
