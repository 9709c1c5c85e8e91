// Package render — HTML renderer.
// Renders normalized blocks to the public page markup using the injected
// class table, so the editor preview and the published page look alike.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/style"
	"golang.org/x/net/html"
)

// HTMLRenderer produces an <article> fragment for one article.
type HTMLRenderer struct {
	classes style.Classes
	assets  core.AssetResolver
}

// NewHTMLRenderer creates an HTMLRenderer. assets may be nil, in which
// case image references are used as URLs verbatim.
func NewHTMLRenderer(classes style.Classes, assets core.AssetResolver) *HTMLRenderer {
	return &HTMLRenderer{classes: classes, assets: assets}
}

// Render wraps the rendered body in an <article> with the title as <h1>.
func (r *HTMLRenderer) Render(a *core.Article) ([]byte, error) {
	var b strings.Builder
	b.WriteString("<article>\n")
	if a.Title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(a.Title))
	}
	b.WriteString(r.RenderBody(a.Body))
	b.WriteString("</article>\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// RenderBody renders blocks only, one top-level element per line.
// Unknown blocks produce nothing.
func (r *HTMLRenderer) RenderBody(doc block.Document) string {
	var b strings.Builder
	for i := 0; i < len(doc); {
		if items := listItems(doc, i); len(items) > 0 {
			for pos := 0; pos < len(items); {
				r.writeList(&b, items, &pos)
				b.WriteString("\n")
			}
			i += len(items)
			continue
		}
		w := htmlVisitor{r: r, b: &b}
		block.Accept(doc[i], &w)
		i++
	}
	return b.String()
}

// listItems returns the run of adjacent list items starting at doc[i].
func listItems(doc block.Document, i int) []block.ListItem {
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

// writeList writes one <ul>/<ol> starting at items[*pos]. Deeper items
// nest inside the open <li>; a shallower item or one of another kind at
// the same depth closes the list.
func (r *HTMLRenderer) writeList(b *strings.Builder, items []block.ListItem, pos *int) {
	first := items[*pos]
	depth := first.ListLevel()
	tag := "ul"
	if first.Kind == block.ListNumber {
		tag = "ol"
	}
	fmt.Fprintf(b, "<%s%s>", tag, classAttr(r.classes.List(first.Kind)))
	open := false
	for *pos < len(items) {
		it := items[*pos]
		level := it.ListLevel()
		if level < depth || (level == depth && it.Kind != first.Kind) {
			break
		}
		if level > depth {
			if !open {
				fmt.Fprintf(b, "<li%s>", classAttr(r.classes.ListItem))
				open = true
			}
			r.writeList(b, items, pos)
			continue
		}
		if open {
			b.WriteString("</li>")
		}
		fmt.Fprintf(b, "<li%s>", classAttr(r.classes.ListItem))
		r.writeSpans(b, it.Children)
		open = true
		*pos++
	}
	if open {
		b.WriteString("</li>")
	}
	fmt.Fprintf(b, "</%s>", tag)
}

// writeSpans writes text runs with their marks, first mark outermost.
// Newlines inside a run become <br>.
func (r *HTMLRenderer) writeSpans(b *strings.Builder, spans []block.Span) {
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		for _, m := range s.Marks {
			r.openMark(b, m)
		}
		lines := strings.Split(s.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteString("<br>")
			}
			b.WriteString(html.EscapeString(line))
		}
		for i := len(s.Marks) - 1; i >= 0; i-- {
			if tag, ok := style.HTMLTag(s.Marks[i].Type); ok {
				fmt.Fprintf(b, "</%s>", tag)
			}
		}
	}
}

func (r *HTMLRenderer) openMark(b *strings.Builder, m block.Mark) {
	tag, ok := style.HTMLTag(m.Type)
	if !ok {
		return
	}
	if m.Type != block.MarkLink {
		fmt.Fprintf(b, "<%s>", tag)
		return
	}
	fmt.Fprintf(b, `<a href="%s"%s`, html.EscapeString(m.Href), classAttr(r.classes.Link))
	if m.OpenInNewTab {
		b.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	b.WriteString(">")
}

func (r *HTMLRenderer) imageURL(ref string) string {
	if r.assets == nil {
		return ref
	}
	if u, ok := r.assets.Resolve(ref); ok {
		return u
	}
	return ""
}

func classAttr(class string) string {
	if class == "" {
		return ""
	}
	return ` class="` + html.EscapeString(class) + `"`
}

// htmlVisitor writes one non-list block.
type htmlVisitor struct {
	r *HTMLRenderer
	b *strings.Builder
}

func (v *htmlVisitor) VisitParagraph(p block.Paragraph) {
	class := v.r.classes.Paragraph
	if p.IsLead() {
		class = v.r.classes.LeadParagraph
	}
	fmt.Fprintf(v.b, "<p%s>", classAttr(class))
	v.r.writeSpans(v.b, p.Children)
	v.b.WriteString("</p>\n")
}

func (v *htmlVisitor) VisitHeading(h block.Heading) {
	level := block.ClampHeadingLevel(h.Level)
	fmt.Fprintf(v.b, "<h%d%s>", level, classAttr(v.r.classes.Heading(level)))
	v.r.writeSpans(v.b, h.Children)
	fmt.Fprintf(v.b, "</h%d>\n", level)
}

func (v *htmlVisitor) VisitBlockquote(q block.Blockquote) {
	fmt.Fprintf(v.b, "<blockquote%s>", classAttr(v.r.classes.Blockquote))
	v.r.writeSpans(v.b, q.Children)
	v.b.WriteString("</blockquote>\n")
}

func (v *htmlVisitor) VisitListItem(li block.ListItem) {
	pos := 0
	v.r.writeList(v.b, []block.ListItem{li}, &pos)
	v.b.WriteString("\n")
}

func (v *htmlVisitor) VisitImage(img block.Image) {
	src := v.r.imageURL(img.AssetRef)
	if src == "" {
		return
	}
	fmt.Fprintf(v.b, "<figure%s>", classAttr(v.r.classes.Image))
	fmt.Fprintf(v.b, `<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(img.Alt))
	if img.Caption != "" {
		fmt.Fprintf(v.b, "<figcaption%s>%s</figcaption>", classAttr(v.r.classes.ImageCaption), html.EscapeString(img.Caption))
	}
	v.b.WriteString("</figure>\n")
}

func (v *htmlVisitor) VisitLeadParagraph(p block.LeadParagraph) {
	fmt.Fprintf(v.b, "<p%s>%s</p>\n", classAttr(v.r.classes.LeadParagraph), html.EscapeString(block.PlainText(p)))
}

func (v *htmlVisitor) VisitStyledQuote(q block.StyledQuote) {
	bundle := v.r.classes.Quote(q.Style)
	fmt.Fprintf(v.b, `<figure data-style="%s"%s>`, html.EscapeString(string(q.Style)), classAttr(bundle.Container))
	fmt.Fprintf(v.b, "<blockquote%s>%s</blockquote>", classAttr(bundle.Body), html.EscapeString(q.Quote))
	if q.Attribution != "" {
		fmt.Fprintf(v.b, "<figcaption%s>%s</figcaption>", classAttr(bundle.Attribution), html.EscapeString(q.Attribution))
	}
	v.b.WriteString("</figure>\n")
}

func (v *htmlVisitor) VisitKeyTakeaways(k block.KeyTakeaways) {
	bundle := v.r.classes.Takeaways
	fmt.Fprintf(v.b, "<aside%s>", classAttr(bundle.Container))
	fmt.Fprintf(v.b, "<h2%s>Key Takeaways</h2>", classAttr(bundle.Title))
	fmt.Fprintf(v.b, "<ul%s>", classAttr(bundle.Body))
	for _, item := range k.Items {
		fmt.Fprintf(v.b, "<li>%s</li>", html.EscapeString(item))
	}
	v.b.WriteString("</ul></aside>\n")
}

func (v *htmlVisitor) VisitCalloutBox(c block.CalloutBox) {
	bundle := v.r.classes.Callout(c.Variant)
	fmt.Fprintf(v.b, `<aside role="note" data-variant="%s"%s>`, html.EscapeString(string(c.Variant)), classAttr(bundle.Container))
	if c.Title != "" {
		fmt.Fprintf(v.b, "<p%s>%s</p>", classAttr(bundle.Title), html.EscapeString(c.Title))
	}
	fmt.Fprintf(v.b, "<p%s>%s</p>", classAttr(bundle.Body), html.EscapeString(c.Content))
	v.b.WriteString("</aside>\n")
}

func (v *htmlVisitor) VisitUnknown(block.Unknown) {}
