// Package render — JSON renderer.
// Builds the structured JSON summary of an article: metadata, readable
// text, an excerpt, heading-delimited sections and structure counts.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/excerpt"
)

// JSONRenderer produces the article summary used by listing pages.
type JSONRenderer struct {
	excerpter *excerpt.Excerpter
}

// NewJSONRenderer creates a JSONRenderer whose excerpt keeps at most
// excerptWords words (40 if excerptWords <= 0).
func NewJSONRenderer(excerptWords int) *JSONRenderer {
	return &JSONRenderer{excerpter: excerpt.New(excerptWords)}
}

// Render summarizes the article as indented JSON.
func (r *JSONRenderer) Render(a *core.Article) ([]byte, error) {
	data, err := json.MarshalIndent(r.Summarize(a), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Summarize builds the summary value without encoding it.
func (r *JSONRenderer) Summarize(a *core.Article) core.ArticleJSON {
	s := summaryVisitor{
		structure: core.ArticleStructure{
			Headings: []core.Heading{},
			Links:    []core.Link{},
		},
	}
	block.Walk(a.Body, &s)
	s.flush()

	sections := s.sections
	if sections == nil {
		sections = []core.Section{}
	}
	return core.ArticleJSON{
		Metadata: a.Metadata(),
		Content: core.ArticleContent{
			Text:     excerpt.Text(a.Body),
			Excerpt:  r.excerpter.Excerpt(a.Body),
			Sections: sections,
		},
		Structure: s.structure,
	}
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// summaryVisitor collects headings, links, counts and sections in one walk.
type summaryVisitor struct {
	structure core.ArticleStructure
	sections  []core.Section
	current   *core.Section
	lines     []string
}

func (s *summaryVisitor) text(t string) {
	if t = strings.TrimSpace(t); t != "" && s.current != nil {
		s.lines = append(s.lines, t)
	}
}

func (s *summaryVisitor) flush() {
	if s.current == nil {
		return
	}
	s.current.Text = strings.Join(s.lines, "\n")
	s.sections = append(s.sections, *s.current)
	s.current, s.lines = nil, nil
}

func (s *summaryVisitor) links(spans []block.Span) {
	for _, sp := range spans {
		for _, m := range sp.Marks {
			if m.Type == block.MarkLink && m.Href != "" {
				s.structure.Links = append(s.structure.Links, core.Link{
					Text:         sp.Text,
					Href:         m.Href,
					OpenInNewTab: m.OpenInNewTab,
				})
			}
		}
	}
}

func (s *summaryVisitor) VisitParagraph(b block.Paragraph) {
	s.links(b.Children)
	s.text(block.Text(b.Children))
}

func (s *summaryVisitor) VisitHeading(b block.Heading) {
	s.flush()
	h := core.Heading{Level: block.ClampHeadingLevel(b.Level), Text: strings.TrimSpace(block.Text(b.Children))}
	s.structure.Headings = append(s.structure.Headings, h)
	s.links(b.Children)
	s.current = &core.Section{Heading: h.Text, Level: h.Level}
}

func (s *summaryVisitor) VisitBlockquote(b block.Blockquote) {
	s.structure.Quotes++
	s.links(b.Children)
	s.text(block.Text(b.Children))
}

// VisitListItem counts items, not lists.
func (s *summaryVisitor) VisitListItem(b block.ListItem) {
	s.structure.Lists++
	s.links(b.Children)
	s.text(block.Text(b.Children))
}

func (s *summaryVisitor) VisitImage(b block.Image) {
	s.structure.Images++
	s.text(b.Caption)
}

func (s *summaryVisitor) VisitLeadParagraph(b block.LeadParagraph) {
	s.links(b.Children)
	s.text(block.PlainText(b))
}

func (s *summaryVisitor) VisitStyledQuote(b block.StyledQuote) {
	s.structure.Quotes++
	s.text(b.Quote)
}

func (s *summaryVisitor) VisitKeyTakeaways(b block.KeyTakeaways) {
	s.structure.Takeaways++
	s.text(strings.Join(b.Items, "\n"))
}

func (s *summaryVisitor) VisitCalloutBox(b block.CalloutBox) {
	s.structure.Callouts++
	s.text(block.PlainText(b))
}

func (s *summaryVisitor) VisitUnknown(block.Unknown) {}
