// Package render — PDF renderer.
// Lays out normalized blocks with gofpdf: headings at decreasing sizes,
// inline marks as font styles, and the custom blocks as tinted panels
// in their accent colours.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/style"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFont     = "Helvetica"
	pdfBodySize = 10.5
	pdfLineH    = 5.5
)

var headingSizes = map[int]float64{2: 16, 3: 13.5, 4: 12}

// PDFRenderer renders an article as a PDF document. Images are not
// embedded; their captions are printed in their place.
type PDFRenderer struct {
	classes style.Classes
}

// NewPDFRenderer creates a PDFRenderer taking its colours from classes.
func NewPDFRenderer(classes style.Classes) *PDFRenderer {
	return &PDFRenderer{classes: classes}
}

// Render lays out the article and returns the PDF bytes.
func (r *PDFRenderer) Render(a *core.Article) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(a.Title, true)
	pdf.AddPage()

	w := pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), classes: r.classes}

	if a.Title != "" {
		pdf.SetFont(pdfFont, "B", 20)
		pdf.MultiCell(0, 9, w.tr(a.Title), "", "L", false)
		pdf.Ln(2)
	}
	if a.PublishedAt != "" {
		pdf.SetFont(pdfFont, "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Published "+a.PublishedAt), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	block.Walk(a.Body, &w)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// pdfWriter is the block visitor doing the layout.
type pdfWriter struct {
	pdf     *gofpdf.Fpdf
	tr      func(string) string
	classes style.Classes
	number  int // running counter within a numbered list
}

// spans writes text runs inline, mapping marks to font styles.
func (w *pdfWriter) spans(spans []block.Span, size float64) {
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		var st strings.Builder
		href := ""
		for _, m := range s.Marks {
			switch m.Type {
			case block.MarkBold:
				st.WriteString("B")
			case block.MarkItalic:
				st.WriteString("I")
			case block.MarkUnderline:
				st.WriteString("U")
			case block.MarkLink:
				href = m.Href
			}
		}
		w.pdf.SetFont(pdfFont, st.String(), size)
		if href != "" {
			w.pdf.SetTextColor(15, 118, 110)
			w.pdf.WriteLinkString(pdfLineH, w.tr(s.Text), href)
			w.pdf.SetTextColor(0, 0, 0)
			continue
		}
		w.pdf.Write(pdfLineH, w.tr(s.Text))
	}
	w.pdf.Ln(pdfLineH)
}

// panel draws a tinted box with a left accent bar around text lines.
func (w *pdfWriter) panel(b style.Bundle, title string, lines []string, italic bool) {
	w.pdf.Ln(2)
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	width := pageW - left - right

	w.pdf.SetFillColor(b.Fill.R, b.Fill.G, b.Fill.B)
	w.pdf.SetDrawColor(b.Accent.R, b.Accent.G, b.Accent.B)
	top := w.pdf.GetY()

	w.pdf.SetLeftMargin(left + 4)
	w.pdf.SetX(left + 4)
	if title != "" {
		w.pdf.SetFont(pdfFont, "B", pdfBodySize+0.5)
		w.pdf.MultiCell(width-8, pdfLineH+0.5, w.tr(title), "", "L", true)
	}
	fontStyle := ""
	if italic {
		fontStyle = "I"
	}
	w.pdf.SetFont(pdfFont, fontStyle, pdfBodySize)
	for _, line := range lines {
		w.pdf.MultiCell(width-8, pdfLineH, w.tr(line), "", "L", true)
	}
	w.pdf.SetLeftMargin(left)

	bottom := w.pdf.GetY()
	if bottom > top {
		w.pdf.SetLineWidth(1.2)
		w.pdf.Line(left+1, top, left+1, bottom)
		w.pdf.SetLineWidth(0.2)
	}
	w.pdf.SetDrawColor(0, 0, 0)
	w.pdf.Ln(4)
}

func (w *pdfWriter) VisitParagraph(b block.Paragraph) {
	w.number = 0
	size := pdfBodySize
	if b.IsLead() {
		size = pdfBodySize + 2
	}
	w.spans(b.Children, size)
	w.pdf.Ln(2)
}

func (w *pdfWriter) VisitHeading(b block.Heading) {
	w.number = 0
	size := headingSizes[block.ClampHeadingLevel(b.Level)]
	w.pdf.Ln(4)
	w.pdf.SetFont(pdfFont, "B", size)
	w.pdf.MultiCell(0, size*0.55, w.tr(block.Text(b.Children)), "", "L", false)
	w.pdf.Ln(2)
}

func (w *pdfWriter) VisitBlockquote(b block.Blockquote) {
	w.number = 0
	w.panel(w.classes.Quote(block.QuoteTeal), "", []string{block.Text(b.Children)}, true)
}

func (w *pdfWriter) VisitListItem(b block.ListItem) {
	indent := float64(b.ListLevel()-1) * 6
	left, _, _, _ := w.pdf.GetMargins()
	bullet := "- "
	if b.Kind == block.ListNumber {
		w.number++
		bullet = fmt.Sprintf("%d. ", w.number)
	} else {
		w.number = 0
	}
	w.pdf.SetX(left + indent)
	w.pdf.SetFont(pdfFont, "", pdfBodySize)
	w.pdf.Write(pdfLineH, bullet)
	w.spans(b.Children, pdfBodySize)
}

func (w *pdfWriter) VisitImage(b block.Image) {
	w.number = 0
	text := b.Caption
	if text == "" {
		text = b.Alt
	}
	if text == "" {
		return
	}
	w.pdf.SetFont(pdfFont, "I", 9)
	w.pdf.SetTextColor(100, 100, 100)
	w.pdf.MultiCell(0, 5, w.tr("[Image] "+text), "", "C", false)
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(2)
}

func (w *pdfWriter) VisitLeadParagraph(b block.LeadParagraph) {
	w.VisitParagraph(block.Paragraph{Style: block.StyleLead, Children: []block.Span{block.PlainSpan(block.PlainText(b))}})
}

func (w *pdfWriter) VisitStyledQuote(b block.StyledQuote) {
	w.number = 0
	lines := []string{"“" + b.Quote + "”"}
	if b.Attribution != "" {
		lines = append(lines, "- "+b.Attribution)
	}
	w.panel(w.classes.Quote(b.Style), "", lines, true)
}

func (w *pdfWriter) VisitKeyTakeaways(b block.KeyTakeaways) {
	w.number = 0
	lines := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		lines = append(lines, "- "+item)
	}
	w.panel(w.classes.Takeaways, "Key Takeaways", lines, false)
}

func (w *pdfWriter) VisitCalloutBox(b block.CalloutBox) {
	w.number = 0
	w.panel(w.classes.Callout(b.Variant), b.Title, []string{b.Content}, false)
}

func (w *pdfWriter) VisitUnknown(block.Unknown) {}
