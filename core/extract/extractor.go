// Package extract isolates the article content of a full HTML page so it
// can be parsed as editor markup. It:
//  1. Finds the best content container (<main>, <article>, or <body>)
//  2. Removes noise elements (nav, footer, scripts, forms, etc.)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before extraction.
// These contribute no meaningful content to an article body.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "aside:not([data-type])",
	"iframe", "video", "audio", "object", "embed",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// Result is the extracted article.
type Result struct {
	Title string
	HTML  string // inner markup of the content container
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes a full page or a fragment and returns its main content.
// The title comes from <title>, falling back to the first <h1>; an <h1>
// used as the title is dropped from the content.
func (e *HTMLExtractor) Extract(page string) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return Result{}, fmt.Errorf("parsing HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())

	// Remove noise elements first (operates on the whole document).
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// Find the best content container in priority order.
	// <main> is the most semantically correct, then <article>, then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return Result{}, fmt.Errorf("no content container found in HTML")
	}

	// A page-level <header> usually repeats the title and byline.
	content.Find("header").Remove()
	if h1 := content.Find("h1").First(); h1.Length() > 0 {
		if title == "" {
			title = strings.TrimSpace(h1.Text())
		}
		if strings.TrimSpace(h1.Text()) == title {
			h1.Remove()
		}
	}

	markup, err := content.Html()
	if err != nil {
		return Result{}, fmt.Errorf("serializing content: %w", err)
	}
	return Result{Title: title, HTML: strings.TrimSpace(markup)}, nil
}
