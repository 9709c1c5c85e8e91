// Package excerpt derives plain-text summaries from block documents.
// Uses a simple whitespace tokenizer (words ≈ tokens).
package excerpt

import (
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core/block"
)

const defaultWords = 40

// Excerpter cuts a document's text to a fixed number of words.
type Excerpter struct {
	Words int // number of words kept
}

// New creates an Excerpter with the given word budget.
// Defaults to 40 if words <= 0.
func New(words int) *Excerpter {
	if words <= 0 {
		words = defaultWords
	}
	return &Excerpter{Words: words}
}

// Text returns the plain text of every block, one block per line.
// Blocks without text (uncaptioned images, unknown blocks) are skipped.
func Text(doc block.Document) string {
	var lines []string
	for _, b := range doc {
		if t := strings.TrimSpace(block.PlainText(b)); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}

var proseKinds = map[block.Kind]bool{
	block.KindParagraph:     true,
	block.KindLeadParagraph: true,
	block.KindListItem:      true,
	block.KindBlockquote:    true,
	block.KindStyledQuote:   true,
	block.KindKeyTakeaways:  true,
}

// Excerpt returns the first Words words of the document's prose, with an
// ellipsis when anything was cut. Headings, captions and callouts are
// skipped unless the document has nothing else.
func (e *Excerpter) Excerpt(doc block.Document) string {
	var prose block.Document
	for _, b := range doc {
		if proseKinds[b.BlockKind()] {
			prose = append(prose, b)
		}
	}
	if len(prose) == 0 {
		prose = doc
	}

	words := strings.Fields(Text(prose))
	if len(words) <= e.Words {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:e.Words], " ") + "…"
}
