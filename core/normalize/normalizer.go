// Package normalize implements the Normalizer interface.
// It upgrades legacy block shapes into the canonical custom block kinds,
// so historical articles render with current styling without a data
// migration. Unrecognized shapes pass through unchanged.
package normalize

import (
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/internal/logger"
)

// DefaultQuoteStyle is given to quotes upgraded from plain blockquotes.
// Historical quotes carry no style and no attribution.
const DefaultQuoteStyle = block.QuotePurple

const takeawaysPhrase = "key takeaways"

// Stats counts the upgrades a pass applied.
type Stats struct {
	Quotes         int
	Takeaways      int
	LeadParagraphs int
}

// Total returns the number of upgraded blocks.
func (s Stats) Total() int { return s.Quotes + s.Takeaways + s.LeadParagraphs }

// Normalize rewrites doc in a single left-to-right pass. The input is
// never modified. Normalize(Normalize(d)) equals Normalize(d).
func Normalize(doc block.Document) block.Document {
	out, _ := NormalizeWithStats(doc)
	return out
}

// NormalizeWithStats is Normalize, also reporting what was upgraded.
func NormalizeWithStats(doc block.Document) (block.Document, Stats) {
	var st Stats
	out := make(block.Document, 0, len(doc))
	for i := 0; i < len(doc); i++ {
		switch b := doc[i].(type) {
		case block.Blockquote:
			out = append(out, upgradeQuote(b))
			st.Quotes++
		case block.LeadParagraph:
			out = append(out, upgradeLead(b))
			st.LeadParagraphs++
		case block.Heading, block.Paragraph:
			if tk, consumed, ok := takeawaysAt(doc, i); ok {
				out = append(out, tk)
				i += consumed
				st.Takeaways++
				continue
			}
			out = append(out, block.Clone(b))
		default:
			out = append(out, block.Clone(b))
		}
	}
	return out, st
}

func upgradeQuote(b block.Blockquote) block.StyledQuote {
	return block.StyledQuote{
		Key:   b.Key,
		Quote: strings.Join(strings.Fields(block.JoinText(b.Children, " ")), " "),
		Style: DefaultQuoteStyle,
	}
}

func upgradeLead(b block.LeadParagraph) block.Paragraph {
	p := block.Paragraph{Key: b.Key, Style: block.StyleLead}
	if len(b.Children) > 0 {
		p.Children = block.CloneSpans(b.Children)
	} else {
		p.Children = []block.Span{block.PlainSpan(b.Text)}
	}
	return p
}

// takeawaysAt checks whether doc[i] opens a legacy takeaways section. It
// returns the replacement block and the number of list items consumed
// after doc[i].
func takeawaysAt(doc block.Document, i int) (block.KeyTakeaways, int, bool) {
	if !isTakeawaysHeading(doc[i]) {
		return block.KeyTakeaways{}, 0, false
	}
	var (
		items []string
		kind  block.ListKind
	)
	j := i + 1
	for ; j < len(doc); j++ {
		li, ok := doc[j].(block.ListItem)
		if !ok {
			break
		}
		if j == i+1 {
			kind = li.Kind
		} else if li.Kind != kind {
			break
		}
		items = append(items, strings.TrimSpace(block.Text(li.Children)))
	}
	if len(items) == 0 {
		return block.KeyTakeaways{}, 0, false
	}
	return block.KeyTakeaways{Key: doc[i].BlockKey(), Items: items}, j - i - 1, true
}

func isTakeawaysHeading(b block.Block) bool {
	var text string
	switch x := b.(type) {
	case block.Heading:
		text = block.Text(x.Children)
	case block.Paragraph:
		if x.IsLead() {
			return false
		}
		text = block.Text(x.Children)
	default:
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), takeawaysPhrase)
}

// LegacyNormalizer adapts Normalize to the pipeline and logs the upgrades
// it applied.
type LegacyNormalizer struct {
	log *logger.Logger
}

// New creates a LegacyNormalizer. A nil logger discards output.
func New(log *logger.Logger) *LegacyNormalizer {
	return &LegacyNormalizer{log: logger.OrNop(log)}
}

// Normalize upgrades legacy shapes in doc.
func (n *LegacyNormalizer) Normalize(doc block.Document) block.Document {
	out, st := NormalizeWithStats(doc)
	if st.Total() > 0 {
		n.log.Debug("upgraded legacy blocks",
			"quotes", st.Quotes,
			"takeaways", st.Takeaways,
			"lead_paragraphs", st.LeadParagraphs,
		)
	}
	return out
}
