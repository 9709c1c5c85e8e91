// Package block defines the canonical article body: an ordered, flat
// sequence of typed content blocks with leaf-level text spans.
//
// Block is a closed sum type. Dispatch over the kinds goes through Visitor,
// so adding a kind breaks every visitor at compile time until it handles it.
package block

// Kind names a block variant.
type Kind string

const (
	KindParagraph     Kind = "paragraph"
	KindHeading       Kind = "heading"
	KindBlockquote    Kind = "blockquote"
	KindListItem      Kind = "listItem"
	KindImage         Kind = "image"
	KindLeadParagraph Kind = "leadParagraph"
	KindStyledQuote   Kind = "styledQuote"
	KindKeyTakeaways  Kind = "keyTakeaways"
	KindCalloutBox    Kind = "calloutBox"
	KindUnknown       Kind = "unknown"
)

// ParagraphStyle distinguishes ordinary paragraphs from lead paragraphs.
type ParagraphStyle string

const (
	StyleNormal ParagraphStyle = "normal"
	StyleLead   ParagraphStyle = "lead"
)

// ListKind is the list flavour of a list item.
type ListKind string

const (
	ListBullet ListKind = "bullet"
	ListNumber ListKind = "number"
)

// QuoteStyle is the colour scheme of a styled pull-quote.
type QuoteStyle string

const (
	QuoteTeal   QuoteStyle = "teal"
	QuoteCoral  QuoteStyle = "coral"
	QuotePurple QuoteStyle = "purple"
)

// CalloutVariant is the look of a callout box.
type CalloutVariant string

const (
	CalloutInfo    CalloutVariant = "info"
	CalloutWarning CalloutVariant = "warning"
	CalloutSuccess CalloutVariant = "success"
	CalloutNote    CalloutVariant = "note"
)

// Heading levels allowed in an article body.
const (
	MinHeadingLevel = 2
	MaxHeadingLevel = 4
)

// Document is an ordered list of blocks. Transformations never modify a
// Document in place; they return a new one.
type Document []Block

// Block is one unit of article content. The set of implementations is
// closed: only the types in this package satisfy it.
type Block interface {
	BlockKind() Kind
	// BlockKey returns the identity key. Keys are positional bookkeeping
	// only and never take part in equality.
	BlockKey() string
	accept(v Visitor)
}

// Visitor receives exactly one call per visited block.
type Visitor interface {
	VisitParagraph(Paragraph)
	VisitHeading(Heading)
	VisitBlockquote(Blockquote)
	VisitListItem(ListItem)
	VisitImage(Image)
	VisitLeadParagraph(LeadParagraph)
	VisitStyledQuote(StyledQuote)
	VisitKeyTakeaways(KeyTakeaways)
	VisitCalloutBox(CalloutBox)
	VisitUnknown(Unknown)
}

// Accept dispatches b to the matching Visitor method. A nil block is ignored.
func Accept(b Block, v Visitor) {
	if b == nil {
		return
	}
	b.accept(v)
}

// Walk visits every block of doc in order.
func Walk(doc Document, v Visitor) {
	for _, b := range doc {
		Accept(b, v)
	}
}

// Paragraph is a text block. Lead paragraphs are atomic in the editor.
type Paragraph struct {
	Key      string
	Style    ParagraphStyle
	Children []Span
}

// Heading is a section heading of level 2 to 4.
type Heading struct {
	Key      string
	Level    int
	Children []Span
}

// Blockquote is the legacy, unstyled quote shape.
type Blockquote struct {
	Key      string
	Children []Span
}

// ListItem is one list entry. Lists exist only by adjacency: sibling items
// of the same Kind form one visual list, higher Levels nest.
type ListItem struct {
	Key      string
	Kind     ListKind
	Level    int
	Children []Span
}

// Image references a media asset by opaque reference.
type Image struct {
	Key      string
	AssetRef string
	Alt      string
	Caption  string
}

// LeadParagraph is the legacy atomic lead paragraph, equivalent to
// Paragraph{Style: StyleLead}.
type LeadParagraph struct {
	Key      string
	Text     string
	Children []Span
}

// StyledQuote is a pull-quote with optional attribution.
type StyledQuote struct {
	Key         string
	Quote       string
	Attribution string
	Style       QuoteStyle
}

// KeyTakeaways is a boxed summary list.
type KeyTakeaways struct {
	Key   string
	Items []string
}

// CalloutBox is a highlighted aside.
type CalloutBox struct {
	Key     string
	Title   string
	Content string
	Variant CalloutVariant
}

// Unknown holds a block whose type is outside the vocabulary. Raw keeps
// every field except _type and _key so the block survives re-encoding.
type Unknown struct {
	Key  string
	Type string
	Raw  map[string]any
}

func (Paragraph) BlockKind() Kind     { return KindParagraph }
func (Heading) BlockKind() Kind       { return KindHeading }
func (Blockquote) BlockKind() Kind    { return KindBlockquote }
func (ListItem) BlockKind() Kind      { return KindListItem }
func (Image) BlockKind() Kind         { return KindImage }
func (LeadParagraph) BlockKind() Kind { return KindLeadParagraph }
func (StyledQuote) BlockKind() Kind   { return KindStyledQuote }
func (KeyTakeaways) BlockKind() Kind  { return KindKeyTakeaways }
func (CalloutBox) BlockKind() Kind    { return KindCalloutBox }
func (Unknown) BlockKind() Kind       { return KindUnknown }

func (b Paragraph) BlockKey() string     { return b.Key }
func (b Heading) BlockKey() string       { return b.Key }
func (b Blockquote) BlockKey() string    { return b.Key }
func (b ListItem) BlockKey() string      { return b.Key }
func (b Image) BlockKey() string         { return b.Key }
func (b LeadParagraph) BlockKey() string { return b.Key }
func (b StyledQuote) BlockKey() string   { return b.Key }
func (b KeyTakeaways) BlockKey() string  { return b.Key }
func (b CalloutBox) BlockKey() string    { return b.Key }
func (b Unknown) BlockKey() string       { return b.Key }

func (b Paragraph) accept(v Visitor)     { v.VisitParagraph(b) }
func (b Heading) accept(v Visitor)       { v.VisitHeading(b) }
func (b Blockquote) accept(v Visitor)    { v.VisitBlockquote(b) }
func (b ListItem) accept(v Visitor)      { v.VisitListItem(b) }
func (b Image) accept(v Visitor)         { v.VisitImage(b) }
func (b LeadParagraph) accept(v Visitor) { v.VisitLeadParagraph(b) }
func (b StyledQuote) accept(v Visitor)   { v.VisitStyledQuote(b) }
func (b KeyTakeaways) accept(v Visitor)  { v.VisitKeyTakeaways(b) }
func (b CalloutBox) accept(v Visitor)    { v.VisitCalloutBox(b) }
func (b Unknown) accept(v Visitor)       { v.VisitUnknown(b) }

var (
	_ Block = Paragraph{}
	_ Block = Heading{}
	_ Block = Blockquote{}
	_ Block = ListItem{}
	_ Block = Image{}
	_ Block = LeadParagraph{}
	_ Block = StyledQuote{}
	_ Block = KeyTakeaways{}
	_ Block = CalloutBox{}
	_ Block = Unknown{}
)

// IsLead reports whether p is a lead paragraph.
func (p Paragraph) IsLead() bool { return p.Style == StyleLead }

// ParseQuoteStyle maps a stored style name to a QuoteStyle.
func ParseQuoteStyle(s string) (QuoteStyle, bool) {
	switch QuoteStyle(s) {
	case QuoteTeal, QuoteCoral, QuotePurple:
		return QuoteStyle(s), true
	}
	return "", false
}

// ParseCalloutVariant maps a stored variant name to a CalloutVariant.
func ParseCalloutVariant(s string) (CalloutVariant, bool) {
	switch CalloutVariant(s) {
	case CalloutInfo, CalloutWarning, CalloutSuccess, CalloutNote:
		return CalloutVariant(s), true
	}
	return "", false
}

// ParseListKind maps a stored listItem value to a ListKind.
func ParseListKind(s string) (ListKind, bool) {
	switch ListKind(s) {
	case ListBullet, ListNumber:
		return ListKind(s), true
	}
	return "", false
}

// ClampHeadingLevel forces level into the supported heading range.
func ClampHeadingLevel(level int) int {
	if level < MinHeadingLevel {
		return MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return level
}

// ListLevel returns the nesting level of an item, never less than 1.
func (li ListItem) ListLevel() int {
	if li.Level < 1 {
		return 1
	}
	return li.Level
}
