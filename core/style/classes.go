package style

import "github.com/gaurav-prasanna/blockpipe/core/block"

// RGB is an accent colour for renderers that cannot use class names.
type RGB struct {
	R, G, B int
}

// Bundle is the class set for one custom block look.
type Bundle struct {
	Container   string
	Title       string
	Body        string
	Attribution string
	Accent      RGB
	Fill        RGB
}

// Classes is the class-name contract for every block kind and variant.
// The editor preview and the public page render from the same value.
type Classes struct {
	Paragraph     string
	LeadParagraph string
	Headings      [block.MaxHeadingLevel + 1]string
	Blockquote    string
	BulletList    string
	NumberList    string
	ListItem      string
	Image         string
	ImageCaption  string
	Link          string

	Quotes    map[block.QuoteStyle]Bundle
	Takeaways Bundle
	Callouts  map[block.CalloutVariant]Bundle
}

// DefaultClasses returns a fresh copy of the house style.
func DefaultClasses() Classes {
	return Classes{
		Paragraph:     "mb-6 text-lg leading-relaxed text-gray-800",
		LeadParagraph: "mb-8 text-xl font-light leading-relaxed text-gray-700 md:text-2xl",
		Headings: [block.MaxHeadingLevel + 1]string{
			2: "mt-12 mb-4 text-3xl font-bold text-gray-900",
			3: "mt-10 mb-3 text-2xl font-semibold text-gray-900",
			4: "mt-8 mb-2 text-xl font-semibold text-gray-900",
		},
		Blockquote:   "my-8 border-l-4 border-gray-300 pl-6 italic text-gray-700",
		BulletList:   "mb-6 list-disc space-y-2 pl-6",
		NumberList:   "mb-6 list-decimal space-y-2 pl-6",
		ListItem:     "text-lg leading-relaxed text-gray-800",
		Image:        "my-10",
		ImageCaption: "mt-3 text-center text-sm text-gray-500",
		Link:         "text-teal-700 underline underline-offset-2 hover:text-teal-900",

		Quotes: map[block.QuoteStyle]Bundle{
			block.QuoteTeal: {
				Container:   "my-10 border-l-4 border-teal-500 bg-teal-50 px-8 py-6",
				Body:        "text-2xl font-serif italic text-teal-900",
				Attribution: "mt-4 text-sm font-semibold uppercase tracking-wide text-teal-700",
				Accent:      RGB{20, 184, 166},
				Fill:        RGB{240, 253, 250},
			},
			block.QuoteCoral: {
				Container:   "my-10 border-l-4 border-rose-400 bg-rose-50 px-8 py-6",
				Body:        "text-2xl font-serif italic text-rose-900",
				Attribution: "mt-4 text-sm font-semibold uppercase tracking-wide text-rose-700",
				Accent:      RGB{251, 113, 133},
				Fill:        RGB{255, 241, 242},
			},
			block.QuotePurple: {
				Container:   "my-10 border-l-4 border-purple-500 bg-purple-50 px-8 py-6",
				Body:        "text-2xl font-serif italic text-purple-900",
				Attribution: "mt-4 text-sm font-semibold uppercase tracking-wide text-purple-700",
				Accent:      RGB{168, 85, 247},
				Fill:        RGB{250, 245, 255},
			},
		},
		Takeaways: Bundle{
			Container: "my-10 rounded-xl border border-gray-200 bg-gray-50 p-8",
			Title:     "mb-4 text-lg font-bold uppercase tracking-wide text-gray-900",
			Body:      "list-disc space-y-2 pl-5 text-lg text-gray-800",
			Accent:    RGB{17, 24, 39},
			Fill:      RGB{249, 250, 251},
		},
		Callouts: map[block.CalloutVariant]Bundle{
			block.CalloutInfo: {
				Container: "my-8 rounded-lg border-l-4 border-blue-500 bg-blue-50 p-6",
				Title:     "mb-2 font-semibold text-blue-900",
				Body:      "text-blue-800",
				Accent:    RGB{59, 130, 246},
				Fill:      RGB{239, 246, 255},
			},
			block.CalloutWarning: {
				Container: "my-8 rounded-lg border-l-4 border-amber-500 bg-amber-50 p-6",
				Title:     "mb-2 font-semibold text-amber-900",
				Body:      "text-amber-800",
				Accent:    RGB{245, 158, 11},
				Fill:      RGB{255, 251, 235},
			},
			block.CalloutSuccess: {
				Container: "my-8 rounded-lg border-l-4 border-green-500 bg-green-50 p-6",
				Title:     "mb-2 font-semibold text-green-900",
				Body:      "text-green-800",
				Accent:    RGB{34, 197, 94},
				Fill:      RGB{240, 253, 244},
			},
			block.CalloutNote: {
				Container: "my-8 rounded-lg border-l-4 border-gray-400 bg-gray-50 p-6",
				Title:     "mb-2 font-semibold text-gray-900",
				Body:      "text-gray-700",
				Accent:    RGB{156, 163, 175},
				Fill:      RGB{249, 250, 251},
			},
		},
	}
}

// Heading returns the class for a heading level, clamped to the
// supported range.
func (c Classes) Heading(level int) string {
	return c.Headings[block.ClampHeadingLevel(level)]
}

// Quote returns the bundle for a quote style, falling back to teal.
func (c Classes) Quote(s block.QuoteStyle) Bundle {
	if b, ok := c.Quotes[s]; ok {
		return b
	}
	return c.Quotes[block.QuoteTeal]
}

// Callout returns the bundle for a callout variant, falling back to info.
func (c Classes) Callout(v block.CalloutVariant) Bundle {
	if b, ok := c.Callouts[v]; ok {
		return b
	}
	return c.Callouts[block.CalloutInfo]
}

// List returns the class for a list of the given kind.
func (c Classes) List(kind block.ListKind) string {
	if kind == block.ListNumber {
		return c.NumberList
	}
	return c.BulletList
}
