// Package core defines the pipeline interfaces for blockpipe.
// The block model, normalizer and converter are pure; everything that
// touches the outside world sits behind one of these interfaces.
package core

import (
	"context"
	"errors"

	"github.com/gaurav-prasanna/blockpipe/core/block"
)

// ErrNotFound is returned by a ContentStore for an unknown content ID.
var ErrNotFound = errors.New("content not found")

// ErrRevisionMismatch is returned by a conditional save when the stored
// revision is no longer the expected one.
var ErrRevisionMismatch = errors.New("revision mismatch")

// Article is one stored document: its metadata and block body.
type Article struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug,omitempty"`
	PublishedAt string         `json:"published_at,omitempty"` // ISO8601
	Revision    string         `json:"revision,omitempty"`
	Body        block.Document `json:"body"`
}

// ArticleMetadata is the metadata part of an Article.
type ArticleMetadata struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Revision    string `json:"revision,omitempty"`
}

// Metadata returns the article's metadata.
func (a *Article) Metadata() ArticleMetadata {
	return ArticleMetadata{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		PublishedAt: a.PublishedAt,
		Revision:    a.Revision,
	}
}

// Section represents a heading-delimited section of an article.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading found in the body.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink carried by a link mark.
type Link struct {
	Text         string `json:"text"`
	Href         string `json:"href"`
	OpenInNewTab bool   `json:"open_in_new_tab,omitempty"`
}

// ArticleContent holds the readable text of an article.
type ArticleContent struct {
	Text     string    `json:"text"`
	Excerpt  string    `json:"excerpt"`
	Sections []Section `json:"sections"`
}

// ArticleStructure counts the structural elements of the body.
type ArticleStructure struct {
	Headings  []Heading `json:"headings"`
	Links     []Link    `json:"links"`
	Lists     int       `json:"lists"`
	Images    int       `json:"images"`
	Quotes    int       `json:"quotes"`
	Takeaways int       `json:"takeaways"`
	Callouts  int       `json:"callouts"`
}

// ArticleJSON is the summary output for a single article.
type ArticleJSON struct {
	Metadata  ArticleMetadata  `json:"metadata"`
	Content   ArticleContent   `json:"content"`
	Structure ArticleStructure `json:"structure"`
}

// ContentStore loads and persists block documents by content ID.
type ContentStore interface {
	Fetch(ctx context.Context, id string) (*Article, error)
	Save(ctx context.Context, a *Article) error
	// List returns every content ID in the store.
	List(ctx context.Context) ([]string, error)
}

// ConditionalStore is a ContentStore that can make a save depend on the
// stored revision. The check and the write happen as one step.
type ConditionalStore interface {
	ContentStore
	// SaveIfRevision saves a only while the stored article is at revision,
	// and returns ErrRevisionMismatch otherwise.
	SaveIfRevision(ctx context.Context, a *Article, revision string) error
}

// AssetResolver maps opaque asset references to media URLs and back.
type AssetResolver interface {
	// Resolve returns the URL for ref, or false when it cannot be resolved.
	Resolve(ref string) (string, bool)
	// Reference reinterprets a media URL as an asset reference.
	Reference(url string) (string, bool)
}

// Normalizer upgrades legacy block shapes into canonical ones.
type Normalizer interface {
	Normalize(doc block.Document) block.Document
}

// Renderer converts a normalized article into a final output format.
type Renderer interface {
	Render(a *Article) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
