// Package crawl — document ID filtering rules.
// Provides helpers to recognize drafts and system documents during
// discovery.
package crawl

import "strings"

const (
	draftPrefix  = "drafts."
	systemPrefix = "_."
)

// IsDraft reports whether id names an unpublished draft.
func IsDraft(id string) bool {
	return strings.HasPrefix(id, draftPrefix)
}

// IsSystemDocument reports whether id belongs to the content platform's
// internal bookkeeping rather than to an article.
func IsSystemDocument(id string) bool {
	return strings.HasPrefix(id, systemPrefix)
}

// PublishedID strips the draft prefix so a draft and its published
// version dedupe to one ID.
func PublishedID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), draftPrefix)
}
