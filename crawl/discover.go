// Package crawl provides article discovery for --all mode.
// It enumerates the content store, folding drafts into their published
// IDs, keeping discovery logic separate from the conversion pipeline.
package crawl

import (
	"context"
	"fmt"
)

// Lister is the part of a content store discovery needs.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// Options tunes discovery.
type Options struct {
	// IncludeDrafts keeps draft-only documents under their draft ID.
	IncludeDrafts bool
	// Limit caps the number of IDs returned; zero means no cap.
	Limit int
}

// DiscoverAll lists every article ID in store, in store order, without
// duplicates. Drafts whose published version is also listed are always
// folded into it; draft-only documents are kept only with IncludeDrafts.
func DiscoverAll(ctx context.Context, store Lister, opts Options) ([]string, error) {
	ids, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	published := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !IsDraft(id) {
			published[id] = true
		}
	}

	queue := NewQueue()
	for _, id := range ids {
		if opts.Limit > 0 && queue.Visited() >= opts.Limit {
			break
		}
		if id == "" || IsSystemDocument(id) {
			continue
		}
		if IsDraft(id) {
			pub := PublishedID(id)
			switch {
			case published[pub]:
				id = pub
			case !opts.IncludeDrafts:
				continue
			}
		}
		queue.Add(id)
	}
	return queue.All(), nil
}
