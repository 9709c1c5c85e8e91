// Package cmd — article sources.
// A source is a JSON file (a bare block array or a stored document with a
// body field), an HTML page, or a content ID looked up in the configured
// store.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/extract"
)

// documentFile is the stored-document shape accepted from disk.
type documentFile struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Slug        json.RawMessage `json:"slug"`
	PublishedAt string          `json:"publishedAt"`
	Body        json.RawMessage `json:"body"`
}

// loadArticleFile reads an article from path. Bare block arrays and HTML
// pages take their ID from the file name.
func loadArticleFile(path string, conv *convert.Converter) (*core.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if ext == ".html" || ext == ".htm" {
		return loadHTML(data, name, conv)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		body, err := block.Decode(bytes.NewReader(trimmed))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return &core.Article{ID: name, Body: body}, nil
	}

	var doc documentFile
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	body := block.Document{}
	if len(doc.Body) > 0 && string(doc.Body) != "null" {
		body, err = block.Decode(bytes.NewReader(doc.Body))
		if err != nil {
			return nil, fmt.Errorf("decoding body of %s: %w", path, err)
		}
	}
	a := &core.Article{
		ID:          doc.ID,
		Title:       doc.Title,
		Slug:        slugValue(doc.Slug),
		PublishedAt: doc.PublishedAt,
		Body:        body,
	}
	if a.ID == "" {
		a.ID = name
	}
	return a, nil
}

// loadHTML extracts the main content of a page and parses it as editor
// markup.
func loadHTML(data []byte, name string, conv *convert.Converter) (*core.Article, error) {
	res, err := extract.New().Extract(string(data))
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", name, err)
	}
	body, err := conv.FromEditorHTML(res.HTML)
	if err != nil {
		return nil, err
	}
	return &core.Article{ID: name, Title: res.Title, Slug: name, Body: body}, nil
}

// slugValue accepts both "slug": "x" and "slug": {"current": "x"}.
func slugValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Current string `json:"current"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Current
	}
	return ""
}

// loadArticle resolves source against the configured backend.
func loadArticle(ctx context.Context, st core.ContentStore, source string, conv *convert.Converter) (*core.Article, error) {
	if st == nil {
		return loadArticleFile(source, conv)
	}
	return st.Fetch(ctx, source)
}
