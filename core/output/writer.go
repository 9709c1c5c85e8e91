// Package output handles file naming and writing for blockpipe outputs.
// Single conversions are named after the article slug (or its ID when it
// has none); in --all mode files are grouped by publication year.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/blockpipe/core"
)

const undatedDir = "undated"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes output for a single article.
// Filename: slug.ext (e.g., my-first-post.md).
func (w *Writer) WriteOnly(a *core.Article, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(a)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes output for --all mode, one directory per publication
// year. Example: published 2024-03-01, slug "intro" → ./2024/intro.md
func (w *Writer) WriteAll(a *core.Article, data []byte, ext string) (string, error) {
	fullPath := filepath.Join(w.OutputDir, yearDir(a.PublishedAt), Filename(a)+ext)

	// Ensure parent directories exist.
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// Filename returns the base name (without extension) used for a.
func Filename(a *core.Article) string {
	if name := sanitize(a.Slug); strings.Trim(name, "_") != "" {
		return name
	}
	if name := sanitize(a.ID); strings.Trim(name, "_") != "" {
		return name
	}
	return "article"
}

func yearDir(publishedAt string) string {
	if len(publishedAt) < 4 {
		return undatedDir
	}
	year := publishedAt[:4]
	for _, ch := range year {
		if ch < '0' || ch > '9' {
			return undatedDir
		}
	}
	return year
}

// sanitize replaces characters outside [A-Za-z0-9-] with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
