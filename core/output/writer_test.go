package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/blockpipe/core"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		article core.Article
		want    string
	}{
		{"slug", core.Article{ID: "id1", Slug: "my-post"}, "my-post"},
		{"slug sanitized", core.Article{Slug: "a/b c.d"}, "a_b_c_d"},
		{"id fallback", core.Article{ID: "drafts.abc"}, "drafts_abc"},
		{"punctuation slug falls back", core.Article{ID: "x1", Slug: "///"}, "x1"},
		{"nothing usable", core.Article{}, "article"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(&tt.article); got != tt.want {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, err := w.WriteOnly(&core.Article{Slug: "hello"}, []byte("body"), ".md")
	if err != nil {
		t.Fatalf("WriteOnly: %v", err)
	}
	if path != filepath.Join(dir, "hello.md") {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "body" {
		t.Errorf("read %q, %v", data, err)
	}
}

func TestWriteAllGroupsByYear(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		article core.Article
		want    string
	}{
		{core.Article{Slug: "a", PublishedAt: "2024-03-01T10:00:00Z"}, filepath.Join(dir, "2024", "a.html")},
		{core.Article{Slug: "b"}, filepath.Join(dir, "undated", "b.html")},
		{core.Article{Slug: "c", PublishedAt: "soon"}, filepath.Join(dir, "undated", "c.html")},
	}
	for _, tt := range tests {
		path, err := w.WriteAll(&tt.article, []byte("x"), ".html")
		if err != nil {
			t.Fatalf("WriteAll: %v", err)
		}
		if path != tt.want {
			t.Errorf("path = %s, want %s", path, tt.want)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	}
}
