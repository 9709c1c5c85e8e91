package cmd

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/block"
	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/normalize"
	"github.com/gaurav-prasanna/blockpipe/core/output"
	"github.com/gaurav-prasanna/blockpipe/core/render"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ============================================================================
// Flags
// ============================================================================

func TestValidateConvertFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   convertFlags
		args    []string
		wantErr string
	}{
		{"one format with source", convertFlags{HTML: true}, []string{"a.json"}, ""},
		{"all without source", convertFlags{All: true, JSON: true}, nil, ""},
		{"no source", convertFlags{HTML: true}, nil, "source file or content ID is required"},
		{"all with source", convertFlags{All: true, HTML: true}, []string{"x"}, "--all takes no source"},
		{"no format", convertFlags{}, []string{"x"}, "exactly one output format"},
		{"two formats", convertFlags{PDF: true, Editor: true}, []string{"x"}, "only one output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConvertFlags(tt.flags, tt.args)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSelectRenderer(t *testing.T) {
	tests := []struct {
		flags convertFlags
		ext   string
	}{
		{convertFlags{Blocks: true}, ".blocks.json"},
		{convertFlags{Editor: true}, ".editor.json"},
		{convertFlags{EditorHTML: true}, ".editor.html"},
		{convertFlags{HTML: true}, ".html"},
		{convertFlags{Markdown: true}, ".md"},
		{convertFlags{PDF: true}, ".pdf"},
		{convertFlags{JSON: true, ExcerptWords: 10}, ".json"},
	}
	for _, tt := range tests {
		r, err := selectRenderer(tt.flags, nil)
		if err != nil {
			t.Fatalf("selectRenderer(%+v): %v", tt.flags, err)
		}
		if r.Extension() != tt.ext {
			t.Errorf("Extension = %q, want %q", r.Extension(), tt.ext)
		}
	}
	if _, err := selectRenderer(convertFlags{}, nil); err == nil {
		t.Error("selectRenderer accepted no format")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a.test, ,http://b.test ")
	if want := []string{"http://a.test", "http://b.test"}; !reflect.DeepEqual(got, want) {
		t.Errorf("splitList = %v, want %v", got, want)
	}
	if got := splitList(""); got != nil {
		t.Errorf("splitList(\"\") = %v, want nil", got)
	}
}

// ============================================================================
// Sources
// ============================================================================

func TestLoadArticleFileBareArray(t *testing.T) {
	path := writeFile(t, "welcome-post.json",
		`[{"_type":"block","_key":"a","style":"h2","children":[{"_type":"span","text":"Hi"}]}]`)
	a, err := loadArticleFile(path, convert.New(nil))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "welcome-post" {
		t.Errorf("ID = %q", a.ID)
	}
	want := block.Document{block.Heading{Key: "a", Level: 2, Children: []block.Span{block.PlainSpan("Hi")}}}
	if !block.EqualIgnoringKeys(a.Body, want) {
		t.Errorf("body = %#v", a.Body)
	}
}

func TestLoadArticleFileDocument(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantID   string
		wantSlug string
	}{
		{
			name:     "slug object",
			content:  `{"_id":"doc-1","title":"T","slug":{"_type":"slug","current":"t"},"publishedAt":"2024-01-01","body":[]}`,
			wantID:   "doc-1",
			wantSlug: "t",
		},
		{
			name:     "slug string and no id",
			content:  `{"title":"T","slug":"plain","body":null}`,
			wantID:   "export",
			wantSlug: "plain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := loadArticleFile(writeFile(t, "export.json", tt.content), convert.New(nil))
			if err != nil {
				t.Fatal(err)
			}
			if a.ID != tt.wantID || a.Slug != tt.wantSlug || a.Title != "T" {
				t.Errorf("metadata = %+v", a.Metadata())
			}
			if a.Body == nil || len(a.Body) != 0 {
				t.Errorf("body = %#v, want empty", a.Body)
			}
		})
	}
}

func TestLoadArticleFileHTML(t *testing.T) {
	path := writeFile(t, "saved.html", `<html><head><title>Saved</title></head><body>
		<nav>skip</nav><article><h1>Saved</h1><p>Body <strong>text</strong></p>
		<div data-type="callout-box" data-content="Note" data-variant="warning"></div></article></body></html>`)
	a, err := loadArticleFile(path, convert.New(nil))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != "saved" || a.Slug != "saved" || a.Title != "Saved" {
		t.Errorf("metadata = %+v", a.Metadata())
	}
	want := block.Document{
		block.Paragraph{Style: block.StyleNormal, Children: []block.Span{
			block.PlainSpan("Body "),
			{Text: "text", Marks: []block.Mark{{Type: block.MarkBold}}},
		}},
		block.CalloutBox{Content: "Note", Variant: block.CalloutWarning},
	}
	if !block.EqualIgnoringKeys(a.Body, want) {
		t.Errorf("body = %#v", a.Body)
	}
}

func TestLoadArticleFileErrors(t *testing.T) {
	if _, err := loadArticleFile(filepath.Join(t.TempDir(), "missing.json"), convert.New(nil)); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := loadArticleFile(writeFile(t, "bad.json", `[{"_key":"x"}]`), convert.New(nil)); err == nil {
		t.Error("block without _type accepted")
	}
	if _, err := loadArticleFile(writeFile(t, "bad.json", `{"body":{}}`), convert.New(nil)); err == nil {
		t.Error("object body accepted")
	}
}

func TestSlugValue(t *testing.T) {
	for raw, want := range map[string]string{
		``:                "",
		`"s"`:             "s",
		`{"current":"c"}`: "c",
		`42`:              "",
	} {
		if got := slugValue([]byte(raw)); got != want {
			t.Errorf("slugValue(%s) = %q, want %q", raw, got, want)
		}
	}
}

// ============================================================================
// Pipeline
// ============================================================================

func TestRunOnlyWritesNormalizedOutput(t *testing.T) {
	src := writeFile(t, "legacy.json",
		`[{"_type":"block","_key":"q","style":"blockquote","children":[{"_type":"span","text":"Quote me"}]}]`)
	outDir := t.TempDir()
	w, err := output.New(outDir)
	if err != nil {
		t.Fatal(err)
	}

	err = runOnly(context.Background(), nil, src, convert.New(nil), normalize.New(nil), render.NewBlocksRenderer(), w)
	if err != nil {
		t.Fatalf("runOnly: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "legacy.blocks.json"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := block.DecodeString(string(data))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := doc[0].(block.StyledQuote); !ok {
		t.Errorf("written block = %#v, want a styled quote", doc[0])
	}
}

func TestProcessArticleKeepsInput(t *testing.T) {
	a := &core.Article{ID: "x", Body: block.Document{block.Blockquote{Children: []block.Span{block.PlainSpan("q")}}}}
	if _, err := processArticle(a, normalize.New(nil), render.NewJSONRenderer(5)); err != nil {
		t.Fatal(err)
	}
	if _, ok := a.Body[0].(block.Blockquote); !ok {
		t.Error("processArticle modified the input body")
	}
}

func TestOpenStore(t *testing.T) {
	if _, err := openStore(config{Store: storeFile}); err == nil {
		t.Error("file backend opened a store")
	}
	if _, err := openStore(config{Store: "mongo"}); err == nil {
		t.Error("unknown backend accepted")
	}
	if _, err := openStore(config{Store: storeSanity}); err == nil {
		t.Error("sanity without project accepted")
	}

	sc, err := openStore(config{Store: storeSQLite, DBPath: filepath.Join(t.TempDir(), "t.db")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer sc.Close()
	a := &core.Article{ID: "a", Body: block.Document{}}
	if err := sc.Save(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if a.Revision == "" {
		t.Error("sqlite store did not set a revision")
	}
}

func TestNewAssets(t *testing.T) {
	if newAssets(config{}) != nil {
		t.Error("resolver built without a project")
	}
	r := newAssets(config{ProjectID: "p", Dataset: "d"})
	if u, ok := r.Resolve("image-a-1x1-png"); !ok || u == "" {
		t.Errorf("Resolve = %q, %v", u, ok)
	}
}
