// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// load → normalize → render → write.
//
// It handles flag validation, renderer selection, and the single / --all modes.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/normalize"
	"github.com/gaurav-prasanna/blockpipe/core/output"
	"github.com/gaurav-prasanna/blockpipe/core/render"
	"github.com/gaurav-prasanna/blockpipe/core/style"
	"github.com/gaurav-prasanna/blockpipe/crawl"
	"github.com/spf13/cobra"
)

// convertFlags holds the convert command's flags.
type convertFlags struct {
	All           bool
	IncludeDrafts bool
	Blocks        bool
	Editor        bool
	EditorHTML    bool
	HTML          bool
	Markdown      bool
	PDF           bool
	JSON          bool
	ExcerptWords  int
	OutputDir     string
}

var convertOpts convertFlags

var convertCmd = &cobra.Command{
	Use:   "convert [file-or-id]",
	Short: "Convert an article to the specified output format",
	Long: `Convert loads an article body, upgrades legacy blocks, and writes it in
the specified output format.

With the default file store the argument is a JSON or HTML file; with --store sanity
or --store sqlite it is a content ID, and --all converts every article.

Examples:
  blockpipe convert post.json --html
  blockpipe convert post.json --editor --output_dir ./out
  blockpipe convert 3f1c0a --store sanity --project abc123 --markdown
  blockpipe convert --all --store sqlite --pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()

	// Mode flags.
	f.BoolVar(&convertOpts.All, "all", false, "Convert every article in the store")
	f.BoolVar(&convertOpts.IncludeDrafts, "drafts", false, "With --all, also convert draft-only documents")

	// Output format flags (mutually exclusive).
	f.BoolVar(&convertOpts.Blocks, "blocks", false, "Output normalized block JSON")
	f.BoolVar(&convertOpts.Editor, "editor", false, "Output the editor document")
	f.BoolVar(&convertOpts.EditorHTML, "editor-html", false, "Output editor markup")
	f.BoolVar(&convertOpts.HTML, "html", false, "Output HTML")
	f.BoolVar(&convertOpts.Markdown, "markdown", false, "Output Markdown")
	f.BoolVar(&convertOpts.PDF, "pdf", false, "Output PDF")
	f.BoolVar(&convertOpts.JSON, "json", false, "Output the structured JSON summary")

	f.IntVar(&convertOpts.ExcerptWords, "excerpt_words", 40, "Excerpt length for --json")

	// Output directory.
	f.StringVar(&convertOpts.OutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateConvertFlags(convertOpts, args); err != nil {
		return err
	}

	assets := newAssets(cfg)
	renderer, err := selectRenderer(convertOpts, assets)
	if err != nil {
		return err
	}
	normalizer := normalize.New(log)

	writer, err := output.New(convertOpts.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var st core.ContentStore
	if cfg.Store != storeFile || convertOpts.All {
		sc, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer sc.Close()
		st = sc
	}

	if convertOpts.All {
		return runAll(ctx, st, normalizer, renderer, writer)
	}
	return runOnly(ctx, st, args[0], convert.New(assets), normalizer, renderer, writer)
}

// runOnly processes a single article through the pipeline.
func runOnly(
	ctx context.Context,
	st core.ContentStore,
	source string,
	conv *convert.Converter,
	normalizer core.Normalizer,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	a, err := loadArticle(ctx, st, source, conv)
	if err != nil {
		return err
	}
	data, err := processArticle(a, normalizer, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteOnly(a, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers every article in the store and processes each.
func runAll(
	ctx context.Context,
	st core.ContentStore,
	normalizer core.Normalizer,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Discovering articles in %s store...\n", cfg.Store)

	ids, err := crawl.DiscoverAll(ctx, st, crawl.Options{IncludeDrafts: convertOpts.IncludeDrafts})
	if err != nil {
		return fmt.Errorf("discovering articles: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d articles to process\n", len(ids))

	var errCount int
	for i, id := range ids {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(ids), id)

		a, err := st.Fetch(ctx, id)
		if err != nil {
			log.Warn("fetch failed", "id", id, "error", err)
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}
		data, err := processArticle(a, normalizer, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteAll(a, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d articles failed\n", errCount, len(ids))
	}
	return nil
}

// processArticle normalizes the body and renders the article. The input
// article is not modified.
func processArticle(a *core.Article, normalizer core.Normalizer, renderer core.Renderer) ([]byte, error) {
	normalized := *a
	normalized.Body = normalizer.Normalize(a.Body)

	data, err := renderer.Render(&normalized)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// validateConvertFlags checks that exactly one output format is chosen and
// that the source argument matches the mode.
func validateConvertFlags(f convertFlags, args []string) error {
	if f.All && len(args) > 0 {
		return fmt.Errorf("--all takes no source argument")
	}
	if !f.All && len(args) == 0 {
		return fmt.Errorf("a source file or content ID is required (or use --all)")
	}

	// Count output formats.
	formatCount := 0
	for _, set := range []bool{f.Blocks, f.Editor, f.EditorHTML, f.HTML, f.Markdown, f.PDF, f.JSON} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --blocks, --editor, --editor-html, --html, --markdown, --pdf, or --json")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer(f convertFlags, assets core.AssetResolver) (core.Renderer, error) {
	switch {
	case f.Blocks:
		return render.NewBlocksRenderer(), nil
	case f.Editor:
		return render.NewEditorRenderer(convert.New(assets)), nil
	case f.EditorHTML:
		return render.NewEditorHTMLRenderer(convert.New(assets)), nil
	case f.HTML:
		return render.NewHTMLRenderer(style.DefaultClasses(), assets), nil
	case f.Markdown:
		return render.NewMarkdownRenderer(assets), nil
	case f.PDF:
		return render.NewPDFRenderer(style.DefaultClasses()), nil
	case f.JSON:
		return render.NewJSONRenderer(f.ExcerptWords), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
