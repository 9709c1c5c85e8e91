// Package cmd — serve command.
// Runs the HTTP API in front of the configured content store.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gaurav-prasanna/blockpipe/core/convert"
	"github.com/gaurav-prasanna/blockpipe/core/normalize"
	"github.com/gaurav-prasanna/blockpipe/core/render"
	"github.com/gaurav-prasanna/blockpipe/core/style"
	"github.com/gaurav-prasanna/blockpipe/internal/envutil"
	"github.com/gaurav-prasanna/blockpipe/server"
	"github.com/gaurav-prasanna/blockpipe/server/handlers"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveOrigins string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion and article API over HTTP",
	Long: `Serve exposes the normalizer and converter to the editor front end and,
with --store sanity or --store sqlite, reads and writes stored articles.

Examples:
  blockpipe serve --addr :8080
  blockpipe serve --store sqlite --db ./content.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", envutil.String("BLOCKPIPE_ADDR", ":8080"), "Listen address")
	serveCmd.Flags().StringVar(&serveOrigins, "origins", envutil.String("BLOCKPIPE_CORS_ORIGINS", ""), "Comma-separated CORS origins (default: local dev servers)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if strings.EqualFold(cfg.LogMode, "prod") || strings.EqualFold(cfg.LogMode, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	assets := newAssets(cfg)
	conv := convert.New(assets)
	normalizer := normalize.New(log)

	rc := server.RouterConfig{
		HealthHandler:  handlers.NewHealthHandler(),
		ConvertHandler: handlers.NewConvertHandler(conv, normalizer),
		AllowedOrigins: splitList(serveOrigins),
		Log:            log,
	}

	if cfg.Store != storeFile {
		sc, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer sc.Close()
		html := render.NewHTMLRenderer(style.DefaultClasses(), assets)
		rc.ArticleHandler = handlers.NewArticleHandler(sc, conv, normalizer, html, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("serving", "addr", serveAddr, "store", cfg.Store)
	fmt.Fprintf(os.Stdout, "Listening on %s\n", serveAddr)
	return server.NewServer(rc).Run(ctx, serveAddr)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
