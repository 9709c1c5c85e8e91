// Package cmd — shared configuration.
// Persistent flags fall back to environment variables so the same binary
// runs unchanged in a shell and in a container.
package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/blockpipe/core"
	"github.com/gaurav-prasanna/blockpipe/core/assets"
	"github.com/gaurav-prasanna/blockpipe/core/fetch"
	"github.com/gaurav-prasanna/blockpipe/core/store"
	"github.com/gaurav-prasanna/blockpipe/internal/envutil"
	"github.com/spf13/cobra"
)

// Store backends selectable with --store.
const (
	storeFile   = "file"
	storeSanity = "sanity"
	storeSQLite = "sqlite"
)

type config struct {
	LogMode   string
	Store     string
	DBPath    string
	ProjectID string
	Dataset   string
	Token     string
}

var cfg config

func bindConfigFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.StringVar(&cfg.LogMode, "log_mode", envutil.String("BLOCKPIPE_LOG_MODE", "dev"), "Log mode: dev or prod")
	f.StringVar(&cfg.Store, "store", envutil.String("BLOCKPIPE_STORE", storeFile), "Content store: file, sanity or sqlite")
	f.StringVar(&cfg.DBPath, "db", envutil.String("BLOCKPIPE_DB", "blockpipe.db"), "SQLite database path (--store sqlite)")
	f.StringVar(&cfg.ProjectID, "project", envutil.String("SANITY_PROJECT_ID", ""), "Sanity project ID")
	f.StringVar(&cfg.Dataset, "dataset", envutil.String("SANITY_DATASET", "production"), "Sanity dataset")
	// The token is only read from the environment so it never lands in shell history.
	cfg.Token = envutil.String("SANITY_TOKEN", "")
}

// storeCloser is a content store plus its release function.
type storeCloser struct {
	core.ConditionalStore
	close func() error
}

func (s storeCloser) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openStore opens the configured content store. It fails for the file
// backend, which has no store.
func openStore(c config) (storeCloser, error) {
	switch c.Store {
	case storeSanity:
		if c.ProjectID == "" {
			return storeCloser{}, fmt.Errorf("--project (or SANITY_PROJECT_ID) is required with --store sanity")
		}
		client := fetch.New(fetch.Config{
			ProjectID: c.ProjectID,
			Dataset:   c.Dataset,
			Token:     c.Token,
			Log:       log,
		})
		return storeCloser{ConditionalStore: client}, nil
	case storeSQLite:
		st, err := store.Open(c.DBPath, log)
		if err != nil {
			return storeCloser{}, err
		}
		return storeCloser{ConditionalStore: st, close: st.Close}, nil
	case storeFile:
		return storeCloser{}, fmt.Errorf("this command needs --store sanity or --store sqlite")
	default:
		return storeCloser{}, fmt.Errorf("unknown store %q (want file, sanity or sqlite)", c.Store)
	}
}

// newAssets returns the CDN resolver, or nil when no project is set and
// asset references are used as URLs.
func newAssets(c config) core.AssetResolver {
	if c.ProjectID == "" {
		return nil
	}
	return assets.NewSanity(c.ProjectID, c.Dataset)
}
