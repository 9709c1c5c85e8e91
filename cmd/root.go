// Package cmd implements the CLI commands for blockpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/blockpipe/internal/logger"
	"github.com/spf13/cobra"
)

// log is built in PersistentPreRunE and shared by every command.
var log = logger.Nop()

var rootCmd = &cobra.Command{
	Use:   "blockpipe",
	Short: "blockpipe — convert rich-content block documents between storage, editor and reading formats",
	Long: `blockpipe normalizes Portable Text article bodies, converts them to and
from the editor tree, and renders them to HTML, Markdown, PDF or JSON.

Usage:
  blockpipe convert <file-or-id> [flags]
  blockpipe import <file> --id <content-id>
  blockpipe serve [--addr :8080]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(cfg.LogMode)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	bindConfigFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
