// Package cli provides the barrelsearch command-line interface: ingest,
// query, and serve subcommands built with spf13/cobra, each a thin
// wrapper over the engine package.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "barrelsearch",
	Short: "A sharded, barrel-addressed full-text search engine for job postings",
	Long: `barrelsearch ingests job-posting CSV rows into a lexicon, forward
index, inverted index, and a two-level sharded barrel store, then
answers single- and multi-word queries against that store with
frequency/position-based ranking.`,
}

// Execute runs the root command and handles all CLI interactions.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "barrelsearch.yaml", "path to the engine config file")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(serveCmd)
}
