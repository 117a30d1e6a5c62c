package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oss-search/barrelsearch/internal/config"
	"github.com/oss-search/barrelsearch/internal/engine"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <csv>",
	Short: "Ingest a job-posting CSV into the lexicon, forward/inverted index, and barrel store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		e, err := engine.Open(cfg)
		if err != nil {
			return err
		}

		result, err := e.Ingest(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ingested %d rows (%d new lexicon terms)\n", result.RowsIngested, result.NewTerms)
		return nil
	},
}
