package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oss-search/barrelsearch/internal/config"
	"github.com/oss-search/barrelsearch/internal/engine"
)

var queryCmd = &cobra.Command{
	Use:   "query <text...>",
	Short: "Run a single- or multi-word query against the barrel store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		e, err := engine.Open(cfg)
		if err != nil {
			return err
		}

		hits, err := e.Query(strings.Join(args, " "))
		if err != nil {
			fmt.Println("no results:", err)
			return nil
		}

		for _, hit := range hits {
			fmt.Printf("%-8.4f doc=%d  %s  %s\n", hit.Score, hit.DocID, hit.Title, hit.URL)
		}
		return nil
	},
}
