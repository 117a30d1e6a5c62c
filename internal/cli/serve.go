package cli

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/oss-search/barrelsearch/internal/config"
	"github.com/oss-search/barrelsearch/internal/engine"
	"github.com/oss-search/barrelsearch/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the process-csv and get-query-result HTTP endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		e, err := engine.Open(cfg)
		if err != nil {
			return err
		}

		slog.Info("barrelsearch listening", slog.String("addr", serveAddr))
		fmt.Printf("listening on %s\n", serveAddr)
		return http.ListenAndServe(serveAddr, httpapi.NewRouter(e, cfg))
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "address to listen on")
}
