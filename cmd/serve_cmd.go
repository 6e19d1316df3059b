package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"photo-portfolio/pkg/handlers"
)

// newServeCmd creates a new command for serving the site locally
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the development web server",
		Long: `Start a web server that serves the generated site, the original photos, the assets,
and renders any top-level photo folder at /<category>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()

			cfg := svc.Config()
			mux := handlers.New(cfg, svc).Routes()

			// Start server
			cfg.PrintServerStartMessage()
			if err := http.ListenAndServe(cfg.ServerAddress(), mux); err != nil {
				klog.Errorf("Server error: %v", err)
				return err
			}
			return nil
		},
	}
}
