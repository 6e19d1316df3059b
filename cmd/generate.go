package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// Command options
var forceRegenerate bool

// newGenerateCmd creates a new command for building the site
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate gallery pages, web copies, nav, search index and recent page",
		Long: `Walk the photo root, write one page per gallery with downscaled web copies, the shared
navigation fragment, the search index and page, the recent photos page, copy the assets,
and splice the navigation into the landing page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()

			svc.Force = forceRegenerate
			sum, err := svc.Generate()
			if err != nil {
				return err
			}

			fmt.Println(sum)
			for _, p := range sum.Problems() {
				fmt.Printf("  %s %s: %s\n", p.Status, p.Path, p.Reason)
			}
			klog.Infof("Generated %d pages in %s", sum.Pages, svc.Config().OutputRoot)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&forceRegenerate, "force", "f", false, "Re-encode every web copy, even if a small enough one exists")

	return cmd
}
