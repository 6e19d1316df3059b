package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Command options
var (
	prune  bool
	dryRun bool
)

// newPublishCmd creates a new command for uploading the site to a bucket
func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the generated site to Google Cloud Storage",
		Long: `Upload the generated pages, web copies, fragments, data and assets to BUCKET_NAME.
Objects whose size already matches are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()

			plan, err := svc.Publish(cmd.Context(), prune, dryRun)
			if err != nil {
				return err
			}

			if dryRun {
				for _, up := range plan.Uploads {
					fmt.Printf("upload %s (%d bytes)\n", up.Object, up.Size)
				}
				for _, name := range plan.Deletes {
					fmt.Printf("delete %s\n", name)
				}
			}

			fmt.Printf("%d uploaded, %d deleted, %d unchanged\n", len(plan.Uploads), len(plan.Deletes), plan.Unchanged)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Delete bucket objects that are no longer generated")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the plan without changing the bucket")

	return cmd
}
