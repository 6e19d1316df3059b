package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"photo-portfolio/pkg/services"
)

var navHTML bool

// newShowNavCmd creates a new command for printing the navigation tree
func newShowNavCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-nav",
		Short: "Print the navigation tree",
		Long:  `Print the gallery navigation tree as indented text, or the rendered menu fragment with --html.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()

			tree, err := svc.Nav()
			if err != nil {
				return err
			}

			if !navHTML {
				services.WriteTree(os.Stdout, tree)
				return nil
			}

			nav, err := svc.NavHTML(tree)
			if err != nil {
				return err
			}
			fmt.Print(nav)
			return nil
		},
	}

	cmd.Flags().BoolVar(&navHTML, "html", false, "Print the rendered menu instead of the tree")

	return cmd
}
