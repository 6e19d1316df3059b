package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newInjectNavCmd creates a new command for refreshing the landing page menu
func newInjectNavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inject-nav",
		Short: "Refresh the navigation menu of the landing page",
		Long: `Rebuild the navigation fragment and splice it into the landing page between the
<!-- NAV START --> and <!-- NAV END --> markers, or in place of a <!-- NAV --> placeholder.
Nothing else is regenerated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()

			changed, err := svc.InjectLandingNav()
			if err != nil {
				return err
			}

			if changed {
				fmt.Printf("Updated %s\n", svc.Config().LandingPath())
			} else {
				fmt.Printf("%s already up to date\n", svc.Config().LandingPath())
			}
			return nil
		},
	}
}
