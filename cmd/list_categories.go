package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCategoriesCmd creates a new command for listing top-level folders
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List all top-level photo folders",
		Long:  `List the folders directly under the photo root, as served by the dev server at /<category>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()

			categories, err := svc.Categories()
			if err != nil {
				return err
			}

			fmt.Println("Photo Categories:")
			fmt.Println("================")

			for _, category := range categories {
				fmt.Printf("%s\n", category.Title)
				fmt.Printf("  Folder: %s\n", category.Name)
				fmt.Printf("  Photos: %d\n", category.Count)
				fmt.Println()
			}

			fmt.Printf("Total: %d categories\n", len(categories))
			return nil
		},
	}
}
