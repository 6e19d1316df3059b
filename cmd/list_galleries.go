package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"photo-portfolio/pkg/services"
)

// newListGalleriesCmd creates a new command for listing galleries
func newListGalleriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-galleries",
		Short: "List all galleries",
		Long:  `List every folder that directly holds photos, with its slug and the number of photos.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()
			return listGalleries(svc)
		},
	}
}

// listGalleries displays all galleries ordered by path
func listGalleries(svc *services.Service) error {
	galleries, err := svc.Galleries()
	if err != nil {
		return err
	}

	col := collate.New(language.English, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(galleries, func(i, j int) bool {
		return col.CompareString(galleries[i].RelativePath, galleries[j].RelativePath) < 0
	})

	fmt.Println("Photo Galleries:")
	fmt.Println("===============")

	total := 0
	for _, gallery := range galleries {
		fmt.Printf("  - %s (photos: %d)\n", gallery.Title, len(gallery.Images))
		fmt.Printf("    Path: %s\n", gallery.RelativePath)
		fmt.Printf("    Slug: %s\n", gallery.Slug)
		total += len(gallery.Images)
	}

	fmt.Println()
	fmt.Printf("Total: %d galleries, %d photos\n", len(galleries), total)
	return nil
}
