package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"photo-portfolio/pkg/services"
)

// newShowGalleryCmd creates a new command for showing gallery details
func newShowGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-gallery [slug]",
		Short: "Show photos in a specific gallery",
		Long:  `Show the photos of a gallery identified by its slug, in page order, with captions and dates.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()
			return showGallery(svc, args[0])
		},
	}
}

// showGallery displays details about a specific gallery
func showGallery(svc *services.Service, slug string) error {
	gallery, err := svc.Gallery(slug)
	if err != nil {
		return err
	}

	photos := svc.Describe(gallery)

	fmt.Printf("Gallery: %s\n", gallery.Title)
	fmt.Printf("Path: %s\n", gallery.RelativePath)
	fmt.Printf("Page: %s\n", svc.Config().PageURL(gallery.Slug))
	fmt.Printf("Photos: %d\n", len(photos))
	fmt.Println("================")

	for i, photo := range photos {
		fmt.Printf("%d. %s\n", i+1, photo.Caption)
		fmt.Printf("   Source: %s\n", photo.SourcePath)
		fmt.Printf("   URL: %s\n", photo.URL)
		if date := photo.DateString(); date != "" {
			fmt.Printf("   Date: %s\n", date)
		}
		fmt.Println()
	}
	return nil
}
