package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"photo-portfolio/pkg/services"
)

// galleryExport is one gallery with its photos in page order
type galleryExport struct {
	Slug   string        `json:"slug" yaml:"slug"`
	Title  string        `json:"title" yaml:"title"`
	Path   string        `json:"path" yaml:"path"`
	Photos []photoExport `json:"photos" yaml:"photos"`
}

type photoExport struct {
	Caption string `json:"caption" yaml:"caption"`
	URL     string `json:"url" yaml:"url"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}

// newExportCmd creates a new command for exporting gallery data
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export gallery data",
		Long:  `Export all gallery data in the specified format. Currently supported formats: json, yaml.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeMeta, err := newService()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			defer closeMeta()

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			return exportData(svc, format)
		},
	}
}

// exportData exports gallery data in the specified format
func exportData(svc *services.Service, format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported export format: %s (supported formats: json, yaml)", format)
	}

	galleries, err := svc.Galleries()
	if err != nil {
		return err
	}

	export := make([]galleryExport, 0, len(galleries))
	for _, g := range galleries {
		ge := galleryExport{Slug: g.Slug, Title: g.Title, Path: g.RelativePath, Photos: []photoExport{}}
		for _, p := range svc.Describe(g) {
			ge.Photos = append(ge.Photos, photoExport{Caption: p.Caption, URL: p.URL, Date: p.DateString()})
		}
		export = append(export, ge)
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(export)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
