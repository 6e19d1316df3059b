package services

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"photo-portfolio/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RenderGalleryPage renders the static page of a gallery
func (s *Service) RenderGalleryPage(g models.Gallery, photos []models.Photo, nav template.HTML) ([]byte, error) {
	return s.renderPage(models.GalleryPage{
		Title:      g.Title + " Gallery",
		Heading:    g.Title,
		Stylesheet: s.config.StylesheetURL(),
		Nav:        nav,
		Photos:     photos,
	})
}

func (s *Service) renderPage(page models.GalleryPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "gallery.html", page); err != nil {
		return nil, fmt.Errorf("render %s: %w", page.Heading, err)
	}
	return buf.Bytes(), nil
}

// RenderSearchPage renders the client-side search page
func (s *Service) RenderSearchPage(nav template.HTML) ([]byte, error) {
	data := struct {
		Stylesheet string
		Nav        template.HTML
		IndexURL   string
		Script     string
	}{
		Stylesheet: s.config.StylesheetURL(),
		Nav:        nav,
		IndexURL:   s.config.IndexURL(),
		Script:     s.config.ScriptURL("search.js"),
	}

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "search.html", data); err != nil {
		return nil, fmt.Errorf("render search page: %w", err)
	}
	return buf.Bytes(), nil
}

// IndexEntries flattens photos into search index records
func IndexEntries(photos []models.Photo) []models.PhotoIndexEntry {
	entries := make([]models.PhotoIndexEntry, 0, len(photos))
	for _, p := range photos {
		entries = append(entries, models.PhotoIndexEntry{
			Caption: p.Caption,
			URL:     p.URL,
			Date:    p.DateString(),
		})
	}
	return entries
}

// writeJSON writes v as indented JSON, creating parent directories
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return writeFile(path, data)
}

// writeFile writes data to path, creating parent directories
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	klog.V(1).Infof("Wrote %s", path)
	return nil
}
