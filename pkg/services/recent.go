package services

import (
	"fmt"
	"html/template"
	"path/filepath"

	"k8s.io/klog/v2"

	"photo-portfolio/pkg/models"
)

// RecentPhotos returns the newest images under the photo root regardless
// of gallery, at most RecentCount of them
func (s *Service) RecentPhotos() ([]models.Photo, error) {
	images, err := findImages(s.config.PhotoRoot)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}

	photos := make([]models.Photo, 0, len(images))
	for _, img := range images {
		rel, err := filepath.Rel(s.config.PhotoRoot, img)
		if err != nil {
			klog.Warningf("Skipping %s: %v", img, err)
			continue
		}
		p := s.describe(img, s.config.RecentCopyURL(rel))
		p.WebCopyPath = s.config.RecentCopyPath(rel)
		photos = append(photos, p)
	}

	SortPhotos(photos)
	if len(photos) > s.config.RecentCount {
		photos = photos[:s.config.RecentCount]
	}
	return photos, nil
}

// GenerateRecent writes the recent photos page and its JSON sidecar
func (s *Service) GenerateRecent(nav template.HTML, sum *Summary) error {
	recent, err := s.RecentPhotos()
	if err != nil {
		return err
	}

	photos := s.materialize(recent, sum)
	entries := make([]models.RecentEntry, 0, len(photos))
	for _, p := range photos {
		entries = append(entries, models.RecentEntry{Src: p.URL, Caption: p.Caption})
	}

	page, err := s.renderPage(models.GalleryPage{
		Title:      "Recent Photos",
		Heading:    "Recent Photos",
		Stylesheet: s.config.StylesheetURL(),
		Nav:        nav,
		Photos:     photos,
	})
	if err != nil {
		return err
	}
	if err := writeFile(s.config.RecentPagePath(), page); err != nil {
		return err
	}
	klog.Infof("Recent photos page generated at %s", s.config.RecentPagePath())

	if err := writeJSON(s.config.RecentJSONPath(), entries); err != nil {
		return err
	}
	klog.Infof("Saved recent photos JSON to %s", s.config.RecentJSONPath())
	return nil
}
