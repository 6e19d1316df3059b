package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"photo-portfolio/pkg/models"
)

// Categories returns the top-level folders of the photo root in natural
// order, each linked at /<name>
func (s *Service) Categories() ([]models.Category, error) {
	entries, err := os.ReadDir(s.config.PhotoRoot)
	if err != nil {
		return nil, fmt.Errorf("photo root: %w", err)
	}

	var categories []models.Category
	for _, e := range entries {
		if !e.IsDir() || hidden(e.Name()) {
			continue
		}
		g, err := s.Category(e.Name())
		if err != nil {
			continue
		}
		categories = append(categories, models.Category{
			Name:  e.Name(),
			Title: g.Title,
			URL:   "/" + e.Name(),
			Count: len(g.Images),
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		return naturalLess(categories[i].Name, categories[j].Name)
	})
	return categories, nil
}

// Status reports, per gallery, how many web copies are already on disk
func (s *Service) Status() ([]models.GalleryStatus, error) {
	galleries, err := s.Galleries()
	if err != nil {
		return nil, err
	}

	statuses := make([]models.GalleryStatus, 0, len(galleries))
	for _, g := range galleries {
		st := models.GalleryStatus{
			Slug:    g.Slug,
			Title:   g.Title,
			PageURL: s.config.PageURL(g.Slug),
			Photos:  len(g.Images),
		}
		for _, img := range g.Images {
			if _, err := os.Stat(s.config.WebCopyPath(g.Slug, filepath.Base(img))); err == nil {
				st.WebCopies++
			} else {
				st.Missing++
			}
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
