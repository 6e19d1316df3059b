package services

import (
	"errors"
	"fmt"
	"html/template"
	"os"

	"k8s.io/klog/v2"

	"photo-portfolio/pkg/models"
)

// Generate runs the whole pipeline once: discover galleries, write the nav
// fragment, every gallery page with its web copies, the search index and
// page, the recent page, the assets, and finally splice the nav into the
// landing page. Per-photo problems are collected in the summary; only
// setup and page write failures stop the run.
func (s *Service) Generate() (*Summary, error) {
	sum := &Summary{}
	cfg := s.config

	klog.Infof("build: %s -> %s", cfg.PhotoRoot, cfg.OutputRoot)

	galleries, err := s.Galleries()
	if err != nil {
		return sum, err
	}
	sum.Galleries = len(galleries)

	tree, err := BuildTree(galleries)
	if err != nil {
		return sum, err
	}

	nav, err := s.NavHTML(tree)
	if err != nil {
		return sum, err
	}
	if err := writeFile(cfg.NavPath(), []byte(nav)); err != nil {
		return sum, err
	}

	index := []models.PhotoIndexEntry{}
	for _, g := range galleries {
		photos := s.Photos(g, sum)

		page, err := s.RenderGalleryPage(g, photos, nav)
		if err != nil {
			return sum, err
		}
		if err := writeFile(cfg.PagePath(g.Slug), page); err != nil {
			return sum, err
		}
		klog.Infof("Generated gallery for %s with %d images.", g.Slug, len(photos))

		sum.Pages++
		sum.Photos += len(photos)
		index = append(index, IndexEntries(photos)...)
	}

	if err := writeJSON(cfg.IndexPath(), index); err != nil {
		return sum, err
	}

	search, err := s.RenderSearchPage(nav)
	if err != nil {
		return sum, err
	}
	if err := writeFile(cfg.SearchPagePath(), search); err != nil {
		return sum, err
	}

	if err := s.GenerateRecent(nav, sum); err != nil {
		return sum, fmt.Errorf("recent photos: %w", err)
	}

	if err := s.CopyAssets(); err != nil {
		return sum, err
	}

	if _, err := InjectNav(cfg.LandingPath(), string(nav)); err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, ErrNoMarkers) {
			klog.Warningf("Landing page not updated: %v", err)
		} else {
			return sum, err
		}
	}

	return sum, nil
}

// InjectLandingNav rebuilds the nav fragment and splices it into the
// landing page without regenerating anything else
func (s *Service) InjectLandingNav() (bool, error) {
	tree, err := s.Nav()
	if err != nil {
		return false, err
	}

	nav, err := s.NavHTML(tree)
	if err != nil {
		return false, err
	}
	if err := writeFile(s.config.NavPath(), []byte(nav)); err != nil {
		return false, err
	}

	return InjectNav(s.config.LandingPath(), string(nav))
}

// Nav returns the tree for the current photo root
func (s *Service) Nav() (*NavNode, error) {
	galleries, err := s.Galleries()
	if err != nil {
		return nil, err
	}
	return BuildTree(galleries)
}

// NavFragment reads the last written nav fragment, or "" when there is none
func (s *Service) NavFragment() template.HTML {
	data, err := os.ReadFile(s.config.NavPath())
	if err != nil {
		return ""
	}
	return template.HTML(data)
}
