package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"k8s.io/klog/v2"

	"photo-portfolio/pkg/config"
	"photo-portfolio/pkg/metadata"
	"photo-portfolio/pkg/models"
)

// ErrGalleryNotFound is returned when a slug or category names no gallery
var ErrGalleryNotFound = errors.New("gallery not found")

// ErrWebCopyCollision is recorded when two originals map to one web copy
var ErrWebCopyCollision = errors.New("web copy collision")

// Service handles operations related to galleries and photos
type Service struct {
	config *config.Config
	meta   metadata.Source
	// Force re-encodes web copies even when a small enough one exists
	Force bool
}

// NewService returns a service reading photos under cfg.PhotoRoot with meta
func NewService(cfg *config.Config, meta metadata.Source) *Service {
	return &Service{
		config: cfg,
		meta:   meta,
	}
}

// Config returns the service configuration
func (s *Service) Config() *config.Config {
	return s.config
}

// Galleries returns all galleries under the photo root
func (s *Service) Galleries() ([]models.Gallery, error) {
	return DiscoverGalleries(s.config.PhotoRoot)
}

// Gallery returns a gallery by its slug
func (s *Service) Gallery(slug string) (models.Gallery, error) {
	galleries, err := s.Galleries()
	if err != nil {
		return models.Gallery{}, err
	}
	for _, g := range galleries {
		if g.Slug == slug {
			return g, nil
		}
	}
	return models.Gallery{}, fmt.Errorf("%w: %s", ErrGalleryNotFound, slug)
}

// Category returns the gallery for a direct child directory of the photo
// root. The directory must exist; it may hold no images.
func (s *Service) Category(name string) (models.Gallery, error) {
	if name == "" || name != filepath.Base(name) || hidden(name) || name == "." || name == ".." {
		return models.Gallery{}, fmt.Errorf("%w: %s", ErrGalleryNotFound, name)
	}

	dir := filepath.Join(s.config.PhotoRoot, name)
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return models.Gallery{}, fmt.Errorf("%w: %s", ErrGalleryNotFound, name)
	}

	images, err := listImages(dir)
	if err != nil {
		return models.Gallery{}, fmt.Errorf("list %s: %w", dir, err)
	}
	return NewGallery(s.config.PhotoRoot, dir, images)
}

// describe builds the photo record for path without touching any web copy
func (s *Service) describe(path, url string) models.Photo {
	caption := metadata.CaptionOrFallback(s.meta, path)
	p := models.Photo{
		SourcePath:  path,
		URL:         url,
		Caption:     caption,
		CaptionHTML: CaptionHTML(caption),
		AltText:     AltText(caption),
	}
	if d, ok := s.meta.CaptureDate(path); ok {
		p.CaptureDate = &d
	}
	return p
}

// SortPhotos orders photos newest first; photos without a date go last and
// otherwise keep their order
func SortPhotos(photos []models.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		return dateAfter(photos[i].CaptureDate, photos[j].CaptureDate)
	})
}

func dateAfter(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

// Describe returns the photos of g in page order, linking to web copies but
// without creating them
func (s *Service) Describe(g models.Gallery) []models.Photo {
	photos := make([]models.Photo, 0, len(g.Images))
	for _, img := range g.Images {
		p := s.describe(img, s.config.WebCopyURL(g.Slug, filepath.Base(img)))
		p.WebCopyPath = s.config.WebCopyPath(g.Slug, filepath.Base(img))
		photos = append(photos, p)
	}
	SortPhotos(photos)
	return photos
}

// Originals returns the photos of g in page order, linking to the original
// files under urlPrefix
func (s *Service) Originals(g models.Gallery, urlPrefix string) []models.Photo {
	photos := make([]models.Photo, 0, len(g.Images))
	for _, img := range g.Images {
		rel, err := filepath.Rel(s.config.PhotoRoot, img)
		if err != nil {
			klog.Warningf("Skipping %s: %v", img, err)
			continue
		}
		photos = append(photos, s.describe(img, urlPrefix+"/"+filepath.ToSlash(rel)))
	}
	SortPhotos(photos)
	return photos
}

// Photos returns the photos of g in page order after materializing their
// web copies. Photos whose copy cannot be produced are left out and
// recorded in sum.
func (s *Service) Photos(g models.Gallery, sum *Summary) []models.Photo {
	return s.materialize(s.Describe(g), sum)
}

// materialize writes the web copy of every photo and returns those that have
// one. A photo whose copy path is already taken by an earlier photo is
// skipped rather than overwriting or reusing that copy.
func (s *Service) materialize(photos []models.Photo, sum *Summary) []models.Photo {
	owners := map[string]string{}
	var out []models.Photo
	for _, p := range photos {
		if prev, ok := owners[p.WebCopyPath]; ok {
			err := fmt.Errorf("%w: %s is already used by %s", ErrWebCopyCollision, p.WebCopyPath, prev)
			sum.Record(p.SourcePath, StatusSkipped, err)
			klog.Warningf("Skipping %s: %v", p.SourcePath, err)
			continue
		}
		owners[p.WebCopyPath] = p.SourcePath

		status, err := Materialize(p.SourcePath, p.WebCopyPath, s.limits(), s.Force)
		sum.Record(p.SourcePath, status, err)
		if err != nil {
			if status == StatusSkipped {
				klog.Warningf("Skipping %s: %v", p.SourcePath, err)
			} else {
				klog.Errorf("Error resizing %s: %v", p.SourcePath, err)
			}
			continue
		}
		out = append(out, p)
	}
	return out
}
