package services

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/klog/v2"

	"photo-portfolio/pkg/models"
)

// Allowed Extensions
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsImage reports whether name has a recognized image extension
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// Title turns a path segment into a display label: "red-tailed_hawks" becomes
// "Red Tailed Hawks". Every word is title-cased, so "USA" becomes "Usa".
func Title(segment string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

// NewGallery describes directory dir under root holding images
func NewGallery(root, dir string, images []string) (models.Gallery, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return models.Gallery{}, fmt.Errorf("relative path of %s: %w", dir, err)
	}

	segments := strings.Split(rel, string(filepath.Separator))
	return models.Gallery{
		FolderPath:   dir,
		RelativePath: rel,
		Segments:     segments,
		Slug:         strings.Join(segments, "-"),
		Title:        Title(segments[len(segments)-1]),
		Images:       images,
	}, nil
}

// listImages returns the image files directly inside dir in natural order
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsImage(e.Name()) {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}

	sort.SliceStable(images, func(i, j int) bool {
		return naturalLess(filepath.Base(images[i]), filepath.Base(images[j]))
	})
	return images, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// DiscoverGalleries walks root and returns every directory that directly
// contains images, in traversal order. Images sitting in root itself belong
// to no gallery.
func DiscoverGalleries(root string) ([]models.Gallery, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("photo root: %w", err)
	}

	var galleries []models.Gallery
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			klog.Warningf("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(d.Name()) {
			return filepath.SkipDir
		}

		images, err := listImages(path)
		if err != nil {
			klog.Warningf("Skipping %s: %v", path, err)
			return filepath.SkipDir
		}
		if len(images) == 0 {
			return nil
		}

		if path == root {
			klog.Warningf("%d images directly in %s belong to no gallery", len(images), root)
			return nil
		}

		g, err := NewGallery(root, path, images)
		if err != nil {
			return err
		}
		klog.V(1).Infof("Found gallery %s (%d images)", g.Slug, len(images))
		galleries = append(galleries, g)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return galleries, nil
}

// findImages returns every image under root, in traversal order
func findImages(root string) ([]string, error) {
	var images []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			klog.Warningf("Skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != root && hidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && IsImage(d.Name()) {
			images = append(images, path)
		}
		return nil
	})
	return images, err
}
