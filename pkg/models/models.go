package models

import (
	"html/template"
	"time"
)

// Gallery is a directory directly containing at least one image
type Gallery struct {
	FolderPath   string   `json:"folderPath"`
	RelativePath string   `json:"relativePath"`
	Segments     []string `json:"segments"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Images       []string `json:"images"`
}

// Photo is one image of a gallery as it appears on a generated page
type Photo struct {
	SourcePath  string        `json:"sourcePath"`
	WebCopyPath string        `json:"-"`
	URL         string        `json:"url"`
	Caption     string        `json:"caption"`
	CaptionHTML template.HTML `json:"-"`
	AltText     string        `json:"altText"`
	CaptureDate *time.Time    `json:"captureDate,omitempty"`
}

// DateString formats the capture date as YYYY-MM-DD, or "" when unknown
func (p Photo) DateString() string {
	if p.CaptureDate == nil {
		return ""
	}
	return p.CaptureDate.Format("2006-01-02")
}

// PhotoIndexEntry is one record of the search index
type PhotoIndexEntry struct {
	Caption string `json:"caption"`
	URL     string `json:"url"`
	Date    string `json:"date"`
}

// RecentEntry is one record of the recent photos sidecar
type RecentEntry struct {
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

// GalleryPage is the data a gallery page template renders
type GalleryPage struct {
	Title      string
	Heading    string
	Stylesheet string
	Nav        template.HTML
	Photos     []Photo
}

// Category is a top-level folder of the photo root as the dev server lists it
type Category struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
	// Count is the number of images directly in the folder
	Count int `json:"count"`
}

// Index represents the dev server landing page data when no landing page exists
type Index struct {
	Title      string
	Categories []Category
}

// GalleryStatus reports how many of a gallery's web copies exist on disk
type GalleryStatus struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	PageURL   string `json:"pageUrl"`
	Photos    int    `json:"photos"`
	WebCopies int    `json:"webCopies"`
	Missing   int    `json:"missing"`
}

// Admin represents the data for the build status page
type Admin struct {
	Title     string
	Galleries []GalleryStatus
}
