package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// NavEntry is a hand-authored link in the navigation bar
type NavEntry struct {
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
	// Right pins the entry to the end of the menu
	Right bool `yaml:"right" json:"right"`
}

// Config holds all configuration for the application
type Config struct {
	PhotoRoot    string     `yaml:"photoRoot"`
	OutputRoot   string     `yaml:"outputRoot"`
	WebDir       string     `yaml:"webDir"`
	PagesDir     string     `yaml:"pagesDir"`
	IncludesDir  string     `yaml:"includesDir"`
	DataDir      string     `yaml:"dataDir"`
	AssetsDir    string     `yaml:"assetsDir"`
	ViewsDir     string     `yaml:"viewsDir"`
	LandingPage  string     `yaml:"landingPage"`
	BaseURL      string     `yaml:"baseURL"`
	MaxWidth     int        `yaml:"maxWidth"`
	MaxHeight    int        `yaml:"maxHeight"`
	TargetSize   int64      `yaml:"targetSize"`
	RecentCount  int        `yaml:"recentCount"`
	ManualNav    []NavEntry `yaml:"manualNav"`
	ExiftoolPath string     `yaml:"exiftoolPath"`
	Port         string     `yaml:"port"`
	BucketName   string     `yaml:"bucketName"`
}

// ErrPhotoRootNotSet is returned when no photo root is configured
var ErrPhotoRootNotSet = errors.New("PHOTO_ROOT not set")

// ErrInvalidDimensions is returned when the web copy limits are not positive
var ErrInvalidDimensions = errors.New("max dimensions, target size and recent count must be positive")

// ErrBucketNameNotSet is returned when the BUCKET_NAME environment variable is not set
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// Default returns the configuration used when nothing else is given
func Default() *Config {
	return &Config{
		PhotoRoot:   "photos",
		OutputRoot:  ".",
		WebDir:      "photos_web",
		PagesDir:    "pages",
		IncludesDir: "includes",
		DataDir:     "data",
		AssetsDir:   "assets",
		ViewsDir:    "views",
		LandingPage: "index.html",
		BaseURL:     "/photography",
		MaxWidth:    1920,
		MaxHeight:   1920,
		TargetSize:  1024 * 1024,
		RecentCount: 15,
		ManualNav: []NavEntry{
			{Title: "Home", URL: "/photography/index.html"},
			{Title: "New", URL: "/photography/pages/recent.html"},
			{Title: "Search", URL: "/photography/pages/search.html", Right: true},
		},
		Port: "8080",
	}
}

// Load loads configuration from defaults, an optional YAML file named by
// PORTFOLIO_CONFIG and environment variables, in that order
func Load() (*Config, error) {
	cfg := Default()

	if file := os.Getenv("PORTFOLIO_CONFIG"); file != "" {
		if err := cfg.readFile(file); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) readFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read config %s: %w", file, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", file, err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"PHOTO_ROOT":    &c.PhotoRoot,
		"OUTPUT_ROOT":   &c.OutputRoot,
		"WEB_DIR":       &c.WebDir,
		"ASSETS_DIR":    &c.AssetsDir,
		"VIEWS_DIR":     &c.ViewsDir,
		"BASE_URL":      &c.BaseURL,
		"EXIFTOOL_PATH": &c.ExiftoolPath,
		"PORT":          &c.Port,
		"BUCKET_NAME":   &c.BucketName,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_WIDTH":    &c.MaxWidth,
		"MAX_HEIGHT":   &c.MaxHeight,
		"RECENT_COUNT": &c.RecentCount,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv("TARGET_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TARGET_SIZE: %w", err)
		}
		c.TargetSize = n
	}

	return nil
}

// Validate checks the configuration for values the pipeline cannot work with
func (c *Config) Validate() error {
	if c.PhotoRoot == "" {
		return ErrPhotoRootNotSet
	}
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 || c.TargetSize <= 0 || c.RecentCount <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}

// out resolves a directory under the output root unless it is absolute
func (c *Config) out(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.OutputRoot, dir)
}

// url joins elements under the base URL
func (c *Config) url(elem ...string) string {
	return path.Join(append([]string{"/", c.BaseURL}, elem...)...)
}

// WebRoot is the directory holding all web copies
func (c *Config) WebRoot() string { return c.out(c.WebDir) }

// PagesRoot is the directory holding generated pages
func (c *Config) PagesRoot() string { return c.out(c.PagesDir) }

// IncludesRoot is the directory holding shared fragments
func (c *Config) IncludesRoot() string { return c.out(c.IncludesDir) }

// DataRoot is the directory holding JSON data
func (c *Config) DataRoot() string { return c.out(c.DataDir) }

// PagePath is the output file for a gallery page
func (c *Config) PagePath(slug string) string {
	return filepath.Join(c.PagesRoot(), slug+".html")
}

// PageURL is the public URL of a gallery page
func (c *Config) PageURL(slug string) string {
	return c.url(c.PagesDir, slug+".html")
}

// WebCopyName maps an original file name to its web copy name. Web copies
// are always JPEG; other originals keep their extension in the stem so that
// eagle.jpg and eagle.png stay apart.
func WebCopyName(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".jpg", ".jpeg":
		return file
	}
	return file + ".jpg"
}

// WebCopyPath is where the web copy of file in gallery slug is written
func (c *Config) WebCopyPath(slug, file string) string {
	return filepath.Join(c.WebRoot(), slug, WebCopyName(file))
}

// WebCopyURL is the public URL of a gallery web copy
func (c *Config) WebCopyURL(slug, file string) string {
	return c.url(filepath.ToSlash(c.WebDir), slug, WebCopyName(file))
}

// RecentCopyPath is where the recent page keeps its web copy of the original
// at rel, a path relative to the photo root. The source tree is mirrored
// under the recent directory.
func (c *Config) RecentCopyPath(rel string) string {
	return filepath.Join(c.WebRoot(), "recent", filepath.Dir(rel), WebCopyName(filepath.Base(rel)))
}

// RecentCopyURL is the public URL of a recent page web copy
func (c *Config) RecentCopyURL(rel string) string {
	return c.url(filepath.ToSlash(c.WebDir), "recent", filepath.ToSlash(filepath.Dir(rel)), WebCopyName(filepath.Base(rel)))
}

// IndexPath is the JSON photo index consumed by the search page
func (c *Config) IndexPath() string {
	return filepath.Join(c.DataRoot(), "photos.json")
}

// IndexURL is the URL the search page fetches the index from
func (c *Config) IndexURL() string {
	return c.url(c.DataDir, "photos.json")
}

// NavPath is the shared navigation fragment
func (c *Config) NavPath() string {
	return filepath.Join(c.IncludesRoot(), "nav.html")
}

// LandingPath is the hand-maintained landing page
func (c *Config) LandingPath() string { return c.out(c.LandingPage) }

// RecentPagePath is the recent photos page
func (c *Config) RecentPagePath() string {
	return filepath.Join(c.PagesRoot(), "recent.html")
}

// RecentJSONPath is the recent photos sidecar
func (c *Config) RecentJSONPath() string {
	return filepath.Join(c.OutputRoot, "recent_photos.json")
}

// SearchPagePath is the client-side search page
func (c *Config) SearchPagePath() string {
	return filepath.Join(c.PagesRoot(), "search.html")
}

// StylesheetURL is the stylesheet linked by generated pages
func (c *Config) StylesheetURL() string {
	return c.url("css", "style.css")
}

// ScriptURL is the URL of a script under the assets js directory
func (c *Config) ScriptURL(name string) string {
	return c.url("js", name)
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Landing page: http://localhost:%s/\n", c.Port)
	fmt.Printf("Photos: %s\n", c.PhotoRoot)
}
