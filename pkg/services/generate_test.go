package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-portfolio/pkg/config"
	"photo-portfolio/pkg/metadata"
	"photo-portfolio/pkg/models"
)

const eagleCaption = "Bald eagle (Haliaeetus leucocephalus). Grand Teton, WY."

type site struct {
	cfg *config.Config
	svc *Service
	out string
}

func newSite(t *testing.T) site {
	t.Helper()
	dir := t.TempDir()

	photos := filepath.Join(dir, "photos")
	writeImage(t, filepath.Join(photos, "birds", "eagle.jpg"), 300, 200)
	writeImage(t, filepath.Join(photos, "birds", "hawk.jpg"), 200, 300)
	writeImage(t, filepath.Join(photos, "birds", "raptors", "owl.png"), 50, 50)

	assets := filepath.Join(dir, "assets")
	writeText(t, filepath.Join(assets, "css", "style.css"), "body {}")

	out := filepath.Join(dir, "site")
	writeText(t, filepath.Join(out, "index.html"), "<html><body>\n<!-- NAV -->\n<h1>Home</h1></body></html>")

	cfg := config.Default()
	cfg.PhotoRoot = photos
	cfg.OutputRoot = out
	cfg.AssetsDir = assets
	cfg.MaxWidth = 120
	cfg.MaxHeight = 120
	cfg.RecentCount = 2

	meta := metadata.MemorySource{
		"eagle.jpg": {Caption: eagleCaption, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		"owl.png":   {Caption: "Great horned owl (Bubo virginianus).", Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	return site{cfg: cfg, svc: NewService(cfg, meta), out: out}
}

func (s site) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.out, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestGenerate(t *testing.T) {
	assert := assert.New(t)
	s := newSite(t)

	sum, err := s.svc.Generate()
	require.NoError(t, err)
	assert.Equal(2, sum.Galleries)
	assert.Equal(2, sum.Pages)
	assert.Equal(3, sum.Photos)
	assert.Equal(5, sum.Count(StatusWritten))
	assert.Empty(sum.Problems())

	birds := s.read(t, "pages/birds.html")
	assert.Equal(2, strings.Count(birds, "<figure"))
	assert.Less(strings.Index(birds, "/photography/photos_web/birds/eagle.jpg"),
		strings.Index(birds, "/photography/photos_web/birds/hawk.jpg"))
	assert.Contains(birds, "<title>Birds Gallery</title>")
	assert.Contains(birds, "<h1>Birds</h1>")
	assert.Contains(birds, "(<em>Haliaeetus leucocephalus</em>)")
	assert.Contains(birds, `<figcaption class="caption">Hawk</figcaption>`)
	assert.Contains(birds, `alt="Bald eagle (Haliaeetus leucocephalus)"`)
	assert.Contains(birds, `<a href="/photography/pages/birds-raptors.html">Raptors</a>`)

	assert.FileExists(filepath.Join(s.out, "photos_web", "birds", "eagle.jpg"))
	assert.FileExists(filepath.Join(s.out, "photos_web", "birds-raptors", "owl.png.jpg"))
	assert.Contains(s.read(t, "pages/birds-raptors.html"), "/photography/photos_web/birds-raptors/owl.png.jpg")

	var index []models.PhotoIndexEntry
	require.NoError(t, json.Unmarshal([]byte(s.read(t, "data/photos.json")), &index))
	require.Len(t, index, 3)
	assert.Equal(models.PhotoIndexEntry{
		Caption: eagleCaption,
		URL:     "/photography/photos_web/birds/eagle.jpg",
		Date:    "2024-03-01",
	}, index[0])
	assert.Equal("Hawk", index[1].Caption)
	assert.Equal("", index[1].Date)

	var recent []models.RecentEntry
	require.NoError(t, json.Unmarshal([]byte(s.read(t, "recent_photos.json")), &recent))
	assert.Equal([]models.RecentEntry{
		{Src: "/photography/photos_web/recent/birds/eagle.jpg", Caption: eagleCaption},
		{Src: "/photography/photos_web/recent/birds/raptors/owl.png.jpg", Caption: "Great horned owl (Bubo virginianus)."},
	}, recent)
	assert.Equal(2, strings.Count(s.read(t, "pages/recent.html"), "<figure"))

	search := s.read(t, "pages/search.html")
	assert.Contains(search, "/photography/js/search.js")
	assert.Contains(search, "photos.json")

	nav := s.read(t, "includes/nav.html")
	assert.Contains(nav, `<a href="/photography/pages/birds.html">Birds</a>`)

	landing := s.read(t, "index.html")
	assert.Contains(landing, NavStart)
	assert.Contains(landing, nav)
	assert.NotContains(landing, NavPlaceholder)

	assert.Equal("body {}", s.read(t, "css/style.css"))
}

func TestGenerateIsIdempotent(t *testing.T) {
	assert := assert.New(t)
	s := newSite(t)

	_, err := s.svc.Generate()
	require.NoError(t, err)
	firstPage := s.read(t, "pages/birds.html")
	firstLanding := s.read(t, "index.html")

	sum, err := s.svc.Generate()
	require.NoError(t, err)
	assert.Equal(0, sum.Count(StatusWritten))
	assert.Equal(5, sum.Count(StatusCached))
	assert.Equal(firstPage, s.read(t, "pages/birds.html"))
	assert.Equal(firstLanding, s.read(t, "index.html"))
}

func TestGenerateSkipsBrokenPhotos(t *testing.T) {
	assert := assert.New(t)
	s := newSite(t)
	writeText(t, filepath.Join(s.cfg.PhotoRoot, "birds", "corrupt.jpg"), "not an image")
	s.cfg.RecentCount = 10

	sum, err := s.svc.Generate()
	require.NoError(t, err)
	// once for the gallery, once for the recent page
	assert.Equal(2, sum.Count(StatusFailed))

	birds := s.read(t, "pages/birds.html")
	assert.Equal(2, strings.Count(birds, "<figure"))
	assert.NotContains(birds, "corrupt")
}

func TestGenerateWithoutLandingPage(t *testing.T) {
	s := newSite(t)
	require.NoError(t, os.Remove(filepath.Join(s.out, "index.html")))

	_, err := s.svc.Generate()
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(s.out, "index.html"))
}

func TestInjectLandingNav(t *testing.T) {
	s := newSite(t)

	changed, err := s.svc.InjectLandingNav()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, s.read(t, "index.html"), "birds-raptors.html")
	assert.Equal(t, string(s.svc.NavFragment()), s.read(t, "includes/nav.html"))
}

func TestGenerateKeepsSameStemPhotosApart(t *testing.T) {
	assert := assert.New(t)
	s := newSite(t)
	s.cfg.RecentCount = 10
	writeImage(t, filepath.Join(s.cfg.PhotoRoot, "birds", "eagle.png"), 40, 40)

	sum, err := s.svc.Generate()
	require.NoError(t, err)
	assert.Empty(sum.Problems())

	birds := s.read(t, "pages/birds.html")
	assert.Equal(3, strings.Count(birds, "<figure"))
	assert.Equal(1, strings.Count(birds, `src="/photography/photos_web/birds/eagle.jpg"`))
	assert.Equal(1, strings.Count(birds, `src="/photography/photos_web/birds/eagle.png.jpg"`))
	assert.FileExists(filepath.Join(s.out, "photos_web", "birds", "eagle.png.jpg"))
	assert.FileExists(filepath.Join(s.out, "photos_web", "recent", "birds", "eagle.png.jpg"))
}

func TestGenerateRecentKeepsJoinedNamesApart(t *testing.T) {
	assert := assert.New(t)
	s := newSite(t)
	s.cfg.RecentCount = 10
	// both would flatten to a-b-x.jpg
	writeImage(t, filepath.Join(s.cfg.PhotoRoot, "a", "b-x.jpg"), 20, 20)
	writeImage(t, filepath.Join(s.cfg.PhotoRoot, "a", "b", "x.jpg"), 30, 30)

	sum, err := s.svc.Generate()
	require.NoError(t, err)
	assert.Empty(sum.Problems())

	var recent []models.RecentEntry
	require.NoError(t, json.Unmarshal([]byte(s.read(t, "recent_photos.json")), &recent))
	seen := map[string]bool{}
	for _, e := range recent {
		assert.False(seen[e.Src], "duplicate %s", e.Src)
		seen[e.Src] = true
	}
	assert.True(seen["/photography/photos_web/recent/a/b-x.jpg"])
	assert.True(seen["/photography/photos_web/recent/a/b/x.jpg"])
}

func TestGenerateSkipsWebCopyCollisions(t *testing.T) {
	assert := assert.New(t)
	s := newSite(t)
	// a JPEG literally named like the web copy of a PNG
	writeImage(t, filepath.Join(s.cfg.PhotoRoot, "birds", "hawk.png"), 20, 20)
	writeImage(t, filepath.Join(s.cfg.PhotoRoot, "birds", "hawk.png.jpg"), 20, 20)

	sum, err := s.svc.Generate()
	require.NoError(t, err)

	problems := sum.Problems()
	require.Len(t, problems, 1)
	assert.Equal(StatusSkipped, problems[0].Status)
	assert.Contains(problems[0].Reason, ErrWebCopyCollision.Error())
	assert.Equal(1, strings.Count(s.read(t, "pages/birds.html"), `src="/photography/photos_web/birds/hawk.png.jpg"`))
}
