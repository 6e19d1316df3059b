package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-portfolio/pkg/config"
	"photo-portfolio/pkg/metadata"
	"photo-portfolio/pkg/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSortPhotos(t *testing.T) {
	photos := []models.Photo{
		{URL: "a"},
		{URL: "b", CaptureDate: date(2022, 5, 1)},
		{URL: "c"},
		{URL: "d", CaptureDate: date(2024, 1, 1)},
		{URL: "e", CaptureDate: date(2022, 5, 1)},
	}
	SortPhotos(photos)

	var urls []string
	for _, p := range photos {
		urls = append(urls, p.URL)
	}
	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, urls)
}

func TestCaptionHTML(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(`Bald eagle (<em>Haliaeetus leucocephalus</em>). Grand Teton, WY.`,
		string(CaptionHTML("Bald eagle (Haliaeetus leucocephalus). Grand Teton, WY.")))
	assert.Equal(`a &lt;b&gt; (<em>x</em>) and (<em>y</em>)`, string(CaptionHTML("a <b> (x) and (y)")))
	assert.Equal("Plain", string(CaptionHTML("Plain")))
}

func TestAltText(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Bald eagle (Haliaeetus leucocephalus)", AltText("Bald eagle (Haliaeetus leucocephalus). Grand Teton, WY."))
	assert.Equal("No period", AltText("  No period  "))
	assert.Equal("", AltText(".leading"))
}

func TestCategory(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "birds", "eagle.jpg"), 8, 8)
	writeText(t, filepath.Join(root, "empty", ".keep"), "")

	cfg := config.Default()
	cfg.PhotoRoot = root
	svc := NewService(cfg, metadata.MemorySource{})

	g, err := svc.Category("birds")
	require.NoError(t, err)
	assert.Equal("Birds", g.Title)
	assert.Len(g.Images, 1)

	g, err = svc.Category("empty")
	require.NoError(t, err)
	assert.Empty(g.Images)

	for _, bad := range []string{"nonexistent", "..", "../etc", ".hidden", ""} {
		_, err := svc.Category(bad)
		assert.True(errors.Is(err, ErrGalleryNotFound), bad)
	}

	photos := svc.Originals(mustGallery(t, svc, "birds"), "/photos")
	require.Len(t, photos, 1)
	assert.Equal("/photos/birds/eagle.jpg", photos[0].URL)
	assert.Equal("Eagle", photos[0].Caption)
}

func mustGallery(t *testing.T, svc *Service, name string) models.Gallery {
	t.Helper()
	g, err := svc.Category(name)
	require.NoError(t, err)
	return g
}

func TestSummary(t *testing.T) {
	assert := assert.New(t)
	sum := &Summary{Galleries: 1, Pages: 1, Photos: 2}
	sum.Record("a.jpg", StatusWritten, nil)
	sum.Record("b.jpg", StatusCached, nil)
	sum.Record("c.jpg", StatusFailed, errors.New("boom"))

	assert.Equal(1, sum.Count(StatusWritten))
	problems := sum.Problems()
	require.Len(t, problems, 1)
	assert.Equal("c.jpg", problems[0].Path)
	assert.Equal("boom", problems[0].Reason)
	assert.Equal("1 galleries, 1 pages, 2 photos; web copies: 1 written, 1 cached, 0 skipped, 1 failed", sum.String())
	assert.Equal("failed", StatusFailed.String())
}

func TestPlanPublish(t *testing.T) {
	assert := assert.New(t)
	local := map[string]Upload{
		"index.html":       {Object: "index.html", Size: 10},
		"pages/birds.html": {Object: "pages/birds.html", Size: 20},
		"css/style.css":    {Object: "css/style.css", Size: 5},
	}
	remote := map[string]int64{
		"index.html":      10,
		"css/style.css":   4,
		"pages/gone.html": 7,
	}

	plan := PlanPublish(local, remote, false)
	assert.Equal(1, plan.Unchanged)
	require.Len(t, plan.Uploads, 2)
	assert.Equal("css/style.css", plan.Uploads[0].Object)
	assert.Equal("pages/birds.html", plan.Uploads[1].Object)
	assert.Empty(plan.Deletes)

	plan = PlanPublish(local, remote, true)
	assert.Equal([]string{"pages/gone.html"}, plan.Deletes)
}
