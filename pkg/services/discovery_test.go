package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverGalleries(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()

	writeImage(t, filepath.Join(root, "birds", "eagle.jpg"), 8, 8)
	writeImage(t, filepath.Join(root, "birds", "raptors", "hawk.PNG"), 8, 8)
	writeText(t, filepath.Join(root, "notes", "readme.txt"), "not a photo")
	writeImage(t, filepath.Join(root, "mammals", "big-cats", "lynx.jpeg"), 8, 8)
	writeImage(t, filepath.Join(root, ".cache", "thumb.jpg"), 8, 8)
	writeImage(t, filepath.Join(root, "loose.jpg"), 8, 8)

	galleries, err := DiscoverGalleries(root)
	require.NoError(t, err)
	require.Len(t, galleries, 3)

	slugs := []string{}
	for _, g := range galleries {
		slugs = append(slugs, g.Slug)
	}
	assert.Equal([]string{"birds", "birds-raptors", "mammals-big-cats"}, slugs)

	cats := galleries[2]
	assert.Equal(filepath.Join("mammals", "big-cats"), cats.RelativePath)
	assert.Equal([]string{"mammals", "big-cats"}, cats.Segments)
	assert.Equal("Big Cats", cats.Title)
	assert.Equal([]string{filepath.Join(root, "mammals", "big-cats", "lynx.jpeg")}, cats.Images)

	// a gallery's own images only, not its sub-gallery's
	assert.Len(galleries[0].Images, 1)
}

func TestDiscoverGalleriesMissingRoot(t *testing.T) {
	_, err := DiscoverGalleries(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestListImagesNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img10.jpg", "img2.jpg", "img1.png", "skip.gif"} {
		writeText(t, filepath.Join(dir, name), "x")
	}

	images, err := listImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "img1.png"),
		filepath.Join(dir, "img2.jpg"),
		filepath.Join(dir, "img10.jpg"),
	}, images)
}

func TestTitle(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Birds", Title("birds"))
	assert.Equal("Red Tailed Hawks", Title("red-tailed_hawks"))
	assert.Equal("Usa West", Title("USA-west"))
	assert.Equal("Bigcats", Title("bigCats"))
}

func TestIsImage(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsImage("a.JPG"))
	assert.True(IsImage("a.jpeg"))
	assert.True(IsImage("a.Png"))
	assert.False(IsImage("a.gif"))
	assert.False(IsImage("jpg"))
}

func TestNaturalLess(t *testing.T) {
	assert := assert.New(t)
	assert.True(naturalLess("file2", "file10"))
	assert.False(naturalLess("file10", "file2"))
	assert.True(naturalLess("a", "b"))
	assert.True(naturalLess("abc", "abcd"))
}
