package metadata

import (
	"time"

	"github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"
)

type captionResult struct {
	value string
	ok    bool
}

type dateResult struct {
	value time.Time
	ok    bool
}

// CachedSource memoizes another source so each file is inspected once per
// field while the cache entry lives
type CachedSource struct {
	src   Source
	cache *cache.Cache
}

// NewCachedSource wraps src with a five minute cache
func NewCachedSource(src Source) *CachedSource {
	return &CachedSource{
		src:   src,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Caption implements Source
func (c *CachedSource) Caption(path string) (string, bool) {
	key := "caption:" + path
	if v, found := c.cache.Get(key); found {
		r := v.(captionResult)
		return r.value, r.ok
	}

	value, ok := c.src.Caption(path)
	c.cache.Set(key, captionResult{value, ok}, cache.DefaultExpiration)
	return value, ok
}

// CaptureDate implements Source
func (c *CachedSource) CaptureDate(path string) (time.Time, bool) {
	key := "date:" + path
	if v, found := c.cache.Get(key); found {
		r := v.(dateResult)
		return r.value, r.ok
	}

	value, ok := c.src.CaptureDate(path)
	c.cache.Set(key, dateResult{value, ok}, cache.DefaultExpiration)
	return value, ok
}

// Flush drops every cached lookup
func (c *CachedSource) Flush() {
	c.cache.Flush()
}

// Open returns the default source: exiftool backed by the native EXIF reader,
// or the native reader alone when exiftool cannot be started. The returned
// function releases the exiftool process.
func Open(exiftoolPath string) (*CachedSource, func()) {
	et, err := NewExiftoolSource(exiftoolPath)
	if err != nil {
		klog.Warningf("exiftool unavailable, reading EXIF natively: %v", err)
		return NewCachedSource(ExifSource{}), func() {}
	}

	closeFn := func() {
		if err := et.Close(); err != nil {
			klog.Errorf("Failed to close exiftool: %v", err)
		}
	}
	return NewCachedSource(Chain{et, ExifSource{}}), closeFn
}
