package metadata

import (
	"path/filepath"
	"time"
)

// Entry is the metadata MemorySource holds for one file
type Entry struct {
	Caption string
	Date    time.Time
}

// MemorySource serves metadata from a map keyed by path, or by file name
// when the path itself is not present
type MemorySource map[string]Entry

func (m MemorySource) lookup(path string) (Entry, bool) {
	if e, ok := m[path]; ok {
		return e, true
	}
	e, ok := m[filepath.Base(path)]
	return e, ok
}

// Caption implements Source
func (m MemorySource) Caption(path string) (string, bool) {
	e, ok := m.lookup(path)
	if !ok || e.Caption == "" {
		return "", false
	}
	return e.Caption, true
}

// CaptureDate implements Source
func (m MemorySource) CaptureDate(path string) (time.Time, bool) {
	e, ok := m.lookup(path)
	if !ok || e.Date.IsZero() {
		return time.Time{}, false
	}
	return e.Date, true
}
