package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"k8s.io/klog/v2"
)

// Markers delimiting the menu inside a hand-maintained page
const (
	NavStart       = "<!-- NAV START -->"
	NavEnd         = "<!-- NAV END -->"
	NavPlaceholder = "<!-- NAV -->"
)

// ErrNoMarkers is returned when a page has neither sentinel pair nor placeholder
var ErrNoMarkers = errors.New("no nav markers found")

// SpliceNav replaces whatever sits between the sentinel markers with nav. A
// bare placeholder is replaced by the sentinel pair around nav, so splicing
// the same page again is stable.
func SpliceNav(page, nav string) (string, error) {
	block := NavStart + "\n" + nav + NavEnd

	start := strings.Index(page, NavStart)
	if start >= 0 {
		end := strings.Index(page[start:], NavEnd)
		if end < 0 {
			return "", fmt.Errorf("%w: %s without %s", ErrNoMarkers, NavStart, NavEnd)
		}
		return page[:start] + block + page[start+end+len(NavEnd):], nil
	}

	if strings.Contains(page, NavPlaceholder) {
		return strings.Replace(page, NavPlaceholder, block, 1), nil
	}

	return "", ErrNoMarkers
}

// InjectNav splices nav into the page at path and reports whether the file changed
func InjectNav(path, nav string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	updated, err := SpliceNav(string(data), nav)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	if updated == string(data) {
		klog.V(1).Infof("Nav in %s already current", path)
		return false, nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	klog.Infof("Injected nav into %s", path)
	return true, nil
}
