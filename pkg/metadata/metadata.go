// Package metadata reads captions and capture dates from image files.
//
// Every lookup degrades to "absent" on failure: a missing tool, an unreadable
// file or a malformed field never surfaces as an error to the caller.
package metadata

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
)

// Source provides the caption and original capture date of an image
type Source interface {
	// Caption returns the image description, or false when there is none
	Caption(path string) (string, bool)
	// CaptureDate returns the calendar date the photo was taken
	CaptureDate(path string) (time.Time, bool)
}

// CaptionFields are the metadata fields consulted for a caption, in priority order
var CaptionFields = []string{"Description", "ImageDescription", "Caption-Abstract", "XPTitle", "Title"}

// dateLayout is the exiftool date format; only the date part is used
const dateLayout = "2006:01:02"

// ParseDate parses "YYYY:MM:DD[ HH:MM:SS]" keeping only the date
func ParseDate(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, false
	}

	t, err := time.Parse(dateLayout, fields[0])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DecodeText decodes a byte-encoded metadata field. UTF-16LE is tried first;
// when that does not yield clean printable text the bytes are read as UTF-8
// with invalid sequences replaced.
func DecodeText(b []byte) string {
	if len(b) >= 2 && len(b)%2 == 0 {
		dec := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			s := strings.TrimSpace(strings.TrimRight(string(out), "\x00"))
			if s != "" && printable(s) {
				return s
			}
		}
	}

	s := strings.ToValidUTF8(string(b), string(utf8.RuneError))
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

func printable(s string) bool {
	for _, r := range s {
		if r == utf8.RuneError || !(unicode.IsPrint(r) || unicode.IsSpace(r)) {
			return false
		}
	}
	return true
}

// FallbackCaption derives a caption from the file name: extension dropped,
// '-' and '_' turned into spaces and the first character upper-cased
func FallbackCaption(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)

	r, size := utf8.DecodeRuneInString(stem)
	if size == 0 {
		return stem
	}
	return string(unicode.ToUpper(r)) + stem[size:]
}

// CaptionOrFallback returns the metadata caption, or the file-name caption
// when the source has none
func CaptionOrFallback(src Source, path string) string {
	if caption, ok := src.Caption(path); ok && strings.TrimSpace(caption) != "" {
		return strings.TrimSpace(caption)
	}
	return FallbackCaption(path)
}

// Chain asks each source in turn; the first one with an answer wins
type Chain []Source

// Caption implements Source
func (c Chain) Caption(path string) (string, bool) {
	for _, src := range c {
		if v, ok := src.Caption(path); ok {
			return v, true
		}
	}
	return "", false
}

// CaptureDate implements Source
func (c Chain) CaptureDate(path string) (time.Time, bool) {
	for _, src := range c {
		if v, ok := src.CaptureDate(path); ok {
			return v, true
		}
	}
	return time.Time{}, false
}
