package metadata

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"k8s.io/klog/v2"
)

// ExifSource reads EXIF blocks directly, without any external tool
type ExifSource struct{}

func (ExifSource) decode(path string) (*exif.Exif, bool) {
	f, err := os.Open(path)
	if err != nil {
		klog.Warningf("open %s: %v", path, err)
		return nil, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		klog.V(2).Infof("no exif in %s: %v", path, err)
		return nil, false
	}
	return x, true
}

// Caption implements Source
func (s ExifSource) Caption(path string) (string, bool) {
	x, ok := s.decode(path)
	if !ok {
		return "", false
	}

	if tag, err := x.Get(exif.ImageDescription); err == nil {
		if v, err := tag.StringVal(); err == nil {
			if v = strings.TrimSpace(strings.TrimRight(v, "\x00")); v != "" {
				return v, true
			}
		}
	}

	if tag, err := x.Get(exif.UserComment); err == nil {
		if v := decodeUserComment(tag.Val); v != "" {
			return v, true
		}
	}

	return "", false
}

// CaptureDate implements Source
func (s ExifSource) CaptureDate(path string) (time.Time, bool) {
	x, ok := s.decode(path)
	if !ok {
		return time.Time{}, false
	}

	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// decodeUserComment strips the 8 byte character code prefix of an EXIF
// UserComment and decodes the remainder
func decodeUserComment(b []byte) string {
	if len(b) < 8 {
		return DecodeText(b)
	}

	code, body := b[:8], b[8:]
	switch {
	case bytes.HasPrefix(code, []byte("UNICODE")):
		return DecodeText(body)
	case bytes.HasPrefix(code, []byte("ASCII")), bytes.Equal(code, make([]byte, 8)):
		return strings.TrimSpace(strings.TrimRight(strings.ToValidUTF8(string(body), "�"), "\x00"))
	}
	return DecodeText(b)
}
