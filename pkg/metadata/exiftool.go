package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// ExiftoolSource reads metadata through a long-running exiftool process
type ExiftoolSource struct {
	et *exiftool.Exiftool
}

// NewExiftoolSource starts exiftool. An empty binary uses exiftool from PATH.
func NewExiftoolSource(binary string) (*ExiftoolSource, error) {
	var opts []func(*exiftool.Exiftool) error
	if binary != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binary))
	}

	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExiftoolSource{et: et}, nil
}

// Close stops the exiftool process
func (s *ExiftoolSource) Close() error {
	return s.et.Close()
}

func (s *ExiftoolSource) extract(path string) (exiftool.FileMetadata, bool) {
	fms := s.et.ExtractMetadata(path)
	if len(fms) == 0 {
		return exiftool.FileMetadata{}, false
	}
	if fms[0].Err != nil {
		klog.Warningf("exiftool %s: %v", path, fms[0].Err)
		return exiftool.FileMetadata{}, false
	}
	return fms[0], true
}

// Caption implements Source
func (s *ExiftoolSource) Caption(path string) (string, bool) {
	fm, ok := s.extract(path)
	if !ok {
		return "", false
	}

	for _, field := range CaptionFields {
		v, err := fm.GetString(field)
		if err != nil {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}

// CaptureDate implements Source
func (s *ExiftoolSource) CaptureDate(path string) (time.Time, bool) {
	fm, ok := s.extract(path)
	if !ok {
		return time.Time{}, false
	}

	v, err := fm.GetString("DateTimeOriginal")
	if err != nil {
		return time.Time{}, false
	}
	return ParseDate(v)
}
