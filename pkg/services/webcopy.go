package services

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"k8s.io/klog/v2"
)

const (
	startQuality = 85
	qualityStep  = 5
	minQuality   = 30
)

// Limits bound the size of a web copy
type Limits struct {
	MaxWidth   int
	MaxHeight  int
	TargetSize int64
}

// Materialize writes a downscaled JPEG of src to dest. An existing dest no
// larger than the target size is kept as is, unless force is set; its
// content is not compared with src. A src that cannot be read is skipped.
func Materialize(src, dest string, lim Limits, force bool) (Status, error) {
	if !force {
		if fi, err := os.Stat(dest); err == nil && fi.Size() <= lim.TargetSize {
			return StatusCached, nil
		}
	}

	if _, err := os.Stat(src); err != nil {
		return StatusSkipped, fmt.Errorf("source unreadable: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return StatusFailed, fmt.Errorf("failed to create output directory: %w", err)
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return StatusFailed, fmt.Errorf("open %s: %w", src, err)
	}

	img = imaging.Fit(img, lim.MaxWidth, lim.MaxHeight, imaging.Lanczos)
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return StatusFailed, fmt.Errorf("resize %s: empty image", src)
	}

	data, quality, err := encodeWithin(img, lim.TargetSize)
	if err != nil {
		return StatusFailed, fmt.Errorf("encode %s: %w", src, err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return StatusFailed, fmt.Errorf("write %s: %w", dest, err)
	}

	klog.Infof("Created/resized web image: %s (%.2f MB, quality=%d)", dest, float64(len(data))/(1024*1024), quality)
	return StatusWritten, nil
}

// encodeWithin lowers the JPEG quality step by step until the encoding fits
// target. At the floor quality the result is returned even if it is too big.
func encodeWithin(img image.Image, target int64) ([]byte, int, error) {
	var buf bytes.Buffer
	quality := startQuality
	for {
		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, quality, err
		}
		if int64(buf.Len()) <= target || quality-qualityStep < minQuality {
			return buf.Bytes(), quality, nil
		}
		quality -= qualityStep
	}
}

// limits returns the configured web copy limits
func (s *Service) limits() Limits {
	return Limits{
		MaxWidth:   s.config.MaxWidth,
		MaxHeight:  s.config.MaxHeight,
		TargetSize: s.config.TargetSize,
	}
}
