package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// CopyAssets copies the stylesheet and script tree into the output root.
// A missing assets directory is not an error.
func (s *Service) CopyAssets() error {
	src := s.config.AssetsDir
	if _, err := os.Stat(src); os.IsNotExist(err) {
		klog.Warningf("Assets directory %s not found, skipping", src)
		return nil
	}

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	dstAbs, err := filepath.Abs(s.config.OutputRoot)
	if err != nil {
		return err
	}
	if srcAbs == dstAbs {
		return nil
	}

	klog.Infof("Copying assets from %s to %s", src, s.config.OutputRoot)
	if err := copy.Copy(src, s.config.OutputRoot); err != nil {
		return fmt.Errorf("copy assets: %w", err)
	}
	return nil
}
