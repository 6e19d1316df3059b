package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"k8s.io/klog/v2"

	"photo-portfolio/pkg/config"
)

// Upload is one local file destined for the bucket
type Upload struct {
	Local  string
	Object string
	Size   int64
}

// PublishPlan lists what a publish run does to the bucket
type PublishPlan struct {
	Uploads   []Upload
	Deletes   []string
	Unchanged int
}

// LocalObjects lists the generated files under the output root keyed by
// object name
func (s *Service) LocalObjects() (map[string]Upload, error) {
	cfg := s.config
	objects := map[string]Upload{}

	add := func(path string, size int64) error {
		rel, err := filepath.Rel(cfg.OutputRoot, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		objects[name] = Upload{Local: path, Object: name, Size: size}
		return nil
	}

	dirs := []string{
		cfg.PagesRoot(),
		cfg.WebRoot(),
		cfg.IncludesRoot(),
		cfg.DataRoot(),
		filepath.Join(cfg.OutputRoot, "css"),
		filepath.Join(cfg.OutputRoot, "js"),
	}
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			return add(path, info.Size())
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}

	for _, file := range []string{cfg.LandingPath(), cfg.RecentJSONPath()} {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if err := add(file, info.Size()); err != nil {
			return nil, err
		}
	}

	return objects, nil
}

// PlanPublish compares local files with the bucket listing. Objects of equal
// size are left alone; with prune, bucket objects that are no longer
// generated are deleted.
func PlanPublish(local map[string]Upload, remote map[string]int64, prune bool) PublishPlan {
	var plan PublishPlan
	for name, up := range local {
		if size, ok := remote[name]; ok && size == up.Size {
			plan.Unchanged++
			continue
		}
		plan.Uploads = append(plan.Uploads, up)
	}

	if prune {
		for name := range remote {
			if _, ok := local[name]; !ok {
				plan.Deletes = append(plan.Deletes, name)
			}
		}
	}

	sort.Slice(plan.Uploads, func(i, j int) bool {
		return plan.Uploads[i].Object < plan.Uploads[j].Object
	})
	sort.Strings(plan.Deletes)
	return plan
}

// Publish uploads the generated site to the configured bucket
func (s *Service) Publish(ctx context.Context, prune, dryRun bool) (PublishPlan, error) {
	if s.config.BucketName == "" {
		return PublishPlan{}, config.ErrBucketNameNotSet
	}

	local, err := s.LocalObjects()
	if err != nil {
		return PublishPlan{}, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return PublishPlan{}, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	bucket := client.Bucket(s.config.BucketName)

	remote := map[string]int64{}
	it := bucket.Objects(ctx, nil)
	for {
		obj, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return PublishPlan{}, fmt.Errorf("error iterating objects: %w", err)
		}
		remote[obj.Name] = obj.Size
	}

	plan := PlanPublish(local, remote, prune)
	if dryRun {
		return plan, nil
	}

	for _, up := range plan.Uploads {
		if err := uploadFile(ctx, bucket, up.Local, up.Object); err != nil {
			return plan, fmt.Errorf("error uploading %s: %w", up.Local, err)
		}
		klog.Infof("Uploaded %s", up.Object)
	}

	for _, name := range plan.Deletes {
		if err := bucket.Object(name).Delete(ctx); err != nil {
			klog.Errorf("Error deleting %s: %v", name, err)
			continue
		}
		klog.Infof("Deleted %s", name)
	}

	return plan, nil
}

func uploadFile(ctx context.Context, bucket *storage.BucketHandle, src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	dst = strings.TrimPrefix(dst, "/")

	writer := bucket.Object(dst).NewWriter(ctx)
	writer.ContentType = mime.TypeByExtension(filepath.Ext(dst))
	if writer.ContentType == "" {
		writer.ContentType = "application/octet-stream"
	}

	if _, err := io.Copy(writer, f); err != nil {
		writer.Close()
		return fmt.Errorf("Writer.Write: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}

	return nil
}
