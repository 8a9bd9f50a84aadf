package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"eduxchange/config"
)

// Bucket is a single named object container with public read access.
type Bucket interface {
	Name() string
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	// KeyFromURL reverses PublicURL. ok is false for URLs the bucket did not issue.
	KeyFromURL(u string) (key string, ok bool)
}

// New opens the resources bucket on the configured driver.
func New(ctx context.Context, logger *zap.Logger, cfg config.Storage) (Bucket, error) {
	var (
		b   Bucket
		err error
	)
	switch cfg.Driver {
	case config.StorageDriverS3:
		b, err = NewS3(ctx, cfg, cfg.BucketResources)
	case config.StorageDriverMinio:
		b, err = NewMinio(ctx, cfg, cfg.BucketResources)
	case config.StorageDriverLocal:
		b, err = NewLocal(cfg.LocalRoot, cfg.BucketResources, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", cfg.BucketResources, err)
	}

	logger.Info("object storage ready",
		zap.String("driver", cfg.Driver),
		zap.String("bucket", b.Name()),
	)

	return b, nil
}

func trimPrefixKey(u, prefix string) (string, bool) {
	if prefix == "" || !strings.HasPrefix(u, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(u, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid object key %q", key)
		}
	}
	return key, nil
}
