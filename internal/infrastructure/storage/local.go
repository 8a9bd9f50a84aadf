package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalRoute is where the HTTP layer serves local buckets from.
const LocalRoute = "/files"

type LocalBucket struct {
	bucket    string
	dir       string
	publicURL string
}

func NewLocal(root, bucket, publicBase string) (*LocalBucket, error) {
	if bucket == "" {
		return nil, fmt.Errorf("missing bucket name")
	}
	dir := filepath.Join(root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &LocalBucket{
		bucket:    bucket,
		dir:       dir,
		publicURL: publicBase + LocalRoute + "/" + bucket + "/",
	}, nil
}

func (b *LocalBucket) Name() string { return b.bucket }

// Dir is the directory backing the bucket.
func (b *LocalBucket) Dir() string { return b.dir }

func (b *LocalBucket) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	dst := filepath.Join(b.dir, filepath.FromSlash(key))
	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}

func (b *LocalBucket) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(b.dir, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (b *LocalBucket) PublicURL(key string) string { return b.publicURL + key }

func (b *LocalBucket) KeyFromURL(u string) (string, bool) { return trimPrefixKey(u, b.publicURL) }
