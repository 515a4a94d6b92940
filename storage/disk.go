package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskBucket stores objects on the local filesystem and serves them
// from BaseURL. It is the default backend when no external store is
// configured.
type DiskBucket struct {
	Root    string
	BaseURL string
}

func (d *DiskBucket) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	path := filepath.Join(d.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return d.BaseURL + "/" + key, nil
}
