// Package storage handles media uploads behind a pluggable object store.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadSize is the largest file accepted for upload.
const MaxUploadSize = 5 << 20 // 5 MiB

var (
	ErrNotImage = errors.New("please select an image file")
	ErrTooLarge = errors.New("file size must be less than 5MB")
)

// File describes an incoming upload before it reaches the backend.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ObjectStore persists uploaded objects and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Uploader validates uploads and writes them through an ObjectStore.
type Uploader struct {
	store ObjectStore
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store}
}

// Upload checks the file's type and size, then stores it under a
// generated key inside folder. Validation happens before the backend
// sees the file. Backend errors are returned unchanged.
func (u *Uploader) Upload(ctx context.Context, folder string, f File) (string, error) {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "", ErrNotImage
	}
	if f.Size > MaxUploadSize {
		return "", ErrTooLarge
	}
	key := folder + "/" + NewKey(f.Name)
	return u.store.Put(ctx, key, f.Reader, f.Size, f.ContentType)
}

// NewKey builds a collision-resistant object name from the original
// filename, keeping its extension.
func NewKey(originalName string) string {
	buf := make([]byte, 6)
	rand.Read(buf)
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
