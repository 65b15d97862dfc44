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

// UploadsPrefix is where the router mounts the disk store.
const UploadsPrefix = "/uploads"

// DiskStore keeps the avatars on the local filesystem.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("couldn't create the upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory served under UploadsPrefix.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the avatar and returns /uploads/<key>.
func (s *DiskStore) Save(ctx context.Context, filename string, contentType string, body io.Reader, size int64) (string, error) {
	key := NewObjectKey(filename)
	target := filepath.Join(s.dir, key)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("couldn't create %s: %w", key, err)
	}

	if _, err := io.Copy(f, io.LimitReader(body, size)); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("couldn't write %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("couldn't write %s: %w", key, err)
	}

	return UploadsPrefix + "/" + key, nil
}

// Delete removes the file behind the path. Paths outside the store are ignored.
func (s *DiskStore) Delete(ctx context.Context, path string) error {
	key := objectKeyFromPath(UploadsPrefix, path)
	if key == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("couldn't delete %s: %w", key, err)
	}
	return nil
}
