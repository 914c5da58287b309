package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"storefront/internal/models"
)

// DiskStore escribe en Dir y publica bajo PublicPrefix.
type DiskStore struct {
	Dir          string
	PublicPrefix string
}

func NewDiskStore(dir, publicPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, PublicPrefix: publicPrefix}, nil
}

func (d *DiskStore) Put(_ context.Context, name, _ string, body io.ReadSeeker, _ int64) (models.ImageRef, error) {
	if filepath.Base(name) != name {
		return models.ImageRef{}, fmt.Errorf("invalid object name %q", name)
	}

	dst := filepath.Join(d.Dir, name)
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(dst)
		return models.ImageRef{}, fmt.Errorf("write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return models.ImageRef{}, err
	}

	return models.StoredImage(path.Join(d.PublicPrefix, name)), nil
}
