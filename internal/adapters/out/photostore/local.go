// Package photostore stores checklist photos and signatures on the local
// filesystem and serves them by URL. Object storage can replace this adapter
// behind the same port without touching the cascade.
package photostore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"coldchain/internal/pkg/errs"
)

// LocalPhotoStore writes media files under a base directory, one subdirectory
// per delivery, and mints URLs below a base URL that is expected to serve
// that directory.
type LocalPhotoStore struct {
	baseDir string
	baseURL string
}

// NewLocalPhotoStore creates a store rooted at baseDir. URLs are formed as
// baseURL/deliveryID/filename.
func NewLocalPhotoStore(baseDir, baseURL string) (*LocalPhotoStore, error) {
	if baseDir == "" {
		return nil, errs.NewValueIsRequiredError("baseDir")
	}
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}

	return &LocalPhotoStore{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Store writes the content under the delivery's media prefix and returns the
// public URL. The filename is sanitized to its base name so callers cannot
// escape the media directory.
func (s *LocalPhotoStore) Store(ctx context.Context, deliveryID string, filename string, content io.Reader) (string, error) {
	if deliveryID == "" {
		return "", errs.NewValueIsRequiredError("deliveryId")
	}
	filename = filepath.Base(filename)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return "", errs.NewValueIsRequiredError("filename")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, deliveryID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create delivery media directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close media file: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, deliveryID, filename), nil
}
