// Package assets abstracts the binary asset store that holds uploaded gift
// images. The core only ever keeps the returned locator string on the gift
// record; where the bytes actually live is this package's concern.
package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage stores an uploaded file and returns an opaque public locator.
// Implementations must be safe for concurrent use.
type Storage interface {
	Store(ctx context.Context, r io.Reader, suggestedName string) (string, error)
}

// LocalStorage writes uploads to a directory on disk and addresses them
// under a public base URL. File names are random UUIDs with the original
// extension preserved, so a caller-supplied name can never collide with or
// overwrite an existing object.
type LocalStorage struct {
	// Dir is the directory files are written into.
	Dir string
	// BaseURL is the public prefix locators are formed under,
	// e.g. "https://gifts.example.com/uploads".
	BaseURL string
}

// NewLocalStorage ensures dir exists and returns a LocalStorage over it.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Store writes the file under a fresh random name and returns its locator.
// Only the extension of suggestedName survives; it is sanitized to a short
// alphanumeric suffix so path traversal through the name is impossible.
func (s *LocalStorage) Store(ctx context.Context, r io.Reader, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + safeExt(suggestedName)
	path := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("assets: create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("assets: write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("assets: close file: %w", err)
	}
	return s.BaseURL + "/" + name, nil
}

// safeExt extracts a usable extension from a client-supplied file name.
// Anything longer than 10 chars or containing non-alphanumerics is dropped.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
