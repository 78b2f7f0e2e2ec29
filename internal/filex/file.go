// Package filex contains file helpers for the terminal client: preparing the
// database location and loading photos for new stories.
package filex

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxPhotoSize is the largest photo the story API accepts.
const MaxPhotoSize = 1 << 20

var (
	ErrPhotoTooLarge = errors.New("photo exceeds 1MB")
	ErrNotAnImage    = errors.New("file is not an image")
)

// EnsureParentDir creates the directory that will hold path, if any.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Photo is an image read from disk, ready to be attached to a draft.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadPhoto loads an image file, rejecting anything larger than MaxPhotoSize
// or whose sniffed content type is not image/*.
func ReadPhoto(path string) (*Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxPhotoSize+1))
	if err != nil {
		return nil, fmt.Errorf("read photo: %w", err)
	}
	if len(data) > MaxPhotoSize {
		return nil, ErrPhotoTooLarge
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, ct)
	}

	return &Photo{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}
