// Package upload ingests admin-submitted product images. Validation is
// shared; persistence is a strategy picked once at startup (filesystem,
// inline data URL, or the imgbb hosting API).
package upload

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for upload failures.
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
	ErrUploadFailed         = errors.New("upload failed")
)

// Upload is a single image payload with its declared content type.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredImage is the reference a backend hands back. Path and URL are both
// usable directly as an <img> source; for the filesystem backend Path is
// relative to the content directory and URL is the public route.
type StoredImage struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
}

// Storage persists one image payload and returns its display reference.
// Every call produces a new reference, even for identical bytes.
type Storage interface {
	Store(ctx context.Context, up Upload) (*StoredImage, error)
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

const megabyte = 1 << 20

// validate enforces the shared content-type and size rules. maxSize is the
// backend's ceiling in bytes.
func validate(up Upload, maxSize int64) error {
	if !allowedContentTypes[up.ContentType] {
		return fmt.Errorf("%w: %s (only JPEG, PNG and WebP are allowed)", ErrUnsupportedMediaType, up.ContentType)
	}
	if size := int64(len(up.Data)); size > maxSize {
		return fmt.Errorf("%w: file is %.2fMB, maximum size is %.2fMB",
			ErrPayloadTooLarge, float64(size)/megabyte, float64(maxSize)/megabyte)
	}
	return nil
}
