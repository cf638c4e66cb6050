package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// DefaultFilesystemMaxSize is the ceiling for images written to disk.
const DefaultFilesystemMaxSize = 5 * megabyte

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// FilesystemStorage writes images under a content directory. Filenames are
// collision-resistant: millisecond timestamp plus the sanitized original name.
type FilesystemStorage struct {
	Dir     string
	BaseURL string
	MaxSize int64

	// now is swappable so tests get deterministic filenames.
	now func() time.Time
}

func NewFilesystemStorage(dir, baseURL string) *FilesystemStorage {
	return &FilesystemStorage{
		Dir:     dir,
		BaseURL: baseURL,
		MaxSize: DefaultFilesystemMaxSize,
		now:     time.Now,
	}
}

func (s *FilesystemStorage) Store(_ context.Context, up Upload) (*StoredImage, error) {
	if err := validate(up, s.MaxSize); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: cannot create upload directory: %v", ErrUploadFailed, err)
	}

	filename := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeFilename(up.Filename))
	if err := os.WriteFile(filepath.Join(s.Dir, filename), up.Data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: cannot write image: %v", ErrUploadFailed, err)
	}

	return &StoredImage{
		Filename: filename,
		Path:     filename,
		URL:      s.BaseURL + "/" + filename,
	}, nil
}

func sanitizeFilename(name string) string {
	if name == "" {
		return "image"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "-")
}
