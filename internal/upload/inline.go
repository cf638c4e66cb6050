package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"
)

// DefaultInlineMaxSize is the ceiling for inline data URLs. The reference
// is stored inside the product row, so the limit is tighter than for the
// other backends.
const DefaultInlineMaxSize = 2 * megabyte

// InlineStorage encodes the image as a base64 data URL. Self-contained:
// the reference needs no filesystem or external host.
type InlineStorage struct {
	MaxSize int64
}

func NewInlineStorage() *InlineStorage {
	return &InlineStorage{MaxSize: DefaultInlineMaxSize}
}

func (s *InlineStorage) Store(_ context.Context, up Upload) (*StoredImage, error) {
	if err := validate(up, s.MaxSize); err != nil {
		return nil, err
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", up.ContentType, base64.StdEncoding.EncodeToString(up.Data))
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(up.Filename))

	return &StoredImage{
		Filename: filename,
		Path:     dataURL,
		URL:      dataURL,
	}, nil
}
