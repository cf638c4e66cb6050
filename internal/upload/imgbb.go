package upload

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sujatha-boutique/storefront/pkg/logger"
)

// DefaultImgBBMaxSize matches the free-tier ceiling of the hosting API.
const DefaultImgBBMaxSize = 5 * megabyte

const imgbbEndpoint = "https://api.imgbb.com/1/upload"

// ImgBBStorage forwards images to the imgbb hosting API. When no key is
// configured or the call fails, it falls back to the inline backend as long
// as the payload fits the inline ceiling.
type ImgBBStorage struct {
	APIKey   string
	Endpoint string
	MaxSize  int64

	client   *http.Client
	fallback *InlineStorage
}

func NewImgBBStorage(apiKey string) *ImgBBStorage {
	return &ImgBBStorage{
		APIKey:   apiKey,
		Endpoint: imgbbEndpoint,
		MaxSize:  DefaultImgBBMaxSize,
		client:   &http.Client{Timeout: 15 * time.Second},
		fallback: NewInlineStorage(),
	}
}

func (s *ImgBBStorage) Store(ctx context.Context, up Upload) (*StoredImage, error) {
	if err := validate(up, s.MaxSize); err != nil {
		return nil, err
	}

	if s.APIKey == "" {
		return s.fallbackStore(ctx, up, errors.New("no API key configured"))
	}

	stored, err := s.post(ctx, up)
	if err != nil {
		return s.fallbackStore(ctx, up, err)
	}
	return stored, nil
}

func (s *ImgBBStorage) post(ctx context.Context, up Upload) (*StoredImage, error) {
	form := url.Values{}
	form.Set("key", s.APIKey)
	form.Set("name", sanitizeFilename(up.Filename))
	form.Set("image", base64.StdEncoding.EncodeToString(up.Data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imgbb returned status %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			URL   string `json:"url"`
			Title string `json:"title"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cannot decode imgbb response: %w", err)
	}
	if !body.Success || body.Data.URL == "" {
		return nil, errors.New("imgbb rejected the upload")
	}

	return &StoredImage{
		Filename: sanitizeFilename(up.Filename),
		Path:     body.Data.URL,
		URL:      body.Data.URL,
	}, nil
}

// fallbackStore degrades to the inline backend when the host is unusable,
// but only within the inline size ceiling.
func (s *ImgBBStorage) fallbackStore(ctx context.Context, up Upload, cause error) (*StoredImage, error) {
	if int64(len(up.Data)) > s.fallback.MaxSize {
		return nil, fmt.Errorf("%w: image host unavailable (%v) and %.2fMB exceeds the %.2fMB inline fallback limit",
			ErrUploadFailed, cause, float64(len(up.Data))/megabyte, float64(s.fallback.MaxSize)/megabyte)
	}

	logger.Warn(ctx).Err(cause).Str("filename", up.Filename).Msg("Image host unavailable, storing inline")
	return s.fallback.Store(ctx, up)
}
