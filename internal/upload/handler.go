package upload

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sujatha-boutique/storefront/pkg/logger"
)

// Handler exposes the multipart upload endpoint over a Storage backend.
type Handler struct {
	storage Storage

	uploadCounter *prometheus.CounterVec
}

func NewHandler(storage Storage) *Handler {
	uploadCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_uploads_total",
			Help: "Total number of image upload attempts by outcome",
		},
		[]string{"outcome"},
	)
	prometheus.MustRegister(uploadCounter)

	return &Handler{storage: storage, uploadCounter: uploadCounter}
}

type response struct {
	Success  bool   `json:"success,omitempty"`
	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

// maxRequestBytes bounds the whole multipart request body. Backends apply
// their own ceilings; this only stops runaway requests early.
const maxRequestBytes = 32 * megabyte

// ServeUpload handles POST /api/upload with a single "file" field.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respond(w, http.StatusBadRequest, response{Error: "No file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respond(w, http.StatusBadRequest, response{Error: "Failed to read file: " + err.Error()})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	stored, err := h.storage.Store(r.Context(), Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Str("filename", header.Filename).Msg("Image upload failed")
		h.respond(w, statusFor(err), response{Error: err.Error()})
		return
	}

	logger.Info(r.Context()).
		Str("filename", stored.Filename).
		Int("bytes", len(data)).
		Msg("Image uploaded")

	h.respond(w, http.StatusOK, response{
		Success:  true,
		Filename: stored.Filename,
		Path:     stored.Path,
		URL:      stored.URL,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respond(w http.ResponseWriter, status int, body response) {
	outcome := "success"
	if body.Error != "" {
		outcome = "error"
	}
	h.uploadCounter.WithLabelValues(outcome).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
