package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
	"github.com/sujatha-boutique/storefront/internal/catalog/usecase/command"
	"github.com/sujatha-boutique/storefront/internal/catalog/usecase/query"
	"github.com/sujatha-boutique/storefront/pkg/logger"
)

// EventPublisher emits catalog change events after admin mutations.
// Publishing is best effort: a broker failure never fails the request.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
}

// ProductHandler handles HTTP requests for the catalog
type ProductHandler struct {
	createHandler   *command.CreateProductHandler
	updateHandler   *command.UpdateProductHandler
	listHandler     *query.ListProductsHandler
	getHandler      *query.GetProductHandler
	featuredHandler *query.GetFeaturedHandler

	repo   domain.ProductRepository
	events EventPublisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	catalogSize    prometheus.Gauge
}

// NewProductHandler wires the command and query handlers over one repository.
// events may be nil when no broker is configured.
func NewProductHandler(repo domain.ProductRepository, events EventPublisher) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_requests_total",
			Help: "Total number of catalog requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "storefront_request_duration_summary",
			Help: "Summary of request durations with client-side quantiles",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	catalogSize := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_catalog_products",
			Help: "Number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(catalogSize)

	return &ProductHandler{
		createHandler:   command.NewCreateProductHandler(repo),
		updateHandler:   command.NewUpdateProductHandler(repo),
		listHandler:     query.NewListProductsHandler(repo),
		getHandler:      query.NewGetProductHandler(repo),
		featuredHandler: query.NewGetFeaturedHandler(repo),
		repo:            repo,
		events:          events,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		requestSummary:  requestSummary,
		catalogSize:     catalogSize,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Public storefront routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/featured", h.metricsMiddleware("/api/products/featured", h.GetFeatured)).Methods("GET")
	router.HandleFunc("/api/products/{slug}", h.metricsMiddleware("/api/products/{slug}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/categories", h.metricsMiddleware("/api/categories", h.ListCategories)).Methods("GET")

	// Admin routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", AdminMiddleware(h.UpdateProduct))).Methods("PUT")
}

// ListProducts handles GET /api/products. The filter spec comes from query
// parameters; the response is the plain product array the storefront expects.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := domain.FilterSpec{
		Category:    r.URL.Query().Get("category"),
		SearchQuery: r.URL.Query().Get("search"),
		SortKey:     r.URL.Query().Get("sort"),
	}

	products, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{Filter: filter})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondError(w, err)
		return
	}

	h.refreshCatalogSize(r.Context())
	respondJSON(w, http.StatusOK, products)
}

// GetFeatured handles GET /api/products/featured
func (h *ProductHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.featuredHandler.Handle(r.Context())
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load featured products")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	detail, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{Slug: slug})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// ListCategories handles GET /api/categories. "All" is included first as the
// query-only filter value.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := append([]string{domain.CategoryAll}, domain.Categories...)
	respondJSON(w, http.StatusOK, categories)
}

type productPayload struct {
	ID          uint      `json:"id"`
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Images      *[]string `json:"images"`
	Tags        *[]string `json:"tags"`
	Featured    *bool     `json:"featured"`
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	cmd := command.CreateProductCommand{Price: req.Price}
	if req.Name != nil {
		cmd.Name = *req.Name
	}
	if req.Category != nil {
		cmd.Category = *req.Category
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}
	if req.Images != nil {
		cmd.Images = *req.Images
	}
	if req.Tags != nil {
		cmd.Tags = *req.Tags
	}
	if req.Featured != nil {
		cmd.Featured = *req.Featured
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondError(w, err)
		return
	}

	h.publish(r.Context(), product, h.eventsCreated())
	h.refreshCatalogSize(r.Context())

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// UpdateProduct handles PUT /api/products. The id rides in the body, with
// any subset of the mutable fields.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Images:      req.Images,
		Tags:        req.Tags,
		Featured:    req.Featured,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("product_id", req.ID).Msg("Failed to update product")
		respondError(w, err)
		return
	}

	h.publish(r.Context(), product, h.eventsUpdated())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

type publishFunc func(ctx context.Context, product *domain.Product) error

func (h *ProductHandler) eventsCreated() publishFunc {
	if h.events == nil {
		return nil
	}
	return h.events.PublishProductCreated
}

func (h *ProductHandler) eventsUpdated() publishFunc {
	if h.events == nil {
		return nil
	}
	return h.events.PublishProductUpdated
}

func (h *ProductHandler) publish(ctx context.Context, product *domain.Product, fn publishFunc) {
	if fn == nil {
		return
	}
	if err := fn(ctx, product); err != nil {
		logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish catalog event")
	}
}

func (h *ProductHandler) refreshCatalogSize(ctx context.Context) {
	if count, err := h.repo.Count(ctx); err == nil {
		h.catalogSize.Set(float64(count))
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respondError maps domain errors onto HTTP statuses: bad input is the
// caller's problem, a missing id is 404, an unreachable store is 503.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
