package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	delivery "github.com/sujatha-boutique/storefront/internal/catalog/delivery/http"
	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
	"github.com/sujatha-boutique/storefront/internal/catalog/repository"
	"github.com/sujatha-boutique/storefront/pkg/auth"
)

type recordedEvent struct {
	kind string
	id   uint
}

type fakePublisher struct {
	events []recordedEvent
}

func (f *fakePublisher) PublishProductCreated(_ context.Context, p *domain.Product) error {
	f.events = append(f.events, recordedEvent{"created", p.ID})
	return nil
}

func (f *fakePublisher) PublishProductUpdated(_ context.Context, p *domain.Product) error {
	f.events = append(f.events, recordedEvent{"updated", p.ID})
	return nil
}

// The handler constructor registers Prometheus collectors, so everything
// runs against a single handler instance.
func TestProductHandler(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	publisher := &fakePublisher{}
	handler := delivery.NewProductHandler(repo, publisher)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	adminToken, err := auth.GenerateToken("admin")
	require.NoError(t, err)

	seed := []map[string]interface{}{
		{"name": "Silk Blouse", "price": 45.0, "category": "Blouses", "description": "Lightweight silk", "tags": []string{"silk"}},
		{"name": "Kanjivaram Saree", "price": 320.0, "category": "Bridal", "featured": true},
		{"name": "Bridal Lehenga", "price": 540.0, "category": "Bridal"},
	}

	adminRequest := func(method, path string, payload interface{}) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+adminToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("create products", func(t *testing.T) {
		for _, p := range seed {
			rec := adminRequest(http.MethodPost, "/api/products", p)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var resp struct {
				Success bool           `json:"success"`
				Product domain.Product `json:"product"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.NotZero(t, resp.Product.ID)
			assert.NotEmpty(t, resp.Product.Slug)
		}
		assert.Len(t, publisher.events, 3)
	})

	t.Run("create without auth is rejected", func(t *testing.T) {
		body, _ := json.Marshal(seed[0])
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create without name is a 400", func(t *testing.T) {
		rec := adminRequest(http.MethodPost, "/api/products", map[string]interface{}{"price": 10.0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "name is required")
	})

	t.Run("list returns a plain array in id order", func(t *testing.T) {
		rec := get("/api/products")
		require.Equal(t, http.StatusOK, rec.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		require.Len(t, products, 3)
		assert.Equal(t, "Silk Blouse", products[0].Name)
		assert.NotNil(t, products[1].Images)
	})

	t.Run("list honors filter query parameters", func(t *testing.T) {
		rec := get("/api/products?category=Bridal&sort=price-high")
		require.Equal(t, http.StatusOK, rec.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		require.Len(t, products, 2)
		assert.Equal(t, "Bridal Lehenga", products[0].Name)
	})

	t.Run("featured endpoint", func(t *testing.T) {
		rec := get("/api/products/featured")
		require.Equal(t, http.StatusOK, rec.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
		require.Len(t, products, 1)
		assert.Equal(t, "Kanjivaram Saree", products[0].Name)
	})

	t.Run("detail by slug with similar products", func(t *testing.T) {
		rec := get("/api/products/kanjivaram-saree")
		require.Equal(t, http.StatusOK, rec.Code)

		var detail struct {
			Product domain.Product   `json:"product"`
			Similar []domain.Product `json:"similar"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, "Kanjivaram Saree", detail.Product.Name)
		require.Len(t, detail.Similar, 1)
		assert.Equal(t, "Bridal Lehenga", detail.Similar[0].Name)
	})

	t.Run("unknown slug is a 404", func(t *testing.T) {
		rec := get("/api/products/no-such-slug")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("categories include the query-only All", func(t *testing.T) {
		rec := get("/api/categories")
		require.Equal(t, http.StatusOK, rec.Code)

		var categories []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
		assert.Equal(t, []string{"All", "Blouses", "Festive", "Bridal", "New Arrivals"}, categories)
	})

	t.Run("partial update flips featured only", func(t *testing.T) {
		rec := adminRequest(http.MethodPut, "/api/products", map[string]interface{}{
			"id": 1, "featured": true,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Product domain.Product `json:"product"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Product.Featured)
		assert.Equal(t, "Silk Blouse", resp.Product.Name)
		assert.Equal(t, 45.0, resp.Product.Price)
		assert.Equal(t, recordedEvent{"updated", 1}, publisher.events[len(publisher.events)-1])
	})

	t.Run("update of a missing id is a 404", func(t *testing.T) {
		rec := adminRequest(http.MethodPut, "/api/products", map[string]interface{}{
			"id": 999, "featured": true,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
