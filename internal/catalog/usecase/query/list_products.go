package query

import (
	"context"
	"fmt"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the query to list catalog products
type ListProductsQuery struct {
	Filter domain.FilterSpec
}

// ListProductsHandler handles catalog listing
type ListProductsHandler struct {
	repo domain.ProductRepository
}

func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle reads the catalog in storage order (ascending id) and applies the
// filter spec in memory. The catalog is boutique-sized, so the whole set is
// read and filtered per request rather than pushed into SQL.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return q.Filter.Apply(products), nil
}
