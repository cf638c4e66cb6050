package query

import (
	"context"
	"fmt"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
)

// GetFeaturedHandler returns the curated highlight list for the home page.
type GetFeaturedHandler struct {
	repo domain.ProductRepository
}

func NewGetFeaturedHandler(repo domain.ProductRepository) *GetFeaturedHandler {
	return &GetFeaturedHandler{repo: repo}
}

func (h *GetFeaturedHandler) Handle(ctx context.Context) ([]domain.Product, error) {
	products, err := h.repo.FindFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load featured products: %w", err)
	}
	return products, nil
}
