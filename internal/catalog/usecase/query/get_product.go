package query

import (
	"context"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
)

// SimilarLimit caps how many related products a detail page shows.
const SimilarLimit = 4

// GetProductQuery fetches one product by its URL slug.
type GetProductQuery struct {
	Slug string
}

// ProductDetail is the product plus related items from its category.
type ProductDetail struct {
	Product *domain.Product  `json:"product"`
	Similar []domain.Product `json:"similar"`
}

// GetProductHandler handles product detail lookups
type GetProductHandler struct {
	repo domain.ProductRepository
}

func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle resolves the slug and collects up to SimilarLimit products from the
// same category, excluding the product itself. A failure while loading the
// similar list does not fail the lookup.
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*ProductDetail, error) {
	product, err := h.repo.FindBySlug(ctx, q.Slug)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{Product: product, Similar: []domain.Product{}}

	related, err := h.repo.FindByCategory(ctx, product.Category)
	if err != nil {
		return detail, nil
	}
	for _, p := range related {
		if p.ID == product.ID {
			continue
		}
		detail.Similar = append(detail.Similar, p)
		if len(detail.Similar) == SimilarLimit {
			break
		}
	}

	return detail, nil
}
