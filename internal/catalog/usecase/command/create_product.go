package command

import (
	"context"
	"fmt"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name        string
	Price       *float64
	Category    string
	Description string
	Images      []string
	Tags        []string
	Featured    bool
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle validates the command, derives the slug and stores the product.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrValidation)
	}
	if cmd.Price == nil {
		return nil, fmt.Errorf("%w: price is required", domain.ErrValidation)
	}
	if *cmd.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if cmd.Category != "" && !domain.IsValidCategory(cmd.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, cmd.Category)
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Slug:        domain.Slugify(cmd.Name),
		Price:       *cmd.Price,
		Category:    cmd.Category,
		Description: cmd.Description,
		Images:      cmd.Images,
		Tags:        cmd.Tags,
		Featured:    cmd.Featured,
	}
	product.Normalize()

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
