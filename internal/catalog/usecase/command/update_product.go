package command

import (
	"context"
	"fmt"
	"time"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
)

// UpdateProductCommand is a partial update. Pointer fields distinguish
// "field omitted" from an explicit value, so an admin can clear the image
// list with an empty array without wiping fields they never touched.
type UpdateProductCommand struct {
	ID          uint
	Name        *string
	Price       *float64
	Category    *string
	Description *string
	Images      *[]string
	Tags        *[]string
	Featured    *bool
}

// UpdateProductHandler handles partial product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle loads the product, applies the supplied fields and saves it.
// The slug tracks the name, and UpdatedAt is refreshed on every call.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrValidation)
	}

	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("%w: product name cannot be empty", domain.ErrValidation)
		}
		product.Name = *cmd.Name
		product.Slug = domain.Slugify(*cmd.Name)
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
		}
		product.Price = *cmd.Price
	}
	if cmd.Category != nil {
		if !domain.IsValidCategory(*cmd.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *cmd.Category)
		}
		product.Category = *cmd.Category
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Images != nil {
		product.Images = *cmd.Images
	}
	if cmd.Tags != nil {
		product.Tags = *cmd.Tags
	}
	if cmd.Featured != nil {
		product.Featured = *cmd.Featured
	}

	product.UpdatedAt = time.Now()
	product.Normalize()

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
