package command_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
	"github.com/sujatha-boutique/storefront/internal/catalog/repository"
	"github.com/sujatha-boutique/storefront/internal/catalog/usecase/command"
)

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestCreateProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewCreateProductHandler(repo)
	ctx := context.Background()

	t.Run("creates with derived slug and defaults", func(t *testing.T) {
		product, err := handler.Handle(ctx, command.CreateProductCommand{
			Name:     "Silk Blouse – Deluxe!!",
			Price:    floatPtr(89.99),
			Category: "Blouses",
		})
		require.NoError(t, err)

		assert.NotZero(t, product.ID)
		assert.Equal(t, "silk-blouse-deluxe", product.Slug)
		assert.NotNil(t, product.Images)
		assert.NotNil(t, product.Tags)
		assert.Empty(t, product.Images)
		assert.Empty(t, product.Tags)
		assert.False(t, product.Featured)
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := handler.Handle(ctx, command.CreateProductCommand{Price: floatPtr(10)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("requires price", func(t *testing.T) {
		_, err := handler.Handle(ctx, command.CreateProductCommand{Name: "Saree"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := handler.Handle(ctx, command.CreateProductCommand{Name: "Saree", Price: floatPtr(-1)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := handler.Handle(ctx, command.CreateProductCommand{
			Name: "Saree", Price: floatPtr(10), Category: "Sarees",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*repository.MemoryProductRepository, *domain.Product) {
		t.Helper()
		repo := repository.NewMemoryProductRepository()
		created, err := command.NewCreateProductHandler(repo).Handle(ctx, command.CreateProductCommand{
			Name:        "Festive Anarkali",
			Price:       floatPtr(120),
			Category:    "Festive",
			Description: "Embroidered anarkali",
			Images:      []string{"anarkali.jpg"},
			Tags:        []string{"anarkali", "party"},
		})
		require.NoError(t, err)
		return repo, created
	}

	t.Run("featured-only partial update leaves other fields intact", func(t *testing.T) {
		repo, created := seed(t)
		before := *created
		time.Sleep(5 * time.Millisecond)

		updated, err := command.NewUpdateProductHandler(repo).Handle(ctx, command.UpdateProductCommand{
			ID:       created.ID,
			Featured: boolPtr(true),
		})
		require.NoError(t, err)

		assert.True(t, updated.Featured)
		assert.Equal(t, before.Name, updated.Name)
		assert.Equal(t, before.Price, updated.Price)
		assert.Equal(t, before.Slug, updated.Slug)
		assert.Equal(t, before.Images, updated.Images)
		assert.Equal(t, before.Tags, updated.Tags)
		assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))
	})

	t.Run("renaming recomputes the slug", func(t *testing.T) {
		repo, created := seed(t)

		updated, err := command.NewUpdateProductHandler(repo).Handle(ctx, command.UpdateProductCommand{
			ID:   created.ID,
			Name: strPtr("Bridal Anarkali Set"),
		})
		require.NoError(t, err)
		assert.Equal(t, "bridal-anarkali-set", updated.Slug)
	})

	t.Run("explicit empty images array clears the list", func(t *testing.T) {
		repo, created := seed(t)

		updated, err := command.NewUpdateProductHandler(repo).Handle(ctx, command.UpdateProductCommand{
			ID:     created.ID,
			Images: &[]string{},
		})
		require.NoError(t, err)
		assert.NotNil(t, updated.Images)
		assert.Empty(t, updated.Images)
		// omitted tags untouched
		assert.Equal(t, created.Tags, updated.Tags)
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		repo, _ := seed(t)

		_, err := command.NewUpdateProductHandler(repo).Handle(ctx, command.UpdateProductCommand{
			ID:       9999,
			Featured: boolPtr(true),
		})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("zero id fails validation", func(t *testing.T) {
		repo, _ := seed(t)

		_, err := command.NewUpdateProductHandler(repo).Handle(ctx, command.UpdateProductCommand{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
