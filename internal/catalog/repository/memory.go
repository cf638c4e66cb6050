package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sujatha-boutique/storefront/internal/catalog/domain"
)

// MemoryProductRepository is an in-memory ProductRepository used by tests.
type MemoryProductRepository struct {
	mu     sync.RWMutex
	nextID uint
	items  map[uint]domain.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{nextID: 1, items: make(map[uint]domain.Product)}
}

func (r *MemoryProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Normalize()
	r.items[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *MemoryProductRepository) FindAll(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(domain.Product) bool { return true }), nil
}

func (r *MemoryProductRepository) FindFeatured(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(p domain.Product) bool { return p.Featured }), nil
}

func (r *MemoryProductRepository) FindByCategory(_ context.Context, category string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(p domain.Product) bool { return p.Category == category }), nil
}

func (r *MemoryProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	product.Normalize()
	r.items[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// sorted returns matching products ordered by ascending id, mirroring the
// SQL read path.
func (r *MemoryProductRepository) sorted(match func(domain.Product) bool) []domain.Product {
	products := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		if match(p) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
