package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Product represents a catalog entry
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"index"`
	Price       float64        `json:"price" gorm:"not null"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	Featured    bool           `json:"featured" gorm:"default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Normalize guarantees Images and Tags are concrete slices.
// Rows written before the arrays got defaults can come back NULL,
// and the storefront always expects JSON arrays.
func (p *Product) Normalize() {
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
	if p.Tags == nil {
		p.Tags = pq.StringArray{}
	}
}

// MainImage returns the display image for cards and previews.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Categories is the closed set a product can belong to.
// CategoryAll is accepted by the catalog filter only, never stored.
const CategoryAll = "All"

var Categories = []string{"Blouses", "Festive", "Bridal", "New Arrivals"}

// IsValidCategory reports whether c is a storable category.
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug from a product name: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, hyphens trimmed.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	FindFeatured(ctx context.Context) ([]Product, error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Count(ctx context.Context) (int64, error)
}
