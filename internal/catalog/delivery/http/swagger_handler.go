package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers the Swagger UI route.
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListProducts godoc
// @Summary List catalog products
// @Description Get the catalog, optionally filtered and sorted
// @Tags Products
// @Produce json
// @Param category query string false "Category filter (All passes everything)"
// @Param search query string false "Case-insensitive search over name, description and tags"
// @Param sort query string false "Sort key" Enums(default, price-low, price-high, name)
// @Success 200 {array} domain.Product
// @Failure 503 {object} object{error=string}
// @Router /api/products [get]
func (h *ProductHandler) ListProductsDoc() {}

// GetFeatured godoc
// @Summary List featured products
// @Tags Products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /api/products/featured [get]
func (h *ProductHandler) GetFeaturedDoc() {}

// GetProduct godoc
// @Summary Get a product by slug
// @Description Product detail plus up to four similar products from its category
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} query.ProductDetail
// @Failure 404 {object} object{error=string}
// @Router /api/products/{slug} [get]
func (h *ProductHandler) GetProductDoc() {}

// CreateProduct godoc
// @Summary Create a product
// @Description Create a new product (admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,price=number,category=string,description=string,images=array,tags=array,featured=bool} true "Product data"
// @Success 201 {object} object{success=bool,product=object}
// @Failure 400 {object} object{error=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Partial update; only supplied fields change (admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{id=int,name=string,price=number,category=string,description=string,images=array,tags=array,featured=bool} true "Partial product data"
// @Success 200 {object} object{success=bool,product=object}
// @Failure 404 {object} object{error=string}
// @Router /api/products [put]
func (h *ProductHandler) UpdateProductDoc() {}

// ListCategories godoc
// @Summary List categories
// @Description The closed category set; "All" is accepted by the filter only
// @Tags Products
// @Produce json
// @Success 200 {array} string
// @Router /api/categories [get]
func (h *ProductHandler) ListCategoriesDoc() {}
