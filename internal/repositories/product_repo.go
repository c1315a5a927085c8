package repositories

import (
	"shopapi/internal/models"
)

// ProductQuery carries the listing parameters of the catalog endpoints.
// Search is a case-insensitive substring match against name and description.
// ItemsPerPage of -1 disables the page limit.
type ProductQuery struct {
	SellOnly     bool
	Search       string
	SortBy       string
	SortOrder    int
	Page         int
	ItemsPerPage int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Query(q ProductQuery) ([]models.Product, error)
	Count(sellOnly bool) (int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
}
