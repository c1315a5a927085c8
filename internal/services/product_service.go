package services

import (
	"errors"
	"fmt"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/google/uuid"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ProductListing is the result of a catalog query: one page of products plus
// the catalog total (all products for admin listings, all sellable products
// for the public one, independent of the search filter).
type ProductListing struct {
	Data  []models.Product `json:"data"`
	Total int64            `json:"total"`
}

// List runs a catalog query.
func (s *ProductService) List(q repositories.ProductQuery) (*ProductListing, error) {
	products, err := s.repo.Query(q)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(q.SellOnly)
	if err != nil {
		return nil, err
	}
	return &ProductListing{Data: products, Total: total}, nil
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	product, err := s.repo.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Create creates a new product.
func (s *ProductService) Create(product *models.Product) error {
	return s.repo.Create(product)
}

// Update saves changes to an existing product.
func (s *ProductService) Update(product *models.Product) error {
	err := s.repo.Update(product)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}
