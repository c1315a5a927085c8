package repositories

import (
	"sort"
	"strings"
	"sync"

	"shopapi/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Query returns products matching q.
func (r *MockProductRepository) Query(q ProductQuery) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Product, 0, len(r.products))
	search := strings.ToLower(q.Search)
	for _, p := range r.products {
		if q.SellOnly && !p.Sell {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}

	less := func(a, b models.Product) bool {
		switch q.SortBy {
		case "name":
			return a.Name < b.Name
		case "price":
			return a.Price < b.Price
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.SortOrder > 0 {
			return less(matched[i], matched[j])
		}
		return less(matched[j], matched[i])
	})

	if q.ItemsPerPage != -1 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * q.ItemsPerPage
		if start > len(matched) {
			start = len(matched)
		}
		end := start + q.ItemsPerPage
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, nil
}

// Count returns the number of products, optionally only sellable ones.
func (r *MockProductRepository) Count(sellOnly bool) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !sellOnly {
		return int64(len(r.products)), nil
	}
	var total int64
	for _, p := range r.products {
		if p.Sell {
			total++
		}
	}
	return total, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrNotFound
	}
	r.products[product.ID] = *product
	return nil
}
