package services_test

import (
	"testing"

	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedCatalog(t *testing.T) (*services.ProductService, *repositories.MockProductRepository) {
	t.Helper()
	repo := repositories.NewMockProductRepository()
	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Price: 1200, Sell: true},
		{Name: "Keyboard", Description: "Mechanical keyboard", Price: 75, Sell: true},
		{Name: "Mouse", Description: "Ergonomic wireless mouse", Price: 25, Sell: false},
	}
	for i := range products {
		assert.NoError(t, repo.Create(&products[i]))
	}
	return services.NewProductService(repo), repo
}

func TestProductService_List_Public(t *testing.T) {
	service, _ := seedCatalog(t)

	listing, err := service.List(repositories.ProductQuery{
		SellOnly:     true,
		SortBy:       "price",
		SortOrder:    1,
		Page:         1,
		ItemsPerPage: 20,
	})
	assert.NoError(t, err)
	assert.Len(t, listing.Data, 2)
	assert.Equal(t, "Keyboard", listing.Data[0].Name)
	assert.Equal(t, "Laptop", listing.Data[1].Name)
	// The total counts sellable products, not the result page.
	assert.Equal(t, int64(2), listing.Total)
}

func TestProductService_List_Admin(t *testing.T) {
	service, _ := seedCatalog(t)

	listing, err := service.List(repositories.ProductQuery{
		SortBy:       "name",
		SortOrder:    1,
		Page:         1,
		ItemsPerPage: -1,
	})
	assert.NoError(t, err)
	assert.Len(t, listing.Data, 3)
	assert.Equal(t, int64(3), listing.Total)
}

func TestProductService_List_Search(t *testing.T) {
	service, _ := seedCatalog(t)

	// Case-insensitive substring match against name and description; the
	// total still counts the whole catalog.
	listing, err := service.List(repositories.ProductQuery{
		Search:       "KEYBO",
		SortBy:       "createdAt",
		SortOrder:    -1,
		Page:         1,
		ItemsPerPage: 20,
	})
	assert.NoError(t, err)
	assert.Len(t, listing.Data, 1)
	assert.Equal(t, "Keyboard", listing.Data[0].Name)
	assert.Equal(t, int64(3), listing.Total)
}

func TestProductService_List_Pagination(t *testing.T) {
	service, _ := seedCatalog(t)

	page1, err := service.List(repositories.ProductQuery{
		SortBy: "name", SortOrder: 1, Page: 1, ItemsPerPage: 2,
	})
	assert.NoError(t, err)
	assert.Len(t, page1.Data, 2)

	page2, err := service.List(repositories.ProductQuery{
		SortBy: "name", SortOrder: 1, Page: 2, ItemsPerPage: 2,
	})
	assert.NoError(t, err)
	assert.Len(t, page2.Data, 1)
	assert.Equal(t, "Mouse", page2.Data[0].Name)
}

func TestProductService_GetByID(t *testing.T) {
	service, repo := seedCatalog(t)

	product := &models.Product{Name: "Monitor", Price: 200, Sell: true}
	assert.NoError(t, repo.Create(product))

	got, err := service.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Monitor", got.Name)

	_, err = service.GetByID("not-a-uuid")
	assert.ErrorIs(t, err, services.ErrInvalidID)

	_, err = service.GetByID(uuid.New().String())
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestProductService_Update(t *testing.T) {
	service, repo := seedCatalog(t)

	product := &models.Product{Name: "Monitor", Price: 200, Sell: true}
	assert.NoError(t, repo.Create(product))

	product.Sell = false
	assert.NoError(t, service.Update(product))
	saved, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.False(t, saved.Sell)

	missing := &models.Product{ID: uuid.New().String(), Name: "Ghost"}
	assert.ErrorIs(t, service.Update(missing), services.ErrProductNotFound)
}
