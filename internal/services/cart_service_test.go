package services_test

import (
	"testing"

	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// cartFixture wires a cart service over in-memory repositories with one
// user and one sellable product, returning the loaded user.
func cartFixture(t *testing.T) (*services.CartService, *repositories.MockUserRepository, *repositories.MockProductRepository, *models.User, *models.Product) {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()

	product := &models.Product{Name: "Laptop", Price: 1200, Sell: true}
	assert.NoError(t, productRepo.Create(product))

	user := &models.User{Account: "alice1", Email: "a@x.com"}
	assert.NoError(t, userRepo.Create(user))

	return services.NewCartService(userRepo, productRepo), userRepo, productRepo, user, product
}

func TestCartService_EditCart_InvalidID(t *testing.T) {
	cartService, _, _, user, _ := cartFixture(t)

	_, err := cartService.EditCart(user, "not-a-uuid", 1)
	assert.ErrorIs(t, err, services.ErrInvalidID)
}

func TestCartService_EditCart_AddAndMerge(t *testing.T) {
	cartService, userRepo, _, user, product := cartFixture(t)

	total, err := cartService.EditCart(user, product.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)

	// A second add for the same product merges into the one line.
	total, err = cartService.EditCart(user, product.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, user.Cart, 1)
	assert.Equal(t, 5, user.Cart[0].Quantity)

	// The merged cart was persisted.
	saved, err := userRepo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, saved.CartQuantity())
}

func TestCartService_EditCart_MergeToZeroRemovesLine(t *testing.T) {
	cartService, _, _, user, product := cartFixture(t)

	_, err := cartService.EditCart(user, product.ID, 3)
	assert.NoError(t, err)

	// Net quantity 3 - 5 <= 0 deletes the line instead of storing it.
	total, err := cartService.EditCart(user, product.ID, -5)
	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, user.Cart)
}

func TestCartService_EditCart_UnknownProduct(t *testing.T) {
	cartService, _, _, user, _ := cartFixture(t)

	_, err := cartService.EditCart(user, uuid.New().String(), 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestCartService_EditCart_DelistedProduct(t *testing.T) {
	cartService, _, productRepo, user, product := cartFixture(t)

	// A delisted product cannot be newly added.
	product.Sell = false
	assert.NoError(t, productRepo.Update(product))
	_, err := cartService.EditCart(user, product.ID, 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	// But a line added before delisting stays adjustable and removable.
	product.Sell = true
	assert.NoError(t, productRepo.Update(product))
	_, err = cartService.EditCart(user, product.ID, 2)
	assert.NoError(t, err)
	product.Sell = false
	assert.NoError(t, productRepo.Update(product))

	total, err := cartService.EditCart(user, product.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, total)

	total, err = cartService.EditCart(user, product.ID, -3)
	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, user.Cart)
}

func TestCartService_EditCart_FirstAddMustBePositive(t *testing.T) {
	cartService, _, _, user, product := cartFixture(t)

	_, err := cartService.EditCart(user, product.ID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	_, err = cartService.EditCart(user, product.ID, -2)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	assert.Empty(t, user.Cart)
}

func TestCartService_EditCart_TotalIsSumOfLines(t *testing.T) {
	cartService, _, productRepo, user, product := cartFixture(t)

	other := &models.Product{Name: "Mouse", Price: 25, Sell: true}
	assert.NoError(t, productRepo.Create(other))

	_, err := cartService.EditCart(user, product.ID, 2)
	assert.NoError(t, err)
	total, err := cartService.EditCart(user, other.ID, 4)
	assert.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, user.Cart, 2)
}

func TestCartService_GetCart(t *testing.T) {
	cartService, _, _, user, product := cartFixture(t)

	_, err := cartService.EditCart(user, product.ID, 2)
	assert.NoError(t, err)

	lines, err := cartService.GetCart(user)
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.NotNil(t, lines[0].Product)
	assert.Equal(t, product.Name, lines[0].Product.Name)

	// A line whose product vanished comes back with a nil product rather
	// than failing the whole read.
	user.Cart = append(user.Cart, models.CartItem{ProductID: uuid.New().String(), Quantity: 1})
	lines, err = cartService.GetCart(user)
	assert.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Nil(t, lines[1].Product)
}
