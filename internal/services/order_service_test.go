package services_test

import (
	"testing"

	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a testify mock of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderCreated(orderData map[string]interface{}) error {
	args := m.Called(orderData)
	return args.Error(0)
}

func TestOrderService_CreateFromCart(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	userRepo := repositories.NewMockUserRepository()
	publisher := new(MockEventPublisher)
	orderService := services.NewOrderService(orderRepo, userRepo, publisher)

	user := &models.User{
		Account: "alice1",
		Email:   "a@x.com",
		Cart: []models.CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}
	assert.NoError(t, userRepo.Create(user))

	publisher.On("PublishOrderCreated", mock.MatchedBy(func(event map[string]interface{}) bool {
		return event["userID"] == user.ID
	})).Return(nil).Once()

	order, err := orderService.CreateFromCart(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, user.ID, order.UserID)
	assert.Len(t, order.Items, 2)
	assert.False(t, order.CreatedAt.IsZero())

	// Checkout empties the cart and persists that.
	assert.Empty(t, user.Cart)
	saved, err := userRepo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, saved.Cart)

	orders, err := orderService.GetForUser(user.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	publisher.AssertExpectations(t)
}

func TestOrderService_CreateFromCart_Empty(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	userRepo := repositories.NewMockUserRepository()
	orderService := services.NewOrderService(orderRepo, userRepo, nil)

	user := &models.User{Account: "alice1", Email: "a@x.com"}
	assert.NoError(t, userRepo.Create(user))

	_, err := orderService.CreateFromCart(user)
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	orders, err := orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_PublisherFailureDoesNotFailOrder(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	userRepo := repositories.NewMockUserRepository()
	publisher := new(MockEventPublisher)
	orderService := services.NewOrderService(orderRepo, userRepo, publisher)

	user := &models.User{
		Account: "alice1",
		Email:   "a@x.com",
		Cart:    []models.CartItem{{ProductID: "p1", Quantity: 1}},
	}
	assert.NoError(t, userRepo.Create(user))

	publisher.On("PublishOrderCreated", mock.Anything).Return(assert.AnError).Once()

	order, err := orderService.CreateFromCart(user)
	assert.NoError(t, err)
	assert.NotNil(t, order)
	publisher.AssertExpectations(t)
}
