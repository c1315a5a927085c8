package services

import (
	"log"
	"time"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes domain events to the message broker. A nil
// publisher disables events without failing order placement.
type EventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// OrderService handles order placement and retrieval.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// CreateFromCart checks out the user's current cart as a new order and
// empties the cart. The cart must be non-empty.
func (s *OrderService) CreateFromCart(user *models.User) (*models.Order, error) {
	if len(user.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]models.CartItem, len(user.Cart))
	copy(items, user.Cart)

	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Items:     items,
		CreatedAt: time.Now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	user.Cart = nil
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"orderID":   order.ID,
			"userID":    order.UserID,
			"items":     len(order.Items),
			"createdAt": order.CreatedAt,
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// GetForUser retrieves the orders placed by one user.
func (s *OrderService) GetForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetAll retrieves all orders.
func (s *OrderService) GetAll() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}
