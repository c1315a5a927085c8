package repositories

import (
	"shopapi/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByUserID(userID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
}
