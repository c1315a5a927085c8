package repositories

import (
	"errors"

	"shopapi/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for user data access. Save writes the
// whole user document back (tokens and cart included); there is no
// field-level update, so concurrent writers race last-writer-wins.
type UserRepository interface {
	Create(user *models.User) error
	GetByAccount(account string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Save(user *models.User) error
}
