package models

import "time"

// Order is a snapshot of a user's cart at the moment of checkout. Items is
// never empty; order state tracking is out of scope.
type Order struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"index;type:varchar(36)"`
	Items     []CartItem `json:"cart" gorm:"serializer:json"`
	CreatedAt time.Time  `json:"created_at"`
}
