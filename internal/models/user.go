package models

import "gorm.io/gorm"

// Role distinguishes regular shoppers from administrators.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

// CartItem is a single line in a user's cart.
type CartItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// User represents a shop account. Tokens holds the bearer token of every
// live session for the account (one entry per logged-in device); Cart holds
// the current cart lines. Both are JSON columns, so the whole user is read
// and written as a single document.
type User struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Account    string     `json:"account" gorm:"uniqueIndex;type:varchar(20)" validate:"required,alphanum,min=4,max=20"`
	Email      string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string     `json:"-" gorm:"type:varchar(255)"`
	Tokens     []string   `json:"-" gorm:"serializer:json"`
	Cart       []CartItem `json:"cart" gorm:"serializer:json"`
	Role       Role       `json:"role" gorm:"default:0"`
	gorm.Model // CreatedAt, UpdatedAt, DeletedAt
}

// CartQuantity returns the sum of all cart line quantities.
func (u *User) CartQuantity() int {
	total := 0
	for _, item := range u.Cart {
		total += item.Quantity
	}
	return total
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
