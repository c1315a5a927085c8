package models

import "gorm.io/gorm"

// Product represents a product in the store. Sell gates whether the product
// may be newly added to carts and whether it appears on public listings.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,max=500"`
	Sell        bool    `json:"sell"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	gorm.Model  // CreatedAt, UpdatedAt, DeletedAt
}
