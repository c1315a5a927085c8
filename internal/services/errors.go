package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses and envelope messages with errors.Is; anything else is
// treated as an internal error.
var (
	ErrDuplicateAccount = errors.New("account already registered")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrPasswordLength   = errors.New("password length must be 4 to 20 characters")

	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidPassword = errors.New("incorrect password")

	ErrMalformedToken = errors.New("malformed token")
	ErrSessionExpired = errors.New("session expired")
	ErrTokenRevoked   = errors.New("token revoked")

	ErrInvalidID       = errors.New("invalid id format")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCart       = errors.New("cart is empty")
)
