package services

import (
	"errors"
	"fmt"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/google/uuid"
)

// CartService handles cart mutations and reads for an already-authenticated
// user.
type CartService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// CartLine is a cart entry with its product document attached. Product is
// nil when the product no longer exists.
type CartLine struct {
	Product  *models.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// EditCart merges a signed quantity delta into the user's cart line for
// productID and saves the user. A merge result of zero or less removes the
// line. A first-time add requires the product to exist and be sellable, and
// the delta to be positive; an existing line stays editable even after the
// product is delisted, so it can still be adjusted or removed. Returns the
// resulting cart quantity sum.
func (s *CartService) EditCart(user *models.User, productID string, quantity int) (int, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return 0, ErrInvalidID
	}

	idx := -1
	for i, item := range user.Cart {
		if item.ProductID == productID {
			idx = i
			break
		}
	}

	if idx > -1 {
		merged := user.Cart[idx].Quantity + quantity
		if merged <= 0 {
			user.Cart = append(user.Cart[:idx], user.Cart[idx+1:]...)
		} else {
			user.Cart[idx].Quantity = merged
		}
	} else {
		product, err := s.productRepo.GetByID(productID)
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrProductNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("failed to look up product: %w", err)
		}
		if !product.Sell {
			return 0, ErrProductNotFound
		}
		if quantity <= 0 {
			return 0, ErrInvalidQuantity
		}
		user.Cart = append(user.Cart, models.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
		})
	}

	if err := s.userRepo.Save(user); err != nil {
		return 0, err
	}
	return user.CartQuantity(), nil
}

// GetCart returns the user's cart lines with their product documents.
func (s *CartService) GetCart(user *models.User) ([]CartLine, error) {
	lines := make([]CartLine, 0, len(user.Cart))
	for _, item := range user.Cart {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up product %s: %w", item.ProductID, err)
		}
		lines = append(lines, CartLine{
			Product:  product,
			Quantity: item.Quantity,
		})
	}
	return lines, nil
}
