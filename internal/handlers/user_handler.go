package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"shopapi/internal/middleware"
	"shopapi/internal/models"
	"shopapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for accounts, sessions and carts.
type UserHandler struct {
	authService *services.AuthService
	cartService *services.CartService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, cartService *services.CartService) *UserHandler {
	return &UserHandler{
		authService: authService,
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. Logout and extend run with the
// expiry check disabled; everything else enforces it.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	auth := middleware.TokenRequired(h.authService, false)
	authExpiredOK := middleware.TokenRequired(h.authService, true)

	users := router.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Delete("/logout", authExpiredOK, h.HandleLogout)
	users.Patch("/extend", authExpiredOK, h.HandleExtend)
	users.Get("/me", auth, h.HandleProfile)
	users.Patch("/cart", auth, h.HandleEditCart)
	users.Get("/cart", auth, h.HandleGetCart)
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Account  string `json:"account" validate:"required,alphanum,min=4,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=20"`
}

// HandleRegister handles new account registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return Fail(c, fiber.StatusBadRequest, firstValidationMessage(err))
	}

	if err := h.authService.Register(req.Account, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateAccount), errors.Is(err, services.ErrDuplicateEmail):
			return Fail(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, services.ErrPasswordLength):
			return Fail(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("Error registering user: %v", err)
			return Fail(c, fiber.StatusInternalServerError, "unknown error")
		}
	}
	return OKEmpty(c)
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Account  string `json:"account" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates the account and opens a new session.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return Fail(c, fiber.StatusBadRequest, firstValidationMessage(err))
	}

	result, err := h.authService.Login(req.Account, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, services.ErrInvalidPassword):
			return Fail(c, fiber.StatusUnauthorized, err.Error())
		default:
			log.Printf("Error during login for account %s: %v", req.Account, err)
			return Fail(c, fiber.StatusInternalServerError, "unknown error")
		}
	}
	return OK(c, result)
}

// HandleLogout removes the presented token from the user's live sessions.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)
	token := c.Locals(middleware.TokenKey).(string)

	if err := h.authService.Logout(user, token); err != nil {
		log.Printf("Error during logout for user %s: %v", user.ID, err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OKEmpty(c)
}

// HandleExtend swaps the presented token for a fresh one.
func (h *UserHandler) HandleExtend(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)
	token := c.Locals(middleware.TokenKey).(string)

	fresh, err := h.authService.Extend(user, token)
	if err != nil {
		if errors.Is(err, services.ErrTokenRevoked) {
			return Fail(c, fiber.StatusUnauthorized, "invalid token")
		}
		log.Printf("Error extending session for user %s: %v", user.ID, err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, fresh)
}

// ProfileResult is the payload of GET /users/me.
type ProfileResult struct {
	Account string      `json:"account"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Cart    int         `json:"cart"`
}

// HandleProfile returns the acting user's own profile.
func (h *UserHandler) HandleProfile(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)
	return OK(c, ProfileResult{
		Account: user.Account,
		Email:   user.Email,
		Role:    user.Role,
		Cart:    user.CartQuantity(),
	})
}

// EditCartRequest is the request body for cart mutation. Quantity is a
// signed delta merged into the existing line.
type EditCartRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity"`
}

// HandleEditCart merges a quantity delta into the user's cart and returns
// the resulting cart quantity sum.
func (h *UserHandler) HandleEditCart(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)

	var req EditCartRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return Fail(c, fiber.StatusBadRequest, firstValidationMessage(err))
	}

	total, err := h.cartService.EditCart(user, req.Product, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID), errors.Is(err, services.ErrInvalidQuantity):
			return Fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrProductNotFound):
			return Fail(c, fiber.StatusNotFound, err.Error())
		default:
			log.Printf("Error editing cart for user %s: %v", user.ID, err)
			return Fail(c, fiber.StatusInternalServerError, "unknown error")
		}
	}
	return OK(c, total)
}

// HandleGetCart returns the user's cart lines with product documents.
func (h *UserHandler) HandleGetCart(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)

	lines, err := h.cartService.GetCart(user)
	if err != nil {
		log.Printf("Error reading cart for user %s: %v", user.ID, err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, lines)
}

// firstValidationMessage renders the first failing field of a validator
// error as a human-readable message.
func firstValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		e := ve[0]
		return fmt.Sprintf("invalid %s: failed on the '%s' rule", strings.ToLower(e.Field()), e.Tag())
	}
	return "validation failed"
}
