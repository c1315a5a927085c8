package handlers

import (
	"errors"
	"log"

	"shopapi/internal/middleware"
	"shopapi/internal/models"
	"shopapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	authService  *services.AuthService
	orderService *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(authService *services.AuthService, orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		authService:  authService,
		orderService: orderService,
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	auth := middleware.TokenRequired(h.authService, false)
	admin := middleware.AdminRequired()

	orders := router.Group("/orders")
	orders.Post("/", auth, h.HandleCreate)
	orders.Get("/all", auth, admin, h.HandleGetAll)
	orders.Get("/", auth, h.HandleGetOwn)
}

// HandleCreate checks out the acting user's cart as a new order.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)

	order, err := h.orderService.CreateFromCart(user)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return Fail(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("Error creating order for user %s: %v", user.ID, err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, order)
}

// HandleGetOwn lists the acting user's orders.
func (h *OrderHandler) HandleGetOwn(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)

	orders, err := h.orderService.GetForUser(user.ID)
	if err != nil {
		log.Printf("Error listing orders for user %s: %v", user.ID, err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, orders)
}

// HandleGetAll lists all orders (admin).
func (h *OrderHandler) HandleGetAll(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAll()
	if err != nil {
		log.Printf("Error listing all orders: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, orders)
}
