package handlers

import (
	"errors"
	"log"

	"shopapi/internal/middleware"
	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	authService    *services.AuthService
	productService *services.ProductService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(authService *services.AuthService, productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		authService:    authService,
		productService: productService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. Admin routes come first so
// /all is not captured by the :id route.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	auth := middleware.TokenRequired(h.authService, false)
	admin := middleware.AdminRequired()

	products := router.Group("/products")
	products.Post("/", auth, admin, h.HandleCreate)
	products.Get("/all", auth, admin, h.HandleGetAll)
	products.Patch("/:id", auth, admin, h.HandleEdit)
	products.Get("/", h.HandleGet)
	products.Get("/:id", h.HandleGetByID)
}

// listingQuery reads the shared listing query parameters.
func listingQuery(c *fiber.Ctx, sellOnly bool) repositories.ProductQuery {
	itemsPerPage := c.QueryInt("itemsPerPage", 20)
	if itemsPerPage == 0 {
		itemsPerPage = 20
	}
	return repositories.ProductQuery{
		SellOnly:     sellOnly,
		Search:       c.Query("search"),
		SortBy:       c.Query("sortBy", "createdAt"),
		SortOrder:    c.QueryInt("sortOrder", -1),
		Page:         c.QueryInt("page", 1),
		ItemsPerPage: itemsPerPage,
	}
}

// HandleCreate creates a new product (admin).
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	product.ID = ""
	if err := h.validate.Struct(product); err != nil {
		return Fail(c, fiber.StatusBadRequest, firstValidationMessage(err))
	}

	if err := h.productService.Create(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, product)
}

// HandleGetAll lists the whole catalog including delisted products (admin).
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	listing, err := h.productService.List(listingQuery(c, false))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, listing)
}

// UpdateProductRequest carries the fields of a partial product update.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       *string  `json:"image" validate:"omitempty,max=500"`
	Sell        *bool    `json:"sell"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
}

// HandleEdit applies a partial update to a product (admin).
func (h *ProductHandler) HandleEdit(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return Fail(c, fiber.StatusBadRequest, firstValidationMessage(err))
	}

	product, err := h.productService.GetByID(c.Params("id"))
	if err != nil {
		return h.failProduct(c, err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Sell != nil {
		product.Sell = *req.Sell
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := h.productService.Update(product); err != nil {
		return h.failProduct(c, err)
	}
	return OKEmpty(c)
}

// HandleGet lists sellable products (public).
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	listing, err := h.productService.List(listingQuery(c, true))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
	return OK(c, listing)
}

// HandleGetByID returns a single product (public).
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.productService.GetByID(c.Params("id"))
	if err != nil {
		return h.failProduct(c, err)
	}
	return OK(c, product)
}

func (h *ProductHandler) failProduct(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidID):
		return Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrProductNotFound):
		return Fail(c, fiber.StatusNotFound, err.Error())
	default:
		log.Printf("Product request failed: %v", err)
		return Fail(c, fiber.StatusInternalServerError, "unknown error")
	}
}
