package handlers

import (
	"fmt"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Reads are public;
// writes require an admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	products := router.Group("/products")
	products.Get("/", h.HandleGetProducts)
	products.Get("/categories", h.HandleGetCategories)
	products.Get("/:id", h.HandleGetProductByID)
	products.Post("/create", auth, adminOnly, h.HandleCreateProduct)
	products.Put("/update/:id", auth, adminOnly, h.HandleUpdateProduct)
	products.Delete("/delete/:id", auth, adminOnly, h.HandleDeleteProduct)
}

// HandleGetProducts lists the catalog, filtered by the optional `query`
// and `category` query parameters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetProducts(c.Query("query"), c.Query("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetCategories lists the distinct categories in the catalog.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Found product of id %s", product.ID),
		"product": product,
	})
}

// ProductRequest is the request body for creating or updating a product.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Available   *int            `json:"available"`
	ImagePath   string          `json:"imagePath"`
	Category    string          `json:"category"`
}

// HandleCreateProduct creates a new catalog entry.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Description == "" || req.Price.IsZero() || req.Available == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Parameters name, description, price, and available should be provided",
		})
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   *req.Available,
		ImagePath:   req.ImagePath,
		Category:    req.Category,
	}
	if err := h.service.CreateProduct(product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Created product of id %s successfully", product.ID),
		"product": product,
	})
}

// HandleUpdateProduct replaces an existing catalog entry.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Name == "" || req.Description == "" || req.Price.IsZero() || req.Available == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Parameters name, description, price, and available should be provided",
		})
	}

	existing, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Available = *req.Available
	existing.ImagePath = req.ImagePath
	existing.Category = req.Category

	if err := h.service.UpdateProduct(existing); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Updated product of id %s successfully", existing.ID),
		"product": existing,
	})
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Deleted product of id %s successfully", id),
	})
}
