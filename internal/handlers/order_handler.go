package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders and checkout.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. All of them require a
// bearer token; listing and status changes additionally require admin.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	orders := router.Group("/orders", auth)
	orders.Post("/create", h.HandleCreateOrder)
	orders.Post("/checkout", h.HandleCheckout)
	orders.Get("/", adminOnly, h.HandleGetOrders)
	orders.Get("/user_orders/:id", h.HandleGetUserOrders)
	orders.Patch("/change_status/:id", adminOnly, h.HandleChangeStatus)
	orders.Post("/cancel/:id", h.HandleCancelOrder)
	orders.Get("/:id", h.HandleGetOrderByID)
}

// CreateOrderRequest is the request body for order creation.
type CreateOrderRequest struct {
	UserID string                    `json:"userId"`
	Items  []services.OrderItemInput `json:"items"`
}

// HandleCreateOrder creates a new order for the given user.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	order, err := h.service.CreateOrder(middleware.CallerID(c), middleware.CallerRole(c), req.UserID, req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// CheckoutRequest is the request body for the checkout endpoint: just a
// cart, the owner is taken from the access token.
type CheckoutRequest struct {
	Items []services.OrderItemInput `json:"items"`
}

// HandleCheckout re-packages the authenticated caller's cart into an
// order-creation call.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	callerID := middleware.CallerID(c)
	order, err := h.service.CreateOrder(callerID, middleware.CallerRole(c), callerID, req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// HandleGetOrders lists all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(middleware.CallerID(c), middleware.CallerRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order found",
		"order":   order,
	})
}

// HandleGetUserOrders lists all orders of one user.
func (h *OrderHandler) HandleGetUserOrders(c *fiber.Ctx) error {
	userID := c.Params("id")
	orders, err := h.service.GetUserOrders(middleware.CallerID(c), middleware.CallerRole(c), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Found orders for user of id " + userID + " successfully",
		"orders":  orders,
	})
}

// ChangeStatusRequest is the request body for a status transition.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// HandleChangeStatus moves an order to a new status.
func (h *OrderHandler) HandleChangeStatus(c *fiber.Ctx) error {
	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.service.ChangeStatus(c.Params("id"), req.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
	})
}

// HandleCancelOrder lets the owner cancel a pending order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	if err := h.service.CancelOrder(middleware.CallerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order cancelled successfully",
	})
}
