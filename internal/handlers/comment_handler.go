package handlers

import (
	"fmt"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles HTTP requests for product comments.
type CommentHandler struct {
	service *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}

// RegisterRoutes registers the comment routes. Reading is public;
// posting and deleting require a bearer token.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	comments := router.Group("/comments")
	comments.Get("/:productId", h.HandleGetComments)
	comments.Post("/:productId", auth, h.HandleCreateComment)
	comments.Delete("/:id", auth, h.HandleDeleteComment)
}

// HandleGetComments lists all comments under a product.
func (h *CommentHandler) HandleGetComments(c *fiber.Ctx) error {
	comments, err := h.service.GetProductComments(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Retrieved comments successfully",
		"comments": comments,
	})
}

// CreateCommentRequest is the request body for posting a comment.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// HandleCreateComment posts a comment under a product on behalf of the
// authenticated caller.
func (h *CommentHandler) HandleCreateComment(c *fiber.Ctx) error {
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body parameter should be provided",
		})
	}

	comment, err := h.service.CreateComment(middleware.CallerID(c), c.Params("productId"), req.Body)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Created comment successfully",
		"comment": comment,
	})
}

// HandleDeleteComment removes a comment, if the caller is its author or
// an admin.
func (h *CommentHandler) HandleDeleteComment(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteComment(middleware.CallerID(c), middleware.CallerRole(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Deleted comment of id %s successfully", id),
	})
}
