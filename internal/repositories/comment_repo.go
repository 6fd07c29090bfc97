package repositories

import "storefront/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	GetByProductID(productID string) ([]models.Comment, error)
	GetByID(id string) (*models.Comment, error)
	Create(comment *models.Comment) error
	Delete(id string) error
}
