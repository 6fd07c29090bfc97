package repositories

import (
	"errors"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// GetByProductID retrieves all comments under a product.
func (r *GORMCommentRepository) GetByProductID(productID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("product_id = ?", productID).Order("created_at").Find(&comments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get comments for product %s", productID)
	}
	return comments, nil
}

// GetByID retrieves a single comment by its ID.
func (r *GORMCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "Comment of id %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get comment by ID %s", id)
	}
	return &comment, nil
}

// Create creates a new comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return apperrors.Wrap(apperrors.KindInternal, err, "failed to create comment")
	}
	return nil
}

// Delete deletes a comment by its ID.
func (r *GORMCommentRepository) Delete(id string) error {
	res := r.db.Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to delete comment %s", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "Comment of id %s not found", id)
	}
	return nil
}
