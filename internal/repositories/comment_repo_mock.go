package repositories

import (
	"sort"
	"sync"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockCommentRepository is an in-memory implementation of CommentRepository.
type MockCommentRepository struct {
	comments map[string]models.Comment
	mu       sync.RWMutex
}

// NewMockCommentRepository creates a new instance of MockCommentRepository.
func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		comments: make(map[string]models.Comment),
	}
}

// GetByProductID returns all comments under a product, oldest first.
func (r *MockCommentRepository) GetByProductID(productID string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var commentList []models.Comment
	for _, c := range r.comments {
		if c.ProductID == productID {
			commentList = append(commentList, c)
		}
	}
	sort.Slice(commentList, func(i, j int) bool {
		return commentList[i].CreatedAt.Before(commentList[j].CreatedAt)
	})
	return commentList, nil
}

// GetByID returns a comment by its ID.
func (r *MockCommentRepository) GetByID(id string) (*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Comment of id %s not found", id)
	}
	return &comment, nil
}

// Create adds a new comment.
func (r *MockCommentRepository) Create(comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	r.comments[comment.ID] = *comment
	return nil
}

// Delete removes a comment by its ID.
func (r *MockCommentRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "Comment of id %s not found", id)
	}
	delete(r.comments, id)
	return nil
}
