package services

import (
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CommentService handles business logic related to product comments.
type CommentService struct {
	commentRepo repositories.CommentRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, productRepo repositories.ProductRepository, userRepo repositories.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// GetProductComments retrieves all comments under a product.
func (s *CommentService) GetProductComments(productID string) ([]models.Comment, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByProductID(productID)
}

// CreateComment posts a comment under a product. The author's display
// name is re-fetched from the users table rather than taken from the
// request or the token, so a client cannot spoof someone else's name.
func (s *CommentService) CreateComment(userID, productID, body string) (*models.Comment, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if len(body) < 3 {
		return nil, apperrors.New(apperrors.KindValidation, "Body length should be at least 3 characters long")
	}
	if len(body) > 3000 {
		return nil, apperrors.New(apperrors.KindValidation, "Body length should be at most 3000 characters long")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:          body,
		UserID:        userID,
		ProductID:     productID,
		UserFirstName: user.FirstName,
		UserLastName:  user.LastName,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only its author or an admin may do so.
func (s *CommentService) DeleteComment(callerID, callerRole, id string) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment.UserID != callerID && callerRole != models.RoleAdmin {
		return apperrors.New(apperrors.KindForbidden, "Access denied, you can not delete a comment of other user unless you have admin role")
	}
	return s.commentRepo.Delete(id)
}
