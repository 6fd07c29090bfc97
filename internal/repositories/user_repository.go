package repositories

import "storefront/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll() ([]models.User, error)
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	// SetRefreshToken stores the single active refresh token for a user.
	// An empty token clears it.
	SetRefreshToken(id string, token string) error
}
