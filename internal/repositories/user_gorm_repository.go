package repositories

import (
	"errors"
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetAll retrieves all users.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get all users")
	}
	return users, nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "User of id %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get user by ID %s", id)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "User with email %s not found", email)
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get user by email %s", email)
	}
	return &user, nil
}

// Create creates a new user. A duplicate email surfaces as a conflict.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.New(apperrors.KindConflict, "Email is already taken")
		}
		return apperrors.Wrap(apperrors.KindInternal, err, "failed to create user")
	}
	return nil
}

// Update updates an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) || strings.Contains(res.Error.Error(), "UNIQUE constraint failed") {
			return apperrors.New(apperrors.KindConflict, "Email is already taken by another user")
		}
		return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "User of id %s not found", user.ID)
	}
	return nil
}

// Delete deletes a user by their ID.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to delete user %s", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "User of id %s not found", id)
	}
	return nil
}

// SetRefreshToken stores (or clears, when token is empty) the active
// refresh token for a user.
func (r *GORMUserRepository) SetRefreshToken(id string, token string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("refresh_token", token)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to set refresh token for user %s", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "User of id %s not found", id)
	}
	return nil
}
