package services

import (
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserUpdate carries the optional fields of a profile update. Nil fields
// are left unchanged.
type UserUpdate struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *string
}

// UserService handles account administration: listing, profile updates
// and deletion. Registration and login live in AuthService.
type UserService struct {
	userRepo   repositories.UserRepository
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// GetAllUsers retrieves all users. Password hashes are excluded from
// JSON by the model, not here.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// UpdateUser applies a partial profile update. A user may update their
// own profile; only an admin may update someone else's or change a role.
func (s *UserService) UpdateUser(callerID, callerRole, targetID string, update UserUpdate) (*models.User, error) {
	if callerRole != models.RoleAdmin && callerID != targetID {
		return nil, apperrors.New(apperrors.KindForbidden, "Access denied")
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	changed := false
	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
		changed = true
	}
	if update.Password != nil {
		if len(*update.Password) < 12 {
			return nil, apperrors.New(apperrors.KindValidation, "Password length should be at least 12 characters long")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), s.bcryptCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to hash password")
		}
		user.PassHash = string(hash)
		changed = true
	}
	if update.FirstName != nil {
		user.FirstName = strings.TrimSpace(*update.FirstName)
		changed = true
	}
	if update.LastName != nil {
		user.LastName = strings.TrimSpace(*update.LastName)
		changed = true
	}
	if update.Role != nil {
		if callerRole != models.RoleAdmin {
			return nil, apperrors.New(apperrors.KindForbidden, "Access denied")
		}
		if !models.ValidRole(*update.Role) {
			return nil, apperrors.New(apperrors.KindValidation, "Invalid role. Role must be either 'user' or 'admin'")
		}
		user.Role = *update.Role
		changed = true
	}
	if !changed {
		return nil, apperrors.New(apperrors.KindValidation, "No fields provided to update")
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a user by their ID.
func (s *UserService) DeleteUser(id string) error {
	return s.userRepo.Delete(id)
}
