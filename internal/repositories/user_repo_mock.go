package repositories

import (
	"sync"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// GetAll returns all users.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "User of id %s not found", id)
	}
	return &user, nil
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, apperrors.New(apperrors.KindNotFound, "User with email %s not found", email)
}

// Create adds a new user, rejecting duplicate emails.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.New(apperrors.KindConflict, "Email is already taken")
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperrors.New(apperrors.KindNotFound, "User of id %s not found", user.ID)
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return apperrors.New(apperrors.KindConflict, "Email is already taken by another user")
		}
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by their ID.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "User of id %s not found", id)
	}
	delete(r.users, id)
	return nil
}

// SetRefreshToken stores or clears the active refresh token for a user.
func (r *MockUserRepository) SetRefreshToken(id string, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.New(apperrors.KindNotFound, "User of id %s not found", id)
	}
	user.RefreshToken = token
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}
