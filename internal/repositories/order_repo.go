package repositories

import "storefront/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	// Create persists the order and decrements the stock of every
	// referenced product in a single atomic step. If any product lacks
	// sufficient stock the whole operation fails and nothing is written.
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	// Cancel moves a pending order to cancelled and restores the stock
	// its creation decremented, in a single atomic step. An order that is
	// no longer pending cannot be cancelled.
	Cancel(id string) error
}
