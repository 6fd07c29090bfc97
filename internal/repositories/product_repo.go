package repositories

import "storefront/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// GetByIDs fetches all products matching the given ids in one lookup.
	// Missing ids are simply absent from the result; callers decide
	// whether that is an error.
	GetByIDs(ids []string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
