package repositories

import (
	"errors"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get all products")
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "Product of id %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get product by ID %s", id)
	}
	return &product, nil
}

// GetByIDs fetches all products with the given ids in a single query.
func (r *GORMProductRepository) GetByIDs(ids []string) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get products by ids")
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return apperrors.Wrap(apperrors.KindInternal, err, "failed to create product")
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to update product")
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "Product of id %s not found", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to delete product %s", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "Product of id %s not found", id)
	}
	return nil
}
