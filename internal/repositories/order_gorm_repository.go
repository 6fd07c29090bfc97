package repositories

import (
	"errors"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their line items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get all orders")
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "Order of id %s not found", id)
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get order by ID %s", id)
	}
	return &order, nil
}

// GetByUserID retrieves all orders belonging to a user.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, err, "failed to get orders for user %s", userID)
	}
	return orders, nil
}

// Create persists the order and decrements product stock in one
// transaction. Each decrement is conditional on sufficient stock; a
// zero-rows-affected update means another order won the race, so the
// whole transaction rolls back. Two concurrent orders can therefore
// never oversell a product.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND available >= ?", item.ProductID, item.Quantity).
				Update("available", gorm.Expr("available - ?", item.Quantity))
			if res.Error != nil {
				return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to reserve stock for product %s", item.ProductID)
			}
			if res.RowsAffected == 0 {
				// Distinguish a missing product from an out-of-stock one
				// for the error message; either way the order fails.
				var product models.Product
				if ferr := tx.First(&product, "id = ?", item.ProductID).Error; ferr != nil {
					return apperrors.New(apperrors.KindNotFound, "Product of id %s not found", item.ProductID)
				}
				return apperrors.New(apperrors.KindValidation,
					"insufficient stock for product %s (requested: %d, available: %d)",
					product.Name, item.Quantity, product.Available)
			}
		}
		if err := tx.Create(order).Error; err != nil {
			return apperrors.Wrap(apperrors.KindInternal, err, "failed to create order")
		}
		return nil
	})
	return err
}

// Cancel moves a pending order to cancelled and restores the stock its
// creation decremented, all in one transaction. The status update is
// conditional on the order still being pending, so a concurrent status
// change cannot lead to a double restock.
func (r *GORMOrderRepository) Cancel(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.KindNotFound, "Order of id %s not found", id)
			}
			return apperrors.Wrap(apperrors.KindInternal, err, "failed to get order by ID %s", id)
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Update("status", models.StatusCancelled)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to cancel order %s", id)
		}
		if res.RowsAffected == 0 {
			return apperrors.New(apperrors.KindValidation, "Only pending orders can be cancelled")
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("available", gorm.Expr("available + ?", item.Quantity)).Error; err != nil {
				return apperrors.Wrap(apperrors.KindInternal, err, "failed to restock product %s", item.ProductID)
			}
		}
		return nil
	})
}

// UpdateStatus sets the status of an existing order.
func (r *GORMOrderRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.KindInternal, res.Error, "failed to update status of order %s", id)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "Order of id %s not found", id)
	}
	return nil
}
