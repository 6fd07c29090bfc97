package repositories

import (
	"sync"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It shares a MockProductRepository so that Create can honor the same
// all-or-nothing stock-decrement contract as the GORM implementation.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository
// backed by the given product repository for stock accounting.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "Order of id %s not found", id)
	}
	return &order, nil
}

// GetByUserID returns all orders belonging to a user.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// Create adds a new order, decrementing product stock atomically. All
// stock checks happen under the product repository lock before any
// decrement is applied, so a failing item leaves every product untouched.
// Quantities are summed per product first so an order listing the same
// product on several lines cannot slip past the stock check.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	requested := make(map[string]int, len(order.Items))
	for _, item := range order.Items {
		requested[item.ProductID] += item.Quantity
	}
	for productID, quantity := range requested {
		product, ok := r.products.products[productID]
		if !ok {
			return apperrors.New(apperrors.KindNotFound, "Product of id %s not found", productID)
		}
		if product.Available < quantity {
			return apperrors.New(apperrors.KindValidation,
				"insufficient stock for product %s (requested: %d, available: %d)",
				product.Name, quantity, product.Available)
		}
	}
	for productID, quantity := range requested {
		product := r.products.products[productID]
		product.Available -= quantity
		r.products.products[productID] = product
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Cancel flips a pending order to cancelled and returns its units to
// stock, under the same product lock Create decrements under.
func (r *MockOrderRepository) Cancel(id string) error {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperrors.New(apperrors.KindNotFound, "Order of id %s not found", id)
	}
	if order.Status != models.StatusPending {
		return apperrors.New(apperrors.KindValidation, "Only pending orders can be cancelled")
	}

	for _, item := range order.Items {
		if product, ok := r.products.products[item.ProductID]; ok {
			product.Available += item.Quantity
			r.products.products[item.ProductID] = product
		}
	}
	order.Status = models.StatusCancelled
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperrors.New(apperrors.KindNotFound, "Order of id %s not found", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
