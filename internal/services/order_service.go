package services

import (
	"encoding/json"
	"log"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderItemInput is a single requested line item.
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case events are skipped.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, userRepo repositories.UserRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// CreateOrder validates a list of line items against the catalog,
// computes the total price and persists the order with status pending.
// It fails without side effects on any invalid item: unknown product,
// non-positive quantity or insufficient stock. Stock is decremented
// atomically by the repository as part of the single persisting write.
//
// A non-admin caller may only create an order for themselves; a
// mismatched userId is rejected with a generic access-denied error so
// the caller cannot probe whether the target user exists.
func (s *OrderService) CreateOrder(callerID, callerRole, userID string, items []OrderItemInput) (*models.Order, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.KindValidation, "userId parameter is required")
	}
	if callerRole != models.RoleAdmin && callerID != userID {
		return nil, apperrors.New(apperrors.KindForbidden, "Access denied")
	}
	if len(items) == 0 {
		return nil, apperrors.New(apperrors.KindValidation, "items parameter should contain a non-empty list of objects")
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if callerRole != models.RoleAdmin {
			// Mask the lookup result for non-admins.
			return nil, apperrors.New(apperrors.KindForbidden, "Access denied")
		}
		return nil, err
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity == 0 {
			return nil, apperrors.New(apperrors.KindValidation, "All objects in items list should contain both productId and quantity fields")
		}
		if item.Quantity < 0 {
			return nil, apperrors.New(apperrors.KindValidation, "Invalid quantity %d: quantity should be a positive integer", item.Quantity)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	// One batched lookup, indexed by id for O(1) access per item.
	products, err := s.productRepo.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := productByID[item.ProductID]
		if !ok {
			return nil, apperrors.New(apperrors.KindNotFound, "Product of id %s not found", item.ProductID)
		}
		if product.Available < item.Quantity {
			return nil, apperrors.New(apperrors.KindValidation,
				"insufficient stock for product %s (requested: %d, available: %d)",
				product.Name, item.Quantity, product.Available)
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &models.Order{
		UserID:     userID,
		Items:      orderItems,
		TotalPrice: total.Round(2),
		Status:     models.StatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalPrice,
	})
	return order, nil
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrder retrieves a single order. Only the owner or an admin may
// read it.
func (s *OrderService) GetOrder(callerID, callerRole, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if callerRole != models.RoleAdmin && order.UserID != callerID {
		return nil, apperrors.New(apperrors.KindForbidden, "Access denied")
	}
	return order, nil
}

// GetUserOrders retrieves all orders of a user. Only that user or an
// admin may list them.
func (s *OrderService) GetUserOrders(callerID, callerRole, userID string) ([]models.Order, error) {
	if callerRole != models.RoleAdmin && callerID != userID {
		return nil, apperrors.New(apperrors.KindForbidden, "Access denied")
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByUserID(userID)
}

// ChangeStatus moves an order to a new lifecycle status. Any member of
// the valid set is accepted as long as it differs from the current
// status; re-submitting the current status is a client error and
// performs no write. Admin-only, enforced at the route.
func (s *OrderService) ChangeStatus(id, status string) error {
	if status == "" {
		return apperrors.New(apperrors.KindValidation, "No status parameter provided")
	}
	if !models.ValidStatus(status) {
		return apperrors.New(apperrors.KindValidation,
			"Invalid status parameter. Status should be one of: pending, processing, shipped, delivered, cancelled")
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order.Status == status {
		return apperrors.New(apperrors.KindValidation, "The status provided is already set")
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	s.publishEvent("order.status_changed", map[string]interface{}{
		"orderID": id,
		"from":    order.Status,
		"to":      status,
	})
	return nil
}

// CancelOrder lets the order's owner cancel it while it is still
// pending. Cancelling returns the order's units to stock. Admins use
// ChangeStatus instead, which never touches stock.
func (s *OrderService) CancelOrder(callerID, id string) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order.UserID != callerID {
		return apperrors.New(apperrors.KindForbidden, "Access denied")
	}
	if order.Status != models.StatusPending {
		return apperrors.New(apperrors.KindValidation, "Only pending orders can be cancelled")
	}

	if err := s.orderRepo.Cancel(id); err != nil {
		return err
	}
	s.publishEvent("order.status_changed", map[string]interface{}{
		"orderID": id,
		"from":    order.Status,
		"to":      models.StatusCancelled,
	})
	return nil
}

// publishEvent sends a domain event to the broker, best effort. A
// publish failure never fails the operation that triggered it.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish("orders", routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
