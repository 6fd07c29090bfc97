package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle statuses. An order starts as pending; processing,
// shipped and delivered follow; cancelled is terminal.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatuses lists the members of the order lifecycle in order.
var ValidStatuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// ValidStatus reports whether status is a member of the lifecycle.
func ValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem is a single line item within an order. Price is the unit
// price at the time the order was created.
type OrderItem struct {
	ID        uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string          `json:"-" gorm:"type:varchar(36);index"`
	ProductID string          `json:"productId" gorm:"type:varchar(36)"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
}

// Order represents a customer purchase. Line items are immutable once
// the order is created; only the status may change afterwards.
type Order struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string          `json:"userId" gorm:"type:varchar(36);index"`
	Items      []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2)"`
	Status     string          `json:"status" gorm:"type:varchar(20)"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
