package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. Price is a 2-decimal monetary
// value; Available is the live stock count.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(150)" validate:"required,min=3,max=150"`
	Description string          `json:"description" gorm:"type:varchar(2500)" validate:"required,min=5,max=2500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Available   int             `json:"available" validate:"gte=0"`
	ImagePath   string          `json:"imagePath,omitempty" gorm:"type:varchar(250)"`
	Category    string          `json:"category,omitempty" gorm:"type:varchar(100);index"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
