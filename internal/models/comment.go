package models

import "time"

// Comment is a review left under a product. UserFirstName and
// UserLastName are a point-in-time snapshot of the author's display name
// taken from the users table when the comment is created; they are not
// updated if the author later renames themselves.
type Comment struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Body          string    `json:"body" gorm:"type:varchar(3000)" validate:"required,min=3,max=3000"`
	UserID        string    `json:"userId" gorm:"type:varchar(36);index"`
	ProductID     string    `json:"productId" gorm:"type:varchar(36);index"`
	UserFirstName string    `json:"userFirstName" gorm:"type:varchar(50)"`
	UserLastName  string    `json:"userLastName" gorm:"type:varchar(50)"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
