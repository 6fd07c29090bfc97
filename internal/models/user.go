package models

import "time"

// Role values a user may hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(150)" validate:"required,email"`
	FirstName string `json:"firstName" gorm:"type:varchar(50)" validate:"required,min=2,max=50"`
	LastName  string `json:"lastName" gorm:"type:varchar(50)" validate:"required,min=2,max=50"`
	// PassHash and RefreshToken have no exported json names so they never
	// appear in responses.
	PassHash     string    `json:"-" gorm:"type:varchar(250)"`
	RefreshToken string    `json:"-" gorm:"type:varchar(512)"`
	Role         string    `json:"role" gorm:"type:varchar(10);default:user" validate:"omitempty,oneof=user admin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
