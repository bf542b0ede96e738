package models

import "time"

// Roles known to the application.
const (
	RoleAdmin      = "admin"
	RoleSales      = "sales"
	RoleProduction = "production"
	RoleDelivery   = "delivery"
	RoleCustomer   = "customer"
)

// ValidRole reports whether the role string is one we accept at registration.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSales, RoleProduction, RoleDelivery, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
