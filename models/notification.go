package models

import "time"

// Notification is one persisted in-app notification. The same payload is
// also handed to the push bridge; delivery there is best effort.
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    *uint      `json:"user_id,omitempty"`
	User      *User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"user,omitempty"`
	OrderID   *uint      `json:"order_id,omitempty"`
	Title     string     `gorm:"type:varchar(100)" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}
