package models

import "time"

// OrderEvent records one status transition of an order for audit.
type OrderEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Event     string    `gorm:"type:varchar(30);not null" json:"event"`
	ActorID   *uint     `json:"actor_id,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
