package models

import (
	"fmt"
	"time"
)

// Order status lifecycle: pending -> assigned -> completed. There is no
// reverse transition.
const (
	OrderStatusPending   = "pending"
	OrderStatusAssigned  = "assigned"
	OrderStatusCompleted = "completed"
)

// Delivery status is meaningful only while the order status is pending:
// production marks a pending order "ready" when its units are built.
const (
	DeliveryStatusPending = "pending"
	DeliveryStatusReady   = "ready"
)

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_number"`

	CustomerName string `gorm:"type:varchar(255);not null" json:"customer_name"`
	Phone        string `gorm:"type:varchar(30)" json:"phone"`
	Address      string `gorm:"type:text" json:"address"`
	City         string `gorm:"type:varchar(100)" json:"city"`

	Status         string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DeliveryStatus string `gorm:"type:varchar(20);not null;default:'pending'" json:"delivery_status"`

	TotalPrice        float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_price"`
	DeliveryFee       float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"delivery_fee"`
	AdditionalCharges float64 `gorm:"type:decimal(12,2);not null;default:0.00" json:"additional_charges"`
	Notes             string  `gorm:"type:text" json:"notes"`

	AssignedToID *uint `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo   *User `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedByID  *uint `gorm:"index" json:"created_by_id,omitempty"`
	CreatedBy    *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`

	Items []TableItem `gorm:"foreignKey:OrderID" json:"items"`
}

// TotalQuantity sums the unit count over all line items.
func (o *Order) TotalQuantity() int {
	var total int
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// ComputeTotal derives the order total from its items plus delivery fee
// and additional charges. Items must be loaded.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total + o.DeliveryFee + o.AdditionalCharges
}

// Reference returns a short human-readable handle for notifications.
func (o *Order) Reference() string {
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return fmt.Sprintf("order #%d", o.ID)
}
