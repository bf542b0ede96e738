package models

import "time"

// BillRow is one priced line of a bill. Rows are denormalized snapshots:
// editing a saved bill never touches the source orders and vice versa.
type BillRow struct {
	Quantity   int     `json:"quantity"`
	Item       string  `json:"item"`
	OrderNo    string  `json:"order_no"`
	City       string  `json:"city"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
	IsExtraFee bool    `json:"is_extra_fee"`
}

// Bill is a persisted transport/factory invoice built from one or more
// orders, priced at factory rates.
type Bill struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BillNumber string `gorm:"type:varchar(40);uniqueIndex;not null" json:"bill_number"`
	BillTo     string `gorm:"type:varchar(255);not null" json:"bill_to"`
	DriverName string `gorm:"type:varchar(100)" json:"driver_name,omitempty"`
	VehicleNo  string `gorm:"type:varchar(50)" json:"vehicle_no,omitempty"`

	OrderNumbers []string  `gorm:"serializer:json;type:text" json:"order_numbers"`
	Rows         []BillRow `gorm:"serializer:json;type:text" json:"rows"`

	TotalAmount   float64   `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`
	TotalQuantity int       `gorm:"not null;default:0" json:"total_quantity"`
	BillDate      time.Time `gorm:"not null" json:"bill_date"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
