package models

import "time"

// StockItem tracks finished units per table size in the production store.
type StockItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Size      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"size"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Location  string    `gorm:"type:varchar(100)" json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
