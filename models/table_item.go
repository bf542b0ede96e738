package models

import (
	"fmt"
	"time"

	"github.com/tablefactory/order-app/pricing"
)

// TableItem is one priced, customizable table line within an order.
// Price is the unit sales price; customization surcharges are added on
// top of it when the order total is computed.
type TableItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Size        string  `gorm:"type:varchar(20);not null" json:"size"`
	TopColour   string  `gorm:"type:varchar(50)" json:"top_colour"`
	FrameColour string  `gorm:"type:varchar(50)" json:"frame_colour"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`

	// Optional customizations.
	LegSize          string  `gorm:"type:varchar(10)" json:"leg_size,omitempty"`
	LegShape         string  `gorm:"type:varchar(30)" json:"leg_shape,omitempty"`
	LegHeight        string  `gorm:"type:varchar(10)" json:"leg_height,omitempty"`
	WireHole         string  `gorm:"type:varchar(30)" json:"wire_hole,omitempty"`
	WireHoleComment  string  `gorm:"type:text" json:"wire_hole_comment,omitempty"`
	FrontPanelSize   string  `gorm:"type:varchar(10)" json:"front_panel_size,omitempty"`
	FrontPanelLength float64 `gorm:"type:decimal(8,2);default:0" json:"front_panel_length,omitempty"`
	Orientation      string  `gorm:"type:varchar(10)" json:"orientation,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Validate checks the line item invariants before it is persisted.
func (ti *TableItem) Validate() error {
	if ti.Size == "" {
		return fmt.Errorf("table size is required")
	}
	if ti.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	if ti.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if pricing.IsLShape(ti.Size) && ti.Orientation == "" {
		return fmt.Errorf("orientation is required for L-shaped size %s", ti.Size)
	}
	return nil
}

// UnitExtraCost returns the per-unit customization surcharge for this item.
func (ti *TableItem) UnitExtraCost() float64 {
	return pricing.TableAdditionalCosts(ti.LegSize, ti.FrontPanelSize, ti.FrontPanelLength)
}

// LineTotal returns (unit price + surcharges) * quantity.
func (ti *TableItem) LineTotal() float64 {
	return (ti.Price + ti.UnitExtraCost()) * float64(ti.Quantity)
}

// HasExtraFee reports whether the item carries a flat extra-fee bill row
// (wire hole or front panel work).
func (ti *TableItem) HasExtraFee() bool {
	return (ti.WireHole != "" && ti.WireHole != "none") || ti.FrontPanelSize != ""
}
