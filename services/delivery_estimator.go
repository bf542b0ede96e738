package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/utils"
)

// DailyCapacity is the factory-wide production rate in units per day.
// One global constant; capacity is not configurable per table size.
const DailyCapacity = 30

// Fallback horizons when the queue cannot be read. Estimation must
// never block order handling, so failures degrade to a fixed default.
const (
	fallbackDaysNew      = 1
	fallbackDaysExisting = 7
)

// Estimate is the delivery projection for one order (or a new one).
type Estimate struct {
	QueuePosition int       `json:"queue_position"`
	UnitsAhead    int       `json:"units_ahead"`
	EstimatedDays int       `json:"estimated_days"`
	DeliveryDate  time.Time `json:"delivery_date"`
}

// DeliveryEstimator derives queue positions and delivery dates from the
// set of currently pending orders, using one aggregate query per
// estimate rather than a round trip per order.
type DeliveryEstimator struct {
	DB *gorm.DB
}

func NewDeliveryEstimator(db *gorm.DB) *DeliveryEstimator {
	return &DeliveryEstimator{DB: db}
}

// EstimateForNew projects the delivery date of an order about to be
// placed: every currently pending unit is ahead of it.
func (de *DeliveryEstimator) EstimateForNew() Estimate {
	units, err := de.pendingUnits(nil, 0)
	if err != nil {
		utils.ErrorLogger.Printf("delivery estimate failed, using +%dd default: %v", fallbackDaysNew, err)
		return fallbackEstimate(fallbackDaysNew)
	}

	var position int64
	if err := de.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&position).Error; err != nil {
		utils.ErrorLogger.Printf("delivery estimate failed, using +%dd default: %v", fallbackDaysNew, err)
		return fallbackEstimate(fallbackDaysNew)
	}

	days := daysFor(units)
	return Estimate{
		QueuePosition: int(position) + 1,
		UnitsAhead:    int(units),
		EstimatedDays: days,
		DeliveryDate:  dateAfter(days),
	}
}

// EstimateForOrder projects the delivery date of an existing pending
// order. Units ahead counts pending orders created at or before the
// target (ties with other orders included, the target itself excluded).
func (de *DeliveryEstimator) EstimateForOrder(order models.Order) Estimate {
	units, err := de.pendingUnits(&order.CreatedAt, order.ID)
	if err != nil {
		utils.ErrorLogger.Printf("delivery estimate for %s failed, using +%dd default: %v",
			order.Reference(), fallbackDaysExisting, err)
		return fallbackEstimate(fallbackDaysExisting)
	}

	position, err := de.queuePosition(order)
	if err != nil {
		utils.ErrorLogger.Printf("delivery estimate for %s failed, using +%dd default: %v",
			order.Reference(), fallbackDaysExisting, err)
		return fallbackEstimate(fallbackDaysExisting)
	}

	days := daysFor(units)
	return Estimate{
		QueuePosition: position,
		UnitsAhead:    int(units),
		EstimatedDays: days,
		DeliveryDate:  dateAfter(days),
	}
}

// pendingUnits sums item quantities over pending orders in one grouped
// query. With a cutoff it counts orders created at or before it,
// excluding the order identified by excludeID.
func (de *DeliveryEstimator) pendingUnits(cutoff *time.Time, excludeID uint) (int64, error) {
	query := de.DB.Model(&models.TableItem{}).
		Joins("JOIN orders ON orders.id = table_items.order_id").
		Where("orders.status = ?", models.OrderStatusPending)

	if cutoff != nil {
		query = query.Where("orders.created_at <= ?", *cutoff)
	}
	if excludeID != 0 {
		query = query.Where("orders.id <> ?", excludeID)
	}

	var units int64
	err := query.Select("COALESCE(SUM(table_items.quantity), 0)").Row().Scan(&units)
	return units, err
}

// queuePosition is the 1-based FIFO rank of the order among pending
// orders, ordered by (created_at, id) for a deterministic rank on ties.
func (de *DeliveryEstimator) queuePosition(order models.Order) (int, error) {
	var ahead int64
	err := de.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Where("created_at < ? OR (created_at = ? AND id < ?)",
			order.CreatedAt, order.CreatedAt, order.ID).
		Count(&ahead).Error
	return int(ahead) + 1, err
}

// daysFor converts queued units into whole production days, never less
// than one day even for an empty queue.
func daysFor(units int64) int {
	days := int(math.Ceil(float64(units) / float64(DailyCapacity)))
	if days < 1 {
		days = 1
	}
	return days
}

// dateAfter returns local midnight today plus the given number of days.
func dateAfter(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, days)
}

func fallbackEstimate(days int) Estimate {
	return Estimate{
		EstimatedDays: days,
		DeliveryDate:  dateAfter(days),
	}
}
