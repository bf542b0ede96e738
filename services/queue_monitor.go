package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/realtime"
	"github.com/tablefactory/order-app/utils"
)

// QueueSummary is the periodic snapshot broadcast to connected clients
// so delivery countdowns stay fresh without polling.
type QueueSummary struct {
	PendingOrders int       `json:"pending_orders"`
	UnitsQueued   int       `json:"units_queued"`
	EstimatedDays int       `json:"estimated_days"`
	CheckedAt     time.Time `json:"checked_at"`
}

// QueueMonitor re-evaluates the production queue on a timer and pushes
// the summary over the realtime hub. Display only; it never writes back
// to persisted state.
type QueueMonitor struct {
	DB        *gorm.DB
	Estimator *DeliveryEstimator
	StopChan  chan struct{}
	Interval  time.Duration
}

func NewQueueMonitor(db *gorm.DB, estimator *DeliveryEstimator) *QueueMonitor {
	return &QueueMonitor{
		DB:        db,
		Estimator: estimator,
		StopChan:  make(chan struct{}),
		Interval:  60 * time.Second,
	}
}

func (qm *QueueMonitor) Start() {
	go func() {
		ticker := time.NewTicker(qm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				qm.tick()
			case <-qm.StopChan:
				return
			}
		}
	}()
}

func (qm *QueueMonitor) Stop() {
	close(qm.StopChan)
}

func (qm *QueueMonitor) tick() {
	summary, err := qm.Snapshot()
	if err != nil {
		utils.ErrorLogger.Printf("queue monitor: %v", err)
		return
	}
	realtime.BroadcastQueueUpdate(summary)
}

// Snapshot computes the current queue summary.
func (qm *QueueMonitor) Snapshot() (QueueSummary, error) {
	var pending int64
	if err := qm.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&pending).Error; err != nil {
		return QueueSummary{}, err
	}

	units, err := qm.Estimator.pendingUnits(nil, 0)
	if err != nil {
		return QueueSummary{}, err
	}

	return QueueSummary{
		PendingOrders: int(pending),
		UnitsQueued:   int(units),
		EstimatedDays: daysFor(units),
		CheckedAt:     time.Now(),
	}, nil
}
