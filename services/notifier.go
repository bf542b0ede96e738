package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/mq"
	"github.com/tablefactory/order-app/realtime"
	"github.com/tablefactory/order-app/utils"
)

// Notifier bridges order events to the notification surfaces: a
// persisted Notification row, the websocket hub, and the push queue.
// Every step is best effort; a failed notification never fails the
// operation that triggered it.
type Notifier struct {
	DB        *gorm.DB
	Publisher *mq.Publisher
}

func NewNotifier(db *gorm.DB, publisher *mq.Publisher) *Notifier {
	return &Notifier{DB: db, Publisher: publisher}
}

// OrderCreated announces a new order to sales and production.
func (n *Notifier) OrderCreated(order models.Order) {
	n.record(nil, order, "New order",
		fmt.Sprintf("%s placed for %s (%d units)", order.Reference(), order.CustomerName, order.TotalQuantity()))
	realtime.BroadcastOrderCreated(order)
	n.push(order, "New order",
		fmt.Sprintf("%s: %d units for %s", order.Reference(), order.TotalQuantity(), order.CustomerName))
}

// OrderAssigned notifies the delivery person an order was assigned to.
func (n *Notifier) OrderAssigned(order models.Order) {
	n.record(order.AssignedToID, order, "Order assigned",
		fmt.Sprintf("%s was assigned to you", order.Reference()))
	realtime.BroadcastOrderAssigned(order)
	n.push(order, "Order assigned", fmt.Sprintf("%s is ready for delivery pickup", order.Reference()))
}

// OrderReady announces production marking an order's units as built.
func (n *Notifier) OrderReady(order models.Order) {
	n.record(nil, order, "Order ready",
		fmt.Sprintf("%s is manufactured and awaiting assignment", order.Reference()))
	realtime.BroadcastOrderReady(order)
}

// OrderCompleted announces a finished delivery.
func (n *Notifier) OrderCompleted(order models.Order) {
	n.record(order.CreatedByID, order, "Order completed",
		fmt.Sprintf("%s was delivered", order.Reference()))
	realtime.BroadcastOrderCompleted(order)
}

func (n *Notifier) record(userID *uint, order models.Order, title, message string) {
	notif := models.Notification{
		UserID:  userID,
		OrderID: &order.ID,
		Title:   title,
		Message: message,
	}
	if err := n.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("notifier: persisting notification: %v", err)
	}
}

func (n *Notifier) push(order models.Order, title, body string) {
	err := n.Publisher.PublishPush(mq.PushPayload{
		Title: title,
		Body:  body,
		Metadata: map[string]interface{}{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
		},
	})
	if err != nil {
		utils.ErrorLogger.Printf("notifier: push publish for %s: %v", order.Reference(), err)
	}
}
