package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/tablefactory/order-app/models"
)

// Event types pushed over the websocket channel.
const (
	EventOrderCreated    = "order_created"
	EventOrderUpdate     = "order_update"
	EventOrderAssigned   = "order_assigned"
	EventOrderReady      = "order_ready"
	EventOrderCompleted  = "order_completed"
	EventBillCreated     = "bill_created"
	EventQueueUpdate     = "queue_update"
	EventStaffNotif      = "staff_notification"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds all connected clients (sales, production, delivery, admin)
// keyed by connection, with the role each connected under. Delivery is
// best effort: a write failure drops the message for that client only.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastOrderAssigned(order models.Order) {
	broadcast(Message{Event: EventOrderAssigned, Data: order})
}

func BroadcastOrderReady(order models.Order) {
	broadcast(Message{Event: EventOrderReady, Data: order})
}

func BroadcastOrderCompleted(order models.Order) {
	broadcast(Message{Event: EventOrderCompleted, Data: order})
}

func BroadcastBillCreated(bill models.Bill) {
	broadcast(Message{Event: EventBillCreated, Data: bill})
}

// BroadcastQueueUpdate pushes the recomputed production queue summary;
// clients use it to refresh delivery countdowns.
func BroadcastQueueUpdate(data interface{}) {
	broadcast(Message{Event: EventQueueUpdate, Data: data})
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("realtime: error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("realtime: error sending to client: %v", err)
		}
	}
}
