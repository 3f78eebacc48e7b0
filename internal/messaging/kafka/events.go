package kafka

import "time"

// EventType определяет тип события жизненного цикла заказа
type EventType string

const (
	EventTypeOrderPlaced        EventType = "order.placed"
	EventTypeOrderCancelled     EventType = "order.cancelled"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	EventTypeOrderDeleted       EventType = "order.deleted"
)

// Topics для Kafka
const (
	TopicOrderEvents = "fulfillment.order.events"
)

// OrderEvent представляет событие заказа. События чисто наблюдательные:
// никакой консистентности или доставки поверх них не строится.
type OrderEvent struct {
	EventType  EventType              `json:"event_type"`
	OrderID    string                 `json:"order_id"`
	CustomerID string                 `json:"customer_id"`
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, customerID, status string, metadata map[string]interface{}) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     status,
		Timestamp:  time.Now(),
		Metadata:   metadata,
	}
}
