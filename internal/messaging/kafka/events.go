package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	EventTypeOrderPaid   EventType = "order.paid"
	EventTypeOrdersReset EventType = "orders.reset"
)

// DefaultTopic: топик событий по умолчанию.
const DefaultTopic = "orders.mock.events"

// ResetEventKey: ключ сообщения для событий сброса всего списка.
const ResetEventKey = "orders"

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventID   string                 `json:"event_id"`
	EventType EventType              `json:"event_type"`
	OrderID   string                 `json:"order_id,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewOrderPaidEvent создает событие оплаты заказа
func NewOrderPaidEvent(order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeOrderPaid,
		OrderID:   order.ID,
		Status:    string(order.Status),
		Timestamp: time.Now().UTC(),
		Metadata: map[string]interface{}{
			"merchant_name": order.MerchantName,
			"reference":     order.Reference,
			"price":         order.Price,
		},
	}
}

// NewOrdersResetEvent создает событие сброса списка заказов
func NewOrdersResetEvent(orders []domain.Order) *OrderEvent {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	return &OrderEvent{
		EventID:   uuid.NewString(),
		EventType: EventTypeOrdersReset,
		Timestamp: time.Now().UTC(),
		Metadata: map[string]interface{}{
			"order_ids": ids,
			"count":     len(orders),
		},
	}
}
