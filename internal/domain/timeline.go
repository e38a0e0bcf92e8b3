package domain

import "time"

const (
	// TimelineEventOrderPaid пишется после успешной оплаты заказа.
	TimelineEventOrderPaid = "OrderPaid"
	// TimelineEventOrderReset пишется для каждого заказа при сбросе к seed.
	TimelineEventOrderReset = "OrderReset"
)

// TimelineEvent описывает событие в журнале заказа.
type TimelineEvent struct {
	ID       string
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}

// Validate проверяет обязательные поля события.
func (e TimelineEvent) Validate() error {
	if e.OrderID == "" {
		return ErrOrderIDRequired
	}
	if e.Type == "" {
		return ErrTimelineTypeRequired
	}
	return nil
}
