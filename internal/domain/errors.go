package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound возвращается, если заказа с таким ID нет в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderIDRequired: пустой идентификатор заказа в журнале или событии.
	ErrOrderIDRequired = errors.New("order_id is required")
	// ErrTimelineTypeRequired: событие журнала без типа.
	ErrTimelineTypeRequired = errors.New("timeline event type is required")
)

// OrderNotFoundError несёт запрошенный идентификатор отсутствующего заказа.
type OrderNotFoundError struct {
	ID string
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOrderNotFound, e.ID)
}

// Is позволяет сравнивать ошибку с ErrOrderNotFound через errors.Is.
func (e *OrderNotFoundError) Is(target error) bool {
	return target == ErrOrderNotFound
}

// NewOrderNotFoundError создаёт ошибку для отсутствующего заказа.
func NewOrderNotFoundError(id string) error {
	return &OrderNotFoundError{ID: id}
}

// IsOrderNotFound проверяет, является ли ошибка отсутствием заказа.
func IsOrderNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}
