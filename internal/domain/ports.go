package domain

// OrderStore описывает хранилище текущего списка заказов.
type OrderStore interface {
	// List возвращает снимок заказов в текущем порядке.
	List() []Order
	// FindByID ищет заказ линейным проходом; false, если не найден.
	FindByID(id string) (Order, bool)
	// MarkPaid переводит заказ в completed или возвращает OrderNotFoundError.
	MarkPaid(id string) (Order, error)
	// Reset заменяет список свежей копией seed и возвращает его.
	Reset() []Order
}

// TimelineRepository хранит журнал событий по заказам.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID string) ([]TimelineEvent, error)
}
