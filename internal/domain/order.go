package domain

// OrderStatus описывает состояние оплаты заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ ожидает оплаты.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusCompleted — заказ оплачен, обратного перехода нет.
	OrderStatusCompleted OrderStatus = "completed"
)

// Order — mock-запись о покупке с данными об оплате и отгрузке.
// Все поля, кроме Status, неизменяемы в пределах жизни процесса.
type Order struct {
	ID            string
	MerchantImage string
	MerchantName  string
	MerchantLogo  string
	// Date — дата оформления заказа в формате YYYY-MM-DD.
	Date             string
	NextDueAmount    float64
	NextDueDate      string
	Status           OrderStatus
	Reference        string
	Price            float64
	NumberOfArticles int32
	// ShippedArticles не сверяется с NumberOfArticles.
	ShippedArticles int32
}

// IsCompleted сообщает, оплачен ли заказ.
func (o Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// MarkPaid переводит заказ в completed. Повторный вызов ничего не меняет.
func (o *Order) MarkPaid() {
	o.Status = OrderStatusCompleted
}

// CloneOrders копирует заказы в новый массив, поле за полем.
func CloneOrders(src []Order) []Order {
	dst := make([]Order, len(src))
	copy(dst, src)
	return dst
}
