package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
)

// OrderStore: упорядоченный in-memory список заказов, засеянный из seed.
type OrderStore struct {
	mu     sync.RWMutex
	seed   []domain.Order
	orders []domain.Order
}

// NewOrderStore создаёт хранилище с копией seed.
// Сам seed копируется при создании и больше не меняется.
func NewOrderStore(seed []domain.Order) *OrderStore {
	s := &OrderStore{seed: domain.CloneOrders(seed)}
	s.orders = domain.CloneOrders(s.seed)
	return s
}

// NewSeededOrderStore создаёт хранилище со стандартным набором заказов.
func NewSeededOrderStore() *OrderStore {
	return NewOrderStore(domain.SeedOrders())
}

// List возвращает снимок заказов в текущем порядке.
func (s *OrderStore) List() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CloneOrders(s.orders)
}

// FindByID ищет первый заказ с указанным ID.
func (s *OrderStore) FindByID(id string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Order{}, false
	}
	return s.orders[idx], true
}

// MarkPaid переводит заказ в completed на месте и возвращает обновлённую запись.
func (s *OrderStore) MarkPaid(id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Order{}, domain.NewOrderNotFoundError(id)
	}
	s.orders[idx].MarkPaid()
	return s.orders[idx], nil
}

// Reset заменяет живой список свежей копией seed.
func (s *OrderStore) Reset() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = domain.CloneOrders(s.seed)
	return domain.CloneOrders(s.orders)
}

// Len возвращает количество заказов.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// CompletedCount возвращает количество оплаченных заказов.
func (s *OrderStore) CompletedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, order := range s.orders {
		if order.IsCompleted() {
			n++
		}
	}
	return n
}

// indexOf вызывается под блокировкой.
func (s *OrderStore) indexOf(id string) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

var _ domain.OrderStore = (*OrderStore)(nil)
