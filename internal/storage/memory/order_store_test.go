package memory_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
	"github.com/vladislavdragonenkov/orders-mock/internal/storage/memory"
)

func TestOrderStore_ListSeedOrder(t *testing.T) {
	store := memory.NewSeededOrderStore()

	orders := store.List()
	require.Len(t, orders, 3)
	require.Equal(t, []string{"1", "2", "3"}, ids(orders))
	for _, order := range orders {
		require.Equal(t, domain.OrderStatusPending, order.Status)
	}
}

func TestOrderStore_FindByID(t *testing.T) {
	store := memory.NewSeededOrderStore()

	order, ok := store.FindByID("2")
	require.True(t, ok)
	require.Equal(t, "Ebay", order.MerchantName)

	_, ok = store.FindByID("999")
	require.False(t, ok)
}

func TestOrderStore_MarkPaid(t *testing.T) {
	store := memory.NewSeededOrderStore()

	paid, err := store.MarkPaid("1")
	require.NoError(t, err)
	require.Equal(t, "1", paid.ID)
	require.Equal(t, domain.OrderStatusCompleted, paid.Status)

	orders := store.List()
	require.Equal(t, []string{"1", "2", "3"}, ids(orders))
	require.Equal(t, domain.OrderStatusCompleted, orders[0].Status)
	require.Equal(t, domain.OrderStatusPending, orders[1].Status)
	require.Equal(t, domain.OrderStatusPending, orders[2].Status)
	require.Equal(t, 1, store.CompletedCount())
}

func TestOrderStore_MarkPaidNotFound(t *testing.T) {
	store := memory.NewSeededOrderStore()
	before := store.List()

	_, err := store.MarkPaid("999")
	require.Error(t, err)
	require.True(t, domain.IsOrderNotFound(err))

	var notFound *domain.OrderNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "999", notFound.ID)

	require.Equal(t, before, store.List())
}

func TestOrderStore_MarkPaidIdempotent(t *testing.T) {
	once := memory.NewSeededOrderStore()
	_, err := once.MarkPaid("2")
	require.NoError(t, err)

	twice := memory.NewSeededOrderStore()
	_, err = twice.MarkPaid("2")
	require.NoError(t, err)
	second, err := twice.MarkPaid("2")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCompleted, second.Status)

	require.Equal(t, once.List(), twice.List())
}

func TestOrderStore_ResetRestoresSeed(t *testing.T) {
	store := memory.NewSeededOrderStore()
	_, err := store.MarkPaid("1")
	require.NoError(t, err)
	_, err = store.MarkPaid("3")
	require.NoError(t, err)

	reset := store.Reset()
	require.Equal(t, domain.SeedOrders(), reset)
	require.Equal(t, domain.SeedOrders(), store.List())
	require.Zero(t, store.CompletedCount())
}

func TestOrderStore_ResetDoesNotShareSeed(t *testing.T) {
	store := memory.NewSeededOrderStore()
	store.Reset()

	// Оплата после сброса не должна протекать в seed: следующий сброс снова pending.
	_, err := store.MarkPaid("1")
	require.NoError(t, err)
	reset := store.Reset()
	require.Equal(t, domain.OrderStatusPending, reset[0].Status)
}

func TestOrderStore_SnapshotsAreDetached(t *testing.T) {
	store := memory.NewSeededOrderStore()

	snapshot := store.List()
	snapshot[0].MarkPaid()
	require.Equal(t, domain.OrderStatusPending, store.List()[0].Status)

	before := store.List()
	_, err := store.MarkPaid("1")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, before[0].Status, "earlier snapshot must stay stale")
}

func TestOrderStore_CustomSeedCopied(t *testing.T) {
	seed := []domain.Order{{ID: "x", Status: domain.OrderStatusPending}}
	store := memory.NewOrderStore(seed)
	seed[0].ID = "mutated"

	_, ok := store.FindByID("x")
	require.True(t, ok)
	require.Equal(t, 1, store.Len())
}

func TestOrderStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewSeededOrderStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, _ = store.MarkPaid("1")
		}()
		go func() {
			defer wg.Done()
			_ = store.List()
		}()
		go func() {
			defer wg.Done()
			_ = store.Reset()
		}()
	}
	wg.Wait()

	require.Equal(t, []string{"1", "2", "3"}, ids(store.List()))
}

func ids(orders []domain.Order) []string {
	result := make([]string, 0, len(orders))
	for _, order := range orders {
		result = append(result, order.ID)
	}
	return result
}
