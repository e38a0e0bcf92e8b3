package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/orders-mock/internal/health"
	"github.com/vladislavdragonenkov/orders-mock/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders-mock/internal/metrics"
	"github.com/vladislavdragonenkov/orders-mock/internal/service/orders"
	"github.com/vladislavdragonenkov/orders-mock/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders-mock/internal/storage/postgres"
	"github.com/vladislavdragonenkov/orders-mock/internal/version"
)

// runtimeDependencies держит хранилище заказов, журнал, producer событий
// и сервис поверх них.
type runtimeDependencies struct {
	store    *memory.OrderStore
	timeline domain.TimelineRepository
	pgStore  *postgres.Store
	producer *kafka.Producer
	metrics  *metrics.OrderMetrics
	service  *orders.Service
}

// initRuntimeDependencies собирает зависимости. Ошибка Postgres при заданном
// DSN фатальна, недоступная Kafka только логируется.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	deps := &runtimeDependencies{
		store:   memory.NewSeededOrderStore(),
		metrics: metrics.NewOrderMetrics(),
	}

	if cfg.PostgresDSN != "" {
		pgStore, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("init timeline storage: %w", err)
		}
		if err := pgStore.EnsureSchema(ctx); err != nil {
			_ = pgStore.Close()
			return nil, fmt.Errorf("init timeline storage: %w", err)
		}
		deps.pgStore = pgStore
		deps.timeline = postgres.NewTimelineRepository(pgStore)
		logger.Info("журнал заказов хранится в postgres")
	} else {
		deps.timeline = memory.NewTimelineRepository()
	}

	if publisher, err := initEventPublisher(cfg, logger); err == nil {
		deps.producer = publisher
	}

	opts := []orders.Option{
		orders.WithTimeline(deps.timeline),
		orders.WithMetrics(deps.metrics),
	}
	if deps.producer != nil {
		opts = append(opts, orders.WithPublisher(deps.producer))
	}
	deps.service = orders.NewService(deps.store, logger.WithField("layer", "service"), opts...)
	deps.metrics.SetCompletedOrders(deps.store.CompletedCount())

	return deps, nil
}

// close освобождает внешние подключения.
func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil {
		return
	}
	closeEventPublisher(d.producer, logger)
	if d.pgStore != nil {
		if err := d.pgStore.Close(); err != nil {
			logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}

// newHealthHandler регистрирует проверки компонентов.
func newHealthHandler(deps *runtimeDependencies) *healthcheck.Handler {
	handler := healthcheck.NewHandler(version.Name, version.GetVersion())
	handler.RegisterFunc("order_store", func(context.Context) error {
		if deps.store.Len() == 0 {
			return errors.New("order store is empty")
		}
		return nil
	})
	if deps.pgStore != nil {
		handler.RegisterOptional("timeline", healthcheck.NewSimpleChecker("timeline", deps.pgStore.Ping))
	}
	return handler
}
