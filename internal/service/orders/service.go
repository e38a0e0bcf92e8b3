// Package orders связывает хранилище заказов с журналом, событиями и метриками.
package orders

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
	"github.com/vladislavdragonenkov/orders-mock/internal/metrics"
)

const (
	OperationListOrders  = "orders"
	OperationOrderByID   = "orderById"
	OperationPayOrder    = "payOrder"
	OperationResetOrders = "resetOrders"

	sideEffectTimeline = "timeline"
	sideEffectEvents   = "events"

	reasonPaid  = "payOrder mutation"
	reasonReset = "resetOrders mutation"
)

// EventPublisher публикует события об изменении заказов.
type EventPublisher interface {
	PublishOrderPaid(order domain.Order) error
	PublishOrdersReset(orders []domain.Order) error
}

// Recorder принимает метрики операций.
type Recorder interface {
	RecordOperation(operation, outcome string, duration time.Duration)
	SetCompletedOrders(n int)
	RecordSideEffectError(target string)
}

// Service выполняет операции над заказами. Журнал, события и метрики
// best-effort: их ошибки логируются и не влияют на результат операции.
type Service struct {
	store     domain.OrderStore
	timeline  domain.TimelineRepository
	publisher EventPublisher
	metrics   Recorder
	logger    *log.Entry
}

// Option настраивает необязательные зависимости сервиса.
type Option func(*Service)

// WithTimeline подключает журнал событий.
func WithTimeline(timeline domain.TimelineRepository) Option {
	return func(s *Service) { s.timeline = timeline }
}

// WithPublisher подключает публикацию событий.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithMetrics подключает метрики.
func WithMetrics(recorder Recorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

// NewService конструирует сервис поверх хранилища.
func NewService(store domain.OrderStore, logger *log.Entry, opts ...Option) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	s := &Service{
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListOrders возвращает текущий список заказов.
func (s *Service) ListOrders(_ context.Context) []domain.Order {
	start := time.Now()
	orders := s.store.List()
	s.recordOperation(OperationListOrders, metrics.OutcomeSuccess, start)
	return orders
}

// OrderByID возвращает заказ; отсутствие заказа не считается ошибкой.
func (s *Service) OrderByID(_ context.Context, id string) (domain.Order, bool) {
	start := time.Now()
	order, ok := s.store.FindByID(id)
	outcome := metrics.OutcomeSuccess
	if !ok {
		outcome = metrics.OutcomeNotFound
	}
	s.recordOperation(OperationOrderByID, outcome, start)
	return order, ok
}

// PayOrder переводит заказ в completed. Для отсутствующего ID возвращает
// domain.OrderNotFoundError, хранилище при этом не меняется.
func (s *Service) PayOrder(_ context.Context, id string) (domain.Order, error) {
	start := time.Now()
	logger := s.logger.WithField("order_id", id)

	order, err := s.store.MarkPaid(id)
	if err != nil {
		outcome := metrics.OutcomeError
		if domain.IsOrderNotFound(err) {
			outcome = metrics.OutcomeNotFound
		}
		s.recordOperation(OperationPayOrder, outcome, start)
		logger.WithError(err).Info("payOrder rejected")
		return domain.Order{}, err
	}

	s.appendTimeline(domain.TimelineEvent{
		OrderID: order.ID,
		Type:    domain.TimelineEventOrderPaid,
		Reason:  reasonPaid,
	})
	if s.publisher != nil {
		if err := s.publisher.PublishOrderPaid(order); err != nil {
			s.sideEffectFailed(sideEffectEvents, err, logger)
		}
	}

	s.recordOperation(OperationPayOrder, metrics.OutcomeSuccess, start)
	s.updateCompleted()
	logger.WithField("status", order.Status).Info("order paid")
	return order, nil
}

// ResetOrders возвращает все заказы к исходному состоянию.
func (s *Service) ResetOrders(_ context.Context) []domain.Order {
	start := time.Now()
	orders := s.store.Reset()

	occurred := time.Now().UTC()
	for _, order := range orders {
		s.appendTimeline(domain.TimelineEvent{
			OrderID:  order.ID,
			Type:     domain.TimelineEventOrderReset,
			Reason:   reasonReset,
			Occurred: occurred,
		})
	}
	if s.publisher != nil {
		if err := s.publisher.PublishOrdersReset(orders); err != nil {
			s.sideEffectFailed(sideEffectEvents, err, s.logger)
		}
	}

	s.recordOperation(OperationResetOrders, metrics.OutcomeSuccess, start)
	s.updateCompleted()
	s.logger.WithField("orders", len(orders)).Info("orders reset to seed")
	return orders
}

// Timeline возвращает журнал заказа. Без подключённого журнала отдаёт пустой список.
func (s *Service) Timeline(_ context.Context, orderID string) ([]domain.TimelineEvent, error) {
	if s.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}
	return s.timeline.List(orderID)
}

func (s *Service) appendTimeline(event domain.TimelineEvent) {
	if s.timeline == nil {
		return
	}
	if err := s.timeline.Append(event); err != nil {
		s.sideEffectFailed(sideEffectTimeline, err, s.logger.WithField("order_id", event.OrderID))
	}
}

func (s *Service) sideEffectFailed(target string, err error, logger *log.Entry) {
	logger.WithError(err).WithField("target", target).Warn("side effect failed")
	if s.metrics != nil {
		s.metrics.RecordSideEffectError(target)
	}
}

func (s *Service) recordOperation(operation, outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordOperation(operation, outcome, time.Since(start))
}

func (s *Service) updateCompleted() {
	if s.metrics == nil {
		return
	}
	var completed int
	for _, order := range s.store.List() {
		if order.IsCompleted() {
			completed++
		}
	}
	s.metrics.SetCompletedOrders(completed)
}
