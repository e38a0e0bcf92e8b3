package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-mock/internal/messaging/kafka"
)

// initEventPublisher включает публикацию order.paid и orders.reset, если в
// конфигурации есть брокеры. Без брокеров возвращает nil, nil.
func initEventPublisher(cfg Config, logger *log.Entry) (*kafka.Producer, error) {
	brokers := splitBrokers(cfg.KafkaBrokers)
	if len(brokers) == 0 {
		logger.Debug("брокеры не заданы, события о заказах не публикуются")
		return nil, nil
	}

	topic := cfg.KafkaTopic
	if topic == "" {
		topic = kafka.DefaultTopic
	}

	publisher, err := kafka.NewProducer(brokers, topic)
	if err != nil {
		logger.WithError(err).WithField("brokers", brokers).
			Warn("kafka недоступна, мутации работают без событий")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"brokers":      brokers,
		"events_topic": publisher.Topic(),
		"event_types":  []kafka.EventType{kafka.EventTypeOrderPaid, kafka.EventTypeOrdersReset},
	}).Info("публикация событий о заказах включена")
	return publisher, nil
}

// splitBrokers разбирает KAFKA_BROKERS: адреса через запятую, пустые элементы отбрасываются.
func splitBrokers(raw string) []string {
	var brokers []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			brokers = append(brokers, addr)
		}
	}
	return brokers
}

func closeEventPublisher(publisher *kafka.Producer, logger *log.Entry) {
	if publisher == nil {
		return
	}
	if err := publisher.Close(); err != nil {
		logger.WithError(err).Warn("события: ошибка при закрытии producer")
	}
}
