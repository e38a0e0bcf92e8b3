package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
)

// Producer публикует события заказов в Kafka
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *log.Entry
}

const (
	sendTimeout  = 500 * time.Millisecond
	sendRetries  = 1
	retryBackoff = 50 * time.Millisecond
)

// NewProducer создает новый Kafka producer для указанного топика
func NewProducer(brokers []string, topic string) (*Producer, error) {
	producer, err := sarama.NewSyncProducer(brokers, newProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return newProducer(producer, topic), nil
}

// newProducerConfig ограничивает время отправки: событие публикуется внутри
// обработки мутации, и медленный брокер не должен задерживать ответ API.
func newProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "orders-mock"
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Timeout = sendTimeout
	config.Producer.Retry.Max = sendRetries
	config.Producer.Retry.Backoff = retryBackoff
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Metadata.Retry.Max = sendRetries
	config.Metadata.Retry.Backoff = retryBackoff
	config.Net.DialTimeout = sendTimeout
	config.Net.ReadTimeout = sendTimeout
	config.Net.WriteTimeout = sendTimeout
	return config
}

func newProducer(producer sarama.SyncProducer, topic string) *Producer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Producer{
		producer: producer,
		topic:    topic,
		logger:   log.WithField("component", "kafka-producer"),
	}
}

// Topic возвращает топик, в который пишет producer
func (p *Producer) Topic() string {
	return p.topic
}

// PublishOrderPaid публикует событие оплаты; ключом служит ID заказа
func (p *Producer) PublishOrderPaid(order domain.Order) error {
	return p.PublishEvent(order.ID, NewOrderPaidEvent(order))
}

// PublishOrdersReset публикует событие сброса списка
func (p *Producer) PublishOrdersReset(orders []domain.Order) error {
	return p.PublishEvent(ResetEventKey, NewOrdersResetEvent(orders))
}

// PublishEvent сериализует событие в JSON и отправляет его синхронно
func (p *Producer) PublishEvent(key string, event interface{}) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(eventData),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.WithError(err).WithFields(log.Fields{
			"topic": p.topic,
			"key":   key,
		}).Error("failed to send message to kafka")
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.WithFields(log.Fields{
		"topic":     p.topic,
		"key":       key,
		"partition": partition,
		"offset":    offset,
	}).Debug("message sent to kafka")

	return nil
}

// Close закрывает producer
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}
