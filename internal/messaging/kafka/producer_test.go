package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"github.com/vladislavdragonenkov/orders-mock/internal/domain"
)

func paidOrder() domain.Order {
	order := domain.SeedOrders()[0]
	order.MarkPaid()
	return order
}

func TestProducer_PublishOrderPaid(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, "")

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeOrderPaid {
			t.Errorf("expected event type %s, got %s", EventTypeOrderPaid, event.EventType)
		}
		if event.OrderID != "1" {
			t.Errorf("expected order id 1, got %s", event.OrderID)
		}
		if event.Status != string(domain.OrderStatusCompleted) {
			t.Errorf("expected completed status, got %s", event.Status)
		}
		return nil
	})

	if err := producer.PublishOrderPaid(paidOrder()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if producer.Topic() != DefaultTopic {
		t.Errorf("expected default topic %s, got %s", DefaultTopic, producer.Topic())
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishOrdersReset(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, "custom.topic")

	mockProducer.ExpectSendMessageAndSucceed()

	if err := producer.PublishOrdersReset(domain.SeedOrders()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if producer.Topic() != "custom.topic" {
		t.Errorf("expected custom topic, got %s", producer.Topic())
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, "")

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	if err := producer.PublishOrderPaid(paidOrder()); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_MarshalError(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := newProducer(mockProducer, "")

	if err := producer.PublishEvent("k", map[string]interface{}{"bad": make(chan int)}); err == nil {
		t.Fatal("expected marshal error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderPaidEvent(t *testing.T) {
	event := NewOrderPaidEvent(paidOrder())

	if event.EventType != EventTypeOrderPaid {
		t.Errorf("expected event type %s, got %s", EventTypeOrderPaid, event.EventType)
	}
	if event.EventID == "" {
		t.Error("event id should be set")
	}
	if event.Metadata["merchant_name"] != "Amazon" {
		t.Error("metadata not set correctly")
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Error("timestamp should be close to current time")
	}
}

func TestNewOrdersResetEvent(t *testing.T) {
	event := NewOrdersResetEvent(domain.SeedOrders())

	if event.EventType != EventTypeOrdersReset {
		t.Errorf("expected event type %s, got %s", EventTypeOrdersReset, event.EventType)
	}
	if event.OrderID != "" {
		t.Errorf("reset event should not carry order id, got %s", event.OrderID)
	}
	if event.Metadata["count"] != 3 {
		t.Errorf("expected count 3, got %v", event.Metadata["count"])
	}
	ids, ok := event.Metadata["order_ids"].([]string)
	if !ok || len(ids) != 3 || ids[0] != "1" {
		t.Errorf("unexpected order ids: %v", event.Metadata["order_ids"])
	}
}

func TestNewProducerConfig_BoundsSendTime(t *testing.T) {
	config := newProducerConfig()

	if err := config.Validate(); err != nil {
		t.Fatalf("producer config must be valid: %v", err)
	}
	if config.Producer.RequiredAcks != sarama.WaitForLocal {
		t.Errorf("expected WaitForLocal acks, got %v", config.Producer.RequiredAcks)
	}
	if config.Producer.Retry.Max > 1 || config.Metadata.Retry.Max > 1 {
		t.Errorf("expected at most one retry, got producer=%d metadata=%d",
			config.Producer.Retry.Max, config.Metadata.Retry.Max)
	}

	// Худший случай: каждая попытка упирается в таймаут сети.
	attempts := time.Duration(config.Producer.Retry.Max + 1)
	worst := attempts * (config.Net.DialTimeout + config.Net.WriteTimeout + config.Net.ReadTimeout + config.Producer.Retry.Backoff)
	if worst > 4*time.Second {
		t.Errorf("worst-case send time too long: %s", worst)
	}
	if config.Producer.Timeout > time.Second {
		t.Errorf("broker ack timeout too long: %s", config.Producer.Timeout)
	}
}
