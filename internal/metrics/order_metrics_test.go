package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetricsWithRegisterer(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics.operations == nil {
		t.Error("operations counter vec should not be nil")
	}
	if metrics.operationDuration == nil {
		t.Error("operationDuration histogram vec should not be nil")
	}
	if metrics.completedOrders == nil {
		t.Error("completedOrders gauge should not be nil")
	}
	if metrics.sideEffectErrors == nil {
		t.Error("sideEffectErrors counter vec should not be nil")
	}
}

func TestNewOrderMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewOrderMetricsWithRegisterer(reg)
	second := NewOrderMetricsWithRegisterer(reg)

	if first.operations != second.operations {
		t.Error("expected second instance to reuse registered counter vec")
	}
	if first.completedOrders != second.completedOrders {
		t.Error("expected second instance to reuse registered gauge")
	}
}

func TestRecordOperation(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOperation("payOrder", OutcomeSuccess, 10*time.Millisecond)
	metrics.RecordOperation("payOrder", OutcomeSuccess, 20*time.Millisecond)
	metrics.RecordOperation("payOrder", OutcomeNotFound, time.Millisecond)

	metric := &dto.Metric{}
	if err := metrics.operations.WithLabelValues("payOrder", OutcomeSuccess).Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected success counter 2.0, got %f", metric.Counter.GetValue())
	}

	notFound := &dto.Metric{}
	if err := metrics.operations.WithLabelValues("payOrder", OutcomeNotFound).Write(notFound); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if notFound.Counter.GetValue() != 1.0 {
		t.Errorf("expected not_found counter 1.0, got %f", notFound.Counter.GetValue())
	}

	histogram := &dto.Metric{}
	observer := metrics.operationDuration.WithLabelValues("payOrder").(prometheus.Histogram)
	if err := observer.Write(histogram); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if histogram.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 samples, got %d", histogram.Histogram.GetSampleCount())
	}
}

func TestSetCompletedOrders(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.SetCompletedOrders(2)
	metrics.SetCompletedOrders(1)

	gauge := &dto.Metric{}
	if err := metrics.completedOrders.Write(gauge); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if gauge.Gauge.GetValue() != 1.0 {
		t.Errorf("expected completed orders 1.0, got %f", gauge.Gauge.GetValue())
	}
}

func TestRecordSideEffectError(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordSideEffectError("kafka")

	metric := &dto.Metric{}
	if err := metrics.sideEffectErrors.WithLabelValues("kafka").Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected counter 1.0, got %f", metric.Counter.GetValue())
	}
}
