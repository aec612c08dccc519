package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewPlacementMetrics(t *testing.T) {
	metrics := newPlacementMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newPlacementMetricsWithRegisterer should not return nil")
	}
	if metrics.ordersPlaced == nil {
		t.Error("ordersPlaced counter should not be nil")
	}
	if metrics.ordersRejected == nil {
		t.Error("ordersRejected counter vec should not be nil")
	}
	if metrics.placeDuration == nil {
		t.Error("placeDuration histogram should not be nil")
	}
	if metrics.outboxEvents == nil {
		t.Error("outboxEvents counter should not be nil")
	}
}

func TestPlacementMetricsRecord(t *testing.T) {
	metrics := newPlacementMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordPlaced()
	metrics.RecordPlaced()
	metrics.RecordRejected("insufficient_stock")
	metrics.RecordOutboxEvent()
	metrics.RecordDuration(150 * time.Millisecond)

	if got := testutil.ToFloat64(metrics.ordersPlaced); got != 2 {
		t.Errorf("ordersPlaced = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.ordersRejected.WithLabelValues("insufficient_stock")); got != 1 {
		t.Errorf("ordersRejected[insufficient_stock] = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.ordersRejected.WithLabelValues("customer_not_found")); got != 0 {
		t.Errorf("ordersRejected[customer_not_found] = %v, want 0", got)
	}
	if got := testutil.ToFloat64(metrics.outboxEvents); got != 1 {
		t.Errorf("outboxEvents = %v, want 1", got)
	}
}

func TestPlacementMetricsReuseRegistered(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newPlacementMetricsWithRegisterer(registry)
	second := newPlacementMetricsWithRegisterer(registry)

	// Повторная регистрация возвращает уже существующие коллекторы.
	first.RecordPlaced()
	second.RecordPlaced()

	if got := testutil.ToFloat64(first.ordersPlaced); got != 2 {
		t.Errorf("ordersPlaced = %v, want 2", got)
	}
}
