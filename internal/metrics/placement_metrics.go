package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlacementMetrics содержит метрики процедуры оформления заказа.
type PlacementMetrics struct {
	ordersPlaced   prometheus.Counter
	ordersRejected *prometheus.CounterVec
	placeDuration  prometheus.Histogram
	outboxEvents   prometheus.Counter
}

// NewPlacementMetrics создаёт метрики оформления заказов в default registry.
func NewPlacementMetrics() *PlacementMetrics {
	return newPlacementMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPlacementMetricsWithRegisterer(registerer prometheus.Registerer) *PlacementMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PlacementMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shop_orders_rejected_total",
			Help: "Total number of order placements rejected by validation, grouped by reason",
		}, []string{"reason"}),
		placeDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_order_place_duration_seconds",
			Help:    "Duration of the order placement procedure in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_order_outbox_events_total",
			Help: "Total number of order events enqueued into the transactional outbox",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordPlaced увеличивает счётчик успешно оформленных заказов.
func (m *PlacementMetrics) RecordPlaced() {
	m.ordersPlaced.Inc()
}

// RecordRejected увеличивает счётчик отказов по причине.
func (m *PlacementMetrics) RecordRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// RecordDuration записывает время выполнения процедуры оформления.
func (m *PlacementMetrics) RecordDuration(duration time.Duration) {
	m.placeDuration.Observe(duration.Seconds())
}

// RecordOutboxEvent увеличивает счётчик событий, поставленных в outbox.
func (m *PlacementMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}
