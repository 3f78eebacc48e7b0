package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FulfillmentMetrics содержит метрики оркестратора фулфилмента.
type FulfillmentMetrics struct {
	// Счётчики операций
	ordersPlaced    prometheus.Counter
	ordersCancelled prometheus.Counter
	placeFailed     prometheus.Counter
	statusUpdated   prometheus.Counter

	// Сбои компенсации при отмене (каждая позиция считается отдельно)
	compensationFailed prometheus.Counter

	// Гистограммы времени выполнения
	placeDuration prometheus.Histogram
	stepDuration  *prometheus.HistogramVec

	// Gauge для размещений в полёте
	activePlacements prometheus.Gauge
}

// NewFulfillmentMetrics создаёт новый экземпляр метрик фулфилмента.
func NewFulfillmentMetrics() *FulfillmentMetrics {
	return newFulfillmentMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newFulfillmentMetricsWithRegisterer(registerer prometheus.Registerer) *FulfillmentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &FulfillmentMetrics{
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		placeFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_place_failed_total",
			Help: "Total number of failed place-order attempts",
		}),
		statusUpdated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_status_updates_total",
			Help: "Total number of order status updates",
		}),
		compensationFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_compensation_failed_total",
			Help: "Total number of failed stock compensation calls during cancel",
		}),
		placeDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "fulfillment_place_duration_seconds",
			Help:    "Duration of place-order operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stepDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "fulfillment_step_duration_seconds",
			Help:    "Duration of individual fulfillment steps in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"step"}),
		activePlacements: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "fulfillment_active_placements",
			Help: "Number of place-order operations currently in flight",
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

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
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

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderPlaced увеличивает счётчик размещённых заказов.
func (m *FulfillmentMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordOrderCancelled увеличивает счётчик отменённых заказов.
func (m *FulfillmentMetrics) RecordOrderCancelled() {
	m.ordersCancelled.Inc()
}

// RecordPlaceFailed увеличивает счётчик неудачных размещений.
func (m *FulfillmentMetrics) RecordPlaceFailed() {
	m.placeFailed.Inc()
}

// RecordStatusUpdated увеличивает счётчик обновлений статуса.
func (m *FulfillmentMetrics) RecordStatusUpdated() {
	m.statusUpdated.Inc()
}

// RecordCompensationFailed увеличивает счётчик сбоев компенсации стока.
func (m *FulfillmentMetrics) RecordCompensationFailed() {
	m.compensationFailed.Inc()
}

// RecordPlaceDuration записывает время выполнения размещения заказа.
func (m *FulfillmentMetrics) RecordPlaceDuration(duration time.Duration) {
	m.placeDuration.Observe(duration.Seconds())
}

// RecordStepDuration записывает время выполнения шага фулфилмента.
func (m *FulfillmentMetrics) RecordStepDuration(step string, duration time.Duration) {
	m.stepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordPlacementStarted увеличивает количество активных размещений.
func (m *FulfillmentMetrics) RecordPlacementStarted() {
	m.activePlacements.Inc()
}

// RecordPlacementFinished уменьшает количество активных размещений.
func (m *FulfillmentMetrics) RecordPlacementFinished() {
	m.activePlacements.Dec()
}
