package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics содержит все prometheus-метрики сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SweepRunsTotal      *prometheus.CounterVec
	SweepItemsProcessed *prometheus.CounterVec
	SweepItemsFailed    *prometheus.CounterVec
	SweepDuration       *prometheus.HistogramVec

	NotificationsSent   *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec

	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweep_runs_total",
			Help:        "Total number of sweep job runs.",
			ConstLabels: labels,
		}, []string{"sweep", "result"}),
		SweepItemsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweep_items_processed_total",
			Help:        "Bookings processed by sweep jobs.",
			ConstLabels: labels,
		}, []string{"sweep"}),
		SweepItemsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_sweep_items_failed_total",
			Help:        "Bookings a sweep job failed to process.",
			ConstLabels: labels,
		}, []string{"sweep"}),
		SweepDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "booking_sweep_duration_seconds",
			Help:        "Sweep job run duration.",
			ConstLabels: labels,
			Buckets:     []float64{0.05, 0.1, 0.5, 1, 5, 15, 60},
		}, []string{"sweep"}),

		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_notifications_sent_total",
			Help:        "Notifications successfully handed to the notify service.",
			ConstLabels: labels,
		}, []string{"kind"}),
		NotificationsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_notifications_failed_total",
			Help:        "Notification sends that failed.",
			ConstLabels: labels,
		}, []string{"kind"}),

		DBOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool.",
			ConstLabels: labels,
		}),
		DBInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Connections currently in use.",
			ConstLabels: labels,
		}),
		DBIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Idle connections in the pool.",
			ConstLabels: labels,
		}),
	}
}

// CollectDBStats периодически снимает статистику пула соединений.
// Останавливается при закрытии stopCh.
func (m *Metrics) CollectDBStats(db *sql.DB, interval time.Duration, stopCh <-chan struct{}) {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				stats := db.Stats()
				m.DBOpenConnections.Set(float64(stats.OpenConnections))
				m.DBInUse.Set(float64(stats.InUse))
				m.DBIdle.Set(float64(stats.Idle))
			}
		}
	}()
}
