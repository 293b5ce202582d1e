package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	eventsTotal       *prometheus.CounterVec
	ingestLag         *prometheus.HistogramVec
	reminderScanTotal *prometheus.CounterVec
	overdueTasks      prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	eventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officemate",
			Subsystem: "worker",
			Name:      "ingest_events_total",
			Help:      "Total document ingestion events observed by status.",
		},
		[]string{"service", "status"},
	)
	ingestLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "officemate",
			Subsystem: "worker",
			Name:      "ingest_lag_seconds",
			Help:      "Delay between document creation and event observation.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	reminderScanTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "officemate",
			Subsystem: "worker",
			Name:      "reminder_scans_total",
			Help:      "Total overdue task reminder scans by status.",
		},
		[]string{"service", "status"},
	)
	overdueTasks := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "officemate",
			Subsystem: "worker",
			Name:      "overdue_tasks",
			Help:      "Overdue open tasks observed by the latest reminder scan.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(eventsTotal, ingestLag, reminderScanTotal, overdueTasks)

	return &WorkerMetrics{
		registry:          registry,
		eventsTotal:       eventsTotal,
		ingestLag:         ingestLag,
		reminderScanTotal: reminderScanTotal,
		overdueTasks:      overdueTasks,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) RecordIngestEvent(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.eventsTotal.WithLabelValues(service, status).Inc()
}

func (m *WorkerMetrics) ObserveIngestLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.ingestLag.WithLabelValues(service).Observe(lag.Seconds())
}

func (m *WorkerMetrics) RecordReminderScan(service string, overdue int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.reminderScanTotal.WithLabelValues(service, status).Inc()
	if err == nil {
		m.overdueTasks.Set(float64(overdue))
	}
}
