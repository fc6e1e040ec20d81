package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus metrics on its own registerer.
type Registry struct {
	reg *prometheus.Registry

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Marketplace
	EventsPosted         prometheus.Counter
	UpgradePrompts       prometheus.Counter
	ApplicationsTotal    *prometheus.CounterVec
	CheckInsTotal        prometheus.Counter
	CheckOutsTotal       prometheus.Counter
	SessionsTotal        *prometheus.CounterVec
	OverdueRemindersSent prometheus.Counter

	// Workers
	WorkerRunsTotal *prometheus.CounterVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Registry{
		reg: reg,

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventstaff_http_requests_total",
				Help: "Total HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventstaff_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "eventstaff_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),

		EventsPosted: f.NewCounter(prometheus.CounterOpts{
			Name: "eventstaff_events_posted_total",
			Help: "Events posted by clients",
		}),
		UpgradePrompts: f.NewCounter(prometheus.CounterOpts{
			Name: "eventstaff_upgrade_prompts_total",
			Help: "Posts refused because the free monthly quota was used up",
		}),
		ApplicationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventstaff_applications_total",
				Help: "Application attempts by outcome",
			},
			[]string{"outcome"},
		),
		CheckInsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "eventstaff_check_ins_total",
			Help: "Successful staff check-ins",
		}),
		CheckOutsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "eventstaff_check_outs_total",
			Help: "Successful staff check-outs",
		}),
		SessionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventstaff_session_changes_total",
				Help: "Sign-ins and sign-outs",
			},
			[]string{"kind"},
		),
		OverdueRemindersSent: f.NewCounter(prometheus.CounterOpts{
			Name: "eventstaff_overdue_reminders_total",
			Help: "Payment overdue reminders sent to clients",
		}),

		WorkerRunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventstaff_worker_runs_total",
				Help: "Background worker runs by worker and result",
			},
			[]string{"worker", "result"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry to tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WorkerRun records one run of a background worker.
func (r *Registry) WorkerRun(worker string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.WorkerRunsTotal.WithLabelValues(worker, result).Inc()
}
