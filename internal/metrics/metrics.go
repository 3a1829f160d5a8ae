package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds the API's collectors; /metrics serves it.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "job_portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "job_portal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	ApplicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "job_portal",
			Subsystem: "applications",
			Name:      "submitted_total",
			Help:      "Applications created.",
		},
	)

	ApplicationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "job_portal",
			Subsystem: "applications",
			Name:      "decisions_total",
			Help:      "Recruiter status decisions by resulting status.",
		},
		[]string{"status"},
	)

	JobsPosted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "job_portal",
			Subsystem: "jobs",
			Name:      "posted_total",
			Help:      "Job postings created.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ApplicationsSubmitted,
		ApplicationDecisions,
		JobsPosted,
	)
}
