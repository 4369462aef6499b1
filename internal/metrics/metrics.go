package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by route pattern and status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "party_paradise",
			Name:      "http_requests_total",
			Help:      "The total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "party_paradise",
			Name:      "http_request_duration_seconds",
			Help:      "The time spent serving HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// EventTransitions counts event status changes
	EventTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "party_paradise",
			Name:      "event_status_transitions_total",
			Help:      "The total number of event status transitions",
		},
		[]string{"from", "to"},
	)

	// PaymentVerifications counts verification attempts by result
	PaymentVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "party_paradise",
			Name:      "payment_verifications_total",
			Help:      "The total number of payment verification attempts",
		},
		[]string{"result"},
	)

	// Refunds counts per-vendor refund outcomes on cancellation
	Refunds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "party_paradise",
			Name:      "refunds_total",
			Help:      "The total number of refund outcomes during cancellation",
		},
		[]string{"outcome"},
	)

	// LedgerEntries counts recorded ledger entries by type
	LedgerEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "party_paradise",
			Name:      "ledger_entries_total",
			Help:      "The total number of vendor ledger entries",
		},
		[]string{"type"},
	)

	// LedgerAmount sums recorded ledger amounts by type
	LedgerAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "party_paradise",
			Name:      "ledger_amount_total",
			Help:      "The absolute amount moved through vendor ledgers",
		},
		[]string{"type"},
	)

	// DomainEvents counts published domain events by type
	DomainEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "party_paradise",
			Name:      "domain_events_total",
			Help:      "The total number of domain events published",
		},
		[]string{"type"},
	)

	// EventsDropped counts events the sweeper marked as dropped
	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "party_paradise",
		Name:      "events_dropped_total",
		Help:      "The total number of stale events marked as dropped",
	})
)
