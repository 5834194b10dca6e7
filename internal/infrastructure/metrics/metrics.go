package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Debt metrics
	DebtsCreated  prometheus.Counter
	DebtsSettled  prometheus.Counter
	DebtsReopened prometheus.Counter
	DebtsDeleted  prometheus.Counter
	DebtAmount    prometheus.Histogram
	SplitSize     prometheus.Histogram
	DebtErrors    *prometheus.CounterVec

	// Friend metrics
	FriendsCreated prometheus.Counter
	FriendsDeleted prometheus.Counter

	// Database metrics
	DBConnections prometheus.Gauge

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Debt metrics
		DebtsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divyde_debts_created_total",
			Help: "Total number of debts created",
		}),
		DebtsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divyde_debts_settled_total",
			Help: "Total number of debts marked paid",
		}),
		DebtsReopened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divyde_debts_reopened_total",
			Help: "Total number of debts marked unpaid again",
		}),
		DebtsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divyde_debts_deleted_total",
			Help: "Total number of debts deleted",
		}),
		DebtAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "divyde_debt_amount",
			Help:    "Per-person debt amounts",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 500, 1000, 10000},
		}),
		SplitSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "divyde_split_size",
			Help:    "Number of friends per split",
			Buckets: []float64{1, 2, 3, 5, 10, 20},
		}),
		DebtErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divyde_debt_errors_total",
				Help: "Total number of debt operation errors by type",
			},
			[]string{"error_type"},
		),

		// Friend metrics
		FriendsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divyde_friends_created_total",
			Help: "Total number of friends created",
		}),
		FriendsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "divyde_friends_deleted_total",
			Help: "Total number of friends deleted",
		}),

		// Database metrics
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "divyde_db_connections",
			Help: "Current number of database connections",
		}),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divyde_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "divyde_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
