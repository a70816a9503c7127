package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Database metrics
var (
	// DBCommandDuration records mongo command latency
	DBCommandDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_command_duration_seconds",
			Help:      "MongoDB command duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"command"},
	)

	// DBCommandErrors counts failed mongo commands
	DBCommandErrors = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_command_errors_total",
			Help:      "Total number of failed MongoDB commands",
		},
		[]string{"command"},
	)

	// DBConnectionsOpen tracks pooled connections
	DBConnectionsOpen = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_open",
			Help:      "Number of open MongoDB pool connections",
		},
	)
)
