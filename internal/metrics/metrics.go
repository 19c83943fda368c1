package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RosterRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackathon_roster_rows_total",
			Help: "Roster rows processed by import outcome",
		},
		[]string{"outcome"},
	)

	ScoresSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackathon_scores_submitted_total",
			Help: "Score submissions by result",
		},
		[]string{"result"},
	)

	ScoreTotalHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hackathon_score_total",
			Help:    "Distribution of accepted score totals",
			Buckets: prometheus.LinearBuckets(0, 5, 11),
		},
	)

	CertificatesIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackathon_certificates_issued_total",
			Help: "Certificates issued by category",
		},
		[]string{"category"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
