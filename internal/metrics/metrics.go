package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// LikesTotal counts record_like calls by outcome (matched, pending, error)
	LikesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniconnect_likes_total",
			Help: "Likes recorded, by outcome",
		},
		[]string{"outcome"},
	)

	// MatchesTotal counts match rows materialized, by source (like, rebuild)
	MatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniconnect_matches_total",
			Help: "Match rows created",
		},
		[]string{"source"},
	)

	// CandidatesTotal counts candidate selections by result (found, not_found, error)
	CandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniconnect_candidates_total",
			Help: "Candidate selections, by result",
		},
		[]string{"result", "filtered"},
	)

	// RateLimitDecisions counts limiter decisions per limiter
	RateLimitDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniconnect_ratelimit_decisions_total",
			Help: "Rate limiter decisions",
		},
		[]string{"limiter", "decision"},
	)

	// StoreErrors counts transient store failures per operation
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniconnect_store_errors_total",
			Help: "Store operations that failed with a transient error",
		},
		[]string{"op"},
	)

	// TableRows tracks row counts refreshed by the health loop
	TableRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "uniconnect_table_rows",
			Help: "Row count per table at the last health check",
		},
		[]string{"table"},
	)

	// StoreUp is 1 when the last health ping succeeded
	StoreUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "uniconnect_store_up",
			Help: "Whether the last store ping succeeded",
		},
	)

	// LastBackupTimestamp is the unix time of the last successful backup
	LastBackupTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "uniconnect_last_backup_timestamp_seconds",
			Help: "Unix time of the last successful backup",
		},
	)
)

func init() {
	// Register metrics with the default registry
	prometheus.MustRegister(LikesTotal)
	prometheus.MustRegister(MatchesTotal)
	prometheus.MustRegister(CandidatesTotal)
	prometheus.MustRegister(RateLimitDecisions)
	prometheus.MustRegister(StoreErrors)
	prometheus.MustRegister(TableRows)
	prometheus.MustRegister(StoreUp)
	prometheus.MustRegister(LastBackupTimestamp)
}

// Bool renders a label value for a boolean dimension.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
