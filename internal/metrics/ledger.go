package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starwheel_ledger_postings_total",
			Help: "Committed ledger postings by kind",
		},
		[]string{"kind"},
	)

	postingStars = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starwheel_ledger_stars_total",
			Help: "Stars moved by committed ledger postings by kind",
		},
		[]string{"kind"},
	)

	storeConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starwheel_store_conflicts_total",
			Help: "Optimistic transaction retries caused by concurrent writers",
		},
	)

	storeIndexFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starwheel_store_index_failures_total",
			Help: "Committed writes whose index commands failed inside EXEC",
		},
	)
)

// RecordPosting counts a committed ledger posting
func RecordPosting(kind string, amount int64) {
	postingTotal.WithLabelValues(kind).Inc()
	postingStars.WithLabelValues(kind).Add(float64(amount))
}

// RecordConflict counts one optimistic transaction retry
func RecordConflict() {
	storeConflicts.Inc()
}

// RecordIndexFailure counts one committed write with a stale index
func RecordIndexFailure() {
	storeIndexFailures.Inc()
}
