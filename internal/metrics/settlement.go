package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settlementTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starwheel_settlements_total",
			Help: "Settlement attempts by result",
		},
		[]string{"result"},
	)

	settlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starwheel_settlement_duration_ms",
			Help:    "Settlement duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"result"},
	)

	prizeStars = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "starwheel_prize_stars_total",
			Help: "Stars credited as prize payouts",
		},
	)
)

// RecordSettlement records a settlement attempt and the stars it paid
func RecordSettlement(err error, paid int64, started time.Time) {
	res := resultLabel(err)
	settlementTotal.WithLabelValues(res).Inc()
	settlementDuration.WithLabelValues(res).Observe(sinceMs(started))
	if err == nil && paid > 0 {
		prizeStars.Add(float64(paid))
	}
}
