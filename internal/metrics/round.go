package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rosterTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starwheel_roster_requests_total",
			Help: "Join, leave and bot seat requests by operation and result",
		},
		[]string{"op", "result"},
	)

	transitionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starwheel_round_transitions_total",
			Help: "Round status transitions by target status",
		},
		[]string{"status"},
	)

	drawTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starwheel_draws_total",
			Help: "Draws by winning role coverage",
		},
		[]string{"winners"},
	)
)

// RecordRoster counts a join, leave or bot seat request.
// result: "success" | "fail"
func RecordRoster(op string, err error) {
	rosterTotal.WithLabelValues(op, resultLabel(err)).Inc()
}

// RecordTransition counts a round entering status
func RecordTransition(status string) {
	transitionTotal.WithLabelValues(status).Inc()
}

// RecordDraw counts a draw by how many payouts it produced
func RecordDraw(winners int) {
	drawTotal.WithLabelValues(itoa(winners)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	return "fail"
}

func itoa(i int) string {
	if i < 0 {
		i = 0
	}
	return strconv.Itoa(i)
}

func sinceMs(started time.Time) float64 {
	return float64(time.Since(started).Milliseconds())
}
