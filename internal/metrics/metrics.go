package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	QueueSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pong_matchmaking_queue_size",
		Help: "entrants currently waiting for an opponent",
	})
	MatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pong_matches_total",
		Help: "total matches formed",
	})
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pong_active_sessions",
		Help: "match sessions currently running",
	})
)

func Init() {
	prometheus.MustRegister(QueueSize, MatchesTotal, ActiveSessions)
}
