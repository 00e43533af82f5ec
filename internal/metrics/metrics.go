package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	gamesCreated      prometheus.Counter
	gamesJoined       prometheus.Counter
	moves             *prometheus.CounterVec
	gamesFinished     *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

func New(namespace string, registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		gamesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_created_total",
			Help:      "Number of created games",
		}),
		gamesJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_joined_total",
			Help:      "Number of accepted joins",
		}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Number of submitted moves by result",
		}, []string{"result"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Number of games that reached a terminal state by outcome",
		}, []string{"outcome"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Catalog operation latency",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"operation"}),
	}

	registerer.MustRegister(
		m.gamesCreated,
		m.gamesJoined,
		m.moves,
		m.gamesFinished,
		m.operationDuration,
	)

	return m
}

func (that *Metrics) IncGamesCreated() {
	that.gamesCreated.Inc()
}

func (that *Metrics) IncGamesJoined() {
	that.gamesJoined.Inc()
}

// ObserveMove - result is the move outcome, or "rejected" for a failed move.
func (that *Metrics) ObserveMove(result string) {
	that.moves.WithLabelValues(result).Inc()
}

func (that *Metrics) IncGamesFinished(outcome string) {
	that.gamesFinished.WithLabelValues(outcome).Inc()
}

func (that *Metrics) ObserveOperation(operation string, duration time.Duration) {
	that.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Handler - exposes the metrics gathered by gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
