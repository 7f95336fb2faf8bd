package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lanelife.sim")

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lanelife_generations_total",
		Help: "Generations advanced, by kernel set",
	}, []string{"kernel"})

	updateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lanelife_update_duration_seconds",
		Help:    "Duration of a single generation update",
		Buckets: prometheus.ExponentialBuckets(0.000001, 4, 12),
	}, []string{"kernel"})

	boardsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lanelife_boards_total",
		Help: "Boards run to completion, by result",
	}, []string{"result"})

	lastPopulation = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lanelife_last_population",
		Help: "Population of the most recently finished board",
	})
)
