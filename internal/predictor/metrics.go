package predictor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scored",
			Subsystem: "predictor",
			Name:      "predictions_total",
			Help:      "Total prediction attempts by outcome",
		},
		[]string{"outcome"},
	)

	predictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scored",
			Subsystem: "predictor",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of successful predictions in seconds",
			Buckets:   []float64{.00005, .0001, .0005, .001, .005, .01, .05},
		},
	)

	artifactLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scored",
			Subsystem: "artifact",
			Name:      "loads_total",
			Help:      "Artifact load attempts by result",
		},
		[]string{"result"},
	)

	artifactLoadDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "scored",
			Subsystem: "artifact",
			Name:      "load_duration_seconds",
			Help:      "Duration of the artifact load in seconds",
		},
	)

	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scored",
			Subsystem: "predictor",
			Name:      "cache_lookups_total",
			Help:      "Prediction cache lookups by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, predictionDuration, artifactLoadsTotal, artifactLoadDuration, cacheLookupsTotal)
}

// outcome labels
const (
	outcomeOK         = "ok"
	outcomeInvalid    = "invalid"
	outcomeLoadError  = "load_error"
	outcomeModelError = "model_error"
)
