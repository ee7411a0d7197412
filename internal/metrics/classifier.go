package metrics

import "github.com/prometheus/client_golang/prometheus"

// Classifier Prometheus metrics.
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fna",
			Name:      "predictions_total",
			Help:      "Total number of predictions served",
		},
		[]string{"label"},
	)

	PredictionConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fna",
			Name:      "prediction_confidence_percent",
			Help:      "Confidence of served predictions in percent",
			Buckets:   []float64{50, 60, 70, 80, 90, 95, 99},
		},
	)

	TrainingRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fna",
			Name:      "training_runs_total",
			Help:      "Total number of training runs",
		},
		[]string{"result"}, // "ok" / "error"
	)

	TrainingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fna",
			Name:      "training_duration_seconds",
			Help:      "Model training duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	ModelAccuracy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fna",
			Name:      "model_accuracy",
			Help:      "Held-out accuracy of the active model",
		},
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fna",
			Name:      "vocabulary_size",
			Help:      "Vocabulary size of the active model",
		},
	)

	FetchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fna",
			Name:      "fetch_requests_total",
			Help:      "Total number of article fetch attempts",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var classifierMetricsRegistered bool

// RegisterClassifierMetrics registers Prometheus classifier metrics. Must be called once from main.
func RegisterClassifierMetrics() {
	if classifierMetricsRegistered {
		return
	}
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(PredictionConfidence)
	prometheus.MustRegister(TrainingRunsTotal)
	prometheus.MustRegister(TrainingDuration)
	prometheus.MustRegister(ModelAccuracy)
	prometheus.MustRegister(VocabularySize)
	prometheus.MustRegister(FetchRequestsTotal)
	classifierMetricsRegistered = true
}
