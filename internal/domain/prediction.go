package domain

import (
	"math"
	"time"
)

// Prediction is the outcome of classifying one document. It carries the
// predicted label, the confidence in that label (probability of the
// predicted class in percent, two decimals), the full per-class breakdown,
// and the auxiliary text statistics. Built per request, never stored.
type Prediction struct {
	Label         Label
	Confidence    float64
	Probabilities map[string]float64 // label key -> probability in percent
	Features      TextStats
	PredictedAt   time.Time
}

// SnapshotInfo describes the currently published trained model pair.
type SnapshotInfo struct {
	ID             string
	TrainedAt      time.Time
	Accuracy       float64
	VocabularySize int
	TreeCount      int
}

// Round2 rounds a probability-like value to two decimals. Confidence and
// per-class percentages in outward results use this rounding.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
