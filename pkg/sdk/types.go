package analyzer

import (
	"time"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	pipelineuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/pipeline"
)

// Verdict is the classification outcome for one document.
type Verdict struct {
	Prediction    string             // "FABRICATED" or "AUTHENTIC"
	Label         int                // 0 fabricated, 1 authentic
	Confidence    float64            // winning class probability in percent
	Probabilities map[string]float64 // class key -> probability in percent
	Features      TextFeatures
	PredictedAt   time.Time
}

// TextFeatures are surface statistics of the raw text, computed before
// cleaning. They accompany a verdict for display and auditing.
type TextFeatures struct {
	CharCount        int
	WordCount        int
	AvgWordLength    float64
	ExclamationCount int
	QuestionCount    int
	CapitalRatio     float64
	SensationalCount int
	EmotionalCount   int
}

// ModelState is the lifecycle phase of the serving model.
type ModelState string

// Model state constants.
const (
	StateUntrained ModelState = "untrained"
	StateTraining  ModelState = "training"
	StateReady     ModelState = "ready"
)

// SnapshotInfo describes the currently serving trained model.
type SnapshotInfo struct {
	ID             string
	TrainedAt      time.Time
	Accuracy       float64
	VocabularySize int
	TreeCount      int
}

// Status reports the model lifecycle phase and serving snapshot.
// Snapshot is nil until a model is trained or restored.
type Status struct {
	State    ModelState
	Trained  bool
	Snapshot *SnapshotInfo
}

func verdictFromDomain(p domain.Prediction) Verdict {
	probs := make(map[string]float64, len(p.Probabilities))
	for k, v := range p.Probabilities {
		probs[k] = v
	}
	return Verdict{
		Prediction:    p.Label.String(),
		Label:         int(p.Label),
		Confidence:    p.Confidence,
		Probabilities: probs,
		Features: TextFeatures{
			CharCount:        p.Features.CharCount,
			WordCount:        p.Features.WordCount,
			AvgWordLength:    p.Features.AvgWordLength,
			ExclamationCount: p.Features.ExclamationCount,
			QuestionCount:    p.Features.QuestionCount,
			CapitalRatio:     p.Features.CapitalRatio,
			SensationalCount: p.Features.SensationalCount,
			EmotionalCount:   p.Features.EmotionalCount,
		},
		PredictedAt: p.PredictedAt,
	}
}

func statusFromDomain(st pipelineuc.Status) Status {
	out := Status{State: ModelState(st.State), Trained: st.Trained}
	if st.Info != nil {
		out.Snapshot = &SnapshotInfo{
			ID:             st.Info.ID,
			TrainedAt:      st.Info.TrainedAt,
			Accuracy:       st.Info.Accuracy,
			VocabularySize: st.Info.VocabularySize,
			TreeCount:      st.Info.TreeCount,
		}
	}
	return out
}
