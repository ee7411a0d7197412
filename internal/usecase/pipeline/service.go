// Package pipeline orchestrates the classification core: corpus
// assembly, training, prediction, and the lifecycle of the active
// model. The trained pair is published as one immutable value behind an
// atomic pointer, so a concurrent prediction always sees a vectorizer
// and classifier from the same training run, and a failed retrain
// leaves the previous pair serving.
package pipeline

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/corpus"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain/snapshot"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/features"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/forest"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/metrics"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/textnorm"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"
)

// State identifies the orchestrator lifecycle phase.
type State string

const (
	// StateUntrained means no model has been trained or restored yet.
	StateUntrained State = "untrained"
	// StateTraining means a training run is underway.
	StateTraining State = "training"
	// StateReady means a trained model is published and serving.
	StateReady State = "ready"
)

// Status reports the lifecycle phase and, when a model is published,
// its metadata.
type Status struct {
	State   State
	Trained bool
	Info    *domain.SnapshotInfo
}

// Config carries the training knobs.
type Config struct {
	Vectorizer vectorize.Config
	Classifier forest.Config
	TrainRatio float64
	SplitSeed  int64
}

// DefaultConfig returns the stock training configuration.
func DefaultConfig() Config {
	return Config{
		Vectorizer: vectorize.DefaultConfig(),
		Classifier: forest.DefaultConfig(),
		TrainRatio: 0.8,
		SplitSeed:  42,
	}
}

func (c Config) withDefaults() Config {
	if c.TrainRatio <= 0 || c.TrainRatio >= 1 {
		c.TrainRatio = 0.8
	}
	if c.SplitSeed == 0 {
		c.SplitSeed = 42
	}
	return c
}

// trainedModel is one immutable published pair plus its metadata.
// Predictions reach it through a single atomic load, so they never
// observe halves from different training runs.
type trainedModel struct {
	info domain.SnapshotInfo
	vec  *vectorize.Vectorizer
	cls  *forest.Forest
}

// Service implements the orchestrator state machine.
type Service struct {
	cfg     Config
	loader  CorpusLoader
	store   ModelStore
	norm    *textnorm.Normalizer
	logger  *zap.Logger
	entropy *ulid.MonotonicEntropy

	active   atomic.Pointer[trainedModel]
	trainMu  sync.Mutex
	training atomic.Bool
}

// New creates a pipeline service.
func New(cfg Config, loader CorpusLoader, store ModelStore, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg.withDefaults(),
		loader:  loader,
		store:   store,
		norm:    textnorm.New(),
		logger:  logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Train assembles the corpus, fits a fresh vectorizer/classifier pair,
// evaluates it on the held-out split, persists it, and only then
// publishes it. A failed run leaves the previously published model
// serving. Returns the held-out accuracy.
func (s *Service) Train(ctx context.Context) (float64, error) {
	if !s.trainMu.TryLock() {
		return 0, domain.ErrTrainingInProgress
	}
	defer s.trainMu.Unlock()

	s.training.Store(true)
	defer s.training.Store(false)

	started := time.Now()
	accuracy, err := s.train(ctx, started)
	if err != nil {
		metrics.TrainingRunsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Training failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(started)))
		return 0, err
	}
	metrics.TrainingRunsTotal.WithLabelValues("ok").Inc()
	metrics.TrainingDuration.Observe(time.Since(started).Seconds())
	return accuracy, nil
}

func (s *Service) train(ctx context.Context, started time.Time) (float64, error) {
	raw, synthesized, err := s.loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("assemble corpus: %w", err)
	}

	deduped := corpus.Dedupe(raw)
	cleaned := make([]domain.Sample, 0, len(deduped))
	for _, smp := range deduped {
		normalized := s.norm.Normalize(smp.Text)
		if normalized == "" {
			continue
		}
		cleaned = append(cleaned, domain.Sample{Text: normalized, Label: smp.Label})
	}
	if len(cleaned) == 0 {
		return 0, fmt.Errorf("%w: corpus is empty after cleaning", domain.ErrTrainingData)
	}

	split, err := corpus.StratifiedSplit(cleaned, s.cfg.TrainRatio, s.cfg.SplitSeed)
	if err != nil {
		return 0, fmt.Errorf("split corpus: %w", err)
	}
	trainDocs, trainLabels := unzip(split.Train)
	testDocs, testLabels := unzip(split.Test)

	vec := vectorize.New(s.cfg.Vectorizer)
	if err := vec.Fit(trainDocs); err != nil {
		return 0, fmt.Errorf("fit vectorizer: %w", err)
	}
	trainVecs, err := vec.Transform(trainDocs)
	if err != nil {
		return 0, fmt.Errorf("transform training split: %w", err)
	}

	cls := forest.New(s.cfg.Classifier)
	if err := cls.Fit(trainVecs, trainLabels); err != nil {
		return 0, fmt.Errorf("fit classifier: %w", err)
	}

	testVecs, err := vec.Transform(testDocs)
	if err != nil {
		return 0, fmt.Errorf("transform evaluation split: %w", err)
	}
	accuracy, err := evaluate(cls, testVecs, testLabels)
	if err != nil {
		return 0, fmt.Errorf("evaluate: %w", err)
	}

	info := domain.SnapshotInfo{
		ID:             ulid.MustNew(ulid.Now(), s.entropy).String(),
		TrainedAt:      time.Now().UTC(),
		Accuracy:       accuracy,
		VocabularySize: vec.Dimension(),
		TreeCount:      cls.NumTrees(),
	}
	vecSnap, err := vec.Snapshot()
	if err != nil {
		return 0, fmt.Errorf("snapshot vectorizer: %w", err)
	}
	clsSnap, err := cls.Snapshot()
	if err != nil {
		return 0, fmt.Errorf("snapshot classifier: %w", err)
	}
	if err := s.store.Save(ctx, snapshot.Model{Info: info, Vectorizer: vecSnap, Classifier: clsSnap}); err != nil {
		return 0, fmt.Errorf("persist model: %w", err)
	}

	s.publish(&trainedModel{info: info, vec: vec, cls: cls})

	s.logger.Info("Training completed",
		zap.String("snapshot_id", info.ID),
		zap.Float64("accuracy", accuracy),
		zap.Int("samples", len(cleaned)),
		zap.Int("train_samples", len(split.Train)),
		zap.Int("test_samples", len(split.Test)),
		zap.Int("vocabulary_size", info.VocabularySize),
		zap.Bool("synthesized_corpus", synthesized),
		zap.Duration("duration", time.Since(started)))
	return accuracy, nil
}

// Predict classifies one document against the active model. The raw
// text also runs through the linguistic feature extractor; those
// figures are reported alongside the verdict, they do not feed the
// classifier.
func (s *Service) Predict(_ context.Context, text string) (domain.Prediction, error) {
	m := s.active.Load()
	if m == nil {
		return domain.Prediction{}, domain.ErrNotTrained
	}

	normalized := s.norm.Normalize(text)
	if normalized == "" {
		return domain.Prediction{}, domain.ErrEmptyInput
	}

	v, err := m.vec.TransformOne(normalized)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("vectorize input: %w", err)
	}
	probs, err := m.cls.PredictProba(v)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("classify input: %w", err)
	}
	if len(probs) != domain.NumLabels {
		return domain.Prediction{}, fmt.Errorf("classifier produced %d class probabilities, expected %d", len(probs), domain.NumLabels)
	}

	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	label := domain.Label(best)

	pred := domain.Prediction{
		Label:      label,
		Confidence: domain.Round2(probs[label] * 100),
		Probabilities: map[string]float64{
			domain.Fabricated.Key(): domain.Round2(probs[domain.Fabricated] * 100),
			domain.Authentic.Key():  domain.Round2(probs[domain.Authentic] * 100),
		},
		Features:    features.Extract(text),
		PredictedAt: time.Now().UTC(),
	}

	metrics.PredictionsTotal.WithLabelValues(label.Key()).Inc()
	metrics.PredictionConfidence.Observe(pred.Confidence)
	return pred, nil
}

// Status reports the current lifecycle phase and active model metadata.
func (s *Service) Status(_ context.Context) Status {
	m := s.active.Load()
	st := Status{Trained: m != nil}
	switch {
	case s.training.Load():
		st.State = StateTraining
	case m != nil:
		st.State = StateReady
	default:
		st.State = StateUntrained
	}
	if m != nil {
		info := m.info
		st.Info = &info
	}
	return st
}

// ModelTrained reports whether a model is currently published.
func (s *Service) ModelTrained(_ context.Context) bool {
	return s.active.Load() != nil
}

// LoadPersisted restores the model pair from the store, if a complete
// one exists. An invalid or incompatible snapshot is ignored rather
// than fatal: the service simply starts untrained.
func (s *Service) LoadPersisted(ctx context.Context) (bool, error) {
	mdl, found, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load model: %w", err)
	}
	if !found {
		return false, nil
	}

	vec, err := vectorize.FromSnapshot(mdl.Vectorizer)
	if err != nil {
		s.logger.Warn("Ignoring persisted model: invalid vectorizer snapshot", zap.Error(err))
		return false, nil
	}
	cls, err := forest.FromSnapshot(mdl.Classifier)
	if err != nil {
		s.logger.Warn("Ignoring persisted model: invalid classifier snapshot", zap.Error(err))
		return false, nil
	}
	if cls.Classes() != domain.NumLabels {
		s.logger.Warn("Ignoring persisted model: unexpected class count",
			zap.Int("classes", cls.Classes()))
		return false, nil
	}

	s.publish(&trainedModel{info: mdl.Info, vec: vec, cls: cls})
	s.logger.Info("Restored persisted model",
		zap.String("snapshot_id", mdl.Info.ID),
		zap.Float64("accuracy", mdl.Info.Accuracy),
		zap.Int("vocabulary_size", mdl.Info.VocabularySize),
		zap.Int("trees", mdl.Info.TreeCount))
	return true, nil
}

func (s *Service) publish(m *trainedModel) {
	s.active.Store(m)
	metrics.ModelAccuracy.Set(m.info.Accuracy)
	metrics.VocabularySize.Set(float64(m.info.VocabularySize))
}

func evaluate(cls *forest.Forest, vecs []vectorize.Vector, labels []int) (float64, error) {
	if len(vecs) == 0 {
		return 0, fmt.Errorf("%w: empty evaluation split", domain.ErrTrainingData)
	}
	correct := 0
	for i, v := range vecs {
		pred, err := cls.Predict(v)
		if err != nil {
			return 0, err
		}
		if pred == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(vecs)), nil
}

func unzip(samples []domain.Sample) ([]string, []int) {
	docs := make([]string, len(samples))
	labels := make([]int, len(samples))
	for i, smp := range samples {
		docs[i] = smp.Text
		labels[i] = int(smp.Label)
	}
	return docs, labels
}
