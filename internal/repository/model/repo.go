// Package model persists the trained vectorizer/classifier pair as two
// JSON artifacts bound by a shared snapshot ID. The pair is only ever
// usable whole: a load that finds one half missing, unreadable, or
// stamped with a different snapshot ID reports a clean absence rather
// than a partially restored model.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/artifact"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain/snapshot"
)

// Artifact keys within the store namespace.
const (
	vectorizerKey = "vectorizer.json"
	classifierKey = "classifier.json"
)

// store is the consumer interface for model persistence (ISP).
type store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Repo implements matched-pair model persistence over a blob store.
type Repo struct {
	store  store
	logger *zap.Logger
}

// New creates a model repository.
func New(s store, logger *zap.Logger) *Repo {
	return &Repo{store: s, logger: logger}
}

// Save writes both halves of the pair. The vectorizer artifact goes
// first; if the classifier write then fails, the freshly written
// vectorizer is removed so a later load sees a plain absence instead of
// two halves from different training runs.
func (r *Repo) Save(ctx context.Context, pair snapshot.Model) error {
	if pair.Info.ID == "" {
		return fmt.Errorf("save model: empty snapshot id: %w", domain.ErrPersistence)
	}

	vecData, err := json.Marshal(vectorizerToDoc(pair.Info, pair.Vectorizer))
	if err != nil {
		return fmt.Errorf("marshal vectorizer: %w: %w", domain.ErrPersistence, err)
	}
	clsData, err := json.Marshal(classifierToDoc(pair.Info, pair.Classifier))
	if err != nil {
		return fmt.Errorf("marshal classifier: %w: %w", domain.ErrPersistence, err)
	}

	replaced, err := r.store.Exists(ctx, classifierKey)
	if err != nil {
		return fmt.Errorf("check existing model: %w: %w", domain.ErrPersistence, err)
	}

	if err := r.store.Put(ctx, vectorizerKey, vecData); err != nil {
		return fmt.Errorf("put %s: %w: %w", vectorizerKey, domain.ErrPersistence, err)
	}
	if err := r.store.Put(ctx, classifierKey, clsData); err != nil {
		if delErr := r.store.Delete(ctx, vectorizerKey); delErr != nil {
			r.logger.Warn("Failed to remove orphaned vectorizer artifact",
				zap.String("key", vectorizerKey),
				zap.Error(delErr))
		}
		return fmt.Errorf("put %s: %w: %w", classifierKey, domain.ErrPersistence, err)
	}

	r.logger.Info("Model snapshot persisted",
		zap.String("snapshot_id", pair.Info.ID),
		zap.Bool("replaced", replaced),
		zap.Int("vectorizer_bytes", len(vecData)),
		zap.Int("classifier_bytes", len(clsData)))
	return nil
}

// Load reads the persisted pair. It returns found=false when no usable
// pair exists: both artifacts absent, one absent, either undecodable,
// a format version this build does not understand, or snapshot IDs
// that disagree. Only live store failures are reported as errors.
func (r *Repo) Load(ctx context.Context) (snapshot.Model, bool, error) {
	vecData, vecOK, err := r.fetch(ctx, vectorizerKey)
	if err != nil {
		return snapshot.Model{}, false, err
	}
	clsData, clsOK, err := r.fetch(ctx, classifierKey)
	if err != nil {
		return snapshot.Model{}, false, err
	}

	if !vecOK && !clsOK {
		return snapshot.Model{}, false, nil
	}
	if vecOK != clsOK {
		r.logger.Warn("Ignoring persisted model: artifact pair incomplete",
			zap.Bool("vectorizer_present", vecOK),
			zap.Bool("classifier_present", clsOK))
		return snapshot.Model{}, false, nil
	}

	var vecDoc vectorizerDoc
	if err := json.Unmarshal(vecData, &vecDoc); err != nil {
		r.logger.Warn("Ignoring persisted model: vectorizer artifact undecodable", zap.Error(err))
		return snapshot.Model{}, false, nil
	}
	var clsDoc classifierDoc
	if err := json.Unmarshal(clsData, &clsDoc); err != nil {
		r.logger.Warn("Ignoring persisted model: classifier artifact undecodable", zap.Error(err))
		return snapshot.Model{}, false, nil
	}

	if vecDoc.Version != formatVersion || clsDoc.Version != formatVersion {
		r.logger.Warn("Ignoring persisted model: unsupported format version",
			zap.Int("vectorizer_version", vecDoc.Version),
			zap.Int("classifier_version", clsDoc.Version),
			zap.Int("supported", formatVersion))
		return snapshot.Model{}, false, nil
	}
	if vecDoc.SnapshotID == "" || vecDoc.SnapshotID != clsDoc.SnapshotID {
		r.logger.Warn("Ignoring persisted model: artifacts from different training runs",
			zap.String("vectorizer_snapshot", vecDoc.SnapshotID),
			zap.String("classifier_snapshot", clsDoc.SnapshotID))
		return snapshot.Model{}, false, nil
	}

	pair := snapshot.Model{
		Info: domain.SnapshotInfo{
			ID:             clsDoc.SnapshotID,
			TrainedAt:      clsDoc.TrainedAt,
			Accuracy:       clsDoc.Accuracy,
			VocabularySize: len(vecDoc.Terms),
			TreeCount:      len(clsDoc.Trees),
		},
		Vectorizer: vectorizerFromDoc(vecDoc),
		Classifier: classifierFromDoc(clsDoc),
	}
	return pair, true, nil
}

// fetch reads one artifact, mapping absence to ok=false.
func (r *Repo) fetch(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w: %w", key, domain.ErrPersistence, err)
	}
	return data, true, nil
}
