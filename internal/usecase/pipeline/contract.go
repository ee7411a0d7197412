package pipeline

import (
	"context"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain/snapshot"
)

// CorpusLoader assembles the raw labeled corpus, synthesizing the
// bootstrap fixture when the source files are absent.
type CorpusLoader interface {
	Load(ctx context.Context) (samples []domain.Sample, synthesized bool, err error)
}

// ModelStore persists and restores the trained pair as one unit.
type ModelStore interface {
	Save(ctx context.Context, m snapshot.Model) error
	Load(ctx context.Context) (snapshot.Model, bool, error)
}
