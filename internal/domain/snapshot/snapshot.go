// Package snapshot defines the portable form of a complete trained
// model: the vectorizer and classifier states plus the metadata stamped
// at training time. The two component snapshots share one ID and are
// only meaningful together.
package snapshot

import (
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/forest"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"
)

// Model bundles both trained components with training metadata.
type Model struct {
	Info       domain.SnapshotInfo
	Vectorizer vectorize.Snapshot
	Classifier forest.Snapshot
}
