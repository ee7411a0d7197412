package corpus

import (
	"fmt"
	"math/rand"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
)

// Split is a train/test partition of the corpus.
type Split struct {
	Train []domain.Sample
	Test  []domain.Sample
}

// Dedupe drops samples whose text already occurred, keeping the first
// occurrence. Input order is preserved.
func Dedupe(samples []domain.Sample) []domain.Sample {
	seen := make(map[string]struct{}, len(samples))
	out := make([]domain.Sample, 0, len(samples))
	for _, s := range samples {
		if _, dup := seen[s.Text]; dup {
			continue
		}
		seen[s.Text] = struct{}{}
		out = append(out, s)
	}
	return out
}

// StratifiedSplit partitions samples so each class keeps the same train
// share. Shuffling is seeded, so the same corpus and seed always yield
// the same partition. Every class needs at least two samples so both
// sides of the split see it.
func StratifiedSplit(samples []domain.Sample, trainRatio float64, seed int64) (Split, error) {
	if trainRatio <= 0 || trainRatio >= 1 {
		return Split{}, fmt.Errorf("%w: train ratio %v outside (0, 1)", domain.ErrTrainingData, trainRatio)
	}

	byClass := make(map[domain.Label][]int)
	for i, s := range samples {
		if !s.Label.IsValid() {
			return Split{}, fmt.Errorf("%w: sample %d has invalid label %d", domain.ErrTrainingData, i, int(s.Label))
		}
		byClass[s.Label] = append(byClass[s.Label], i)
	}

	for label := domain.Label(0); int(label) < domain.NumLabels; label++ {
		if len(byClass[label]) < 2 {
			return Split{}, fmt.Errorf("%w: class %s has %d samples, need at least 2", domain.ErrTrainingData, label, len(byClass[label]))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	var split Split
	for label := domain.Label(0); int(label) < domain.NumLabels; label++ {
		idxs := byClass[label]
		rng.Shuffle(len(idxs), func(i, j int) {
			idxs[i], idxs[j] = idxs[j], idxs[i]
		})

		nTrain := int(trainRatio * float64(len(idxs)))
		if nTrain < 1 {
			nTrain = 1
		}
		if nTrain >= len(idxs) {
			nTrain = len(idxs) - 1
		}

		for _, i := range idxs[:nTrain] {
			split.Train = append(split.Train, samples[i])
		}
		for _, i := range idxs[nTrain:] {
			split.Test = append(split.Test, samples[i])
		}
	}
	return split, nil
}
