// Package forest implements a random-forest classifier over sparse
// document vectors. Each tree is grown on a bootstrap resample with a
// random feature subset per split; prediction is a majority vote, and
// class probabilities are the fraction of trees voting for each class.
// Training is deterministic for a fixed seed: the parent RNG hands a
// derived seed to every tree in order, and trees are grown sequentially.
package forest

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"
)

// Config bounds ensemble growth.
type Config struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Seed            int64
}

// DefaultConfig returns the standard ensemble settings.
func DefaultConfig() Config {
	return Config{
		NumTrees:        100,
		MaxDepth:        20,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  2,
		Seed:            42,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.NumTrees <= 0 {
		c.NumTrees = def.NumTrees
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = def.MaxDepth
	}
	if c.MinSamplesSplit < 2 {
		c.MinSamplesSplit = def.MinSamplesSplit
	}
	if c.MinSamplesLeaf < 1 {
		c.MinSamplesLeaf = def.MinSamplesLeaf
	}
	return c
}

// Forest is the trained ensemble. Not safe for concurrent fitting; a
// fitted forest is immutable and safe for concurrent prediction.
type Forest struct {
	cfg     Config
	classes int
	trees   []tree
	fitted  bool
}

// New creates an unfitted forest. Zero or out-of-range config fields
// fall back to defaults.
func New(cfg Config) *Forest {
	return &Forest{cfg: cfg.withDefaults()}
}

// Fit trains the ensemble on vectors with integer class labels.
// Sample weights are class-balanced: each class contributes equally to
// split decisions regardless of its share of the corpus. Every class up
// to the highest label must be present.
func (f *Forest) Fit(samples []vectorize.Vector, labels []int) error {
	if len(samples) == 0 {
		return fmt.Errorf("%w: no training vectors", domain.ErrTrainingData)
	}
	if len(samples) != len(labels) {
		return fmt.Errorf("%w: %d vectors but %d labels", domain.ErrTrainingData, len(samples), len(labels))
	}

	classes := 2
	for _, l := range labels {
		if l < 0 {
			return fmt.Errorf("%w: negative label %d", domain.ErrTrainingData, l)
		}
		if l+1 > classes {
			classes = l + 1
		}
	}
	counts := make([]int, classes)
	for _, l := range labels {
		counts[l]++
	}
	for c, count := range counts {
		if count == 0 {
			return fmt.Errorf("%w: class %d has no samples", domain.ErrTrainingData, c)
		}
	}

	nFeatures := samples[0].Dim
	for i, s := range samples {
		if s.Dim != nFeatures {
			return fmt.Errorf("%w: vector %d has dim %d, expected %d", domain.ErrTrainingData, i, s.Dim, nFeatures)
		}
	}

	n := len(samples)
	weights := make([]float64, classes)
	for c := range weights {
		weights[c] = float64(n) / (float64(classes) * float64(counts[c]))
	}

	mtry := int(math.Sqrt(float64(nFeatures)))
	if mtry < 1 {
		mtry = 1
	}
	if mtry > nFeatures {
		mtry = nFeatures
	}

	parent := rand.New(rand.NewSource(f.cfg.Seed))
	b := newBuilder(f.cfg, samples, labels, weights, classes, nFeatures, mtry)
	trees := make([]tree, f.cfg.NumTrees)
	for t := range trees {
		rng := rand.New(rand.NewSource(parent.Int63()))
		boot := bootstrapSample(rng, n)
		trees[t] = tree{nodes: b.build(boot, rng)}
	}

	f.classes = classes
	f.trees = trees
	f.fitted = true
	return nil
}

// Predict returns the majority-vote label for one vector.
func (f *Forest) Predict(vec vectorize.Vector) (int, error) {
	probs, err := f.PredictProba(vec)
	if err != nil {
		return 0, err
	}
	return argmax(probs), nil
}

// PredictProba returns, per class, the fraction of trees voting for it.
func (f *Forest) PredictProba(vec vectorize.Vector) ([]float64, error) {
	if !f.fitted {
		return nil, domain.ErrNotFitted
	}
	votes := make([]float64, f.classes)
	for i := range f.trees {
		votes[f.trees[i].classify(vec)]++
	}
	total := float64(len(f.trees))
	for c := range votes {
		votes[c] /= total
	}
	return votes, nil
}

// Fitted reports whether Fit has completed.
func (f *Forest) Fitted() bool { return f.fitted }

// NumTrees returns the ensemble size, zero before fitting.
func (f *Forest) NumTrees() int { return len(f.trees) }

// Classes returns the number of classes seen during fitting.
func (f *Forest) Classes() int { return f.classes }

// Config returns the effective configuration.
func (f *Forest) Config() Config { return f.cfg }

func bootstrapSample(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(n)
	}
	return out
}
