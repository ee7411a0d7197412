package forest

import (
	"math/rand"
	"sort"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"
)

// builder grows one decision tree over a bootstrap resample. Splits
// minimize weighted Gini impurity; at every internal node only a random
// subset of sqrt(featureCount) features is considered, which is what
// decorrelates the trees of the ensemble.
type builder struct {
	cfg       Config
	samples   []vectorize.Vector
	labels    []int
	weights   []float64 // per-class sample weight
	classes   int
	nFeatures int
	mtry      int
	rng       *rand.Rand

	nodes []Node

	// scratch, reused across nodes
	perm   []int
	order  []int
	vals   []float64
	leftW  []float64
	rightW []float64
}

func newBuilder(cfg Config, samples []vectorize.Vector, labels []int, weights []float64, classes, nFeatures, mtry int) *builder {
	b := &builder{
		cfg:       cfg,
		samples:   samples,
		labels:    labels,
		weights:   weights,
		classes:   classes,
		nFeatures: nFeatures,
		mtry:      mtry,
		perm:      make([]int, nFeatures),
		leftW:     make([]float64, classes),
		rightW:    make([]float64, classes),
	}
	for i := range b.perm {
		b.perm[i] = i
	}
	return b
}

// build grows a full tree from the given bootstrap indices and returns
// its node slice. Indices may repeat; each occurrence counts as one
// sample.
func (b *builder) build(indices []int, rng *rand.Rand) []Node {
	b.rng = rng
	b.nodes = b.nodes[:0]
	b.order = ensureInts(b.order, len(indices))
	b.vals = ensureFloats(b.vals, len(indices))
	b.grow(indices, 0)
	out := make([]Node, len(b.nodes))
	copy(out, b.nodes)
	return out
}

func (b *builder) grow(indices []int, depth int) int {
	if depth >= b.cfg.MaxDepth || len(indices) < b.cfg.MinSamplesSplit || b.pure(indices) {
		return b.leaf(indices)
	}
	feature, threshold, ok := b.bestSplit(indices)
	if !ok {
		return b.leaf(indices)
	}

	left, right := partition(indices, b.samples, feature, threshold)
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: feature, Threshold: threshold})
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id].Left = l
	b.nodes[id].Right = r
	return id
}

func (b *builder) leaf(indices []int) int {
	probs := make([]float64, b.classes)
	var total float64
	for _, i := range indices {
		c := b.labels[i]
		probs[c] += b.weights[c]
		total += b.weights[c]
	}
	if total > 0 {
		for c := range probs {
			probs[c] /= total
		}
	}
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1, Left: -1, Right: -1, Probs: probs})
	return id
}

func (b *builder) pure(indices []int) bool {
	first := b.labels[indices[0]]
	for _, i := range indices[1:] {
		if b.labels[i] != first {
			return false
		}
	}
	return true
}

// bestSplit evaluates a random feature subset and returns the split
// with the largest impurity decrease, if any strict decrease exists.
func (b *builder) bestSplit(indices []int) (int, float64, bool) {
	if b.nFeatures == 0 {
		return -1, 0, false
	}
	parentImp, totalW := b.nodeImpurity(indices)
	if totalW == 0 {
		return -1, 0, false
	}

	const minGain = 1e-12
	bestGain := minGain
	bestFeature, bestThreshold := -1, 0.0
	found := false

	for k := 0; k < b.mtry; k++ {
		j := k + b.rng.Intn(b.nFeatures-k)
		b.perm[k], b.perm[j] = b.perm[j], b.perm[k]
		f := b.perm[k]

		thr, gain, ok := b.scanFeature(indices, f, parentImp, totalW)
		if ok && gain > bestGain {
			bestGain = gain
			bestFeature = f
			bestThreshold = thr
			found = true
		}
	}
	return bestFeature, bestThreshold, found
}

// scanFeature sweeps the sorted sample values of one feature and
// evaluates every boundary between distinct values, honoring the
// minimum leaf size on both sides.
func (b *builder) scanFeature(indices []int, f int, parentImp, totalW float64) (float64, float64, bool) {
	n := len(indices)
	for pos := 0; pos < n; pos++ {
		b.order[pos] = pos
		b.vals[pos] = b.samples[indices[pos]].At(f)
	}
	order := b.order[:n]
	vals := b.vals[:n]
	sort.Slice(order, func(i, j int) bool { return vals[order[i]] < vals[order[j]] })

	for c := 0; c < b.classes; c++ {
		b.leftW[c] = 0
		b.rightW[c] = 0
	}
	var rightTotal float64
	for _, i := range indices {
		c := b.labels[i]
		b.rightW[c] += b.weights[c]
		rightTotal += b.weights[c]
	}

	var (
		leftTotal     float64
		leftN         int
		bestGain      float64
		bestThreshold float64
		found         bool
	)
	for pos := 0; pos < n-1; pos++ {
		c := b.labels[indices[order[pos]]]
		w := b.weights[c]
		b.leftW[c] += w
		b.rightW[c] -= w
		leftTotal += w
		rightTotal -= w
		leftN++

		v, next := vals[order[pos]], vals[order[pos+1]]
		if next <= v {
			continue
		}
		if leftN < b.cfg.MinSamplesLeaf || n-leftN < b.cfg.MinSamplesLeaf {
			continue
		}

		childImp := (leftTotal*gini(b.leftW, leftTotal) + rightTotal*gini(b.rightW, rightTotal)) / totalW
		gain := parentImp - childImp
		if !found || gain > bestGain {
			bestGain = gain
			bestThreshold = (v + next) / 2
			found = true
		}
	}
	return bestThreshold, bestGain, found
}

func (b *builder) nodeImpurity(indices []int) (float64, float64) {
	for c := 0; c < b.classes; c++ {
		b.leftW[c] = 0
	}
	var total float64
	for _, i := range indices {
		c := b.labels[i]
		b.leftW[c] += b.weights[c]
		total += b.weights[c]
	}
	return gini(b.leftW, total), total
}

func gini(classWeights []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, w := range classWeights {
		p := w / total
		g -= p * p
	}
	return g
}

func partition(indices []int, samples []vectorize.Vector, feature int, threshold float64) ([]int, []int) {
	left := make([]int, 0, len(indices))
	right := make([]int, 0, len(indices))
	for _, i := range indices {
		if samples[i].At(feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func ensureInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

func ensureFloats(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
