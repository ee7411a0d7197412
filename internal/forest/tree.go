package forest

import "github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"

// Node is one position in a serialized decision tree. Internal nodes
// carry a split (Feature >= 0) and child offsets into the same slice;
// leaves carry Feature == -1 and the weighted class distribution seen
// during fitting. Children always sit at higher offsets than their
// parent, so every walk terminates.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Probs     []float64
}

// Leaf reports whether the node terminates a path.
func (n Node) Leaf() bool { return n.Feature < 0 }

type tree struct {
	nodes []Node
}

// classify walks the tree and returns the class with the highest
// weighted share at the reached leaf.
func (t *tree) classify(vec vectorize.Vector) int {
	i := 0
	for {
		n := t.nodes[i]
		if n.Leaf() {
			return argmax(n.Probs)
		}
		if vec.At(n.Feature) <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// argmax returns the index of the largest value, preferring the lowest
// index on ties.
func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}
