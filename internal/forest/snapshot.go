package forest

import (
	"fmt"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
)

// Snapshot is the portable form of a fitted forest: the effective
// configuration, the class count, and every tree as a flat node slice.
type Snapshot struct {
	Config  Config
	Classes int
	Trees   [][]Node
}

// Snapshot exports the fitted state for persistence.
func (f *Forest) Snapshot() (Snapshot, error) {
	if !f.fitted {
		return Snapshot{}, domain.ErrNotFitted
	}
	trees := make([][]Node, len(f.trees))
	for t := range f.trees {
		trees[t] = copyNodes(f.trees[t].nodes)
	}
	return Snapshot{Config: f.cfg, Classes: f.classes, Trees: trees}, nil
}

// FromSnapshot rebuilds a fitted forest from persisted state. Tree
// structure is checked before acceptance: children must sit after their
// parent so walks terminate, and every leaf must carry a distribution
// over all classes.
func FromSnapshot(s Snapshot) (*Forest, error) {
	if s.Classes < 2 {
		return nil, fmt.Errorf("forest snapshot: %d classes, need at least 2", s.Classes)
	}
	if len(s.Trees) == 0 {
		return nil, fmt.Errorf("forest snapshot: no trees")
	}

	trees := make([]tree, len(s.Trees))
	for t, nodes := range s.Trees {
		if len(nodes) == 0 {
			return nil, fmt.Errorf("forest snapshot: tree %d is empty", t)
		}
		for i, n := range nodes {
			if n.Leaf() {
				if len(n.Probs) != s.Classes {
					return nil, fmt.Errorf("forest snapshot: tree %d node %d has %d class probabilities, expected %d", t, i, len(n.Probs), s.Classes)
				}
				continue
			}
			if n.Left <= i || n.Left >= len(nodes) || n.Right <= i || n.Right >= len(nodes) {
				return nil, fmt.Errorf("forest snapshot: tree %d node %d has out-of-order children", t, i)
			}
		}
		trees[t] = tree{nodes: copyNodes(nodes)}
	}

	return &Forest{
		cfg:     s.Config.withDefaults(),
		classes: s.Classes,
		trees:   trees,
		fitted:  true,
	}, nil
}

func copyNodes(in []Node) []Node {
	out := make([]Node, len(in))
	for i, n := range in {
		out[i] = n
		if n.Probs != nil {
			out[i].Probs = make([]float64, len(n.Probs))
			copy(out[i].Probs, n.Probs)
		}
	}
	return out
}
