package vectorize

import (
	"fmt"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
)

// Snapshot is the portable form of a fitted vectorizer: the effective
// configuration, the vocabulary terms in index order, and the aligned
// inverse-document-frequency values.
type Snapshot struct {
	Config Config
	Terms  []string
	IDF    []float64
}

// Snapshot exports the fitted state for persistence.
func (v *Vectorizer) Snapshot() (Snapshot, error) {
	if !v.fitted {
		return Snapshot{}, domain.ErrNotFitted
	}
	terms := make([]string, len(v.idf))
	for term, idx := range v.vocab {
		terms[idx] = term
	}
	idf := make([]float64, len(v.idf))
	copy(idf, v.idf)
	return Snapshot{Config: v.cfg, Terms: terms, IDF: idf}, nil
}

// FromSnapshot rebuilds a fitted vectorizer from persisted state.
func FromSnapshot(s Snapshot) (*Vectorizer, error) {
	if len(s.Terms) == 0 {
		return nil, fmt.Errorf("vectorizer snapshot: empty vocabulary")
	}
	if len(s.Terms) != len(s.IDF) {
		return nil, fmt.Errorf("vectorizer snapshot: %d terms but %d idf values", len(s.Terms), len(s.IDF))
	}
	vocab := make(map[string]int, len(s.Terms))
	for i, term := range s.Terms {
		if _, dup := vocab[term]; dup {
			return nil, fmt.Errorf("vectorizer snapshot: duplicate term %q", term)
		}
		vocab[term] = i
	}
	idf := make([]float64, len(s.IDF))
	copy(idf, s.IDF)
	return &Vectorizer{
		cfg:    s.Config.withDefaults(),
		vocab:  vocab,
		idf:    idf,
		fitted: true,
	}, nil
}
