// Package vectorize turns normalized documents into TF-IDF weighted
// sparse vectors over a vocabulary learned once during fitting. The
// vocabulary is frozen after Fit: transforming a document with unseen
// terms never errors and never grows the index space.
package vectorize

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
)

// Config bounds vocabulary construction.
type Config struct {
	MaxFeatures int     // vocabulary size cap
	NGramMin    int     // shortest n-gram length
	NGramMax    int     // longest n-gram length
	MinDocFreq  int     // admit terms seen in at least this many documents
	MaxDocRatio float64 // drop terms seen in more than this share of documents
}

// DefaultConfig returns the standard vectorizer settings.
func DefaultConfig() Config {
	return Config{
		MaxFeatures: 5000,
		NGramMin:    1,
		NGramMax:    3,
		MinDocFreq:  2,
		MaxDocRatio: 0.9,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxFeatures <= 0 {
		c.MaxFeatures = def.MaxFeatures
	}
	if c.NGramMin <= 0 {
		c.NGramMin = def.NGramMin
	}
	if c.NGramMax < c.NGramMin {
		c.NGramMax = c.NGramMin
	}
	if c.MinDocFreq <= 0 {
		c.MinDocFreq = def.MinDocFreq
	}
	if c.MaxDocRatio <= 0 || c.MaxDocRatio > 1 {
		c.MaxDocRatio = def.MaxDocRatio
	}
	return c
}

// Vectorizer learns a term vocabulary with inverse-document-frequency
// statistics and produces unit-length sparse vectors. Not safe for
// concurrent fitting; a fitted vectorizer is immutable and safe for
// concurrent transforms.
type Vectorizer struct {
	cfg    Config
	vocab  map[string]int
	idf    []float64
	fitted bool
}

// New creates an unfitted vectorizer. Zero or out-of-range config
// fields fall back to defaults.
func New(cfg Config) *Vectorizer {
	return &Vectorizer{cfg: cfg.withDefaults()}
}

// Fit builds the vocabulary from normalized training documents.
// Admission requires a term to appear in at least MinDocFreq distinct
// documents and in at most MaxDocRatio of them. When more terms survive
// than MaxFeatures, the highest ranked by aggregate corpus weight
// (total occurrences times inverse document frequency) are kept, ties
// resolved lexicographically. Indices are assigned in sorted term order.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("%w: empty corpus", domain.ErrTrainingData)
	}

	df := make(map[string]int)
	totals := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.ngrams(doc) {
			totals[term]++
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	maxDF := v.cfg.MaxDocRatio * n
	admitted := make([]string, 0, len(df))
	for term, count := range df {
		if count < v.cfg.MinDocFreq {
			continue
		}
		if float64(count) > maxDF {
			continue
		}
		admitted = append(admitted, term)
	}
	if len(admitted) == 0 {
		return fmt.Errorf("%w: no terms admitted to vocabulary", domain.ErrTrainingData)
	}

	idfOf := func(term string) float64 {
		return math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	if len(admitted) > v.cfg.MaxFeatures {
		sort.Slice(admitted, func(i, j int) bool {
			si := float64(totals[admitted[i]]) * idfOf(admitted[i])
			sj := float64(totals[admitted[j]]) * idfOf(admitted[j])
			if si != sj {
				return si > sj
			}
			return admitted[i] < admitted[j]
		})
		admitted = admitted[:v.cfg.MaxFeatures]
	}
	sort.Strings(admitted)

	v.vocab = make(map[string]int, len(admitted))
	v.idf = make([]float64, len(admitted))
	for i, term := range admitted {
		v.vocab[term] = i
		v.idf[i] = idfOf(term)
	}
	v.fitted = true
	return nil
}

// Transform encodes normalized documents against the fitted vocabulary.
func (v *Vectorizer) Transform(docs []string) ([]Vector, error) {
	if !v.fitted {
		return nil, domain.ErrNotFitted
	}
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = v.transformOne(doc)
	}
	return out, nil
}

// TransformOne encodes a single normalized document.
func (v *Vectorizer) TransformOne(doc string) (Vector, error) {
	if !v.fitted {
		return Vector{}, domain.ErrNotFitted
	}
	return v.transformOne(doc), nil
}

func (v *Vectorizer) transformOne(doc string) Vector {
	counts := make(map[int]int)
	matched := 0
	for _, term := range v.ngrams(doc) {
		if idx, ok := v.vocab[term]; ok {
			counts[idx]++
			matched++
		}
	}

	vec := Vector{Dim: len(v.idf)}
	if matched == 0 {
		return vec
	}

	idxs := make([]int, 0, len(counts))
	for idx := range counts {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)

	vec.Indices = idxs
	vec.Values = make([]float64, len(idxs))
	var norm float64
	for k, idx := range idxs {
		w := float64(counts[idx]) / float64(matched) * v.idf[idx]
		vec.Values[k] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for k := range vec.Values {
			vec.Values[k] /= norm
		}
	}
	return vec
}

// ngrams expands a normalized document into all candidate terms. Terms
// of length above one join the underlying tokens with single spaces.
func (v *Vectorizer) ngrams(doc string) []string {
	tokens := strings.Fields(doc)
	if len(tokens) == 0 {
		return nil
	}
	var out []string
	for n := v.cfg.NGramMin; n <= v.cfg.NGramMax && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// Fitted reports whether Fit has completed.
func (v *Vectorizer) Fitted() bool { return v.fitted }

// Dimension returns the vocabulary size, zero before fitting.
func (v *Vectorizer) Dimension() int { return len(v.idf) }

// Config returns the effective configuration.
func (v *Vectorizer) Config() Config { return v.cfg }
