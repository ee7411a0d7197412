package model

import (
	"time"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/forest"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"
)

// formatVersion guards against loading artifacts written by an
// incompatible build of the serializer.
const formatVersion = 1

// vectorizerDoc is the JSON envelope for the vectorizer half of a snapshot.
type vectorizerDoc struct {
	Version     int       `json:"version"`
	SnapshotID  string    `json:"snapshot_id"`
	TrainedAt   time.Time `json:"trained_at"`
	MaxFeatures int       `json:"max_features"`
	NGramMin    int       `json:"ngram_min"`
	NGramMax    int       `json:"ngram_max"`
	MinDocFreq  int       `json:"min_doc_freq"`
	MaxDocRatio float64   `json:"max_doc_ratio"`
	Terms       []string  `json:"terms"`
	IDF         []float64 `json:"idf"`
}

// classifierDoc is the JSON envelope for the classifier half of a snapshot.
type classifierDoc struct {
	Version         int         `json:"version"`
	SnapshotID      string      `json:"snapshot_id"`
	TrainedAt       time.Time   `json:"trained_at"`
	Accuracy        float64     `json:"accuracy"`
	NumTrees        int         `json:"num_trees"`
	MaxDepth        int         `json:"max_depth"`
	MinSamplesSplit int         `json:"min_samples_split"`
	MinSamplesLeaf  int         `json:"min_samples_leaf"`
	Seed            int64       `json:"seed"`
	Classes         int         `json:"classes"`
	Trees           [][]nodeRow `json:"trees"`
}

// nodeRow flattens one decision tree node. Probs is set on leaves only.
type nodeRow struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Probs     []float64 `json:"probs,omitempty"`
}

func vectorizerToDoc(info domain.SnapshotInfo, snap vectorize.Snapshot) vectorizerDoc {
	return vectorizerDoc{
		Version:     formatVersion,
		SnapshotID:  info.ID,
		TrainedAt:   info.TrainedAt,
		MaxFeatures: snap.Config.MaxFeatures,
		NGramMin:    snap.Config.NGramMin,
		NGramMax:    snap.Config.NGramMax,
		MinDocFreq:  snap.Config.MinDocFreq,
		MaxDocRatio: snap.Config.MaxDocRatio,
		Terms:       snap.Terms,
		IDF:         snap.IDF,
	}
}

func vectorizerFromDoc(doc vectorizerDoc) vectorize.Snapshot {
	return vectorize.Snapshot{
		Config: vectorize.Config{
			MaxFeatures: doc.MaxFeatures,
			NGramMin:    doc.NGramMin,
			NGramMax:    doc.NGramMax,
			MinDocFreq:  doc.MinDocFreq,
			MaxDocRatio: doc.MaxDocRatio,
		},
		Terms: doc.Terms,
		IDF:   doc.IDF,
	}
}

func classifierToDoc(info domain.SnapshotInfo, snap forest.Snapshot) classifierDoc {
	trees := make([][]nodeRow, len(snap.Trees))
	for t, nodes := range snap.Trees {
		rows := make([]nodeRow, len(nodes))
		for i, n := range nodes {
			rows[i] = nodeRow{
				Feature:   n.Feature,
				Threshold: n.Threshold,
				Left:      n.Left,
				Right:     n.Right,
				Probs:     n.Probs,
			}
		}
		trees[t] = rows
	}
	return classifierDoc{
		Version:         formatVersion,
		SnapshotID:      info.ID,
		TrainedAt:       info.TrainedAt,
		Accuracy:        info.Accuracy,
		NumTrees:        snap.Config.NumTrees,
		MaxDepth:        snap.Config.MaxDepth,
		MinSamplesSplit: snap.Config.MinSamplesSplit,
		MinSamplesLeaf:  snap.Config.MinSamplesLeaf,
		Seed:            snap.Config.Seed,
		Classes:         snap.Classes,
		Trees:           trees,
	}
}

func classifierFromDoc(doc classifierDoc) forest.Snapshot {
	trees := make([][]forest.Node, len(doc.Trees))
	for t, rows := range doc.Trees {
		nodes := make([]forest.Node, len(rows))
		for i, r := range rows {
			nodes[i] = forest.Node{
				Feature:   r.Feature,
				Threshold: r.Threshold,
				Left:      r.Left,
				Right:     r.Right,
				Probs:     r.Probs,
			}
		}
		trees[t] = nodes
	}
	return forest.Snapshot{
		Config: forest.Config{
			NumTrees:        doc.NumTrees,
			MaxDepth:        doc.MaxDepth,
			MinSamplesSplit: doc.MinSamplesSplit,
			MinSamplesLeaf:  doc.MinSamplesLeaf,
			Seed:            doc.Seed,
		},
		Classes: doc.Classes,
		Trees:   trees,
	}
}
