package model

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/domain/snapshot"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/forest"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"
)

func testPair(id string) snapshot.Model {
	return snapshot.Model{
		Info: domain.SnapshotInfo{
			ID:             id,
			TrainedAt:      time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
			Accuracy:       0.9125,
			VocabularySize: 3,
			TreeCount:      2,
		},
		Vectorizer: vectorize.Snapshot{
			Config: vectorize.DefaultConfig(),
			Terms:  []string{"breaking", "news", "shocking"},
			IDF:    []float64{1.2, 1.0, 1.7},
		},
		Classifier: forest.Snapshot{
			Config:  forest.Config{NumTrees: 2, MaxDepth: 20, MinSamplesSplit: 5, MinSamplesLeaf: 2, Seed: 42},
			Classes: 2,
			Trees: [][]forest.Node{
				{
					{Feature: 1, Threshold: 0.5, Left: 1, Right: 2},
					{Feature: -1, Left: -1, Right: -1, Probs: []float64{0.8, 0.2}},
					{Feature: -1, Left: -1, Right: -1, Probs: []float64{0.1, 0.9}},
				},
				{
					{Feature: -1, Left: -1, Right: -1, Probs: []float64{0.3, 0.7}},
				},
			},
		},
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	want := testPair("01JFEX6AM3SNAPSHOT0000001")

	if err := repo.Save(context.Background(), want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, found, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected persisted pair to be found")
	}
	if !reflect.DeepEqual(got.Info, want.Info) {
		t.Errorf("info mismatch:\n got %+v\nwant %+v", got.Info, want.Info)
	}
	if !reflect.DeepEqual(got.Vectorizer, want.Vectorizer) {
		t.Errorf("vectorizer snapshot mismatch:\n got %+v\nwant %+v", got.Vectorizer, want.Vectorizer)
	}
	if !reflect.DeepEqual(got.Classifier, want.Classifier) {
		t.Errorf("classifier snapshot mismatch:\n got %+v\nwant %+v", got.Classifier, want.Classifier)
	}
}

func TestLoad_NothingPersisted(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, found, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false on an empty store")
	}
}

func TestLoad_PartialPairIsAbsent(t *testing.T) {
	for _, missing := range []string{vectorizerKey, classifierKey} {
		repo, ms := newTestRepo(t)
		if err := repo.Save(context.Background(), testPair("01JFEX6AM3SNAPSHOT0000001")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		delete(ms.blobs, missing)

		_, found, err := repo.Load(context.Background())
		if err != nil {
			t.Fatalf("missing %s: unexpected error: %v", missing, err)
		}
		if found {
			t.Errorf("missing %s: expected found=false", missing)
		}
	}
}

func TestLoad_CorruptArtifactIsAbsent(t *testing.T) {
	for _, corrupt := range []string{vectorizerKey, classifierKey} {
		repo, ms := newTestRepo(t)
		if err := repo.Save(context.Background(), testPair("01JFEX6AM3SNAPSHOT0000001")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ms.blobs[corrupt] = []byte("{not json")

		_, found, err := repo.Load(context.Background())
		if err != nil {
			t.Fatalf("corrupt %s: unexpected error: %v", corrupt, err)
		}
		if found {
			t.Errorf("corrupt %s: expected found=false", corrupt)
		}
	}
}

func TestLoad_SnapshotIDMismatchIsAbsent(t *testing.T) {
	repo, ms := newTestRepo(t)
	if err := repo.Save(context.Background(), testPair("01JFEX6AM3SNAPSHOT0000001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := testPair("01JFEX6AM3SNAPSHOT0000002")
	data, err := json.Marshal(vectorizerToDoc(other.Info, other.Vectorizer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms.blobs[vectorizerKey] = data

	_, found, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for artifacts from different runs")
	}
}

func TestLoad_UnsupportedVersionIsAbsent(t *testing.T) {
	repo, ms := newTestRepo(t)
	pair := testPair("01JFEX6AM3SNAPSHOT0000001")
	if err := repo.Save(context.Background(), pair); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := vectorizerToDoc(pair.Info, pair.Vectorizer)
	doc.Version = formatVersion + 1
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms.blobs[vectorizerKey] = data

	_, found, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for an unsupported format version")
	}
}

func TestLoad_StoreErrorPropagates(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}

	_, found, err := repo.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
	if found {
		t.Error("expected found=false on store failure")
	}
}

func TestSave_RequiresSnapshotID(t *testing.T) {
	repo, _ := newTestRepo(t)
	pair := testPair("")

	err := repo.Save(context.Background(), pair)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("expected ErrPersistence, got %v", err)
	}
}

func TestSave_FailedClassifierWriteRemovesVectorizer(t *testing.T) {
	repo, ms := newTestRepo(t)
	writeErr := errors.New("disk full")
	ms.putFn = func(_ context.Context, key string, data []byte) error {
		if key == classifierKey {
			return writeErr
		}
		ms.blobs[key] = data
		return nil
	}

	err := repo.Save(context.Background(), testPair("01JFEX6AM3SNAPSHOT0000001"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, writeErr) {
		t.Errorf("expected wrapped write error, got %v", err)
	}
	if _, present := ms.blobs[vectorizerKey]; present {
		t.Error("expected orphaned vectorizer artifact to be removed")
	}
}

func TestSave_FailedVectorizerWriteLeavesStoreUntouched(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.putFn = func(_ context.Context, _ string, _ []byte) error {
		return errors.New("read-only filesystem")
	}

	if err := repo.Save(context.Background(), testPair("01JFEX6AM3SNAPSHOT0000001")); err == nil {
		t.Fatal("expected error")
	}
	if len(ms.blobs) != 0 {
		t.Errorf("expected empty store, got %d blobs", len(ms.blobs))
	}
}
