package model

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/artifact"
)

// memStore implements the consumer interface with an in-memory map and
// optional per-method overrides.
type memStore struct {
	blobs map[string][]byte
	putFn func(ctx context.Context, key string, data []byte) error
	getFn func(ctx context.Context, key string) ([]byte, error)
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) Put(ctx context.Context, key string, data []byte) error {
	if m.putFn != nil {
		return m.putFn(ctx, key, data)
	}
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	data, ok := m.blobs[key]
	if !ok {
		return nil, artifact.ErrNotFound
	}
	return data, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.blobs[key]
	return ok, nil
}

func newTestRepo(t *testing.T) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(ms, zap.NewNop()), ms
}
