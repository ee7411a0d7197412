package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockStorePinger struct {
	err error
}

func (m *mockStorePinger) Ping(_ context.Context) error { return m.err }

type mockModelReporter struct {
	trained bool
}

func (m *mockModelReporter) ModelTrained(_ context.Context) bool { return m.trained }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockModelReporter{trained: true})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["artifact_store"] != CheckOK {
		t.Errorf("expected artifact_store %q, got %q", CheckOK, r.Checks["artifact_store"])
	}
	if !r.ModelTrained {
		t.Error("expected model to report trained")
	}
}

func TestCheck_StoreError(t *testing.T) {
	svc := New(&mockStorePinger{err: errors.New("conn refused")}, &mockModelReporter{trained: true})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["artifact_store"] != CheckError {
		t.Errorf("expected artifact_store %q, got %q", CheckError, r.Checks["artifact_store"])
	}
	if !r.ModelTrained {
		t.Error("a store outage should not hide the live model")
	}
}

func TestCheck_UntrainedIsStillHealthy(t *testing.T) {
	svc := New(&mockStorePinger{}, &mockModelReporter{trained: false})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.ModelTrained {
		t.Error("expected model to report untrained")
	}
}

func TestCheck_NoStore(t *testing.T) {
	svc := New(nil, &mockModelReporter{trained: true})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["artifact_store"]; ok {
		t.Error("artifact_store check should be absent when store is nil")
	}
	if !r.ModelTrained {
		t.Error("expected model to report trained")
	}
}
