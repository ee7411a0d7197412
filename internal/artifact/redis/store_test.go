package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/lost-boy7/Fake-News-Analyzer/internal/artifact"
)

// isStoreError is a test helper for checking wrapped artifact.Error.
func isStoreError(err error) bool {
	var aerr *artifact.Error
	return errors.As(err, &aerr)
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c, "fna:")
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "fna:")
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestPut_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "fna:model.json", "payload")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c, "fna:")
	if err := s.Put(context.Background(), "model.json", []byte("payload")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPut_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "fna:")
	err := s.Put(context.Background(), "model.json", []byte("payload"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !isStoreError(err) {
		t.Errorf("expected artifact.Error, got %T", err)
	}
}

func TestGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "fna:model.json")).
		Return(mock.Result(mock.RedisString("payload")))

	s := NewStoreForTest(c, "fna:")
	data, err := s.Get(context.Background(), "model.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("expected 'payload', got %q", data)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "fna:model.json")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c, "fna:")
	_, err := s.Get(context.Background(), "model.json")
	if !errors.Is(err, artifact.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_NetworkError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "fna:model.json")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "fna:")
	_, err := s.Get(context.Background(), "model.json")
	if errors.Is(err, artifact.ErrNotFound) {
		t.Error("should not be ErrNotFound for network errors")
	}
	if !isStoreError(err) {
		t.Errorf("expected artifact.Error, got %T", err)
	}
}

func TestDelete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "fna:model.json")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c, "fna:")
	if err := s.Delete(context.Background(), "model.json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExists_True(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("EXISTS", "fna:model.json")).
		Return(mock.Result(mock.RedisInt64(1)))

	s := NewStoreForTest(c, "fna:")
	ok, err := s.Exists(context.Background(), "model.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected key to exist")
	}
}

func TestExists_False(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("EXISTS", "fna:model.json")).
		Return(mock.Result(mock.RedisInt64(0)))

	s := NewStoreForTest(c, "fna:")
	ok, err := s.Exists(context.Background(), "model.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected key to be absent")
	}
}

func TestExists_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("EXISTS", "fna:model.json")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "fna:")
	if _, err := s.Exists(context.Background(), "model.json"); err == nil {
		t.Fatal("expected error")
	}
}

func TestStore_NoPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "model.json")).
		Return(mock.Result(mock.RedisString("payload")))

	s := NewStoreForTest(c, "")
	if _, err := s.Get(context.Background(), "model.json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
