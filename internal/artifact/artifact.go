// Package artifact abstracts the durable blob storage behind model
// persistence. Two drivers exist: a filesystem store for single-node
// deployments and a Redis store for shared ones. Consumers depend on
// the Store interface and never on a concrete driver.
package artifact

import (
	"context"
	"time"
)

// Store is the blob store facade.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}
