package health

import "context"

// StorePinger checks model artifact store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// ModelReporter reports whether a trained classifier is live.
type ModelReporter interface {
	ModelTrained(ctx context.Context) bool
}
