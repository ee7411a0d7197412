package artifact

import "errors"

// ErrNotFound signals an absent blob.
var ErrNotFound = errors.New("artifact: not found")

// Op constants name store operations for error context.
const (
	OpPut    = "PUT"
	OpGet    = "GET"
	OpDelete = "DELETE"
	OpExists = "EXISTS"
	OpPing   = "PING"
)

// Error wraps an underlying error with the operation and key for diagnostics.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string { return e.Op + " " + e.Key + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
