package client

import (
	"errors"
	"sync/atomic"
)

// ErrStale is returned for a response that was overtaken by a newer request.
var ErrStale = errors.New("stale response")

// Latest hands out request generations. Only the result of the newest
// request is accepted; older ones resolve to ErrStale.
type Latest struct {
	gen atomic.Uint64
}

func (l *Latest) Begin() uint64 {
	return l.gen.Add(1)
}

func (l *Latest) IsCurrent(token uint64) bool {
	return l.gen.Load() == token
}

// Do runs fn under a new generation.
func Do[T any](l *Latest, fn func() (T, error)) (T, error) {
	token := l.Begin()
	v, err := fn()
	if !l.IsCurrent(token) {
		var zero T
		return zero, ErrStale
	}
	return v, err
}
