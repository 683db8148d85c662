package toast

import (
	"context"
	"errors"
)

// ErrOutsideProvider reports an attempt to reach the toast manager from a
// context that was never given one. It is a wiring mistake, not an empty
// queue.
var ErrOutsideProvider = errors.New("toast: manager requested outside provider scope")

type ctxKey struct{}

// WithManager scopes m to ctx and everything derived from it.
func WithManager(ctx context.Context, m *Model) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

// FromContext returns the manager scoped to ctx.
func FromContext(ctx context.Context) (*Model, error) {
	if ctx == nil {
		return nil, ErrOutsideProvider
	}
	m, ok := ctx.Value(ctxKey{}).(*Model)
	if !ok || m == nil {
		return nil, ErrOutsideProvider
	}
	return m, nil
}

// MustFromContext is FromContext for callers that treat a missing provider
// as a programming error.
func MustFromContext(ctx context.Context) *Model {
	m, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return m
}
