package service

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// memo remembers successful loads per key. Concurrent callers of a key share
// one load, which is detached from their cancellation; each caller waits on
// its own context. Failed loads are not remembered.
type memo[T any] struct {
	mu    sync.RWMutex
	vals  map[string]T
	group singleflight.Group
}

func newMemo[T any]() *memo[T] {
	return &memo[T]{vals: make(map[string]T)}
}

func (m *memo[T]) get(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	m.mu.RLock()
	v, ok := m.vals[key]
	m.mu.RUnlock()
	if ok {
		return v, nil
	}

	ch := m.group.DoChan(key, func() (any, error) {
		m.mu.RLock()
		v, ok := m.vals[key]
		m.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return v, err
		}
		m.mu.Lock()
		m.vals[key] = v
		m.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
