package cron

import (
	"context"
	"sync"
)

// Lock keeps job cycles from overlapping.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LocalLock is an in-process Lock. Workspaces live in process memory, so each
// replica reaps its own and no cross-replica lock is needed.
type LocalLock struct {
	mu sync.Mutex
}

// Acquire reports false when a cycle is already running.
func (l *LocalLock) Acquire(context.Context) (bool, error) {
	return l.mu.TryLock(), nil
}

func (l *LocalLock) Release(context.Context) error {
	l.mu.Unlock()
	return nil
}
