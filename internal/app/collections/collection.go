// Package collections implements the client-side data-synchronization
// contract: each store owns one resource collection, refetches the whole
// collection after every successful mutation, and never updates it
// incrementally.
package collections

import (
	"context"
	"sync"

	"github.com/finki-emc/aas-client/internal/pkg/logger"
)

// ErrorMode decides what a store operation does with a repository failure
type ErrorMode int

const (
	// Swallow logs the failure and reports success to the caller
	Swallow ErrorMode = iota
	// Propagate logs the failure and returns it to the caller
	Propagate
)

// ListFunc fetches the full collection from the backend
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// Collection holds one resource's list state. Instances are independent:
// two collections over the same resource fetch twice and hold two copies.
type Collection[T any] struct {
	name string
	list ListFunc[T]

	mu      sync.RWMutex
	items   []T
	loading bool
}

// NewCollection creates a collection in its initial {empty, loading} state.
// The caller triggers the mount fetch via Refresh.
func NewCollection[T any](name string, list ListFunc[T]) *Collection[T] {
	return &Collection[T]{
		name:    name,
		list:    list,
		loading: true,
	}
}

// Items returns a copy of the current collection
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether the collection has loaded at least once.
// A failed initial Refresh leaves this true indefinitely.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Len returns the current collection size
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Refresh re-reads the full collection. On success it replaces the items and
// clears the loading flag; on failure it logs and leaves state untouched.
// There is no in-flight guard: overlapping refreshes apply their results in
// response-arrival order, so the last response to arrive wins.
func (c *Collection[T]) Refresh(ctx context.Context) {
	items, err := c.list(ctx)
	if err != nil {
		logger.Error().Err(err).Str("collection", c.name).Msg("refresh failed")
		return
	}

	c.mu.Lock()
	c.items = items
	c.loading = false
	c.mu.Unlock()
}

// mutate runs the given call and, on success, resynchronizes via Refresh.
// There is no optimistic update; the refetched list is the only source of
// truth. Failures are handled according to mode.
func (c *Collection[T]) mutate(ctx context.Context, op string, mode ErrorMode, call func(ctx context.Context) error) error {
	if err := call(ctx); err != nil {
		return c.fail(op, mode, err)
	}

	logger.Debug().Str("collection", c.name).Str("op", op).Msg("mutation applied, resyncing")
	c.Refresh(ctx)
	return nil
}

// fail logs a repository failure and applies the operation's error mode
func (c *Collection[T]) fail(op string, mode ErrorMode, err error) error {
	logger.Error().Err(err).Str("collection", c.name).Str("op", op).Msg("operation failed")
	if mode == Propagate {
		return err
	}
	return nil
}
