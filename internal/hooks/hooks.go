// Package hooks holds the callbacks plugins register during generation.
//
// Two ordered lists exist: per-plugin callbacks (OnInvokeDone) and global
// callbacks (OnAnyInvokeDone). The creation workflow drains them after
// generation completes, in insertion order, one at a time.
package hooks

import (
	"context"
	"fmt"
)

// Callback runs after generation. A returned error aborts the remaining
// callbacks and the creation run.
type Callback func(ctx context.Context) error

// Registry collects callbacks during plugin invocation. It is owned by a
// single creation run and is not safe for concurrent use; plugins append
// through the two On* methods only.
type Registry struct {
	afterInvoke    []Callback
	afterAnyInvoke []Callback
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// OnInvokeDone appends a callback to run after the registering plugin's
// generation completed.
func (r *Registry) OnInvokeDone(cb Callback) {
	if cb == nil {
		return
	}
	r.afterInvoke = append(r.afterInvoke, cb)
}

// OnAnyInvokeDone appends a callback to run after all plugins completed.
// These run after every OnInvokeDone callback.
func (r *Registry) OnAnyInvokeDone(cb Callback) {
	if cb == nil {
		return
	}
	r.afterAnyInvoke = append(r.afterAnyInvoke, cb)
}

// Len returns the total number of registered callbacks.
func (r *Registry) Len() int {
	return len(r.afterInvoke) + len(r.afterAnyInvoke)
}

// RunAll drains both lists: every OnInvokeDone callback in insertion
// order, then every OnAnyInvokeDone callback in insertion order. Each
// callback runs to completion before the next starts. The first failure
// stops the drain and is returned.
func (r *Registry) RunAll(ctx context.Context) error {
	for i, cb := range r.afterInvoke {
		if err := cb(ctx); err != nil {
			return fmt.Errorf("after-invoke hook %d failed: %w", i, err)
		}
	}
	for i, cb := range r.afterAnyInvoke {
		if err := cb(ctx); err != nil {
			return fmt.Errorf("after-any-invoke hook %d failed: %w", i, err)
		}
	}
	return nil
}
