// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// coordinator.go - Execution coordination: which goroutine runs parsing
// and handler execution. The default runs everything on the caller's
// goroutine; the async coordinator hands the work to a bounded pool so a
// host's main loop is never blocked by a slow parser or handler.
package command

import "context"

// Coordinator runs one invocation's parse/execute work and delivers its
// result on the returned channel. Cancellation is cooperative: a caller
// that stops waiting simply discards the result; running work is never
// force-terminated.
type Coordinator interface {
	Run(ctx context.Context, task func() error) <-chan error
}

// =============================================================================
// SYNCHRONOUS
// =============================================================================

// SyncCoordinator runs the task inline on the calling goroutine. This is
// the default: dispatch for a single invocation is synchronous unless the
// host opts out.
type SyncCoordinator struct{}

// Run implements Coordinator.
func (SyncCoordinator) Run(_ context.Context, task func() error) <-chan error {
	ch := make(chan error, 1)
	ch <- task()
	return ch
}

// =============================================================================
// ASYNCHRONOUS
// =============================================================================

// AsyncCoordinator runs tasks on their own goroutines, bounded by a
// worker budget. Each invocation still gets its own Context, so
// concurrent invocations never share state.
type AsyncCoordinator struct {
	sem chan struct{}
}

// NewAsyncCoordinator creates a coordinator allowing up to workers
// concurrent invocations.
func NewAsyncCoordinator(workers int) *AsyncCoordinator {
	if workers < 1 {
		workers = 1
	}
	return &AsyncCoordinator{sem: make(chan struct{}, workers)}
}

// Run implements Coordinator. If the worker budget is exhausted the task
// waits for a slot; a cancelled context abandons the wait.
func (a *AsyncCoordinator) Run(ctx context.Context, task func() error) <-chan error {
	ch := make(chan error, 1)
	go func() {
		select {
		case a.sem <- struct{}{}:
		case <-ctx.Done():
			ch <- ctx.Err()
			return
		}
		defer func() { <-a.sem }()
		ch <- task()
	}()
	return ch
}
