// Package debounce provides a cancel-previous debounced runner for
// keystroke-driven remote lookups. Each submission restarts a fixed
// quiescence window; a newer submission cancels any in-flight
// predecessor, and a superseded run's result is discarded even if it
// completes, so only the most recent submission's result is ever
// delivered.
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Runner debounces submissions of type T. The zero value is not
// usable; create one with NewRunner.
type Runner[T any] struct {
	wait time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewRunner creates a runner with the given quiescence window.
func NewRunner[T any](wait time.Duration) *Runner[T] {
	return &Runner[T]{wait: wait}
}

// Submit waits for the quiescence window and then executes run. It
// returns ok=false when the submission was superseded by a newer one,
// either during the wait or while run was in flight; a superseded
// run's result is discarded. Cancellation of run's context by a newer
// submission is not an error.
func (r *Runner[T]) Submit(parent context.Context, run func(context.Context) (T, error)) (result T, ok bool, err error) {
	var zero T

	r.mu.Lock()
	r.seq++
	mine := r.seq
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	r.mu.Unlock()

	timer := time.NewTimer(r.wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		// Superseded (or the caller went away) before the window
		// elapsed; no request was ever issued.
		return zero, false, nil
	case <-timer.C:
	}

	out, runErr := run(ctx)

	r.mu.Lock()
	latest := r.seq == mine
	superseded := !latest || ctx.Err() != nil
	if latest {
		r.cancel = nil
	}
	r.mu.Unlock()
	cancel()

	if superseded || errors.Is(runErr, context.Canceled) {
		// A late result must never overwrite a newer query's result,
		// and a cancellation is not a failure.
		return zero, false, nil
	}
	if runErr != nil {
		return zero, true, runErr
	}
	return out, true, nil
}

// Cancel aborts any pending or in-flight submission without starting a
// new one. Used when the input drops below the minimum query length.
func (r *Runner[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
