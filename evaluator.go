package sigcore

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ConnectionEvaluator is a thread-safe FIFO queue of pending deferred
// invocations, shared among any number of signals. Concurrent Enqueue calls
// are safe and Enqueue concurrent with EvaluateDeferredConnections is safe.
// Only one EvaluateDeferredConnections call drains at a time: a call made
// while another drain is in progress does not wait for it, it returns
// ErrReentrantEvaluate without draining.
type ConnectionEvaluator struct {
	id       string
	mu       sync.Mutex
	pending  []func()
	draining bool
	logger   zerolog.Logger
}

// EvaluatorOption configures a ConnectionEvaluator at construction.
type EvaluatorOption func(*ConnectionEvaluator)

// WithEvaluatorLogger attaches a structured logger used for Debug-level
// drain tracing. The default is zerolog.Nop(): logging is opt-in and never
// sits on the hot path of Enqueue.
func WithEvaluatorLogger(logger zerolog.Logger) EvaluatorOption {
	return func(e *ConnectionEvaluator) {
		e.logger = logger
	}
}

// NewConnectionEvaluator creates an empty evaluator ready to be shared with
// any number of signals via SignalN.ConnectDeferred.
func NewConnectionEvaluator(opts ...EvaluatorOption) *ConnectionEvaluator {
	e := &ConnectionEvaluator{
		id:     uuid.NewString(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the evaluator's identity, stamped once at construction and
// used to correlate Stats and log output across the signals sharing it.
func (e *ConnectionEvaluator) ID() string {
	return e.id
}

// Enqueue appends closure to the pending queue under the evaluator's mutex.
// Safe to call from any goroutine, including from within a closure
// currently being drained by EvaluateDeferredConnections.
func (e *ConnectionEvaluator) Enqueue(closure func()) {
	e.mu.Lock()
	e.pending = append(e.pending, closure)
	depth := len(e.pending)
	e.mu.Unlock()
	e.logger.Debug().Str("evaluator_id", e.id).Int("queue_depth", depth).Msg("sigcore: enqueued deferred invocation")
}

// Pending reports the number of invocations currently queued.
func (e *ConnectionEvaluator) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// EvaluateDeferredConnections drains the queue and invokes each closure in
// enqueue order on the calling goroutine. The queue is swapped out under the
// mutex and invoked outside it, so a closure may enqueue further work -
// including onto this same evaluator - without deadlocking; that new work
// waits for the next drain. Two successive drains with no work enqueued
// between them invoke nothing on the second call.
//
// If a closure panics, draining stops at that point: closures already
// invoked stay invoked, the panicking closure's panic propagates to the
// caller uncaught (the core never recovers slot panics), and every closure
// queued after it is preserved for the next drain.
//
// Calling EvaluateDeferredConnections while a drain is already in progress,
// whether from a closure of that drain or from another goroutine, returns
// ErrReentrantEvaluate at once instead of draining or waiting.
func (e *ConnectionEvaluator) EvaluateDeferredConnections() error {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return ErrReentrantEvaluate
	}
	e.draining = true
	batch := e.pending
	e.pending = nil
	e.mu.Unlock()

	e.logger.Debug().Str("evaluator_id", e.id).Int("batch_size", len(batch)).Msg("sigcore: draining deferred invocations")

	defer func() {
		e.mu.Lock()
		e.draining = false
		e.mu.Unlock()
	}()

	for i, closure := range batch {
		if closure == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Preserve everything not yet invoked, then re-panic so
					// the caller sees the slot's own panic uncaught.
					e.mu.Lock()
					e.pending = append(append([]func(){}, batch[i+1:]...), e.pending...)
					e.mu.Unlock()
					panic(r)
				}
			}()
			closure()
		}()
	}

	return nil
}
