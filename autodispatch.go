package sigcore

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DispatcherOption configures an AutoDispatcher at construction.
type DispatcherOption func(*AutoDispatcher)

// WithDispatcherLogger attaches a structured logger used to trace drain
// loop start/stop and recovered panics. Default is zerolog.Nop().
func WithDispatcherLogger(logger zerolog.Logger) DispatcherOption {
	return func(d *AutoDispatcher) {
		d.logger = logger
	}
}

// WithPollInterval sets how often the drain loop wakes up even without an
// enqueue notification, as a backstop against a missed wakeup. Default is
// 250ms.
func WithPollInterval(interval time.Duration) DispatcherOption {
	return func(d *AutoDispatcher) {
		if interval > 0 {
			d.pollInterval = interval
		}
	}
}

// DispatcherPanicHandler is called, on the dispatcher's own goroutine, when
// a drained closure panics. If nil, the panic is recovered, logged at Warn
// level through the dispatcher's logger (zerolog.Nop() unless
// WithDispatcherLogger was given), and the loop continues.
type DispatcherPanicHandler func(recovered any)

// WithDispatcherPanicHandler sets the callback invoked when a drained
// closure panics during an AutoDispatcher-owned drain.
func WithDispatcherPanicHandler(handler DispatcherPanicHandler) DispatcherOption {
	return func(d *AutoDispatcher) {
		d.panicHandler = handler
	}
}

// AutoDispatcher owns one goroutine that repeatedly drains a
// ConnectionEvaluator, instead of requiring a caller to call
// EvaluateDeferredConnections by hand after every emit. It is adapted from
// the teacher's per-signal worker goroutine (worker.go's processEvents
// select-loop) and its sync.Once-guarded Shutdown (service.go): the same
// lifecycle idiom, generalized from "one goroutine per signal name" to "one
// goroutine per shared evaluator."
//
// Creating an AutoDispatcher does not violate the core's "no internal
// thread is spawned by the core" contract: the core package
// (ConnectionEvaluator, SignalN) still spawns nothing on its own.
// AutoDispatcher is an opt-in wrapper the caller explicitly starts.
type AutoDispatcher struct {
	evaluator    *ConnectionEvaluator
	notify       chan struct{}
	done         chan struct{}
	wg           sync.WaitGroup
	stopOnce     sync.Once
	pollInterval time.Duration
	logger       zerolog.Logger
	panicHandler DispatcherPanicHandler
}

// NewAutoDispatcher wraps evaluator with a drain loop that has not been
// started yet; call Start to spawn its goroutine.
func NewAutoDispatcher(evaluator *ConnectionEvaluator, opts ...DispatcherOption) *AutoDispatcher {
	d := &AutoDispatcher{
		evaluator:    evaluator,
		notify:       make(chan struct{}, 1),
		done:         make(chan struct{}),
		pollInterval: 250 * time.Millisecond,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify wakes the drain loop promptly instead of waiting for the next poll
// tick. It is non-blocking: a notification already pending is sufficient,
// so callers may call it after every Emit onto a deferred connection
// without risk of blocking the emitting goroutine.
func (d *AutoDispatcher) Notify() {
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// Start spawns the drain loop goroutine. Safe to call once per
// AutoDispatcher; calling it again after Shutdown does not restart it.
func (d *AutoDispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

func (d *AutoDispatcher) run() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	d.logger.Debug().Str("evaluator_id", d.evaluator.ID()).Msg("sigcore: auto dispatcher started")

	for {
		select {
		case <-d.done:
			d.drainOnce() // final drain so nothing enqueued just before Shutdown is lost
			d.logger.Debug().Str("evaluator_id", d.evaluator.ID()).Msg("sigcore: auto dispatcher stopped")
			return
		case <-d.notify:
			d.drainOnce()
		case <-ticker.C:
			d.drainOnce()
		}
	}
}

func (d *AutoDispatcher) drainOnce() {
	defer func() {
		if r := recover(); r != nil {
			if d.panicHandler != nil {
				d.panicHandler(r)
				return
			}
			d.logger.Warn().Str("evaluator_id", d.evaluator.ID()).Interface("panic", r).Msg("sigcore: recovered panic from deferred invocation")
		}
	}()
	if err := d.evaluator.EvaluateDeferredConnections(); err != nil {
		d.logger.Debug().Err(err).Str("evaluator_id", d.evaluator.ID()).Msg("sigcore: auto dispatcher skipped a reentrant drain")
	}
}

// Shutdown stops the drain loop after one final drain, and waits for its
// goroutine to exit. Safe to call multiple times; only the first call has
// an effect.
func (d *AutoDispatcher) Shutdown() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
	d.wg.Wait()
}
