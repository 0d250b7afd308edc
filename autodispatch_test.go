package sigcore_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sigcore"
)

func TestAutoDispatcherDrainsOnNotify(t *testing.T) {
	evaluator := sigcore.NewConnectionEvaluator()
	dispatcher := sigcore.NewAutoDispatcher(evaluator, sigcore.WithPollInterval(time.Hour))
	dispatcher.Start()
	defer dispatcher.Shutdown()

	var mu sync.Mutex
	ran := false
	evaluator.Enqueue(func() {
		mu.Lock()
		ran = true
		mu.Unlock()
	})
	dispatcher.Notify()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ran
	}, time.Second, 5*time.Millisecond)
}

func TestAutoDispatcherDrainsOnPollTickWithoutNotify(t *testing.T) {
	evaluator := sigcore.NewConnectionEvaluator()
	dispatcher := sigcore.NewAutoDispatcher(evaluator, sigcore.WithPollInterval(10*time.Millisecond))
	dispatcher.Start()
	defer dispatcher.Shutdown()

	var mu sync.Mutex
	ran := false
	evaluator.Enqueue(func() {
		mu.Lock()
		ran = true
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ran
	}, time.Second, 5*time.Millisecond)
}

func TestAutoDispatcherShutdownDrainsOneLastTime(t *testing.T) {
	evaluator := sigcore.NewConnectionEvaluator()
	dispatcher := sigcore.NewAutoDispatcher(evaluator, sigcore.WithPollInterval(time.Hour))
	dispatcher.Start()

	ran := false
	evaluator.Enqueue(func() { ran = true })

	dispatcher.Shutdown()
	require.True(t, ran)
}

func TestAutoDispatcherShutdownIsIdempotent(t *testing.T) {
	evaluator := sigcore.NewConnectionEvaluator()
	dispatcher := sigcore.NewAutoDispatcher(evaluator)
	dispatcher.Start()

	require.NotPanics(t, func() {
		dispatcher.Shutdown()
		dispatcher.Shutdown()
	})
}

func TestAutoDispatcherPanicHandlerReceivesRecoveredValue(t *testing.T) {
	evaluator := sigcore.NewConnectionEvaluator()

	var mu sync.Mutex
	var recovered any
	dispatcher := sigcore.NewAutoDispatcher(
		evaluator,
		sigcore.WithPollInterval(time.Hour),
		sigcore.WithDispatcherPanicHandler(func(r any) {
			mu.Lock()
			recovered = r
			mu.Unlock()
		}),
	)
	dispatcher.Start()
	defer dispatcher.Shutdown()

	evaluator.Enqueue(func() { panic("dispatcher boom") })
	dispatcher.Notify()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return recovered != nil
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "dispatcher boom", recovered)
}

func TestAutoDispatcherWithoutPanicHandlerKeepsRunning(t *testing.T) {
	evaluator := sigcore.NewConnectionEvaluator()
	dispatcher := sigcore.NewAutoDispatcher(evaluator, sigcore.WithPollInterval(time.Hour))
	dispatcher.Start()
	defer dispatcher.Shutdown()

	evaluator.Enqueue(func() { panic("ignored") })
	dispatcher.Notify()

	var mu sync.Mutex
	ranAfter := false
	require.Eventually(t, func() bool {
		evaluator.Enqueue(func() {
			mu.Lock()
			ranAfter = true
			mu.Unlock()
		})
		dispatcher.Notify()
		mu.Lock()
		defer mu.Unlock()
		return ranAfter
	}, time.Second, 10*time.Millisecond)
}
