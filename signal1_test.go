package sigcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sigcore"
)

func TestSignal1ConnectsAndEmitsALambda(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	var received int
	var called bool

	signal.Connect(func(v int) {
		called = true
		received = v
	})

	signal.Emit(42)
	require.True(t, called)
	require.Equal(t, 42, received)
}

func TestSignal1ConnectsToAMethodValue(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	h := &handler{}

	signal.Connect(func(int) { h.doSomething() })
	signal.Emit(7)
	require.True(t, h.called)
}

func TestSignal1Connect0DiscardsTheArgument(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	count := 0

	signal.Connect0(func() { count++ })
	signal.Emit(1)
	signal.Emit(2)
	require.Equal(t, 2, count)
}

func TestSignal1ConnectBoundPrependsTheBoundValue(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	var bound, emitted int

	signal.ConnectBound(func(b, e int) {
		bound = b
		emitted = e
	}, 10)

	signal.Emit(5)
	require.Equal(t, 10, bound)
	require.Equal(t, 5, emitted)
}

func TestSignal1CanBeDisconnectedInsideASlot(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	count1, count2 := 0, 0
	var handle sigcore.ConnectionHandle

	handle = signal.Connect(func(int) {
		count1++
		handle.Disconnect()
	})
	signal.Connect(func(int) { count2++ })

	signal.Emit(1)
	require.Equal(t, 1, count1)
	require.Equal(t, 1, count2)

	signal.Emit(1)
	require.Equal(t, 1, count1)
	require.Equal(t, 2, count2)
}

func TestSignal1DisconnectAfterConnect(t *testing.T) {
	signal := sigcore.NewSignal1[string]()
	var last string

	handle := signal.Connect(func(v string) { last = v })
	signal.Emit("first")
	require.Equal(t, "first", last)

	handle.Disconnect()
	signal.Emit("second")
	require.Equal(t, "first", last)
}

func TestSignal1DisconnectAll(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	count1, count2 := 0, 0
	signal.Connect(func(int) { count1++ })
	signal.Connect(func(int) { count2++ })

	signal.DisconnectAll()
	signal.Emit(1)
	require.Equal(t, 0, count1)
	require.Equal(t, 0, count2)
}

func TestSignal1MoveConstructedKeepsConnections(t *testing.T) {
	var received int
	signal := sigcore.NewSignal1[int]()
	signal.Connect(func(v int) { received = v })

	moved := signal.Move()
	moved.Emit(99)
	require.Equal(t, 99, received)
}

func TestSignal1MoveAssignedInvalidatesOldDestinationHandles(t *testing.T) {
	dst := sigcore.NewSignal1[int]()
	oldHandle := dst.Connect(func(int) {})
	require.True(t, oldHandle.IsActive())

	src := sigcore.NewSignal1[int]()
	srcHandle := src.Connect(func(int) {})

	dst.Absorb(src)
	require.False(t, oldHandle.IsActive())
	require.True(t, srcHandle.IsActive())
	require.True(t, srcHandle.BelongsTo(dst))
}

func TestSignal1EmitAfterDisconnectInLoopDoesNotPanic(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	var handle sigcore.ConnectionHandle
	handle = signal.Connect(func(int) { handle.Disconnect() })

	require.NotPanics(t, func() {
		signal.Emit(1)
		signal.Emit(2)
	})
}

func TestSignal1DeferredConnectEnqueuesOnEvaluator(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	evaluator := sigcore.NewConnectionEvaluator()
	var received int

	signal.ConnectDeferred(evaluator, func(v int) { received = v })
	signal.Emit(5)
	require.Equal(t, 0, received, "a deferred slot must not run inline during Emit")

	require.NoError(t, evaluator.EvaluateDeferredConnections())
	require.Equal(t, 5, received)
}

func TestSignal1DeferredSlotSkippedIfDisconnectedBeforeEvaluate(t *testing.T) {
	signal := sigcore.NewSignal1[int]()
	evaluator := sigcore.NewConnectionEvaluator()
	called := false

	handle := signal.ConnectDeferred(evaluator, func(int) { called = true })
	signal.Emit(1)
	handle.Disconnect()

	require.NoError(t, evaluator.EvaluateDeferredConnections())
	require.False(t, called)
}
