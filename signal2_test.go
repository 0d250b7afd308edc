package sigcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sigcore"
)

func TestSignal2ConnectsAndEmitsALambda(t *testing.T) {
	signal := sigcore.NewSignal2[string, int]()
	var gotLabel string
	var gotValue int

	signal.Connect(func(label string, value int) {
		gotLabel = label
		gotValue = value
	})

	signal.Emit("The answer:", 42)
	require.Equal(t, "The answer:", gotLabel)
	require.Equal(t, 42, gotValue)
}

func TestSignal2Connect1DiscardsTheTrailingArgument(t *testing.T) {
	signal := sigcore.NewSignal2[string, int]()
	var gotLabel string

	signal.Connect1(func(label string) { gotLabel = label })
	signal.Emit("only-this", 0)
	require.Equal(t, "only-this", gotLabel)
}

func TestSignal2Connect0DiscardsBothArguments(t *testing.T) {
	signal := sigcore.NewSignal2[string, int]()
	count := 0

	signal.Connect0(func() { count++ })
	signal.Emit("a", 1)
	signal.Emit("b", 2)
	require.Equal(t, 2, count)
}

func TestSignal2ConnectBoundPrependsBoundAndDropsSecondArg(t *testing.T) {
	signal := sigcore.NewSignal2[int, string]()
	var bound, emitted int

	signal.ConnectBound(func(b, e int) {
		bound = b
		emitted = e
	}, 100)

	signal.Emit(5, "ignored")
	require.Equal(t, 100, bound)
	require.Equal(t, 5, emitted)
}

func TestSignal2MultipleSlotsRunInConnectOrder(t *testing.T) {
	signal := sigcore.NewSignal2[int, int]()
	var order []int

	signal.Connect(func(int, int) { order = append(order, 1) })
	signal.Connect(func(int, int) { order = append(order, 2) })
	signal.Connect(func(int, int) { order = append(order, 3) })

	signal.Emit(0, 0)
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestSignal2BlockedConnectionIsSkipped(t *testing.T) {
	signal := sigcore.NewSignal2[int, int]()
	count := 0
	handle := signal.Connect(func(int, int) { count++ })

	_, err := signal.BlockConnection(handle, true)
	require.NoError(t, err)

	signal.Emit(1, 1)
	require.Equal(t, 0, count)
}

func TestSignal2MoveAssignedPreservesHandlesAndNoExceptionOnQuery(t *testing.T) {
	dst := sigcore.NewSignal2[int, int]()
	src := sigcore.NewSignal2[int, int]()
	handle := src.Connect(func(int, int) {})

	dst.Absorb(src)

	require.NotPanics(t, func() {
		_, err := dst.IsConnectionBlocked(handle)
		require.NoError(t, err)
	})
}

func TestSignal2DeferredConnectEnqueuesOnEvaluator(t *testing.T) {
	signal := sigcore.NewSignal2[string, int]()
	evaluator := sigcore.NewConnectionEvaluator()
	var gotLabel string
	var gotValue int

	signal.ConnectDeferred(evaluator, func(label string, value int) {
		gotLabel = label
		gotValue = value
	})

	signal.Emit("deferred", 9)
	require.Empty(t, gotLabel)

	require.NoError(t, evaluator.EvaluateDeferredConnections())
	require.Equal(t, "deferred", gotLabel)
	require.Equal(t, 9, gotValue)
}

func TestSignal2MultipleSignalsShareOneEvaluator(t *testing.T) {
	evaluator := sigcore.NewConnectionEvaluator()
	first := sigcore.NewSignal2[int, int]()
	second := sigcore.NewSignal2[int, int]()
	var order []string

	first.ConnectDeferred(evaluator, func(int, int) { order = append(order, "first") })
	second.ConnectDeferred(evaluator, func(int, int) { order = append(order, "second") })

	first.Emit(0, 0)
	second.Emit(0, 0)

	require.NoError(t, evaluator.EvaluateDeferredConnections())
	require.Equal(t, []string{"first", "second"}, order)
}
