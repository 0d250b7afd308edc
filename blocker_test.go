package sigcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sigcore"
)

func TestConnectionBlockerForDeletedConnectionFails(t *testing.T) {
	signal := sigcore.NewSignal0()
	handle := signal.Connect(func() {})
	signal.Disconnect(handle)

	_, err := sigcore.NewConnectionBlocker(handle)
	require.ErrorIs(t, err, sigcore.ErrUnknownHandle)
}

func TestConnectionBlockerBlocksForItsScope(t *testing.T) {
	count := 0
	signal := sigcore.NewSignal0()
	handle := signal.Connect(func() { count++ })

	func() {
		blocker, err := sigcore.NewConnectionBlocker(handle)
		require.NoError(t, err)
		defer blocker.Release()

		blocked, err := signal.IsConnectionBlocked(handle)
		require.NoError(t, err)
		require.True(t, blocked)

		signal.Emit()
		require.Equal(t, 0, count)
	}()

	blocked, err := signal.IsConnectionBlocked(handle)
	require.NoError(t, err)
	require.False(t, blocked)
}

func TestConnectionBlockerLeavesAlreadyBlockedConnectionsBlocked(t *testing.T) {
	signal := sigcore.NewSignal0()
	handle := signal.Connect(func() {})

	_, err := signal.BlockConnection(handle, true)
	require.NoError(t, err)

	blocked, err := signal.IsConnectionBlocked(handle)
	require.NoError(t, err)
	require.True(t, blocked)

	func() {
		blocker, err := sigcore.NewConnectionBlocker(handle)
		require.NoError(t, err)
		defer blocker.Release()

		blocked, err := signal.IsConnectionBlocked(handle)
		require.NoError(t, err)
		require.True(t, blocked)
	}()

	blocked, err = signal.IsConnectionBlocked(handle)
	require.NoError(t, err)
	require.True(t, blocked)
}

func TestConnectionBlockerReleaseIsIdempotent(t *testing.T) {
	signal := sigcore.NewSignal0()
	handle := signal.Connect(func() {})

	blocker, err := sigcore.NewConnectionBlocker(handle)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		blocker.Release()
		blocker.Release()
	})
}
