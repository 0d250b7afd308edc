package sigcore

// ConnectionBlocker is a scoped helper that blocks a connection for a
// bounded region and restores the prior block state when released.
// Construction validates the handle eagerly and fails with
// ErrUnknownHandle against a dead handle, mirroring the teacher's
// fail-fast option validation.
//
// Usage:
//
//	blocker, err := sigcore.NewConnectionBlocker(handle)
//	if err != nil { ... }
//	defer blocker.Release()
type ConnectionBlocker struct {
	handle   ConnectionHandle
	previous bool
	released bool
}

// NewConnectionBlocker blocks handle's connection immediately, recording
// whatever blocked state it held before this call so Release can restore
// it. An already-blocked connection stays blocked after Release.
func NewConnectionBlocker(handle ConnectionHandle) (*ConnectionBlocker, error) {
	previous, err := handle.Block(true)
	if err != nil {
		return nil, err
	}
	return &ConnectionBlocker{handle: handle, previous: previous}, nil
}

// Release restores the blocked state the connection held immediately before
// construction. It is safe to call more than once; only the first call has
// an effect. Callers should defer Release immediately after construction so
// it runs on every exit path from the enclosing scope.
func (b *ConnectionBlocker) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	// The handle may have been disconnected while blocked; Block on a dead
	// handle returns ErrUnknownHandle, which Release has no way to surface
	// and nothing left to restore anyway, so it is ignored here.
	_, _ = b.handle.Block(b.previous)
}
