package sigcore

import "github.com/zoobzio/sigcore/internal/core"

// identity is implemented by every SignalN arity. It exposes the signal's
// shared identity Book so ConnectionHandle.BelongsTo can compare it without
// knowing the signal's argument types.
type identity interface {
	identityBook() *core.Book
}

// ConnectionHandle is an opaque, copyable, value-typed reference to one
// subscription. Copies are peers: none of them "owns" the subscription, and
// disconnecting through any copy makes every copy observe IsActive()==false.
// The zero value is inert: it belongs to no signal and IsActive() is false.
type ConnectionHandle struct {
	book *core.Book
	id   uint64
}

// IsActive reports whether the handle's signal is still open and the
// subscription it addresses has not been disconnected.
func (h ConnectionHandle) IsActive() bool {
	return h.book != nil && h.book.Alive() && h.book.HasConnection(h.id)
}

// BelongsTo reports whether h was issued by s. A zero-value handle belongs
// to no signal, including a freshly constructed, empty one.
func (h ConnectionHandle) BelongsTo(s identity) bool {
	if h.book == nil || s == nil {
		return false
	}
	return h.book == s.identityBook()
}

// Disconnect marks the addressed subscription disconnected. It is a no-op
// on an inactive handle, and idempotent: calling it more than once has the
// same effect as calling it once.
func (h ConnectionHandle) Disconnect() {
	if h.book == nil {
		return
	}
	h.book.Disconnect(h.id)
}

// Block sets the addressed subscription's blocked flag and returns the
// value it held before the call. It returns ErrUnknownHandle if the handle
// no longer addresses a live subscription.
func (h ConnectionHandle) Block(shouldBlock bool) (wasBlockedBefore bool, err error) {
	if h.book == nil {
		return false, ErrUnknownHandle
	}
	return h.book.BlockConnection(h.id, shouldBlock)
}

// IsBlocked reports the addressed subscription's blocked flag. It returns
// ErrUnknownHandle if the handle no longer addresses a live subscription.
func (h ConnectionHandle) IsBlocked() (bool, error) {
	if h.book == nil {
		return false, ErrUnknownHandle
	}
	return h.book.IsConnectionBlocked(h.id)
}
