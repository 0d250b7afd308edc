package sigcore

import (
	"github.com/google/uuid"

	"github.com/zoobzio/sigcore/internal/core"
)

type subscription0 struct {
	call func()
}

// Signal0 is a typed multicast point for an emission that carries no
// arguments, e.g. a button's "clicked" signal.
type Signal0 struct {
	book *core.Book
	subs map[uint64]subscription0
}

// NewSignal0 constructs an empty, live Signal0. The zero value of Signal0
// is not useful; always construct through this function.
func NewSignal0() *Signal0 {
	return &Signal0{book: core.NewBook(uuid.NewString()), subs: make(map[uint64]subscription0)}
}

func (s *Signal0) identityBook() *core.Book { return s.book }

// pruneReclaimed closes out one Emit call: it exits the emission and, if
// that was the outermost one, drops the subs entry for every id the Book
// just physically reclaimed, so a disconnected slot's closure does not
// outlive the Book's own record of the connection.
func (s *Signal0) pruneReclaimed() {
	s.book.ExitEmit()
	for _, id := range s.book.TakeReclaimed() {
		delete(s.subs, id)
	}
}

// Connect registers slot for every future Emit call and returns a handle
// that can later block or disconnect it.
func (s *Signal0) Connect(slot func()) ConnectionHandle {
	id := s.book.Add(false, nil)
	s.subs[id] = subscription0{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// ConnectDeferred installs slot so that, instead of running inline, Emit
// enqueues its invocation on evaluator for a later EvaluateDeferredConnections.
func (s *Signal0) ConnectDeferred(evaluator *ConnectionEvaluator, slot func()) ConnectionHandle {
	id := s.book.Add(true, evaluator)
	s.subs[id] = subscription0{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// Disconnect marks handle's subscription disconnected, provided handle was
// issued by s. Idempotent; a foreign or already-dead handle is a no-op.
func (s *Signal0) Disconnect(handle ConnectionHandle) {
	if handle.book != s.book {
		return
	}
	s.book.Disconnect(handle.id)
}

// DisconnectAll marks every current subscription disconnected.
func (s *Signal0) DisconnectAll() {
	s.book.DisconnectAll()
}

// BlockConnection sets handle's blocked flag and returns the value it held
// before the call. Returns ErrUnknownHandle for a foreign or dead handle.
func (s *Signal0) BlockConnection(handle ConnectionHandle, shouldBlock bool) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.BlockConnection(handle.id, shouldBlock)
}

// IsConnectionBlocked reports handle's blocked flag. Returns
// ErrUnknownHandle for a foreign or dead handle.
func (s *Signal0) IsConnectionBlocked(handle ConnectionHandle) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.IsConnectionBlocked(handle.id)
}

// Emit synchronously invokes every live, unblocked subscriber present at
// the moment Emit was called, in connect order. Subscribers added by a
// slot during this call are not invoked by this call. Immediate slots run
// inline and their panics propagate out of Emit uncaught; deferred slots
// are enqueued on their evaluator instead of invoked here.
func (s *Signal0) Emit() {
	s.book.EnterEmit()
	defer s.pruneReclaimed()

	for _, id := range s.book.Snapshot() {
		meta, ok := s.book.Lookup(id)
		if !ok || meta.Disconnected || meta.Blocked {
			continue
		}
		sub, ok := s.subs[id]
		if !ok {
			continue
		}
		if meta.Deferred {
			book, sid, call, ev := s.book, id, sub.call, meta.Evaluator
			ev.Enqueue(func() {
				if !book.HasConnection(sid) {
					return
				}
				call()
			})
			continue
		}
		sub.call()
	}
}

// Move transfers s's entire subscription list and identity to a freshly
// allocated Signal0; handles taken before the call resolve against the
// returned signal. s is reset to a new, empty, independently usable
// identity. This is the Go analogue of C++ move-construction: Go has no
// move constructors, so spec.md's "move" is expressed as this explicit
// transfer instead of assignment syntax.
func (s *Signal0) Move() *Signal0 {
	moved := &Signal0{}
	moved.Absorb(s)
	return moved
}

// Absorb is the Go analogue of C++ move-assignment: dst takes over src's
// subscriptions and identity. Handles that belonged to dst before this call
// become inactive, matching spec.md's "handles previously belonging to the
// destination signal are invalidated by the assignment." src is left with a
// fresh, empty, independently usable identity.
func (s *Signal0) Absorb(src *Signal0) {
	if s.book != nil {
		s.book.Kill()
	}
	s.book = src.book
	s.subs = src.subs
	src.book = core.NewBook(uuid.NewString())
	src.subs = make(map[uint64]subscription0)
}

// Close flips the signal's identity to dead: every outstanding handle
// observes IsActive()==false from this point on. Pending deferred
// invocations already enqueued on an evaluator are unaffected and still
// run. Go has no destructors, so Close is the explicit analogue of
// spec.md's "Destruction."
func (s *Signal0) Close() {
	s.book.Kill()
}

// Stats reports runtime introspection for this signal: live and
// tombstoned-but-unreclaimed subscriber counts, the distinct evaluators it
// fans out to, and a histogram of attached slots grouped by a hash of
// their underlying function identity.
func (s *Signal0) Stats() Stats {
	sigs := make(map[uint64]int, len(s.subs))
	for _, sub := range s.subs {
		sigs[slotSignature(sub.call)]++
	}
	return Stats{
		SignalID:       s.book.ID(),
		LiveCount:      s.book.LiveLen(),
		PendingReclaim: s.book.Len() - s.book.LiveLen(),
		Evaluators:     s.book.Evaluators(),
		SlotSignatures: sigs,
	}
}

