package sigcore

import (
	"github.com/google/uuid"

	"github.com/zoobzio/sigcore/internal/core"
)

type subscription1[A any] struct {
	call func(A)
}

// Signal1 is a typed multicast point for a single-argument emission.
type Signal1[A any] struct {
	book *core.Book
	subs map[uint64]subscription1[A]
}

// NewSignal1 constructs an empty, live Signal1. The zero value of Signal1
// is not useful; always construct through this function.
func NewSignal1[A any]() *Signal1[A] {
	return &Signal1[A]{book: core.NewBook(uuid.NewString()), subs: make(map[uint64]subscription1[A])}
}

func (s *Signal1[A]) identityBook() *core.Book { return s.book }

// pruneReclaimed closes out one Emit call: it exits the emission and, if
// that was the outermost one, drops the subs entry for every id the Book
// just physically reclaimed, so a disconnected slot's closure does not
// outlive the Book's own record of the connection.
func (s *Signal1[A]) pruneReclaimed() {
	s.book.ExitEmit()
	for _, id := range s.book.TakeReclaimed() {
		delete(s.subs, id)
	}
}

// Connect registers a slot of the signal's full arity.
func (s *Signal1[A]) Connect(slot func(A)) ConnectionHandle {
	id := s.book.Add(false, nil)
	s.subs[id] = subscription1[A]{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// Connect0 registers a slot that ignores the emitted argument, exercising
// spec.md's "excess trailing emit arguments are silently discarded" rule.
func (s *Signal1[A]) Connect0(slot func()) ConnectionHandle {
	return s.Connect(func(A) { slot() })
}

// ConnectBound prepends bound ahead of each invocation: slot receives
// (bound, emitted) on every Emit, as spec.md's bound-argument overload
// describes.
func (s *Signal1[A]) ConnectBound(slot func(A, A), bound A) ConnectionHandle {
	return s.Connect(func(a A) { slot(bound, a) })
}

// ConnectDeferred installs slot so Emit enqueues its invocation on
// evaluator instead of running it inline.
func (s *Signal1[A]) ConnectDeferred(evaluator *ConnectionEvaluator, slot func(A)) ConnectionHandle {
	id := s.book.Add(true, evaluator)
	s.subs[id] = subscription1[A]{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// Disconnect marks handle's subscription disconnected, provided handle was
// issued by s.
func (s *Signal1[A]) Disconnect(handle ConnectionHandle) {
	if handle.book != s.book {
		return
	}
	s.book.Disconnect(handle.id)
}

// DisconnectAll marks every current subscription disconnected.
func (s *Signal1[A]) DisconnectAll() {
	s.book.DisconnectAll()
}

// BlockConnection sets handle's blocked flag and returns the value it held
// before the call.
func (s *Signal1[A]) BlockConnection(handle ConnectionHandle, shouldBlock bool) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.BlockConnection(handle.id, shouldBlock)
}

// IsConnectionBlocked reports handle's blocked flag.
func (s *Signal1[A]) IsConnectionBlocked(handle ConnectionHandle) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.IsConnectionBlocked(handle.id)
}

// Emit synchronously invokes every live, unblocked subscriber present at
// call time, in connect order.
func (s *Signal1[A]) Emit(a A) {
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
				call(a)
			})
			continue
		}
		sub.call(a)
	}
}

// Move transfers s's subscriptions and identity to a freshly allocated
// Signal1; s is reset to a new, empty, independently usable identity.
func (s *Signal1[A]) Move() *Signal1[A] {
	moved := &Signal1[A]{}
	moved.Absorb(s)
	return moved
}

// Absorb is the Go analogue of C++ move-assignment: s takes over src's
// subscriptions and identity. Handles that belonged to s before this call
// become inactive. src is left with a fresh, empty identity.
func (s *Signal1[A]) Absorb(src *Signal1[A]) {
	if s.book != nil {
		s.book.Kill()
	}
	s.book = src.book
	s.subs = src.subs
	src.book = core.NewBook(uuid.NewString())
	src.subs = make(map[uint64]subscription1[A])
}

// Close flips the signal's identity to dead: every outstanding handle
// observes IsActive()==false from this point on.
func (s *Signal1[A]) Close() {
	s.book.Kill()
}

// Stats reports runtime introspection for this signal.
func (s *Signal1[A]) Stats() Stats {
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
