package sigcore

import (
	"github.com/google/uuid"

	"github.com/zoobzio/sigcore/internal/core"
)

type subscription2[A, B any] struct {
	call func(A, B)
}

// Signal2 is a typed multicast point for a two-argument emission.
type Signal2[A, B any] struct {
	book *core.Book
	subs map[uint64]subscription2[A, B]
}

// NewSignal2 constructs an empty, live Signal2. The zero value of Signal2
// is not useful; always construct through this function.
func NewSignal2[A, B any]() *Signal2[A, B] {
	return &Signal2[A, B]{book: core.NewBook(uuid.NewString()), subs: make(map[uint64]subscription2[A, B])}
}

func (s *Signal2[A, B]) identityBook() *core.Book { return s.book }

// pruneReclaimed closes out one Emit call: it exits the emission and, if
// that was the outermost one, drops the subs entry for every id the Book
// just physically reclaimed, so a disconnected slot's closure does not
// outlive the Book's own record of the connection.
func (s *Signal2[A, B]) pruneReclaimed() {
	s.book.ExitEmit()
	for _, id := range s.book.TakeReclaimed() {
		delete(s.subs, id)
	}
}

// Connect registers a slot of the signal's full arity.
func (s *Signal2[A, B]) Connect(slot func(A, B)) ConnectionHandle {
	id := s.book.Add(false, nil)
	s.subs[id] = subscription2[A, B]{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// Connect1 registers a slot that only wants the leading argument, with the
// trailing one silently discarded at emit time.
func (s *Signal2[A, B]) Connect1(slot func(A)) ConnectionHandle {
	return s.Connect(func(a A, _ B) { slot(a) })
}

// Connect0 registers a slot that ignores both emitted arguments.
func (s *Signal2[A, B]) Connect0(slot func()) ConnectionHandle {
	return s.Connect(func(A, B) { slot() })
}

// ConnectBound prepends bound ahead of the leading emitted argument: slot
// receives (bound, firstEmitted), and the second emitted argument is
// discarded, matching spec.md's bound-argument overload.
func (s *Signal2[A, B]) ConnectBound(slot func(A, A), bound A) ConnectionHandle {
	return s.Connect(func(a A, _ B) { slot(bound, a) })
}

// ConnectDeferred installs slot so Emit enqueues its invocation on
// evaluator instead of running it inline.
func (s *Signal2[A, B]) ConnectDeferred(evaluator *ConnectionEvaluator, slot func(A, B)) ConnectionHandle {
	id := s.book.Add(true, evaluator)
	s.subs[id] = subscription2[A, B]{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// Disconnect marks handle's subscription disconnected, provided handle was
// issued by s.
func (s *Signal2[A, B]) Disconnect(handle ConnectionHandle) {
	if handle.book != s.book {
		return
	}
	s.book.Disconnect(handle.id)
}

// DisconnectAll marks every current subscription disconnected.
func (s *Signal2[A, B]) DisconnectAll() {
	s.book.DisconnectAll()
}

// BlockConnection sets handle's blocked flag and returns the value it held
// before the call.
func (s *Signal2[A, B]) BlockConnection(handle ConnectionHandle, shouldBlock bool) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.BlockConnection(handle.id, shouldBlock)
}

// IsConnectionBlocked reports handle's blocked flag.
func (s *Signal2[A, B]) IsConnectionBlocked(handle ConnectionHandle) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.IsConnectionBlocked(handle.id)
}

// Emit synchronously invokes every live, unblocked subscriber present at
// call time, in connect order.
func (s *Signal2[A, B]) Emit(a A, b B) {
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
				call(a, b)
			})
			continue
		}
		sub.call(a, b)
	}
}

// Move transfers s's subscriptions and identity to a freshly allocated
// Signal2; s is reset to a new, empty, independently usable identity.
func (s *Signal2[A, B]) Move() *Signal2[A, B] {
	moved := &Signal2[A, B]{}
	moved.Absorb(s)
	return moved
}

// Absorb is the Go analogue of C++ move-assignment: s takes over src's
// subscriptions and identity, invalidating any handle that belonged to s
// before this call. src is left with a fresh, empty identity.
func (s *Signal2[A, B]) Absorb(src *Signal2[A, B]) {
	if s.book != nil {
		s.book.Kill()
	}
	s.book = src.book
	s.subs = src.subs
	src.book = core.NewBook(uuid.NewString())
	src.subs = make(map[uint64]subscription2[A, B])
}

// Close flips the signal's identity to dead: every outstanding handle
// observes IsActive()==false from this point on.
func (s *Signal2[A, B]) Close() {
	s.book.Kill()
}

// Stats reports runtime introspection for this signal.
func (s *Signal2[A, B]) Stats() Stats {
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
