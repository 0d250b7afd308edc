package sigcore

import (
	"github.com/google/uuid"

	"github.com/zoobzio/sigcore/internal/core"
)

type subscription3[A, B, C any] struct {
	call func(A, B, C)
}

// Signal3 is a typed multicast point for a three-argument emission.
type Signal3[A, B, C any] struct {
	book *core.Book
	subs map[uint64]subscription3[A, B, C]
}

// NewSignal3 constructs an empty, live Signal3. The zero value of Signal3
// is not useful; always construct through this function.
func NewSignal3[A, B, C any]() *Signal3[A, B, C] {
	return &Signal3[A, B, C]{book: core.NewBook(uuid.NewString()), subs: make(map[uint64]subscription3[A, B, C])}
}

func (s *Signal3[A, B, C]) identityBook() *core.Book { return s.book }

// pruneReclaimed closes out one Emit call: it exits the emission and, if
// that was the outermost one, drops the subs entry for every id the Book
// just physically reclaimed, so a disconnected slot's closure does not
// outlive the Book's own record of the connection.
func (s *Signal3[A, B, C]) pruneReclaimed() {
	s.book.ExitEmit()
	for _, id := range s.book.TakeReclaimed() {
		delete(s.subs, id)
	}
}

// Connect registers a slot of the signal's full arity.
func (s *Signal3[A, B, C]) Connect(slot func(A, B, C)) ConnectionHandle {
	id := s.book.Add(false, nil)
	s.subs[id] = subscription3[A, B, C]{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// Connect2 registers a slot that wants only the first two arguments.
func (s *Signal3[A, B, C]) Connect2(slot func(A, B)) ConnectionHandle {
	return s.Connect(func(a A, b B, _ C) { slot(a, b) })
}

// Connect1 registers a slot that wants only the first argument.
func (s *Signal3[A, B, C]) Connect1(slot func(A)) ConnectionHandle {
	return s.Connect(func(a A, _ B, _ C) { slot(a) })
}

// Connect0 registers a slot that ignores every emitted argument.
func (s *Signal3[A, B, C]) Connect0(slot func()) ConnectionHandle {
	return s.Connect(func(A, B, C) { slot() })
}

// ConnectBound prepends bound ahead of the leading emitted argument: slot
// receives (bound, firstEmitted), with the remaining two emitted arguments
// discarded.
func (s *Signal3[A, B, C]) ConnectBound(slot func(A, A), bound A) ConnectionHandle {
	return s.Connect(func(a A, _ B, _ C) { slot(bound, a) })
}

// ConnectDeferred installs slot so Emit enqueues its invocation on
// evaluator instead of running it inline.
func (s *Signal3[A, B, C]) ConnectDeferred(evaluator *ConnectionEvaluator, slot func(A, B, C)) ConnectionHandle {
	id := s.book.Add(true, evaluator)
	s.subs[id] = subscription3[A, B, C]{call: slot}
	return ConnectionHandle{book: s.book, id: id}
}

// Disconnect marks handle's subscription disconnected, provided handle was
// issued by s.
func (s *Signal3[A, B, C]) Disconnect(handle ConnectionHandle) {
	if handle.book != s.book {
		return
	}
	s.book.Disconnect(handle.id)
}

// DisconnectAll marks every current subscription disconnected.
func (s *Signal3[A, B, C]) DisconnectAll() {
	s.book.DisconnectAll()
}

// BlockConnection sets handle's blocked flag and returns the value it held
// before the call.
func (s *Signal3[A, B, C]) BlockConnection(handle ConnectionHandle, shouldBlock bool) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.BlockConnection(handle.id, shouldBlock)
}

// IsConnectionBlocked reports handle's blocked flag.
func (s *Signal3[A, B, C]) IsConnectionBlocked(handle ConnectionHandle) (bool, error) {
	if handle.book != s.book {
		return false, ErrUnknownHandle
	}
	return s.book.IsConnectionBlocked(handle.id)
}

// Emit synchronously invokes every live, unblocked subscriber present at
// call time, in connect order.
func (s *Signal3[A, B, C]) Emit(a A, b B, c C) {
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
				call(a, b, c)
			})
			continue
		}
		sub.call(a, b, c)
	}
}

// Move transfers s's subscriptions and identity to a freshly allocated
// Signal3; s is reset to a new, empty, independently usable identity.
func (s *Signal3[A, B, C]) Move() *Signal3[A, B, C] {
	moved := &Signal3[A, B, C]{}
	moved.Absorb(s)
	return moved
}

// Absorb is the Go analogue of C++ move-assignment: s takes over src's
// subscriptions and identity, invalidating any handle that belonged to s
// before this call. src is left with a fresh, empty identity.
func (s *Signal3[A, B, C]) Absorb(src *Signal3[A, B, C]) {
	if s.book != nil {
		s.book.Kill()
	}
	s.book = src.book
	s.subs = src.subs
	src.book = core.NewBook(uuid.NewString())
	src.subs = make(map[uint64]subscription3[A, B, C])
}

// Close flips the signal's identity to dead: every outstanding handle
// observes IsActive()==false from this point on.
func (s *Signal3[A, B, C]) Close() {
	s.book.Kill()
}

// Stats reports runtime introspection for this signal.
func (s *Signal3[A, B, C]) Stats() Stats {
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
