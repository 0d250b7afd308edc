// Package core holds the arity-agnostic bookkeeping shared by every SignalN
// type: slot id allocation, the ordered subscription list, tombstones, and
// quiescent reclaim. It knows nothing about the argument types a signal
// carries; the sigcore package owns the typed invocation adapters and uses
// Book purely for identity, ordering, and lifecycle state.
package core

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// Enqueuer is the capability a deferred subscription needs from the
// evaluator it was connected through. It is satisfied by
// *sigcore.ConnectionEvaluator without core importing that package.
type Enqueuer interface {
	Enqueue(func())
	ID() string
}

// Meta is a snapshot of one subscription's bookkeeping state.
type Meta struct {
	ID           uint64
	Disconnected bool
	Blocked      bool
	Deferred     bool
	Evaluator    Enqueuer
}

// Book is the shared identity and subscription ledger for one signal. Its
// address doubles as the signal's "control block": a ConnectionHandle holds
// a *Book plus a slot id, and two signals share identity iff they share a
// *Book. Signal.Move/Absorb transplant a *Book between signal values so
// outstanding handles keep resolving after a move.
type Book struct {
	mu         sync.Mutex
	id         string
	alive      bool
	nextID     uint64
	order      []uint64
	metas      map[uint64]*Meta
	depth      int
	evaluators mapset.Set[string]
	reclaimed  []uint64
}

// NewBook allocates a fresh, live identity with no subscriptions.
func NewBook(id string) *Book {
	return &Book{
		id:         id,
		alive:      true,
		metas:      make(map[uint64]*Meta),
		evaluators: mapset.NewThreadUnsafeSet[string](),
	}
}

// ID returns the UUID stamped on this identity at construction, used for
// log correlation and Stats reporting.
func (b *Book) ID() string {
	return b.id
}

// Alive reports whether the owning signal is still open, i.e. Kill has not
// been called on this Book.
func (b *Book) Alive() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alive
}

// Kill flips the identity to dead. Every handle resolving through this
// Book observes isActive()==false from this point on, without touching
// freed memory: the Book itself is kept alive by any handle still
// referencing it, Go's GC does the rest.
func (b *Book) Kill() {
	b.mu.Lock()
	b.alive = false
	b.mu.Unlock()
}

// Add allocates a new slot id and appends its Meta to the insertion order.
func (b *Book) Add(deferred bool, evaluator Enqueuer) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.metas[id] = &Meta{ID: id, Deferred: deferred, Evaluator: evaluator}
	b.order = append(b.order, id)
	if evaluator != nil {
		b.evaluators.Add(evaluator.ID())
	}
	return id
}

// Snapshot freezes the iteration domain for one emission: the ids present
// right now, in insertion order. Subscriptions added after this call are
// invisible to the emission that took this snapshot.
func (b *Book) Snapshot() []uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]uint64, len(b.order))
	copy(ids, b.order)
	return ids
}

// Lookup returns a copy of id's Meta, or ok=false if id was never issued by
// this Book or has since been physically reclaimed.
func (b *Book) Lookup(id uint64) (Meta, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.metas[id]
	if !ok {
		return Meta{}, false
	}
	return *m, true
}

// Disconnect tombstones id. Unknown or already-tombstoned ids are a no-op,
// making repeated disconnects idempotent.
func (b *Book) Disconnect(id uint64) {
	b.mu.Lock()
	if m, ok := b.metas[id]; ok {
		m.Disconnected = true
	}
	b.mu.Unlock()
}

// DisconnectAll tombstones every subscription currently known to the Book.
func (b *Book) DisconnectAll() {
	b.mu.Lock()
	for _, m := range b.metas {
		m.Disconnected = true
	}
	b.mu.Unlock()
}

// BlockConnection sets id's blocked flag and returns the value it held
// before the call. ErrUnknownHandle is returned for an id that is unknown
// or already tombstoned, or once the Book has been killed.
func (b *Book) BlockConnection(id uint64, block bool) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.metas[id]
	if !ok || m.Disconnected || !b.alive {
		return false, ErrUnknownHandle
	}
	prev := m.Blocked
	m.Blocked = block
	return prev, nil
}

// IsConnectionBlocked reports id's current blocked flag, with the same
// ErrUnknownHandle cases as BlockConnection.
func (b *Book) IsConnectionBlocked(id uint64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.metas[id]
	if !ok || m.Disconnected || !b.alive {
		return false, ErrUnknownHandle
	}
	return m.Blocked, nil
}

// HasConnection reports whether id currently addresses a live (non
// tombstoned) subscription. Deferred closures re-check this at drain time
// so a disconnect issued between emit and evaluate suppresses the call.
func (b *Book) HasConnection(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.metas[id]
	return ok && !m.Disconnected
}

// EnterEmit and ExitEmit bracket one emission. Physical reclaim of
// tombstoned records is deferred until the outermost (depth-0) emission on
// this Book finishes, so a slot disconnecting itself or another subscriber
// never invalidates the snapshot a concurrent-on-this-goroutine, reentrant
// emit is iterating.
func (b *Book) EnterEmit() {
	b.mu.Lock()
	b.depth++
	b.mu.Unlock()
}

// ExitEmit reverses EnterEmit and reclaims tombstones once the outermost
// emission on this Book has returned.
func (b *Book) ExitEmit() {
	b.mu.Lock()
	b.depth--
	if b.depth == 0 {
		b.reclaim()
	}
	b.mu.Unlock()
}

// reclaim drops tombstoned ids from both order and metas, recording them so
// TakeReclaimed can tell SignalN which per-id storage it can now drop too.
// Caller holds mu.
func (b *Book) reclaim() {
	live := b.order[:0]
	for _, id := range b.order {
		m, ok := b.metas[id]
		if ok && m.Disconnected {
			delete(b.metas, id)
			b.reclaimed = append(b.reclaimed, id)
			continue
		}
		live = append(live, id)
	}
	b.order = live
}

// TakeReclaimed returns the ids physically reclaimed by the most recent
// quiescent ExitEmit and clears the record. SignalN calls this right after
// ExitEmit so its own per-id subscription map is pruned in step with the
// Book's bookkeeping, instead of retaining closures for connections the
// Book itself no longer tracks.
func (b *Book) TakeReclaimed() []uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := b.reclaimed
	b.reclaimed = nil
	return ids
}

// Len reports the number of subscriptions currently tracked, including any
// not-yet-reclaimed tombstones.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// LiveLen reports the number of non-tombstoned subscriptions.
func (b *Book) LiveLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, id := range b.order {
		if m, ok := b.metas[id]; ok && !m.Disconnected {
			n++
		}
	}
	return n
}

// Evaluators returns the distinct evaluator identities this Book has
// deferred-connected subscriptions to, as a set for Stats reporting.
func (b *Book) Evaluators() mapset.Set[string] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.evaluators.Clone()
}
