package sigcore

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	mapset "github.com/deckarep/golang-set/v2"
)

// Stats is a point-in-time introspection snapshot of one SignalN. It names
// no types in its own right - a monitoring or debug layer can read it
// without caring which arity produced it.
type Stats struct {
	// SignalID is the signal's identity, stable across Move/Absorb.
	SignalID string

	// LiveCount is the number of non-disconnected subscriptions.
	LiveCount int

	// PendingReclaim is the number of tombstoned subscriptions not yet
	// physically reclaimed. Reclaim runs only when the outermost Emit on
	// the signal returns, so a disconnect stays pending until then.
	PendingReclaim int

	// Evaluators is the set of distinct ConnectionEvaluator identities this
	// signal has deferred-connected subscriptions to.
	Evaluators mapset.Set[string]

	// SlotSignatures groups attached slots by a fast hash of their
	// underlying function identity, without retaining the callables
	// themselves.
	SlotSignatures map[uint64]int
}

// String renders a human-readable one-line summary, suitable for inclusion
// in a log message.
func (s Stats) String() string {
	return fmt.Sprintf(
		"signal %s: %s live, %s pending reclaim, %s evaluators, %s distinct slots",
		s.SignalID,
		humanize.Comma(int64(s.LiveCount)),
		humanize.Comma(int64(s.PendingReclaim)),
		humanize.Comma(int64(s.Evaluators.Cardinality())),
		humanize.Comma(int64(len(s.SlotSignatures))),
	)
}

// slotSignature hashes a callable's entry-point address with xxhash, giving
// a cheap, stable-for-the-process-lifetime grouping key for Stats without
// requiring the callable to be comparable or retained.
func slotSignature(fn any) uint64 {
	ptr := reflect.ValueOf(fn).Pointer()
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(ptr >> (8 * i))
	}
	return xxhash.Sum64(buf[:])
}
