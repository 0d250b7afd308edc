// Package sigcore provides a typed signal/slot dispatch core: objects
// broadcast typed events ("signals") to a dynamically managed set of
// subscribers ("slots") with precise lifetime, identity, and concurrency
// semantics.
//
// Three types compose the core. SignalN (N = 0..3, one concrete type per
// argument count since Go has no variadic generics) is the typed multicast
// point: connect slots, emit synchronously, block or disconnect a
// subscription through a stable handle. ConnectionHandle is an opaque,
// copyable reference to one subscription that stays valid across a
// signal's Move and becomes inert once the subscription or its owning
// signal is gone. ConnectionEvaluator is a thread-safe FIFO queue shared by
// any number of signals: a deferred subscription enqueues a closure instead
// of running inline, and some goroutine later drains the queue by calling
// EvaluateDeferredConnections.
//
// No internal goroutine is spawned by the core itself; all concurrency is
// caller-driven. See AutoDispatcher for an opt-in wrapper that owns a
// drain loop.
//
// Quick example:
//
//	s := sigcore.NewSignal2[string, int]()
//	s.Connect(func(msg string, code int) {
//	    fmt.Println(msg, code)
//	})
//	s.Emit("answer", 42)
package sigcore
