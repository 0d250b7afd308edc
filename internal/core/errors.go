package core

import "errors"

// ErrUnknownHandle is returned when a ConnectionHandle does not address a
// live subscription of the signal it is asked about: the subscription was
// disconnected, belonged to a signal that has since been closed, or the
// handle was never connected to anything.
var ErrUnknownHandle = errors.New("sigcore: handle does not address a live connection")

// ErrReentrantEvaluate is returned by EvaluateDeferredConnections when it is
// called while a drain of the same evaluator is already in progress, whether
// from within a closure being drained or from another goroutine.
var ErrReentrantEvaluate = errors.New("sigcore: reentrant evaluation of the same connection evaluator")
