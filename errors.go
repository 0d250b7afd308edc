package sigcore

import "github.com/zoobzio/sigcore/internal/core"

// ErrUnknownHandle is returned by BlockConnection, IsConnectionBlocked, and
// NewConnectionBlocker when the handle does not address a live subscription
// of the signal: it was disconnected, belongs to a signal that has been
// closed, or is a zero-value handle. Disconnect never returns this error -
// disconnecting a dead handle is silently idempotent.
var ErrUnknownHandle = core.ErrUnknownHandle

// ErrReentrantEvaluate is returned by (*ConnectionEvaluator).EvaluateDeferredConnections
// when it is called while a drain of the same evaluator is already in
// progress, from that drain's own closures or from any other goroutine.
var ErrReentrantEvaluate = core.ErrReentrantEvaluate
