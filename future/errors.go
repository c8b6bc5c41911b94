// Package future implements the four deferred-result variants chaosrpc
// handlers return and callers consume: unit-success, typed-success,
// unit-with-error, typed-with-error. All four share the same
// invariants (spec.md §3/§4.C): once complete, neither result nor error
// ever changes; a callback registered after completion fires
// synchronously with the stored values; a future completes at most
// once.
package future

import "github.com/pkg/errors"

// ErrNotReady is returned by a result/error accessor called before the
// future has completed.
var ErrNotReady = errors.New("future: not ready")
