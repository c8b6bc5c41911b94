package chaosrpc

import "github.com/pkg/errors"

// Sentinel errors the Endpoint raises, per spec.md §7. Each is wrapped
// with github.com/pkg/errors at the raising site so callers can both
// errors.Is against the sentinel and inspect a stack trace.
var (
	// ErrProtocolViolation is raised when a call frame names a method
	// index its interface does not have, or a response frame carries
	// call-id 0 or a call-id absent from the pending table. A call for
	// an ordinal with no bound handler raises ErrUnknownHandler instead.
	ErrProtocolViolation = errors.New("chaosrpc: protocol violation")

	// ErrUnknownHandler is raised when a call frame targets an
	// interface ordinal with no registered handler.
	ErrUnknownHandler = errors.New("chaosrpc: unknown handler")

	// ErrCallIdExhausted is raised when the call-id the allocator's
	// counter advances to is still outstanding. The allocator does not
	// scan for another free id, so this can happen with fewer than 127
	// calls outstanding.
	ErrCallIdExhausted = errors.New("chaosrpc: call-id exhausted")

	// ErrHandlerAlreadyBound is raised by RegisterHandler when an
	// ordinal already has a handler bound and RemoveHandler was not
	// called first.
	ErrHandlerAlreadyBound = errors.New("chaosrpc: handler already bound for ordinal")

	// ErrHandlerException wraps a fault surfaced by handler body
	// execution; the Endpoint propagates it to the caller of
	// ReceiveData without attempting to translate it into a response.
	ErrHandlerException = errors.New("chaosrpc: handler exception")
)
