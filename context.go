package chaosrpc

import (
	"github.com/chaosrpc/chaosrpc/future"
	"github.com/chaosrpc/chaosrpc/registry"
	"github.com/google/uuid"
)

// HandlerCallContext is assembled once per inbound call frame and
// passed to the OnBeforeHandlerCall/OnAfterHandlerCall observer hooks,
// per spec.md §4.E. Session is the opaque per-peer context the hosting
// application threads through dispatch (spec.md §1's "session object",
// out of the core's contract) — the Endpoint never inspects it.
type HandlerCallContext struct {
	Interface *registry.InterfaceDescriptor

	// Handler is the concrete handler instance bound to Interface — the
	// object RegisterHandler was given, not the dispatch closure — so
	// an observer can type-assert it down to whatever concrete type it
	// needs (spec.md §4.E's call-context tuple names it explicitly).
	Handler any

	Method  *registry.MethodDescriptor
	CallID  uint8
	Session any
	Result  future.Completer

	// TraceID correlates this call's log lines. It has no wire
	// representation and no protocol meaning — it exists purely for
	// structured logging (see Endpoint's logrus usage) and is
	// generated fresh per ReceiveData call.
	TraceID uuid.UUID
}
