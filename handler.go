package chaosrpc

import (
	"github.com/chaosrpc/chaosrpc/future"
	"github.com/chaosrpc/chaosrpc/registry"
	"github.com/chaosrpc/chaosrpc/wire"
)

// DispatchFunc decodes one method's arguments from r against the
// method descriptor's parameter schema, invokes the handler, and
// returns whatever the handler returned as a future.Completer (nil for
// a ReturnNone method). A generated handler adapter closes over the
// concrete handler object and the interface's generated argument
// decoding; this is the "uniform runtime dispatch table keyed by method
// index" spec.md §9 allows in place of bytecode-generated proxies.
type DispatchFunc func(session any, method *registry.MethodDescriptor, r *wire.Reader) (future.Completer, error)

// HandlerBinding pairs an interface descriptor with the dispatch
// closure that serves it. RegisterHandler accepts one or more bindings
// so a single handler object implementing several interfaces can be
// bound to all of its ordinals atomically, per spec.md §3's Handler
// Binding.
type HandlerBinding struct {
	Interface *registry.InterfaceDescriptor

	// Handler is the concrete handler object Dispatch closes over. It
	// is carried separately (rather than recovered from the closure)
	// so dispatch can populate HandlerCallContext.Handler for
	// OnBeforeHandlerCall/OnAfterHandlerCall observers.
	Handler any

	Dispatch DispatchFunc
}
