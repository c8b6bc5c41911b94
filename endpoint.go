package chaosrpc

import (
	"sync"

	"github.com/chaosrpc/chaosrpc/future"
	"github.com/chaosrpc/chaosrpc/registry"
	"github.com/chaosrpc/chaosrpc/wire"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Endpoint is a bidirectional RPC peer: it frames and sends outbound
// proxy calls, and parses and dispatches inbound ones to registered
// handlers, correlating responses with pending futures by call-id. It
// is built around one Registry; all of BeginCall/PushArg/CompleteCall/
// ReceiveData are meant to be called from a single owning goroutine
// (spec.md §5) — the mutex below guards against accidental concurrent
// misuse, it is not a concurrency feature.
type Endpoint struct {
	mu sync.Mutex

	registry    *registry.Registry
	handlers    map[uint8]HandlerBinding
	pending     map[uint8]future.Completer
	callCounter uint8

	proxies sync.Map // ordinal -> any, memoized GetProxy results

	// OnDataOut is invoked once per emitted message, with a contiguous
	// buffer the callback must finish reading synchronously or copy.
	OnDataOut func(buf []byte)

	// OnBeforeHandlerCall and OnAfterHandlerCall are observer hooks
	// firing around handler invocation during ReceiveData's call
	// dispatch path.
	OnBeforeHandlerCall func(*HandlerCallContext)
	OnAfterHandlerCall  func(*HandlerCallContext)

	// Log receives structured diagnostics (dispatch errors, handler
	// exceptions). Defaults to logrus.StandardLogger() if nil.
	Log *logrus.Logger
}

// NewEndpoint returns an Endpoint bound to reg. reg may be shared with
// the peer's own Endpoint if both sides agree on the same interface
// catalogue, or built independently as long as ordinals and method
// indices match (spec.md §4.B).
func NewEndpoint(reg *registry.Registry) *Endpoint {
	return &Endpoint{
		registry: reg,
		handlers: make(map[uint8]HandlerBinding),
		pending:  make(map[uint8]future.Completer),
	}
}

func (ep *Endpoint) logger() *logrus.Logger {
	if ep.Log != nil {
		return ep.Log
	}
	return logrus.StandardLogger()
}

// RegisterHandler binds one or more interface ordinals to their
// dispatch closures. It fails, binding nothing, if any ordinal in
// bindings is already bound — register_handler's all-or-nothing
// contract for a handler implementing several interfaces at once.
func (ep *Endpoint) RegisterHandler(bindings ...HandlerBinding) error {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	for _, b := range bindings {
		if _, exists := ep.handlers[b.Interface.Ordinal]; exists {
			return errors.Wrapf(ErrHandlerAlreadyBound, "ordinal %d (%s)", b.Interface.Ordinal, b.Interface.Name)
		}
	}
	for _, b := range bindings {
		ep.handlers[b.Interface.Ordinal] = b
	}
	return nil
}

// RemoveHandler unbinds the handler registered for ordinal, if any.
func (ep *Endpoint) RemoveHandler(ordinal uint8) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	delete(ep.handlers, ordinal)
}

// GetProxy returns the cached proxy stub for ordinal, constructing it
// via construct on first use. This is the table-backed stand-in for
// spec.md §4.E's "get_proxy<I>() → Proxy<I>" in a language without
// runtime bytecode emission: callers supply their own generated
// constructor once, per interface.
func GetProxy[P any](ep *Endpoint, ordinal uint8, construct func(*Endpoint) P) P {
	if v, ok := ep.proxies.Load(ordinal); ok {
		return v.(P)
	}
	p := construct(ep)
	actual, _ := ep.proxies.LoadOrStore(ordinal, p)
	return actual.(P)
}

// nextCallID implements spec.md §3's call-id allocator: a monotonic
// counter, incremented before use, wrapping 128->1 (0 reserved), that
// fails immediately — no scanning for a free slot — if the resulting id
// is already outstanding. Caller must hold ep.mu.
func (ep *Endpoint) nextCallID() (uint8, error) {
	ep.callCounter++
	if ep.callCounter >= 128 {
		ep.callCounter = 1
	}
	if _, exists := ep.pending[ep.callCounter]; exists {
		return 0, ErrCallIdExhausted
	}
	return ep.callCounter, nil
}

// BeginCall starts an outbound call: it resolves the interface ordinal
// and method descriptor via the caller-supplied arguments, writes the
// header byte and method index, and — when the method's return shape
// occupies a call-id — allocates one, inserts result into the pending
// table keyed by it, and writes the call-id byte. result must be nil
// for a ReturnNone method and non-nil otherwise.
func (ep *Endpoint) BeginCall(ordinal uint8, method *registry.MethodDescriptor, result future.Completer) (*Call, error) {
	w := wire.NewWriter()
	w.U8(ordinal & 0x7f)
	w.U8(method.Index)

	if !method.ReturnShape.HasCallID() {
		return &Call{w: w}, nil
	}

	ep.mu.Lock()
	id, err := ep.nextCallID()
	if err != nil {
		ep.mu.Unlock()
		return nil, errors.Wrapf(err, "interface %d method %d", ordinal, method.Index)
	}
	ep.pending[id] = result
	ep.mu.Unlock()

	w.U8(id)
	return &Call{w: w, callID: id}, nil
}

// CompleteCall flushes the accumulated call bytes via OnDataOut.
func (ep *Endpoint) CompleteCall(c *Call) {
	if ep.OnDataOut != nil {
		ep.OnDataOut(c.w.Bytes())
	}
}

// ReceiveData parses exactly one framed message: a call frame (header
// bit 7 clear) is decoded and dispatched to a registered handler; a
// response frame (header bit 7 set) is matched by call-id against the
// pending table and used to complete the corresponding future.
func (ep *Endpoint) ReceiveData(buf []byte, session any) error {
	if len(buf) == 0 {
		return errors.Wrap(wire.ErrTruncatedInput, "empty message")
	}
	header := buf[0]
	r := wire.NewReader(buf[1:])
	if header&0x80 == 0 {
		return ep.dispatchCall(header&0x7f, r, session)
	}
	return ep.dispatchResponse(header&0x7f, r)
}

func (ep *Endpoint) dispatchCall(ordinal uint8, r *wire.Reader, session any) error {
	traceID := uuid.New()

	methodIndex, err := r.U8()
	if err != nil {
		return errors.Wrap(err, "chaosrpc: reading method index")
	}

	ep.mu.Lock()
	binding, ok := ep.handlers[ordinal]
	ep.mu.Unlock()
	if !ok {
		ep.logger().WithFields(logrus.Fields{"ordinal": ordinal, "trace_id": traceID}).Warn("chaosrpc: call for unregistered interface")
		return errors.Wrapf(ErrUnknownHandler, "ordinal %d", ordinal)
	}

	method, ok := binding.Interface.Method(methodIndex)
	if !ok {
		return errors.Wrapf(ErrProtocolViolation, "unknown method %d on interface %d", methodIndex, ordinal)
	}

	var callID uint8
	if method.ReturnShape.HasCallID() {
		callID, err = r.U8()
		if err != nil {
			return errors.Wrap(err, "chaosrpc: reading call-id")
		}
	}

	hctx := &HandlerCallContext{
		Interface: binding.Interface,
		Handler:   binding.Handler,
		Method:    method,
		CallID:    callID,
		Session:   session,
		TraceID:   traceID,
	}
	if ep.OnBeforeHandlerCall != nil {
		ep.OnBeforeHandlerCall(hctx)
	}

	result, err := binding.Dispatch(session, method, r)
	if err != nil {
		ep.logger().WithFields(logrus.Fields{
			"interface": binding.Interface.Name,
			"method":    method.Name,
			"trace_id":  traceID,
		}).WithError(err).Error("chaosrpc: handler exception")
		return errors.Wrapf(ErrHandlerException, "interface %q method %q: %v", binding.Interface.Name, method.Name, err)
	}
	hctx.Result = result

	if method.ReturnShape.HasCallID() && result != nil {
		w := wire.NewWriter()
		w.U8(0x80 | callID)
		if err := result.WriteResult(w); err != nil {
			return errors.Wrap(err, "chaosrpc: encoding response")
		}
		if ep.OnDataOut != nil {
			ep.OnDataOut(w.Bytes())
		}
	}

	if ep.OnAfterHandlerCall != nil {
		ep.OnAfterHandlerCall(hctx)
	}
	return nil
}

func (ep *Endpoint) dispatchResponse(callID uint8, r *wire.Reader) error {
	if callID == 0 {
		return errors.Wrap(ErrProtocolViolation, "response with call-id 0")
	}

	ep.mu.Lock()
	completer, ok := ep.pending[callID]
	if ok {
		delete(ep.pending, callID)
	}
	ep.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrProtocolViolation, "unknown call-id %d", callID)
	}

	return completer.CompleteFrom(r)
}
