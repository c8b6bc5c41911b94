package chaosrpc

import (
	"reflect"

	"github.com/chaosrpc/chaosrpc/registry"
	"github.com/chaosrpc/chaosrpc/wire"
	"github.com/pkg/errors"
)

// Call accumulates one outbound invocation's bytes between BeginCall and
// CompleteCall, per spec.md §4.D/§4.E.
type Call struct {
	w      *wire.Writer
	callID uint8
}

// Writer exposes the accumulating wire.Writer so a proxy stub can push
// arguments in declaration order, type-directed against the parameter
// schema (spec.md §4.D step 2).
func (c *Call) Writer() *wire.Writer {
	return c.w
}

// CallID returns the call-id allocated for this call, or 0 if the
// method's return shape is ReturnNone (fire-and-forget calls never
// occupy a call-id).
func (c *Call) CallID() uint8 {
	return c.callID
}

// PushArg is a type-directed helper a generated proxy stub calls once
// per declared parameter, in order. It exists to give §4.D's "push_arg"
// step a concrete name; generated code is equally free to call
// c.Writer() directly.
//
// param is the parameter's descriptor from the same InterfaceDescriptor
// the proxy was generated from; PushArg consults its
// EffectiveNullable() before delegating to encode, raising
// wire.ErrSchemaViolation for a nil/zero-kind value on a parameter that
// was not declared nullable (spec.md §4.A's "non-nullable null" case).
// param may be nil for call sites with no descriptor to consult (tests
// exercising the raw wire format), in which case no check is made.
func PushArg[T any](c *Call, param *registry.ParameterDescriptor, v T, encode func(*wire.Writer, T) error) error {
	if err := checkNullableArg(param, v); err != nil {
		return err
	}
	return encode(c.w, v)
}

func checkNullableArg(param *registry.ParameterDescriptor, v any) error {
	if param == nil || param.EffectiveNullable() {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return errors.Wrapf(wire.ErrSchemaViolation, "parameter %q is not nullable but received a nil value", param.Name)
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return errors.Wrapf(wire.ErrSchemaViolation, "parameter %q is not nullable but received a nil value", param.Name)
		}
	}
	return nil
}
