package registry

import "reflect"

// ReturnShape determines both whether a call occupies a call-id and the
// response frame's payload layout, per spec.md §3.
type ReturnShape int

const (
	// ReturnNone is a fire-and-forget method: no call-id, no response.
	ReturnNone ReturnShape = iota
	// ReturnFutureUnit completes with no value, on success only.
	ReturnFutureUnit
	// ReturnFutureTyped completes with a value T, on success only.
	ReturnFutureTyped
	// ReturnFutureErrUnit completes with no value or an error.
	ReturnFutureErrUnit
	// ReturnFutureErrTyped completes with a value T or an error.
	ReturnFutureErrTyped
)

// HasCallID reports whether a method of this return shape occupies a
// call-id and a pending-future table slot.
func (s ReturnShape) HasCallID() bool {
	return s != ReturnNone
}

// ParameterDescriptor describes one method argument's wire shape.
type ParameterDescriptor struct {
	Name string
	Type reflect.Type
	// Nullable is explicit nullability. An Option[T]-typed parameter is
	// implicitly nullable regardless of this flag (spec.md §3) — see
	// IsOptionType.
	Nullable bool
}

// EffectiveNullable reports whether this parameter is framed with a
// presence tag: either explicitly flagged, or implicitly nullable
// because its Go type is wire.Option[T].
func (p ParameterDescriptor) EffectiveNullable() bool {
	return p.Nullable || IsOptionType(p.Type)
}

// MethodDescriptor describes one method of an interface: its stable
// index within the interface, its ordered parameters, and its return
// shape.
type MethodDescriptor struct {
	Index       uint8
	Name        string
	Parameters  []ParameterDescriptor
	ReturnShape ReturnShape
	// ReturnType is the T in future_typed<T>/future_err_typed<T>; nil
	// for the unit variants and ReturnNone.
	ReturnType reflect.Type
}

// InterfaceDescriptor describes one named service interface: its stable
// 7-bit ordinal and its ordered methods.
type InterfaceDescriptor struct {
	Ordinal uint8
	Name    string
	Methods []MethodDescriptor
}

// Method looks up a method by its stable index within this interface.
func (d *InterfaceDescriptor) Method(index uint8) (*MethodDescriptor, bool) {
	for i := range d.Methods {
		if d.Methods[i].Index == index {
			return &d.Methods[i], true
		}
	}
	return nil, false
}
