package registry_test

import (
	"reflect"
	"testing"

	"github.com/chaosrpc/chaosrpc/registry"
	"github.com/chaosrpc/chaosrpc/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicateOrdinal(t *testing.T) {
	reg := registry.New()
	desc := registry.InterfaceDescriptor{Ordinal: 1, Name: "A"}
	require.NoError(t, reg.Register(desc))
	err := reg.Register(registry.InterfaceDescriptor{Ordinal: 1, Name: "B"})
	assert.ErrorIs(t, err, registry.ErrDuplicateOrdinal)
}

func TestRegisterRejectsOrdinalOutOfRange(t *testing.T) {
	cases := []uint8{0, 128, 255}
	for _, ord := range cases {
		reg := registry.New()
		err := reg.Register(registry.InterfaceDescriptor{Ordinal: ord, Name: "X"})
		assert.ErrorIsf(t, err, registry.ErrInvalidOrdinal, "ordinal %d", ord)
	}
}

func TestRegisterRejectsNullableOptionDoubleTagging(t *testing.T) {
	reg := registry.New()
	desc := registry.InterfaceDescriptor{
		Ordinal: 5,
		Name:    "Bad",
		Methods: []registry.MethodDescriptor{{
			Index: 0,
			Name:  "M",
			Parameters: []registry.ParameterDescriptor{{
				Name:     "p",
				Type:     reflect.TypeOf(wire.Option[int32]{}),
				Nullable: true,
			}},
		}},
	}
	assert.ErrorIs(t, reg.Register(desc), registry.ErrSchemaViolation)
}

func TestRegisterAllowsOptionTypeWithoutNullableFlag(t *testing.T) {
	reg := registry.New()
	desc := registry.InterfaceDescriptor{
		Ordinal: 5,
		Name:    "Good",
		Methods: []registry.MethodDescriptor{{
			Index: 0,
			Name:  "M",
			Parameters: []registry.ParameterDescriptor{{
				Name: "p",
				Type: reflect.TypeOf(wire.Option[int32]{}),
			}},
		}},
	}
	require.NoError(t, reg.Register(desc))
	iface, ok := reg.Interface(5)
	require.True(t, ok, "expected interface to be registered")
	assert.True(t, iface.Methods[0].Parameters[0].EffectiveNullable(), "expected Option[T] parameter to be effectively nullable")
}

func TestMethodLookup(t *testing.T) {
	reg := registry.New()
	desc := registry.InterfaceDescriptor{
		Ordinal: 3,
		Name:    "Calc",
		Methods: []registry.MethodDescriptor{
			{Index: 0, Name: "Add", ReturnShape: registry.ReturnFutureTyped},
			{Index: 1, Name: "Ping", ReturnShape: registry.ReturnFutureUnit},
		},
	}
	require.NoError(t, reg.Register(desc))
	m, ok := reg.Method(3, 1)
	require.True(t, ok)
	assert.Equal(t, "Ping", m.Name)

	_, ok = reg.Method(3, 9)
	assert.False(t, ok, "expected method 9 to be absent")

	_, ok = reg.Method(99, 0)
	assert.False(t, ok, "expected unregistered ordinal 99 to be absent")
}

type point struct {
	X, Y int32
	tag  string // unexported, must be skipped by Walk
}

type taggedPoint struct {
	X int32
	Y int32 `wire:"nullable"`
}

type optionPoint struct {
	X int32
	Y wire.Option[int32]
}

type rank int16

type rankedPoint struct {
	X    int32
	Rank rank
}

func TestWalkOrdersExportedFieldsAndSkipsUnexported(t *testing.T) {
	schema, err := registry.Walk(reflect.TypeOf(point{}))
	require.NoError(t, err)
	require.Len(t, schema.Fields, 2, "expected 2 exported fields, got %+v", schema.Fields)
	assert.Equal(t, "X", schema.Fields[0].Name)
	assert.Equal(t, "Y", schema.Fields[1].Name)
}

func TestWalkHonorsNullableTag(t *testing.T) {
	schema, err := registry.Walk(reflect.TypeOf(taggedPoint{}))
	require.NoError(t, err)
	assert.False(t, schema.Fields[0].Nullable, "X has no wire tag, should not be nullable")
	assert.True(t, schema.Fields[1].Nullable, "Y is tagged wire:\"nullable\", should be nullable")
}

func TestWalkRejectsNullableTagOnOptionField(t *testing.T) {
	type badPoint struct {
		X int32
		Y wire.Option[int32] `wire:"nullable"`
	}
	_, err := registry.Walk(reflect.TypeOf(badPoint{}))
	assert.ErrorIs(t, err, registry.ErrSchemaViolation)
}

func TestWalkTreatsBareOptionFieldAsImplicitlyNullable(t *testing.T) {
	schema, err := registry.Walk(reflect.TypeOf(optionPoint{}))
	require.NoError(t, err)
	assert.True(t, schema.Fields[1].Nullable, "Option[T] field should be implicitly nullable without a tag")
}

func TestWalkBuildsEncodeDecodeClosuresForEveryField(t *testing.T) {
	schema, err := registry.Walk(reflect.TypeOf(point{}))
	require.NoError(t, err)
	for _, f := range schema.Fields {
		assert.NotNilf(t, f.Encode, "field %q missing Encode", f.Name)
		assert.NotNilf(t, f.Decode, "field %q missing Decode", f.Name)
	}
}

func TestEncodeDecodeStructRoundTripsDefaultSchemaWithEnumField(t *testing.T) {
	in := rankedPoint{X: 7, Rank: rank(2)}
	w := wire.NewWriter()
	require.NoError(t, registry.EncodeStruct(w, in))

	var out rankedPoint
	r := wire.NewReader(w.Bytes())
	require.NoError(t, registry.DecodeStruct(r, &out))
	assert.Equal(t, in, out)
}

func TestEncodeStructRejectsUnsupportedFieldKind(t *testing.T) {
	type unsupported struct {
		Ch chan int
	}
	w := wire.NewWriter()
	err := registry.EncodeStruct(w, unsupported{Ch: make(chan int)})
	assert.ErrorIs(t, err, wire.ErrSchemaViolation)
}

func TestEncodeStructRejectsNonNullablePointerField(t *testing.T) {
	type withPtr struct {
		P *int32
	}
	w := wire.NewWriter()
	err := registry.EncodeStruct(w, withPtr{P: nil})
	assert.ErrorIs(t, err, wire.ErrSchemaViolation)
}

type summary struct {
	Count int32
}

func (s summary) MarshalWire(w *wire.Writer) error {
	w.I32(s.Count)
	return nil
}

func (s *summary) UnmarshalWire(r *wire.Reader) error {
	v, err := r.I32()
	if err != nil {
		return err
	}
	s.Count = v
	return nil
}

func TestEncodeDecodeStructUsesMarshalerOverrideWhenPresent(t *testing.T) {
	w := wire.NewWriter()
	require.NoError(t, registry.EncodeStruct(w, summary{Count: 9}))

	var out summary
	r := wire.NewReader(w.Bytes())
	require.NoError(t, registry.DecodeStruct(r, &out))
	assert.Equal(t, int32(9), out.Count)
}

func TestReturnShapeHasCallID(t *testing.T) {
	assert.False(t, registry.ReturnNone.HasCallID(), "ReturnNone should not occupy a call-id")
	shapes := []registry.ReturnShape{
		registry.ReturnFutureUnit,
		registry.ReturnFutureTyped,
		registry.ReturnFutureErrUnit,
		registry.ReturnFutureErrTyped,
	}
	for _, s := range shapes {
		assert.Truef(t, s.HasCallID(), "shape %v should occupy a call-id", s)
	}
}
