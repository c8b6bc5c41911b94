package registry

import (
	"reflect"

	"github.com/chaosrpc/chaosrpc/wire"
	"github.com/pkg/errors"
)

// EncodeStruct writes v field by field according to its TypeSchema,
// unless v implements wire.Marshaler, in which case the override takes
// over entirely — spec.md §4.A's "a user type may override this by
// providing a pair [of MarshalWire/UnmarshalWire]".
func EncodeStruct(w *wire.Writer, v any) error {
	if m, ok := v.(wire.Marshaler); ok {
		return m.MarshalWire(w)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	schema, err := Walk(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range schema.Fields {
		if err := f.Encode(w, rv.Field(f.Index)); err != nil {
			return errors.Wrapf(err, "encoding field %q", f.Name)
		}
	}
	return nil
}

// DecodeStruct decodes into ptr (which must be a pointer) field by
// field according to its TypeSchema, unless ptr implements
// wire.Unmarshaler, in which case the override takes over entirely.
func DecodeStruct(r *wire.Reader, ptr any) error {
	if u, ok := ptr.(wire.Unmarshaler); ok {
		return u.UnmarshalWire(r)
	}
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr {
		return errors.Wrap(ErrSchemaViolation, "DecodeStruct requires a pointer")
	}
	rv = rv.Elem()
	schema, err := Walk(rv.Type())
	if err != nil {
		return err
	}
	for _, f := range schema.Fields {
		if err := f.Decode(r, rv.Field(f.Index)); err != nil {
			return errors.Wrapf(err, "decoding field %q", f.Name)
		}
	}
	return nil
}

// fieldCodec builds the Encode/Decode pair Walk stores on a
// FieldSchema, dispatching on t's reflect.Kind. It is the "default"
// half of spec.md §4.A's composite-type story: the reflective fallback
// a type uses when it does not implement wire.Marshaler/Unmarshaler.
func fieldCodec(t reflect.Type, nullable bool) (encode func(*wire.Writer, reflect.Value) error, decode func(*wire.Reader, reflect.Value) error, err error) {
	if IsOptionType(t) {
		return optionCodec(t)
	}
	if t.Kind() == reflect.Ptr {
		return pointerCodec(t, nullable)
	}
	return primitiveCodec(t)
}

// optionCodec handles wire.Option[T]: it carries its own presence tag
// independent of any outer nullable flag (spec.md §3's resolution of
// the double-tagging question), so it never wraps with an additional
// WritePresence/ReadPresence of its own here.
func optionCodec(t reflect.Type) (func(*wire.Writer, reflect.Value) error, func(*wire.Reader, reflect.Value) error, error) {
	innerEncode, innerDecode, err := primitiveCodec(t.Field(1).Type)
	if err != nil {
		return nil, nil, err
	}
	encode := func(w *wire.Writer, v reflect.Value) error {
		valid := v.Field(0).Bool()
		w.WritePresence(valid)
		if !valid {
			return nil
		}
		return innerEncode(w, v.Field(1))
	}
	decode := func(r *wire.Reader, dst reflect.Value) error {
		present, err := r.ReadPresence()
		if err != nil {
			return err
		}
		dst.Field(0).SetBool(present)
		if !present {
			return nil
		}
		return innerDecode(r, dst.Field(1))
	}
	return encode, decode, nil
}

// pointerCodec handles a plain `*T` field: nil is the field's notion of
// "no value". A nil pointer in a field that was not declared nullable
// is a schema violation the writer must catch rather than silently
// produce a malformed frame — this is spec.md §4.A's "non-nullable null"
// case.
func pointerCodec(t reflect.Type, nullable bool) (func(*wire.Writer, reflect.Value) error, func(*wire.Reader, reflect.Value) error, error) {
	elemEncode, elemDecode, err := primitiveCodec(t.Elem())
	if err != nil {
		return nil, nil, err
	}
	encode := func(w *wire.Writer, v reflect.Value) error {
		if v.IsNil() {
			if !nullable {
				return errors.Wrap(wire.ErrSchemaViolation, "non-nullable field received a null value")
			}
			w.WritePresence(false)
			return nil
		}
		if nullable {
			w.WritePresence(true)
		}
		return elemEncode(w, v.Elem())
	}
	decode := func(r *wire.Reader, dst reflect.Value) error {
		if nullable {
			present, err := r.ReadPresence()
			if err != nil {
				return err
			}
			if !present {
				dst.Set(reflect.Zero(t))
				return nil
			}
		}
		newVal := reflect.New(t.Elem())
		if err := elemDecode(r, newVal.Elem()); err != nil {
			return err
		}
		dst.Set(newVal)
		return nil
	}
	return encode, decode, nil
}

// primitiveCodec handles the scalar kinds the wire format knows about
// directly: bool, the signed/unsigned integer widths, float32/64, and
// string. A named integer type (t.PkgPath() != "") is treated as an
// enum and routed through wire.WriteEnum/ReadEnum per spec.md §4.A
// ("enums are serialized as their declared underlying integer"). A
// nested struct is encoded through EncodeStruct/DecodeStruct, so its
// wire.Marshaler/Unmarshaler override is used when it has one and its
// own fields are walked otherwise. Any other kind is ErrSchemaViolation.
func primitiveCodec(t reflect.Type) (func(*wire.Writer, reflect.Value) error, func(*wire.Reader, reflect.Value) error, error) {
	switch t.Kind() {
	case reflect.Bool:
		return func(w *wire.Writer, v reflect.Value) error { w.Bool(v.Bool()); return nil },
			func(r *wire.Reader, dst reflect.Value) error {
				b, err := r.Bool()
				if err != nil {
					return err
				}
				dst.SetBool(b)
				return nil
			}, nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if t.PkgPath() != "" {
			return enumCodec(t.Kind())
		}
		return intCodec(t.Kind())

	case reflect.Float32:
		return func(w *wire.Writer, v reflect.Value) error { w.F32(float32(v.Float())); return nil },
			func(r *wire.Reader, dst reflect.Value) error {
				f, err := r.F32()
				if err != nil {
					return err
				}
				dst.SetFloat(float64(f))
				return nil
			}, nil

	case reflect.Float64:
		return func(w *wire.Writer, v reflect.Value) error { w.F64(v.Float()); return nil },
			func(r *wire.Reader, dst reflect.Value) error {
				f, err := r.F64()
				if err != nil {
					return err
				}
				dst.SetFloat(f)
				return nil
			}, nil

	case reflect.String:
		return func(w *wire.Writer, v reflect.Value) error { w.String(v.String()); return nil },
			func(r *wire.Reader, dst reflect.Value) error {
				s, err := r.String()
				if err != nil {
					return err
				}
				dst.SetString(s)
				return nil
			}, nil

	case reflect.Struct:
		return func(w *wire.Writer, v reflect.Value) error {
				p := reflect.New(t)
				p.Elem().Set(v)
				return EncodeStruct(w, p.Interface())
			},
			func(r *wire.Reader, dst reflect.Value) error {
				p := reflect.New(t)
				if err := DecodeStruct(r, p.Interface()); err != nil {
					return err
				}
				dst.Set(p.Elem())
				return nil
			}, nil

	default:
		return nil, nil, errors.Wrapf(wire.ErrSchemaViolation, "unsupported field kind %s", t.Kind())
	}
}

func enumCodec(underlying reflect.Kind) (func(*wire.Writer, reflect.Value) error, func(*wire.Reader, reflect.Value) error, error) {
	encode := func(w *wire.Writer, v reflect.Value) error {
		return wire.WriteEnum(w, signedValue(v), underlying)
	}
	decode := func(r *wire.Reader, dst reflect.Value) error {
		iv, err := wire.ReadEnum(r, underlying)
		if err != nil {
			return err
		}
		setSignedValue(dst, iv)
		return nil
	}
	return encode, decode, nil
}

func intCodec(kind reflect.Kind) (func(*wire.Writer, reflect.Value) error, func(*wire.Reader, reflect.Value) error, error) {
	encode := func(w *wire.Writer, v reflect.Value) error {
		return wire.WriteEnum(w, signedValue(v), kind)
	}
	decode := func(r *wire.Reader, dst reflect.Value) error {
		iv, err := wire.ReadEnum(r, kind)
		if err != nil {
			return err
		}
		setSignedValue(dst, iv)
		return nil
	}
	return encode, decode, nil
}

// signedValue and setSignedValue bridge reflect's separate signed/
// unsigned accessors so enumCodec/intCodec can share one int64-based
// implementation for both families, matching wire.WriteEnum/ReadEnum's
// own int64-based signature.
func signedValue(v reflect.Value) int64 {
	if v.Kind() >= reflect.Uint8 && v.Kind() <= reflect.Uint64 {
		return int64(v.Uint())
	}
	return v.Int()
}

func setSignedValue(dst reflect.Value, v int64) {
	if dst.Kind() >= reflect.Uint8 && dst.Kind() <= reflect.Uint64 {
		dst.SetUint(uint64(v))
		return
	}
	dst.SetInt(v)
}
