package wire

import (
	"reflect"

	"github.com/pkg/errors"
)

// WriteEnum writes v, the integer value of an enum constant, using its
// declared underlying integer type — spec.md §4.A's "enums are
// serialized as their declared underlying integer", not as a string or
// a varint. underlying must be one of the eight integer reflect.Kinds;
// anything else is a schema authoring mistake, not a data problem, so
// it is reported as ErrInvalidEnumUnderlyingType rather than silently
// truncating v.
func WriteEnum(w *Writer, v int64, underlying reflect.Kind) error {
	switch underlying {
	case reflect.Int8:
		w.I8(int8(v))
	case reflect.Uint8:
		w.U8(uint8(v))
	case reflect.Int16:
		w.I16(int16(v))
	case reflect.Uint16:
		w.U16(uint16(v))
	case reflect.Int32:
		w.I32(int32(v))
	case reflect.Uint32:
		w.U32(uint32(v))
	case reflect.Int64:
		w.I64(v)
	case reflect.Uint64:
		w.U64(uint64(v))
	default:
		return errors.Wrapf(ErrInvalidEnumUnderlyingType, "kind %s", underlying)
	}
	return nil
}

// ReadEnum reads back an enum value written by WriteEnum, sign- or
// zero-extended to int64 according to underlying.
func ReadEnum(r *Reader, underlying reflect.Kind) (int64, error) {
	switch underlying {
	case reflect.Int8:
		v, err := r.I8()
		return int64(v), err
	case reflect.Uint8:
		v, err := r.U8()
		return int64(v), err
	case reflect.Int16:
		v, err := r.I16()
		return int64(v), err
	case reflect.Uint16:
		v, err := r.U16()
		return int64(v), err
	case reflect.Int32:
		v, err := r.I32()
		return int64(v), err
	case reflect.Uint32:
		v, err := r.U32()
		return int64(v), err
	case reflect.Int64:
		return r.I64()
	case reflect.Uint64:
		v, err := r.U64()
		return int64(v), err
	default:
		return 0, errors.Wrapf(ErrInvalidEnumUnderlyingType, "kind %s", underlying)
	}
}
