package registry

import (
	"reflect"
	"strings"

	"github.com/chaosrpc/chaosrpc/wire"
	"github.com/pkg/errors"
)

// FieldSchema describes one field or read-write property slot of a
// composite user type, in the declaration order it was walked — that
// order is load-bearing (spec.md §4.A) and frozen the moment Walk runs.
// Index is the field's index in the original reflect.Type, which
// EncodeStruct/DecodeStruct use to read/write the right
// reflect.Value even though unexported fields were skipped from Fields.
type FieldSchema struct {
	Name     string
	Index    int
	Type     reflect.Type
	Nullable bool

	// Encode and Decode drive the codec's reflective fallback path
	// (EncodeStruct/DecodeStruct) for a type with no wire.Marshaler
	// override. They are built once by Walk from the field's static
	// type, so the per-value encode/decode calls in the hot path never
	// need to re-inspect reflect.Kind.
	Encode func(w *wire.Writer, v reflect.Value) error
	Decode func(r *wire.Reader, dst reflect.Value) error
}

// TypeSchema is the concatenation, in registration order, of a
// composite type's fields (spec.md §4.A). It drives the codec's
// reflective fallback path for types that don't implement
// wire.Marshaler/wire.Unmarshaler.
type TypeSchema struct {
	Type   reflect.Type
	Fields []FieldSchema
}

// wirePkgPath is the import path of the package declaring wire.Option[T],
// whose instantiations are two-field structs {Valid bool; Value T}.
const wirePkgPath = "github.com/chaosrpc/chaosrpc/wire"

// IsOptionType reports whether t is an instantiation of wire.Option[T].
// Such a field is implicitly nullable (spec.md §3) and carries its own
// presence tag, so it must never also be marked Nullable on the
// ParameterDescriptor/FieldSchema — see Registry.Register.
func IsOptionType(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	if t.PkgPath() != wirePkgPath {
		return false
	}
	if !strings.HasPrefix(t.Name(), "Option[") {
		return false
	}
	if t.NumField() != 2 {
		return false
	}
	return t.Field(0).Name == "Valid" && t.Field(1).Name == "Value"
}

// Walk builds a TypeSchema for t by enumerating its exported fields in
// Go declaration order (reflect.Type.Field(i) already walks in source
// order, which is exactly the determinism spec.md §4.A requires: "the
// same order on both peers", "source-declaration order, not hash
// order"). A field tagged `wire:"nullable"` is framed with a presence
// tag; a field whose type is wire.Option[T] is implicitly nullable and
// must not also carry the tag (ErrSchemaViolation).
func Walk(t reflect.Type) (*TypeSchema, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	schema := &TypeSchema{Type: t}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported, not part of the wire shape
		}
		_, tagged := f.Tag.Lookup("wire")
		nullableTag := false
		if tagged {
			nullableTag = hasOption(f.Tag.Get("wire"), "nullable")
		}
		if nullableTag && IsOptionType(f.Type) {
			return nil, ErrSchemaViolation
		}
		nullable := nullableTag || IsOptionType(f.Type)
		encode, decode, err := fieldCodec(f.Type, nullable)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q of %s", f.Name, t.Name())
		}
		schema.Fields = append(schema.Fields, FieldSchema{
			Name:     f.Name,
			Index:    i,
			Type:     f.Type,
			Nullable: nullable,
			Encode:   encode,
			Decode:   decode,
		})
	}
	return schema, nil
}

func hasOption(tag, name string) bool {
	for _, part := range strings.Split(tag, ",") {
		if part == name {
			return true
		}
	}
	return false
}
