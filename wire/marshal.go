package wire

// Marshaler is implemented by user types that want full control over
// their own wire encoding, overriding the registry's default
// declaration-order field walk (spec.md §4.A: "A user type may override
// this by providing a pair").
type Marshaler interface {
	MarshalWire(w *Writer) error
}

// Unmarshaler is the decode half of the override pair. It is called on
// a freshly zeroed value ("a constructor taking a reader"), and must be
// consistent with MarshalWire: writing then reading round-trips to an
// equal value.
type Unmarshaler interface {
	UnmarshalWire(r *Reader) error
}

// Option is compositional nullability for a value nested inside a
// composite type: it carries its own presence tag independent of any
// nullable flag the enclosing ParameterDescriptor declares. The
// registry rejects (ErrSchemaViolation) a field that is both declared
// nullable AND typed as an Option[T], so the presence tag is never
// written twice for the same logical field — see SPEC_FULL.md §3's
// resolution of the option<T> double-tagging question.
type Option[T any] struct {
	Valid bool
	Value T
}

// Some wraps v as present.
func Some[T any](v T) Option[T] {
	return Option[T]{Valid: true, Value: v}
}

// None returns an absent Option[T].
func None[T any]() Option[T] {
	return Option[T]{}
}

// WriteOption writes o's presence tag and, if present, its payload via
// write.
func WriteOption[T any](w *Writer, o Option[T], write func(*Writer, T) error) error {
	w.WritePresence(o.Valid)
	if !o.Valid {
		return nil
	}
	return write(w, o.Value)
}

// ReadOption reads a presence tag and, if present, decodes the payload
// via read.
func ReadOption[T any](r *Reader, read func(*Reader) (T, error)) (Option[T], error) {
	present, err := r.ReadPresence()
	if err != nil {
		return Option[T]{}, err
	}
	if !present {
		return Option[T]{}, nil
	}
	v, err := read(r)
	if err != nil {
		return Option[T]{}, err
	}
	return Some(v), nil
}
