package future

import "github.com/chaosrpc/chaosrpc/wire"

// Completer is how the Endpoint interacts with a pending future without
// knowing its concrete type parameter: WriteResult serializes the
// handler's already-produced result into a response frame (spec.md
// §4.C's completion wire layouts), and CompleteFrom decodes a response
// frame's payload and completes the future from it. Both sides of a
// given call-id agree on which Completer wraps which future because
// they share the same MethodDescriptor.ReturnShape.
type Completer interface {
	WriteResult(w *wire.Writer) error
	CompleteFrom(r *wire.Reader) error
}

type unitCompleter struct{ f *Unit }

// NewUnitCompleter wraps f for use as the Endpoint's handler-side and
// caller-side completion driver for a future_unit return shape.
func NewUnitCompleter(f *Unit) Completer { return unitCompleter{f} }

func (c unitCompleter) WriteResult(w *wire.Writer) error { return nil }

func (c unitCompleter) CompleteFrom(r *wire.Reader) error {
	c.f.Complete()
	return nil
}

type typedCompleter[T any] struct {
	f      *Typed[T]
	encode func(*wire.Writer, T) error
	decode func(*wire.Reader) (T, error)
}

// NewTypedCompleter wraps f for a future_typed<T> return shape. Per
// spec.md §4.C the payload is T encoded with nullable=true, so even a
// guaranteed-present result carries a leading presence byte.
func NewTypedCompleter[T any](f *Typed[T], encode func(*wire.Writer, T) error, decode func(*wire.Reader) (T, error)) Completer {
	return typedCompleter[T]{f: f, encode: encode, decode: decode}
}

func (c typedCompleter[T]) WriteResult(w *wire.Writer) error {
	v, err := c.f.Result()
	if err != nil {
		return err
	}
	return wire.WriteOption(w, Some(v), c.encode)
}

func (c typedCompleter[T]) CompleteFrom(r *wire.Reader) error {
	opt, err := wire.ReadOption(r, c.decode)
	if err != nil {
		return err
	}
	c.f.Complete(opt.Value)
	return nil
}

type errUnitCompleter struct{ f *ErrUnit }

// NewErrUnitCompleter wraps f for a future_err_unit return shape. The
// payload is option<string>; absent means success.
func NewErrUnitCompleter(f *ErrUnit) Completer { return errUnitCompleter{f} }

func (c errUnitCompleter) WriteResult(w *wire.Writer) error {
	_, hasErr, err := c.f.Err()
	if err != nil {
		return err
	}
	if !hasErr {
		w.WritePresence(false)
		return nil
	}
	msg, _, _ := c.f.Err()
	w.WritePresence(true)
	w.String(msg)
	return nil
}

func (c errUnitCompleter) CompleteFrom(r *wire.Reader) error {
	present, err := r.ReadPresence()
	if err != nil {
		return err
	}
	if !present {
		c.f.CompleteSuccess()
		return nil
	}
	msg, err := r.String()
	if err != nil {
		return err
	}
	c.f.CompleteError(msg)
	return nil
}

type errTypedCompleter[T any] struct {
	f      *ErrTyped[T]
	encode func(*wire.Writer, T) error
	decode func(*wire.Reader) (T, error)
}

// NewErrTypedCompleter wraps f for a future_err_typed<T> return shape.
// The payload is option<string>; if absent, T follows encoded with
// nullable=true.
func NewErrTypedCompleter[T any](f *ErrTyped[T], encode func(*wire.Writer, T) error, decode func(*wire.Reader) (T, error)) Completer {
	return errTypedCompleter[T]{f: f, encode: encode, decode: decode}
}

func (c errTypedCompleter[T]) WriteResult(w *wire.Writer) error {
	result, msg, hasErr, err := c.f.Result()
	if err != nil {
		return err
	}
	if hasErr {
		w.WritePresence(true)
		w.String(msg)
		return nil
	}
	w.WritePresence(false)
	return wire.WriteOption(w, Some(result), c.encode)
}

func (c errTypedCompleter[T]) CompleteFrom(r *wire.Reader) error {
	present, err := r.ReadPresence()
	if err != nil {
		return err
	}
	if present {
		msg, err := r.String()
		if err != nil {
			return err
		}
		c.f.CompleteError(msg)
		return nil
	}
	opt, err := wire.ReadOption(r, c.decode)
	if err != nil {
		return err
	}
	c.f.CompleteSuccess(opt.Value)
	return nil
}
