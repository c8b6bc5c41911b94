package future

import "sync"

// Typed is the typed-success future<T>: it carries a result value T
// once complete, plus a single on-complete callback slot receiving that
// value.
type Typed[T any] struct {
	mu       sync.Mutex
	complete bool
	result   T
	onDone   func(T)
}

// NewTyped returns an empty, incomplete Typed[T] future.
func NewTyped[T any]() *Typed[T] {
	return &Typed[T]{}
}

// IsComplete reports whether the future has been completed.
func (f *Typed[T]) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// Result returns the stored result. It returns ErrNotReady if the
// future has not yet completed.
func (f *Typed[T]) Result() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.complete {
		var zero T
		return zero, ErrNotReady
	}
	return f.result, nil
}

// Complete stores v as the result, marks the future done, and fires the
// installed callback, if any. A future completes at most once;
// subsequent calls are no-ops.
func (f *Typed[T]) Complete(v T) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	f.result = v
	cb := f.onDone
	f.mu.Unlock()
	if cb != nil {
		cb(v)
	}
}

// OnComplete installs cb to run with the result when the future
// completes. Single-assignment; a second call silently replaces the
// first. Fires synchronously, immediately, if already complete.
func (f *Typed[T]) OnComplete(cb func(T)) {
	f.mu.Lock()
	if f.complete {
		v := f.result
		f.mu.Unlock()
		cb(v)
		return
	}
	f.onDone = cb
	f.mu.Unlock()
}
