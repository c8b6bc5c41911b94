package future

import "sync"

// Unit is the unit-success future: it carries no result value, only a
// completion signal and a single on-complete callback slot.
type Unit struct {
	mu       sync.Mutex
	complete bool
	onDone   func()
}

// NewUnit returns an empty, incomplete Unit future.
func NewUnit() *Unit {
	return &Unit{}
}

// IsComplete reports whether the future has been completed.
func (f *Unit) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// Complete marks the future done and fires the installed callback, if
// any. A future completes at most once; subsequent calls are no-ops.
func (f *Unit) Complete() {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	cb := f.onDone
	f.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// OnComplete installs cb to run when the future completes. The slot is
// single-assignment: a second call silently replaces the first. If the
// future is already complete, cb fires synchronously, immediately,
// before OnComplete returns.
func (f *Unit) OnComplete(cb func()) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		cb()
		return
	}
	f.onDone = cb
	f.mu.Unlock()
}
