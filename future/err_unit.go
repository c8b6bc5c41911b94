package future

import "sync"

// ErrUnit is the error future (unit): it carries no success value, only
// an optional error message, and three callback slots — on-result
// (always fires, with the error or nil), on-success (fires only when
// there was no error), and on-error (fires only when there was one).
type ErrUnit struct {
	mu         sync.Mutex
	complete   bool
	errMessage *string

	onResult  func(errMessage *string)
	onSuccess func()
	onError   func(message string)
}

// NewErrUnit returns an empty, incomplete ErrUnit future.
func NewErrUnit() *ErrUnit {
	return &ErrUnit{}
}

// IsComplete reports whether the future has been completed.
func (f *ErrUnit) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// IsError reports whether the completed future carries an error. It
// returns false for an incomplete future — callers that need to
// distinguish "no error yet" from "not ready" should check IsComplete
// first, or use Err, which returns ErrNotReady explicitly.
func (f *ErrUnit) IsError() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete && f.errMessage != nil
}

// Err returns the stored error message (empty, ok=false on success) or
// ErrNotReady if the future has not yet completed.
func (f *ErrUnit) Err() (message string, hasError bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.complete {
		return "", false, ErrNotReady
	}
	if f.errMessage == nil {
		return "", false, nil
	}
	return *f.errMessage, true, nil
}

// CompleteSuccess marks the future done with no error and fires
// on-result then on-success. A future completes at most once.
func (f *ErrUnit) CompleteSuccess() {
	f.complete0(nil)
}

// CompleteError marks the future done with the given error message and
// fires on-result then on-error. A future completes at most once.
func (f *ErrUnit) CompleteError(message string) {
	f.complete0(&message)
}

func (f *ErrUnit) complete0(errMessage *string) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	f.errMessage = errMessage
	onResult, onSuccess, onError := f.onResult, f.onSuccess, f.onError
	f.mu.Unlock()

	if onResult != nil {
		onResult(errMessage)
	}
	if errMessage == nil {
		if onSuccess != nil {
			onSuccess()
		}
	} else if onError != nil {
		onError(*errMessage)
	}
}

// OnResult installs cb to run, with the error message or nil, whenever
// the future completes (success or error). Single-assignment; fires
// synchronously if already complete.
func (f *ErrUnit) OnResult(cb func(errMessage *string)) {
	f.mu.Lock()
	if f.complete {
		msg := f.errMessage
		f.mu.Unlock()
		cb(msg)
		return
	}
	f.onResult = cb
	f.mu.Unlock()
}

// OnSuccess installs cb to run only if the future completes without an
// error. Single-assignment; fires synchronously if already
// successfully complete.
func (f *ErrUnit) OnSuccess(cb func()) {
	f.mu.Lock()
	if f.complete {
		isSuccess := f.errMessage == nil
		f.mu.Unlock()
		if isSuccess {
			cb()
		}
		return
	}
	f.onSuccess = cb
	f.mu.Unlock()
}

// OnError installs cb to run only if the future completes with an
// error. Single-assignment; fires synchronously if already complete
// with an error.
func (f *ErrUnit) OnError(cb func(message string)) {
	f.mu.Lock()
	if f.complete {
		msg := f.errMessage
		f.mu.Unlock()
		if msg != nil {
			cb(*msg)
		}
		return
	}
	f.onError = cb
	f.mu.Unlock()
}
