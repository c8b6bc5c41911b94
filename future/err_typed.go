package future

import "sync"

// ErrTyped is the error future (typed)<T>: it carries a result T on
// success, or an error message on failure, plus three callback slots —
// on-result (always fires), on-success (fires only without an error),
// on-error (fires only with one).
type ErrTyped[T any] struct {
	mu         sync.Mutex
	complete   bool
	result     T
	errMessage *string

	onResult  func(result T, errMessage *string)
	onSuccess func(result T)
	onError   func(message string)
}

// NewErrTyped returns an empty, incomplete ErrTyped[T] future.
func NewErrTyped[T any]() *ErrTyped[T] {
	return &ErrTyped[T]{}
}

// IsComplete reports whether the future has been completed.
func (f *ErrTyped[T]) IsComplete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete
}

// IsError reports whether the completed future carries an error.
func (f *ErrTyped[T]) IsError() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.complete && f.errMessage != nil
}

// Result returns the stored result and error. It returns ErrNotReady if
// the future has not yet completed.
func (f *ErrTyped[T]) Result() (result T, message string, hasError bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.complete {
		var zero T
		return zero, "", false, ErrNotReady
	}
	if f.errMessage == nil {
		return f.result, "", false, nil
	}
	var zero T
	return zero, *f.errMessage, true, nil
}

// CompleteSuccess marks the future done with result v and fires
// on-result then on-success.
func (f *ErrTyped[T]) CompleteSuccess(v T) {
	f.complete0(v, nil)
}

// CompleteError marks the future done with the given error message and
// fires on-result then on-error.
func (f *ErrTyped[T]) CompleteError(message string) {
	var zero T
	f.complete0(zero, &message)
}

func (f *ErrTyped[T]) complete0(v T, errMessage *string) {
	f.mu.Lock()
	if f.complete {
		f.mu.Unlock()
		return
	}
	f.complete = true
	f.errMessage = errMessage
	if errMessage == nil {
		f.result = v
	}
	onResult, onSuccess, onError := f.onResult, f.onSuccess, f.onError
	result := f.result
	f.mu.Unlock()

	if onResult != nil {
		onResult(result, errMessage)
	}
	if errMessage == nil {
		if onSuccess != nil {
			onSuccess(result)
		}
	} else if onError != nil {
		onError(*errMessage)
	}
}

// OnResult installs cb to run, with the result (zero value on error)
// and the error message or nil, whenever the future completes.
// Single-assignment; fires synchronously if already complete.
func (f *ErrTyped[T]) OnResult(cb func(result T, errMessage *string)) {
	f.mu.Lock()
	if f.complete {
		result, msg := f.result, f.errMessage
		f.mu.Unlock()
		cb(result, msg)
		return
	}
	f.onResult = cb
	f.mu.Unlock()
}

// OnSuccess installs cb to run with the result only if the future
// completes without an error. Single-assignment; fires synchronously
// if already successfully complete.
func (f *ErrTyped[T]) OnSuccess(cb func(result T)) {
	f.mu.Lock()
	if f.complete {
		isSuccess := f.errMessage == nil
		result := f.result
		f.mu.Unlock()
		if isSuccess {
			cb(result)
		}
		return
	}
	f.onSuccess = cb
	f.mu.Unlock()
}

// OnError installs cb to run only if the future completes with an
// error. Single-assignment; fires synchronously if already complete
// with an error.
func (f *ErrTyped[T]) OnError(cb func(message string)) {
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
