package domain

// Result is a two-variant success/failure container used as the return type
// of every tool operation that can fail. Exactly one of the value or the
// error is present, and the tag fully determines which. A Result is immutable
// once constructed.
type Result[T any] struct {
	ok    bool
	value T
	err   error
}

// Ok constructs a successful Result carrying value.
func Ok[T any](value T) Result[T] {
	return Result[T]{ok: true, value: value}
}

// Fail constructs a failed Result carrying err.
func Fail[T any](err error) Result[T] {
	return Result[T]{ok: false, err: err}
}

// IsOK reports whether the Result carries a value.
func (r Result[T]) IsOK() bool {
	return r.ok
}

// Value returns the carried value. Callers must check IsOK first; on a
// failed Result the zero value is returned.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the carried error, or nil for a successful Result.
func (r Result[T]) Err() error {
	return r.err
}

// UnwrapOr returns the carried value, or def when the Result is a failure.
func (r Result[T]) UnwrapOr(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// MapResult applies fn to the value of a successful Result and returns the
// mapped Result. Failures pass through unchanged.
func MapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Fail[U](r.err)
	}
	return Ok(fn(r.value))
}
