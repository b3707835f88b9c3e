package models

// ResultStatus tags a fetch outcome. Callers render different messages for an
// upstream that failed versus an upstream that legitimately had no data, so
// the two are never conflated into a single nil.
type ResultStatus int

const (
	// StatusOK means the fetch succeeded and carries data.
	StatusOK ResultStatus = iota
	// StatusEmpty means the upstream answered but reported no rows.
	StatusEmpty
	// StatusFailed means retries were exhausted or the request was rejected.
	StatusFailed
)

// Result is the tagged outcome of a fetch. Transport faults never cross the
// fetch boundary; they are carried here as a Failed result instead.
type Result[T any] struct {
	status ResultStatus
	value  T
	err    error
}

// Ok wraps successful data.
func Ok[T any](value T) Result[T] {
	return Result[T]{status: StatusOK, value: value}
}

// Empty marks a successful fetch that returned no rows.
func Empty[T any]() Result[T] {
	return Result[T]{status: StatusEmpty}
}

// Fail marks an exhausted or rejected fetch.
func Fail[T any](err error) Result[T] {
	return Result[T]{status: StatusFailed, err: err}
}

// Status returns the result tag.
func (r Result[T]) Status() ResultStatus { return r.status }

// IsOK reports whether the fetch succeeded with data.
func (r Result[T]) IsOK() bool { return r.status == StatusOK }

// IsEmpty reports whether the upstream had no data for the query.
func (r Result[T]) IsEmpty() bool { return r.status == StatusEmpty }

// IsFailed reports whether the fetch failed after exhausting retries.
func (r Result[T]) IsFailed() bool { return r.status == StatusFailed }

// Value returns the data carried by an OK result; the zero value otherwise.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure cause for a Failed result, nil otherwise.
func (r Result[T]) Err() error { return r.err }
