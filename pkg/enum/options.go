package enum

// Option configures ToEnum, FromInt, FromString, Map and MapWith for a result type T.
type Option[T any] func(*options[T])

type options[T any] struct {
	silent     bool
	def        T
	policy     MatchPolicy
	comparison TextComparison
}

// Silent suppresses ErrOutOfRange and ErrMapping failures, returning the default value
// (the zero value of T unless Default is given). ErrInvalidArgument is never suppressed.
func Silent[T any]() Option[T] {
	return func(o *options[T]) {
		o.silent = true
	}
}

// Default sets the value returned by a silent conversion that found no member.
func Default[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.def = v
	}
}

// WithPolicy selects how Map compares members. MatchEither is used when omitted.
func WithPolicy[T any](p MatchPolicy) Option[T] {
	return func(o *options[T]) {
		o.policy = p
	}
}

// WithComparison selects how Map compares member texts. Ordinal is used when omitted.
func WithComparison[T any](c TextComparison) Option[T] {
	return func(o *options[T]) {
		o.comparison = c
	}
}

func newOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
