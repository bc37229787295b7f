package enum

import "errors"

var (
	// ErrInvalidArgument indicates the target type is not a registered enum or the source
	// kind cannot be converted. It is never suppressed by Silent.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange indicates the source does not correspond to any declared member.
	ErrOutOfRange = errors.New("value out of range")

	// ErrMapping indicates no destination member matched the source member.
	ErrMapping = errors.New("enum mapping failed")
)
