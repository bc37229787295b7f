package convert

// Option configures ChangeType.
type Option func(*options)

type options struct {
	decimalSeparator rune
}

// WithDecimalSeparator fixes the decimal separator used when parsing floating point strings
// to '.' or ','. The other character is then treated as a digit grouping mark. Any other
// rune keeps automatic detection.
func WithDecimalSeparator(sep rune) Option {
	return func(o *options) {
		o.decimalSeparator = sep
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
