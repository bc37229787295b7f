package enum

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode"
)

// ToEnum converts source into the registered enum type T.
//
// Integer sources (of any integer kind, including values of other enum types) must equal
// a declared value. String sources must equal a member name exactly; a string made only
// of digits is parsed as a number and follows the integer rule. A source that matches no
// member yields ErrOutOfRange, or the default value when Silent is set. An unregistered
// T or an unsupported source kind always yields ErrInvalidArgument.
func ToEnum[T any](source any, opts ...Option[T]) (T, error) {
	var zero T

	d, ok := lookupType(reflect.TypeFor[T]())
	if !ok {
		return zero, fmt.Errorf("%w: %s is not a registered enum type", ErrInvalidArgument, reflect.TypeFor[T]())
	}

	return toEnum(d, source, newOptions(opts))
}

// FromInt converts n into a member of e.
func (e *Enum[T]) FromInt(n int64, opts ...Option[T]) (T, error) {
	return toEnum(definition(e), n, newOptions(opts))
}

// FromString converts s, a member name or a string of digits, into a member of e.
func (e *Enum[T]) FromString(s string, opts ...Option[T]) (T, error) {
	return toEnum(definition(e), s, newOptions(opts))
}

func toEnum[T any](d definition, source any, o options[T]) (T, error) {
	var (
		zero  T
		value any
		found bool
	)

	switch s := source.(type) {
	case string:
		value, found = d.valueNamed(s)
		if !found && isDigits(s) {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				value, found = d.valueOf(n)
			}
		}
	default:
		n, isInteger, inRange := integerOf(source)
		if !isInteger {
			return zero, fmt.Errorf("%w: cannot convert %T to enum type %s", ErrInvalidArgument, source, d.TypeName())
		}
		if inRange {
			value, found = d.valueOf(n)
		}
	}

	if !found {
		if o.silent {
			return o.def, nil
		}
		return zero, fmt.Errorf("%w: %v is not a defined value of enum type %s", ErrOutOfRange, source, d.TypeName())
	}

	result, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: enum type %s does not match %T", ErrInvalidArgument, d.TypeName(), zero)
	}
	return result, nil
}

// integerOf reports whether v is of an integer kind and whether its value fits int64.
func integerOf(v any) (n int64, isInteger bool, inRange bool) {
	if v == nil {
		return 0, false, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, true, false
		}
		return int64(u), true, true
	default:
		return 0, false, false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
