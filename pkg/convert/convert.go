// Package convert coerces loosely typed values (configuration strings, decoded payloads,
// enum values) into a requested Go type.
package convert

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/allisson/utilkit/pkg/enum"
)

// ErrTypeConversion indicates the value cannot be represented as the requested type.
var ErrTypeConversion = errors.New("type conversion failed")

var (
	errUnsupported = errors.New("unsupported source type")
	errOverflow    = errors.New("value out of range")

	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// ChangeType converts value into T.
//
// A nil value yields the zero value of T and a value already of type T is returned
// unchanged. Otherwise the conversion is chosen by KindOf[T]:
//
//   - KindEnum: enum values are reduced to their number, then enum.ToEnum applies.
//   - KindSigned, KindUnsigned: integers, floats (rounded half to even), bools and
//     base 10 strings. An empty string yields 0.
//   - KindFloat: numbers, bools and decimal strings using '.' or ',' as the decimal
//     separator (see WithDecimalSeparator). An empty string yields 0.
//   - KindString: enum member names, RFC 3339 timestamps, fmt.Stringer values and the
//     canonical text of numbers and bools.
//   - KindBool: strconv.ParseBool strings and numbers (non-zero is true).
//   - KindTime: RFC 3339 strings, the format produced for KindString.
//   - KindDuration: time.ParseDuration strings and integer nanoseconds.
//   - KindOther: values assignable to T.
//
// Failures wrap ErrTypeConversion; enum failures also wrap the enum package error.
func ChangeType[T any](value any, opts ...Option) (T, error) {
	var zero T

	if value == nil {
		return zero, nil
	}
	if v, ok := value.(T); ok {
		return v, nil
	}

	target := reflect.TypeFor[T]()
	o := newOptions(opts)

	var (
		result any
		err    error
	)

	switch KindOf[T]() {
	case KindEnum:
		if n, ok := enum.Number(value); ok {
			value = n
		}
		v, err := enum.ToEnum[T](value)
		if err != nil {
			return zero, fmt.Errorf("%w: cannot convert %T to %s: %w", ErrTypeConversion, value, target, err)
		}
		return v, nil
	case KindDuration:
		result, err = toDuration(value)
	case KindTime:
		result, err = toTime(value)
	case KindSigned:
		result, err = toSigned(value, target)
	case KindUnsigned:
		result, err = toUnsigned(value, target)
	case KindFloat:
		result, err = toFloat(value, target, o)
	case KindString:
		result, err = toString(value, target)
	case KindBool:
		result, err = toBool(value, target)
	default:
		result, err = toOther(value, target)
	}

	if err != nil {
		return zero, fmt.Errorf("%w: cannot convert %T to %s: %w", ErrTypeConversion, value, target, err)
	}

	v, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: cannot convert %T to %s", ErrTypeConversion, value, target)
	}
	return v, nil
}

func toSigned(value any, target reflect.Type) (any, error) {
	n, err := signedOf(value)
	if err != nil {
		return nil, err
	}

	rv := reflect.New(target).Elem()
	if rv.OverflowInt(n) {
		return nil, errOverflow
	}
	rv.SetInt(n)
	return rv.Interface(), nil
}

func toUnsigned(value any, target reflect.Type) (any, error) {
	u, err := unsignedOf(value)
	if err != nil {
		return nil, err
	}

	rv := reflect.New(target).Elem()
	if rv.OverflowUint(u) {
		return nil, errOverflow
	}
	rv.SetUint(u)
	return rv.Interface(), nil
}

func toFloat(value any, target reflect.Type, o options) (any, error) {
	f, err := floatOf(value, target.Bits(), o)
	if err != nil {
		return nil, err
	}

	rv := reflect.New(target).Elem()
	if rv.OverflowFloat(f) {
		return nil, errOverflow
	}
	rv.SetFloat(f)
	return rv.Interface(), nil
}

func toString(value any, target reflect.Type) (any, error) {
	s, err := stringOf(value)
	if err != nil {
		return nil, err
	}

	rv := reflect.New(target).Elem()
	rv.SetString(s)
	return rv.Interface(), nil
}

func toBool(value any, target reflect.Type) (any, error) {
	b, err := boolOf(value)
	if err != nil {
		return nil, err
	}

	rv := reflect.New(target).Elem()
	rv.SetBool(b)
	return rv.Interface(), nil
}

func toTime(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errUnsupported
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func toDuration(value any) (any, error) {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Duration(0), nil
		}
		return time.ParseDuration(s)
	}

	n, err := signedOf(value)
	if err != nil {
		return nil, err
	}
	return time.Duration(n), nil
}

func toOther(value any, target reflect.Type) (any, error) {
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(target) {
		return nil, errUnsupported
	}

	out := reflect.New(target).Elem()
	out.Set(rv)
	return out.Interface(), nil
}

func signedOf(value any) (int64, error) {
	if n, ok := enum.Number(value); ok {
		return n, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errOverflow
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := math.RoundToEven(rv.Float())
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, errOverflow
		}
		return int64(f), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if s == "" {
			return 0, nil
		}
		return strconv.ParseInt(s, 10, 64)
	default:
		return 0, errUnsupported
	}
}

func unsignedOf(value any) (uint64, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := math.RoundToEven(rv.Float())
		if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
			return 0, errOverflow
		}
		return uint64(f), nil
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if s == "" {
			return 0, nil
		}
		return strconv.ParseUint(s, 10, 64)
	default:
		n, err := signedOf(value)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, errOverflow
		}
		return uint64(n), nil
	}
}

func floatOf(value any, bitSize int, o options) (float64, error) {
	if n, ok := enum.Number(value); ok {
		return float64(n), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(normalizeDecimal(s, o.decimalSeparator), bitSize)
	default:
		return 0, errUnsupported
	}
}

func stringOf(value any) (string, error) {
	if name, ok := enum.NameOf(value); ok {
		return name, nil
	}

	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	default:
		return "", errUnsupported
	}
}

func boolOf(value any) (bool, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if s == "" {
			return false, nil
		}
		return strconv.ParseBool(s)
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	default:
		n, err := signedOf(value)
		if err != nil {
			return false, err
		}
		return n != 0, nil
	}
}

// normalizeDecimal rewrites s so that strconv.ParseFloat can read it. With sep set, sep is
// the decimal separator and the other one of '.' and ',' is a digit grouping mark. With
// automatic detection the last of '.' and ',' is the decimal separator, unless a comma is
// repeated, in which case commas group digits.
func normalizeDecimal(s string, sep rune) string {
	if sep != '.' && sep != ',' {
		dot := strings.LastIndexByte(s, '.')
		comma := strings.LastIndexByte(s, ',')
		switch {
		case comma < 0:
			return s
		case dot < 0 && strings.Count(s, ",") > 1:
			return strings.ReplaceAll(s, ",", "")
		case comma > dot:
			sep = ','
		default:
			sep = '.'
		}
	}

	group := ","
	if sep == ',' {
		group = "."
	}

	s = strings.ReplaceAll(s, group, "")
	return strings.ReplaceAll(s, string(sep), ".")
}
