package commands

import (
	"fmt"
	"time"

	apperrors "github.com/allisson/utilkit/internal/errors"
	"github.com/allisson/utilkit/pkg/convert"
	"github.com/allisson/utilkit/pkg/enum"
)

// ValueType is the target of the convert command.
type ValueType int

const (
	ValueString ValueType = iota
	ValueInt
	ValueUint
	ValueFloat
	ValueBool
	ValueTime
	ValueDuration
)

// ValueTypes is the registered definition of ValueType.
var ValueTypes = enum.Register(enum.New("ValueType",
	enum.Member[ValueType]{Value: ValueString, Name: "string", Description: "text, unchanged"},
	enum.Member[ValueType]{Value: ValueInt, Name: "int", Description: "signed 64-bit integer"},
	enum.Member[ValueType]{Value: ValueUint, Name: "uint", Description: "unsigned 64-bit integer"},
	enum.Member[ValueType]{Value: ValueFloat, Name: "float", Description: "64-bit float"},
	enum.Member[ValueType]{Value: ValueBool, Name: "bool", Description: "true or false"},
	enum.Member[ValueType]{Value: ValueTime, Name: "time", Description: "RFC3339 timestamp"},
	enum.Member[ValueType]{Value: ValueDuration, Name: "duration", Description: "Go duration, e.g. 1m30s"},
))

// RunConvert coerces value into the type named by to and prints its canonical text.
// The type is given by name or by number; decimalSeparator may force '.' or ','.
func RunConvert(value, to, decimalSeparator string, io IOTuple) error {
	target, err := enum.ToEnum[ValueType](to)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown type %q", to)
	}

	var opts []convert.Option
	if decimalSeparator != "" {
		sep := []rune(decimalSeparator)
		if len(sep) != 1 || (sep[0] != '.' && sep[0] != ',') {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "decimal separator must be '.' or ','")
		}
		opts = append(opts, convert.WithDecimalSeparator(sep[0]))
	}

	var result any
	switch target {
	case ValueInt:
		result, err = convert.ChangeType[int64](value, opts...)
	case ValueUint:
		result, err = convert.ChangeType[uint64](value, opts...)
	case ValueFloat:
		result, err = convert.ChangeType[float64](value, opts...)
	case ValueBool:
		result, err = convert.ChangeType[bool](value, opts...)
	case ValueTime:
		result, err = convert.ChangeType[time.Time](value, opts...)
	case ValueDuration:
		result, err = convert.ChangeType[time.Duration](value, opts...)
	default:
		result = value
	}
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}

	text, err := convert.ChangeType[string](result)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(io.Writer, text)
	return nil
}

// RunListTypes prints the supported convert targets with their descriptions.
func RunListTypes(io IOTuple) error {
	for _, m := range ValueTypes.Members() {
		_, _ = fmt.Fprintf(io.Writer, "%-10s %s\n", m.Name, ValueTypes.Description(m.Value))
	}
	return nil
}
