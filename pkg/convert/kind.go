package convert

import (
	"fmt"
	"reflect"

	"github.com/allisson/utilkit/pkg/enum"
)

// Kind is the conversion family ChangeType selects for a target type.
type Kind int

const (
	KindOther Kind = iota
	KindEnum
	KindSigned
	KindUnsigned
	KindFloat
	KindString
	KindBool
	KindTime
	KindDuration
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindEnum:
		return "enum"
	case KindSigned:
		return "signed"
	case KindUnsigned:
		return "unsigned"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf returns the conversion family of T. Registered enums take precedence over their
// underlying integer kind.
func KindOf[T any]() Kind {
	if enum.IsRegistered[T]() {
		return KindEnum
	}

	t := reflect.TypeFor[T]()
	switch t {
	case timeType:
		return KindTime
	case durationType:
		return KindDuration
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindSigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUnsigned
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	default:
		return KindOther
	}
}
