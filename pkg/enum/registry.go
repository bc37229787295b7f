package enum

import (
	"reflect"
	"sync"
)

// definition is the type-erased view of an *Enum[T] kept in the registry.
type definition interface {
	TypeName() string
	valueOf(n int64) (any, bool)
	valueNamed(name string) (any, bool)
	numberOf(v any) (int64, bool)
	nameOf(v any) (string, bool)
}

var registry sync.Map // reflect.Type -> definition

// Register makes e discoverable by its Go type for ToEnum, Map and convert.ChangeType.
// Registering the same type twice replaces the previous definition.
func Register[T Integer](e *Enum[T]) *Enum[T] {
	registry.Store(reflect.TypeFor[T](), definition(e))
	return e
}

// Definition returns the registered definition of T.
func Definition[T Integer]() (*Enum[T], bool) {
	d, ok := registry.Load(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	e, ok := d.(*Enum[T])
	return e, ok
}

// IsRegistered reports whether T has a registered enum definition.
func IsRegistered[T any]() bool {
	_, ok := registry.Load(reflect.TypeFor[T]())
	return ok
}

// Number returns the underlying integer of v when v's dynamic type is a registered enum.
func Number(v any) (int64, bool) {
	d, ok := lookup(v)
	if !ok {
		return 0, false
	}
	return d.numberOf(v)
}

// NameOf returns the member name of v when v's dynamic type is a registered enum.
// Undeclared values are rendered as their number.
func NameOf(v any) (string, bool) {
	d, ok := lookup(v)
	if !ok {
		return "", false
	}
	return d.nameOf(v)
}

func lookup(v any) (definition, bool) {
	if v == nil {
		return nil, false
	}
	return lookupType(reflect.TypeOf(v))
}

func lookupType(t reflect.Type) (definition, bool) {
	d, ok := registry.Load(t)
	if !ok {
		return nil, false
	}
	return d.(definition), true
}

func (e *Enum[T]) valueOf(n int64) (any, bool) {
	v, ok := e.fromInt64(n)
	if !ok {
		return nil, false
	}
	return v, true
}

func (e *Enum[T]) valueNamed(name string) (any, bool) {
	v, ok := e.Parse(name)
	if !ok {
		return nil, false
	}
	return v, true
}

func (e *Enum[T]) numberOf(v any) (int64, bool) {
	t, ok := v.(T)
	if !ok {
		return 0, false
	}
	return int64(t), true
}

func (e *Enum[T]) nameOf(v any) (string, bool) {
	t, ok := v.(T)
	if !ok {
		return "", false
	}
	return e.String(t), true
}
