// Package enum provides declared enum definitions for Go integer types, conversion from
// numbers and names into enum values, and cross-mapping between unrelated enum types.
//
// Go enums are plain named integers without attached metadata, so each enum type is
// described once by an Enum definition listing its members in declaration order together
// with optional aliases and descriptions:
//
//	type Fruit int
//
//	const (
//	    Apple Fruit = iota
//	    Pear
//	)
//
//	var Fruits = enum.Register(enum.New("Fruit",
//	    enum.Member[Fruit]{Value: Apple, Name: "Apple", Alias: "apple"},
//	    enum.Member[Fruit]{Value: Pear, Name: "Pear", Description: "A juicy pear"},
//	))
//
// Registered definitions are looked up by type, which is what ToEnum, Map and
// convert.ChangeType rely on.
package enum

import (
	"fmt"
	"strconv"
	"strings"
)

// Integer is the set of underlying types an enum may be declared with. Member values must
// fit in an int64, since numeric matching and conversion work on int64.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Member describes one declared value of an enum type.
type Member[T Integer] struct {
	// Value is the enum value itself.
	Value T
	// Name is the symbolic member name (e.g., "Pong").
	Name string
	// Alias is an optional alternative text used by Map when comparing member texts.
	Alias string
	// Description is an optional human friendly text returned by Description.
	Description string
}

// HasAlias reports whether the member declares a non-blank alias.
func (m Member[T]) HasAlias() bool {
	return strings.TrimSpace(m.Alias) != ""
}

// Enum is the ordered definition of an enum type.
type Enum[T Integer] struct {
	typeName string
	members  []Member[T]
	byValue  map[T]int
	byName   map[string]int
}

// New creates an enum definition. Members keep their declaration order, which is the
// order Map evaluates them in. Several members may share a value (the first one wins
// for value lookups) but names must be unique and non-empty; New panics otherwise since
// a broken definition is a programming error. Unsigned values above math.MaxInt64 are
// rejected the same way.
func New[T Integer](typeName string, members ...Member[T]) *Enum[T] {
	e := &Enum[T]{
		typeName: typeName,
		members:  make([]Member[T], 0, len(members)),
		byValue:  make(map[T]int, len(members)),
		byName:   make(map[string]int, len(members)),
	}

	for _, m := range members {
		if m.Name == "" {
			panic(fmt.Sprintf("enum %s: member with value %d has no name", typeName, m.Value))
		}
		if m.Value > 0 && int64(m.Value) < 0 {
			panic(fmt.Sprintf("enum %s: member %q value %d overflows int64", typeName, m.Name, uint64(m.Value)))
		}
		if _, exists := e.byName[m.Name]; exists {
			panic(fmt.Sprintf("enum %s: duplicate member name %q", typeName, m.Name))
		}

		idx := len(e.members)
		e.members = append(e.members, m)
		e.byName[m.Name] = idx
		if _, exists := e.byValue[m.Value]; !exists {
			e.byValue[m.Value] = idx
		}
	}

	return e
}

// TypeName returns the name the enum was declared with.
func (e *Enum[T]) TypeName() string {
	return e.typeName
}

// Members returns a copy of the members in declaration order.
func (e *Enum[T]) Members() []Member[T] {
	out := make([]Member[T], len(e.members))
	copy(out, e.members)
	return out
}

// Values returns the member values in declaration order.
func (e *Enum[T]) Values() []T {
	out := make([]T, len(e.members))
	for i, m := range e.members {
		out[i] = m.Value
	}
	return out
}

// Lookup returns the first member declared with value v.
func (e *Enum[T]) Lookup(v T) (Member[T], bool) {
	idx, ok := e.byValue[v]
	if !ok {
		return Member[T]{}, false
	}
	return e.members[idx], true
}

// IsDefined reports whether v is the value of a declared member.
func (e *Enum[T]) IsDefined(v T) bool {
	_, ok := e.byValue[v]
	return ok
}

// Parse returns the value of the member named exactly name.
func (e *Enum[T]) Parse(name string) (T, bool) {
	idx, ok := e.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	return e.members[idx].Value, true
}

// String returns the member name of v, or its number when v is not declared.
func (e *Enum[T]) String(v T) string {
	if m, ok := e.Lookup(v); ok {
		return m.Name
	}
	return formatNumber(v)
}

// Description returns the declared description of v, falling back to String.
func (e *Enum[T]) Description(v T) string {
	if m, ok := e.Lookup(v); ok && m.Description != "" {
		return m.Description
	}
	return e.String(v)
}

// candidate builds the mapping candidate for v. Undeclared values get their number as
// text and no alias.
func (e *Enum[T]) candidate(v T) Candidate {
	if m, ok := e.Lookup(v); ok {
		return memberCandidate(m)
	}
	return Candidate{Number: int64(v), Text: formatNumber(v)}
}

func (e *Enum[T]) candidates() []Candidate {
	out := make([]Candidate, len(e.members))
	for i, m := range e.members {
		out[i] = memberCandidate(m)
	}
	return out
}

// fromInt64 returns the enum value for n when n fits T and is declared.
func (e *Enum[T]) fromInt64(n int64) (T, bool) {
	v := T(n)
	if int64(v) != n || (n < 0 && v > 0) {
		var zero T
		return zero, false
	}
	return v, e.IsDefined(v)
}

func memberCandidate[T Integer](m Member[T]) Candidate {
	c := Candidate{Number: int64(m.Value), Text: m.Name}
	if m.HasAlias() {
		c.Alias = m.Alias
	}
	return c
}

func formatNumber[T Integer](v T) string {
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}
