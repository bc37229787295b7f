package enum

import (
	"fmt"
	"strings"
)

// MatchPolicy selects how Map decides that a destination member corresponds to the source.
type MatchPolicy int

const (
	// MatchEither tries every destination by number first, then every destination by text.
	MatchEither MatchPolicy = iota
	// MatchBoth requires number and text to match on the same destination.
	MatchBoth
	// MatchText compares member texts only.
	MatchText
	// MatchNumber compares underlying numbers only.
	MatchNumber
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchEither:
		return "Either"
	case MatchBoth:
		return "Both"
	case MatchText:
		return "Text"
	case MatchNumber:
		return "Number"
	default:
		return fmt.Sprintf("MatchPolicy(%d)", int(p))
	}
}

// TextComparison selects the string equality used for member texts.
type TextComparison int

const (
	// Ordinal compares texts byte for byte.
	Ordinal TextComparison = iota
	// OrdinalIgnoreCase compares texts under Unicode case folding.
	OrdinalIgnoreCase
)

func (c TextComparison) equal(a, b string) bool {
	if c == OrdinalIgnoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Candidate is the comparable view of one enum member: its number, its name and its
// alias (empty when none is declared).
type Candidate struct {
	Number int64
	Text   string
	Alias  string
}

// TextEquals reports whether the source candidate c matches the destination candidate
// dst by text. Declared aliases take precedence over names: alias against alias when both
// sides have one, otherwise the side with an alias is compared by alias against the
// other side's name, and names are compared only when neither side has an alias.
func (c Candidate) TextEquals(dst Candidate, cmp TextComparison) bool {
	switch {
	case c.Alias != "" && dst.Alias != "":
		return cmp.equal(c.Alias, dst.Alias)
	case dst.Alias != "":
		return cmp.equal(c.Text, dst.Alias)
	case c.Alias != "":
		return cmp.equal(c.Alias, dst.Text)
	default:
		return cmp.equal(c.Text, dst.Text)
	}
}

// NumberEquals reports whether both candidates carry the same underlying number.
func (c Candidate) NumberEquals(dst Candidate) bool {
	return c.Number == dst.Number
}

// Map converts source into the registered enum type D, looking both definitions up in
// the registry. See MapWith.
func Map[D, S Integer](source S, opts ...Option[D]) (D, error) {
	var zero D

	from, ok := Definition[S]()
	if !ok {
		return zero, fmt.Errorf("%w: source type %T is not a registered enum type", ErrInvalidArgument, source)
	}
	to, ok := Definition[D]()
	if !ok {
		return zero, fmt.Errorf("%w: destination type %T is not a registered enum type", ErrInvalidArgument, zero)
	}

	return MapWith(from, to, source, opts...)
}

// MapWith converts source, a value of the enum described by from, into the member of to
// that corresponds to it under the configured MatchPolicy. Destination members are
// evaluated in declaration order and the first match wins. When nothing matches the
// result is ErrMapping, or the default value when Silent is set.
func MapWith[D, S Integer](from *Enum[S], to *Enum[D], source S, opts ...Option[D]) (D, error) {
	var zero D

	if from == nil || to == nil {
		return zero, fmt.Errorf("%w: enum definitions are required", ErrInvalidArgument)
	}

	o := newOptions(opts)
	src := from.candidate(source)
	dst := to.candidates()

	byNumber := func(c Candidate) bool { return src.NumberEquals(c) }
	byText := func(c Candidate) bool { return src.TextEquals(c, o.comparison) }

	idx := -1
	switch o.policy {
	case MatchEither:
		idx = firstMatch(dst, byNumber)
		if idx < 0 {
			idx = firstMatch(dst, byText)
		}
	case MatchBoth:
		idx = firstMatch(dst, func(c Candidate) bool { return byNumber(c) && byText(c) })
	case MatchText:
		idx = firstMatch(dst, byText)
	case MatchNumber:
		idx = firstMatch(dst, byNumber)
	default:
		return zero, fmt.Errorf("%w: unknown match policy %s", ErrInvalidArgument, o.policy)
	}

	if idx < 0 {
		if o.silent {
			return o.def, nil
		}
		return zero, fmt.Errorf(
			"%w: unable to convert enum source type: %s, value: (%d)%s to enum type: %s",
			ErrMapping, from.TypeName(), src.Number, src.Text, to.TypeName(),
		)
	}

	return to.members[idx].Value, nil
}

func firstMatch(candidates []Candidate, match func(Candidate) bool) int {
	for i, c := range candidates {
		if match(c) {
			return i
		}
	}
	return -1
}
