package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Either(t *testing.T) {
	tests := []struct {
		name     string
		source   fooEnum
		expected barEnum
	}{
		{"number before text", fooFoo, barBar},
		{"number before text reversed", fooBar, barFoo},
		{"text when number is missing", fooLol, barLol},
		{"name against destination alias", fooPing, barPong},
		{"alias against alias", fooSuper, barMann},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map[barEnum](tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMap_Failures(t *testing.T) {
	t.Run("no candidate", func(t *testing.T) {
		_, err := Map[barEnum](fooNot)
		assert.ErrorIs(t, err, ErrMapping)
		assert.Contains(t, err.Error(),
			"unable to convert enum source type: FooEnum, value: (5)Not to enum type: BarEnum")
	})

	t.Run("alias mismatch suppresses name fallback", func(t *testing.T) {
		_, err := Map[barEnum](fooBio)
		assert.ErrorIs(t, err, ErrMapping)
	})

	t.Run("silent returns zero value", func(t *testing.T) {
		got, err := Map[barEnum](fooBio, Silent[barEnum]())
		require.NoError(t, err)
		assert.Equal(t, barEnum(0), got)
	})

	t.Run("silent returns default", func(t *testing.T) {
		got, err := Map(fooNot, Silent[barEnum](), Default(barLol))
		require.NoError(t, err)
		assert.Equal(t, barLol, got)
	})

	t.Run("undeclared source value", func(t *testing.T) {
		_, err := Map[barEnum](fooEnum(99))
		assert.ErrorIs(t, err, ErrMapping)
		assert.Contains(t, err.Error(), "(99)99")
	})

	t.Run("undeclared source value matching by number", func(t *testing.T) {
		got, err := Map[barEnum](fooEnum(4))
		require.NoError(t, err)
		assert.Equal(t, barLol, got)
	})

	t.Run("unregistered types", func(t *testing.T) {
		_, err := Map[barEnum](unregistered(1), Silent[barEnum]())
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Map[unregistered](fooFoo)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := Map[barEnum](fooFoo, WithPolicy[barEnum](MatchPolicy(42)))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestMap_Policies(t *testing.T) {
	tests := []struct {
		name     string
		policy   MatchPolicy
		source   fooEnum
		expected barEnum
		err      error
	}{
		{"number matches number", MatchNumber, fooFoo, barBar, nil},
		{"number ignores text", MatchNumber, fooLol, 0, ErrMapping},
		{"text matches name", MatchText, fooFoo, barFoo, nil},
		{"text matches alias", MatchText, fooSuper, barMann, nil},
		{"text ignores number", MatchText, fooNot, 0, ErrMapping},
		{"both rejects number only", MatchBoth, fooFoo, 0, ErrMapping},
		{"both rejects text only", MatchBoth, fooLol, 0, ErrMapping},
		{"either prefers number", MatchEither, fooFoo, barBar, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map[barEnum](tt.source, WithPolicy[barEnum](tt.policy))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMap_Both(t *testing.T) {
	type left int
	type right int

	from := New("Left",
		Member[left]{Value: 1, Name: "One"},
		Member[left]{Value: 2, Name: "Two"},
	)
	to := New("Right",
		Member[right]{Value: 2, Name: "One"},
		Member[right]{Value: 1, Name: "Uno", Alias: "One"},
	)

	got, err := MapWith(from, to, left(1), WithPolicy[right](MatchBoth))
	require.NoError(t, err)
	assert.Equal(t, right(1), got)

	_, err = MapWith(from, to, left(2), WithPolicy[right](MatchBoth))
	assert.ErrorIs(t, err, ErrMapping)
}

func TestMap_FirstMatchWins(t *testing.T) {
	type src int
	type dst int

	from := New("Src", Member[src]{Value: 7, Name: "Seven"})
	to := New("Dst",
		Member[dst]{Value: 1, Name: "First", Alias: "Seven"},
		Member[dst]{Value: 2, Name: "Seven"},
	)

	got, err := MapWith(from, to, src(7))
	require.NoError(t, err)
	assert.Equal(t, dst(1), got)
}

func TestMap_Comparison(t *testing.T) {
	type src int
	type dst int

	from := New("Src", Member[src]{Value: 1, Name: "alpha"})
	to := New("Dst", Member[dst]{Value: 9, Name: "ALPHA"})

	_, err := MapWith(from, to, src(1))
	assert.ErrorIs(t, err, ErrMapping)

	got, err := MapWith(from, to, src(1), WithComparison[dst](OrdinalIgnoreCase))
	require.NoError(t, err)
	assert.Equal(t, dst(9), got)
}

func TestMapWith_NilDefinitions(t *testing.T) {
	_, err := MapWith[barEnum, fooEnum](nil, barEnums, fooFoo)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = MapWith[barEnum](fooEnums, nil, fooFoo)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCandidate_TextEquals(t *testing.T) {
	tests := []struct {
		name     string
		src      Candidate
		dst      Candidate
		expected bool
	}{
		{"names equal", Candidate{Text: "A"}, Candidate{Text: "A"}, true},
		{"names differ", Candidate{Text: "A"}, Candidate{Text: "B"}, false},
		{"aliases equal", Candidate{Text: "A", Alias: "X"}, Candidate{Text: "B", Alias: "X"}, true},
		{"aliases differ despite names", Candidate{Text: "A", Alias: "X"}, Candidate{Text: "A", Alias: "Y"}, false},
		{"name against destination alias", Candidate{Text: "X"}, Candidate{Text: "B", Alias: "X"}, true},
		{"destination alias hides its name", Candidate{Text: "B"}, Candidate{Text: "B", Alias: "X"}, false},
		{"source alias against name", Candidate{Text: "A", Alias: "B"}, Candidate{Text: "B"}, true},
		{"source alias hides its name", Candidate{Text: "B", Alias: "X"}, Candidate{Text: "B"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.src.TextEquals(tt.dst, Ordinal))
		})
	}
}

func TestMatchPolicy_String(t *testing.T) {
	assert.Equal(t, "Either", MatchEither.String())
	assert.Equal(t, "Both", MatchBoth.String())
	assert.Equal(t, "Text", MatchText.String())
	assert.Equal(t, "Number", MatchNumber.String())
	assert.Equal(t, "MatchPolicy(9)", MatchPolicy(9).String())
}
