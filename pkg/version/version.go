// Package version compares dotted version strings such as "2.1.1.3".
package version

import (
	"slices"
	"strconv"
	"strings"
)

// Compare returns a negative number when x is older than y, zero when both denote the
// same version and a positive number when x is newer. Parts are compared numerically from
// left to right; a missing or non-numeric part counts as 0, so "1" equals "1.0".
func Compare(x, y string) int {
	if x == y {
		return 0
	}

	xs := strings.Split(x, ".")
	ys := strings.Split(y, ".")

	for i := range max(len(xs), len(ys)) {
		xp, yp := part(xs, i), part(ys, i)
		switch {
		case xp > yp:
			return 1
		case xp < yp:
			return -1
		}
	}

	return 0
}

// Less reports whether x is an older version than y.
func Less(x, y string) bool {
	return Compare(x, y) < 0
}

// Sort orders versions from oldest to newest in place. Equal versions keep their order.
func Sort(versions []string) {
	slices.SortStableFunc(versions, Compare)
}

func part(parts []string, i int) int32 {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}
