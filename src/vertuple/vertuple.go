// Package vertuple compares dot-separated version strings as integer tuples.
//
// Toolchain and CMake versions on build nodes are plain dotted numbers
// ("7", "6.0", "3.12.4", "4.9.3.1") with no semver shape guarantees, so
// comparison is ordinary tuple comparison: components pairwise left to
// right, a strict prefix ordering before its extensions ("5.0" < "5.0.0").
package vertuple

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedVersionError reports a version string with a non-numeric component.
type MalformedVersionError struct {
	Version string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("malformed version %q: components must be integers", e.Version)
}

// Parse splits a dotted version string into its integer components.
func Parse(version string) ([]int, error) {
	parts := strings.Split(version, ".")
	tuple := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, &MalformedVersionError{Version: version}
		}
		tuple[i] = n
	}
	return tuple, nil
}

// Compare returns a negative value if a sorts before b, zero if they are
// equal, and a positive value otherwise.
func Compare(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return compareTuples(ta, tb), nil
}

// IsOlder reports whether version a sorts strictly before version b.
func IsOlder(a, b string) (bool, error) {
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

func compareTuples(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
