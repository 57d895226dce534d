package version

import (
	"strconv"
	"strings"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

// Absent is returned by [Number.DigitAt] for positions past the last
// component. It is smaller than every real component.
const Absent = -1

// Number is an immutable dotted-integer version.
//
// The zero value has no components; it compares older than every parsed
// version and is used to mean "no bound" by callers that accept optional
// versions.
type Number struct {
	raw    string
	digits []int
}

// Parse parses a dotted-integer version such as "2.361.4".
// Leading and trailing whitespace is ignored.
func Parse(s string) (Number, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Number{}, errors.New(errors.ErrCodeInvalidFormat, "empty version")
	}
	parts := strings.Split(raw, ".")
	digits := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.HasPrefix(p, "+") {
			return Number{}, errors.New(errors.ErrCodeInvalidFormat, "invalid version %q: component %q is not a non-negative integer", raw, p)
		}
		digits[i] = n
	}
	return Number{raw: raw, digits: digits}, nil
}

// MustParse is like [Parse] but panics on malformed input.
// It is intended for constants and tests.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// DigitAt returns the component at position i, or [Absent] when the
// version has fewer than i+1 components.
func (n Number) DigitAt(i int) int {
	if i < 0 || i >= len(n.digits) {
		return Absent
	}
	return n.digits[i]
}

// Len returns the number of components.
func (n Number) Len() int { return len(n.digits) }

// IsZero reports whether n is the zero Number.
func (n Number) IsZero() bool { return len(n.digits) == 0 }

// Compare returns -1, 0 or +1 when n is older than, equal to, or newer
// than o. A shorter version is older than a longer one sharing its
// components.
func (n Number) Compare(o Number) int {
	size := max(len(n.digits), len(o.digits))
	for i := range size {
		a, b := n.DigitAt(i), o.DigitAt(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// IsOlderThan reports whether n sorts strictly before o.
func (n Number) IsOlderThan(o Number) bool { return n.Compare(o) < 0 }

// IsNewerThan reports whether n sorts strictly after o.
func (n Number) IsNewerThan(o Number) bool { return n.Compare(o) > 0 }

// Equal reports whether n and o have identical components.
func (n Number) Equal(o Number) bool { return n.Compare(o) == 0 }

// String returns the version as it was parsed, without surrounding
// whitespace.
func (n Number) String() string { return n.raw }

// MarshalText implements encoding.TextMarshaler.
func (n Number) MarshalText() ([]byte, error) { return []byte(n.raw), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Number) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*n = Number{}
		return nil
	}
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*n = v
	return nil
}
