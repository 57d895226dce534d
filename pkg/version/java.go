package version

import (
	"strconv"
	"strings"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

// legacyCutoff is the last feature release written as "1.N".
const legacyCutoff = 8

// JavaSpec is a normalized Java specification version. Java 8 and
// earlier print in the legacy "1.N" form, later releases as "N".
type JavaSpec struct {
	feature int
}

// Well-known Java specification versions.
var (
	Java5  = JavaSpec{5}
	Java6  = JavaSpec{6}
	Java7  = JavaSpec{7}
	Java8  = JavaSpec{8}
	Java9  = JavaSpec{9}
	Java10 = JavaSpec{10}
	Java11 = JavaSpec{11}
	Java12 = JavaSpec{12}
)

// ParseJava parses a Java specification version. "1.8", "8", " 8 " all
// yield [Java8]; "11" and "1.11" yield [Java11]. Strings like "1.6.2" or
// "eleven" fail with [errors.ErrCodeInvalidFormat].
func ParseJava(s string) (JavaSpec, error) {
	trimmed := strings.TrimSpace(s)
	rest := trimmed
	if strings.HasPrefix(trimmed, "1.") {
		parts := strings.Split(trimmed, ".")
		if len(parts) != 2 {
			return JavaSpec{}, errors.New(errors.ErrCodeInvalidFormat, "invalid java specification version %q", s)
		}
		rest = parts[1]
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || strings.HasPrefix(rest, "+") {
		return JavaSpec{}, errors.New(errors.ErrCodeInvalidFormat, "invalid java specification version %q", s)
	}
	return JavaSpec{feature: n}, nil
}

// MustParseJava is like [ParseJava] but panics on malformed input.
func MustParseJava(s string) JavaSpec {
	j, err := ParseJava(s)
	if err != nil {
		panic(err)
	}
	return j
}

// Feature returns the feature release number (8 for "1.8", 11 for "11").
func (j JavaSpec) Feature() int { return j.feature }

// IsZero reports whether j is the zero JavaSpec.
func (j JavaSpec) IsZero() bool { return j.feature == 0 }

// String returns the canonical textual form.
func (j JavaSpec) String() string {
	if j.feature > legacyCutoff {
		return strconv.Itoa(j.feature)
	}
	return "1." + strconv.Itoa(j.feature)
}

// Compare returns -1, 0 or +1 when j is older than, equal to, or newer
// than o.
func (j JavaSpec) Compare(o JavaSpec) int {
	switch {
	case j.feature < o.feature:
		return -1
	case j.feature > o.feature:
		return 1
	}
	return 0
}

// IsOlderThan reports whether j is strictly older than o.
func (j JavaSpec) IsOlderThan(o JavaSpec) bool { return j.Compare(o) < 0 }

// IsNewerThan reports whether j is strictly newer than o.
func (j JavaSpec) IsNewerThan(o JavaSpec) bool { return j.Compare(o) > 0 }

// Equal reports whether j and o denote the same specification version.
func (j JavaSpec) Equal(o JavaSpec) bool { return j.feature == o.feature }

// MarshalText implements encoding.TextMarshaler.
func (j JavaSpec) MarshalText() ([]byte, error) {
	if j.IsZero() {
		return nil, nil
	}
	return []byte(j.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (j *JavaSpec) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*j = JavaSpec{}
		return nil
	}
	v, err := ParseJava(string(b))
	if err != nil {
		return err
	}
	*j = v
	return nil
}

// Platform releases that raised the Java baseline.
var (
	CoreJava7 = MustParse("1.612")
	CoreJava8 = MustParse("2.54")
)

// InterpolateJava guesses the minimum Java level of a plugin from the
// platform version it requires. It is used for artifacts built before
// the minimum Java version was recorded in their manifest.
func InterpolateJava(core Number) JavaSpec {
	switch {
	case core.IsOlderThan(CoreJava7):
		return Java6
	case core.IsOlderThan(CoreJava8):
		return Java7
	}
	return Java8
}
