// Package version implements the two version models used when filtering
// an update center catalog.
//
// [Number] is a dotted-integer platform version ("2.361.4"). Components
// are compared position by position and a missing trailing component is
// distinct from zero, so "1.0" sorts before "1.0.0":
//
//	a := version.MustParse("1.0")
//	b := version.MustParse("1.0.0")
//	a.IsOlderThan(b) // true
//	b.DigitAt(2)     // 0
//	a.DigitAt(2)     // version.Absent
//
// [JavaSpec] is a normalized Java specification version. Legacy "1.N"
// strings and bare feature numbers normalize to the same value, so
// ParseJava("1.8") equals ParseJava("8") and prints as "1.8", while
// ParseJava("11") prints as "11".
//
// Both parsers return an error with code [errors.ErrCodeInvalidFormat]
// for malformed input. Callers treat such errors as "version unknown",
// never as a zero version.
//
// [errors.ErrCodeInvalidFormat]: github.com/matzehuels/updatecenter/pkg/errors
package version
