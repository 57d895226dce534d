package catalog

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/updatecenter/pkg/version"
)

// CompareReleaseVersions orders plugin release versions.
//
// Pure dotted-integer versions use [version.Number] ordering, so "1.0"
// and "1.0.0" stay distinct. Versions with qualifiers such as
// "2.0-beta-1" are compared as semantic versions, with a pre-release
// sorting before its release. Qualifiers of the same release compare
// token by token, numbers as numbers, so "rc10" is newer than "rc9".
// Anything else, including incremental
// versions like "1139.veb_9579fca_33b", is compared token by token.
func CompareReleaseVersions(a, b string) int {
	if a == b {
		return 0
	}
	na, errA := version.Parse(a)
	nb, errB := version.Parse(b)
	if errA == nil && errB == nil {
		return na.Compare(nb)
	}
	sa, errA := semver.NewVersion(a)
	sb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		if c := compareRelease(sa, sb); c != 0 {
			return c
		}
		pa, pb := sa.Prerelease(), sb.Prerelease()
		switch {
		case pa == "" && pb != "":
			return 1
		case pa != "" && pb == "":
			return -1
		case pa != "":
			if c := compareTokenLists(qualifierTokens(pa), qualifierTokens(pb)); c != 0 {
				return c
			}
		}
	}
	return compareTokens(a, b)
}

func compareRelease(a, b *semver.Version) int {
	if c := cmpUint(a.Major(), b.Major()); c != 0 {
		return c
	}
	if c := cmpUint(a.Minor(), b.Minor()); c != 0 {
		return c
	}
	return cmpUint(a.Patch(), b.Patch())
}

// qualifierTokens splits a pre-release qualifier on separators and on
// letter/digit boundaries: "beta-10" and "beta10" both give [beta 10].
func qualifierTokens(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		digits bool
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if r == '.' || r == '-' || r == '_' {
			flush()
			continue
		}
		isDigit := r >= '0' && r <= '9'
		if cur.Len() > 0 && isDigit != digits {
			flush()
		}
		digits = isDigit
		cur.WriteRune(r)
	}
	flush()
	return tokens
}

// compareTokens splits on '.', '-' and '_' and compares numeric tokens
// numerically and the rest lexically. A version that runs out of tokens
// first is older.
func compareTokens(a, b string) int {
	if c := compareTokenLists(tokenize(a), tokenize(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareTokenLists(ta, tb []string) int {
	for i := 0; i < len(ta) && i < len(tb); i++ {
		x, y := ta[i], tb[i]
		nx, errX := strconv.Atoi(x)
		ny, errY := strconv.Atoi(y)
		switch {
		case errX == nil && errY == nil:
			if nx != ny {
				return cmpInt(nx, ny)
			}
		case errX == nil:
			return 1
		case errY == nil:
			return -1
		default:
			if c := strings.Compare(x, y); c != 0 {
				return c
			}
		}
	}
	return cmpInt(len(ta), len(tb))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	})
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
