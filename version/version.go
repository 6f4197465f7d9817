package version

import (
	// Stdlib
	"fmt"
	"math"
	"regexp"
	"strings"

	// Vendor
	"github.com/blang/semver"
)

const (
	MatcherString      = "[0-9]+[.][0-9]+[.][0-9]+"
	GroupMatcherString = "([0-9]+)[.]([0-9]+)[.]([0-9]+)"
)

var tripleRegexp = regexp.MustCompile("^" + MatcherString + "$")

// ErrMalformed is returned by Parse in case the version string
// is not a plain MAJOR.MINOR.PATCH triple.
type ErrMalformed struct {
	input string
}

func (err *ErrMalformed) Error() string {
	return fmt.Sprintf("not a MAJOR.MINOR.PATCH version string: '%v'", err.input)
}

// ErrOverflow is returned by Bump when the component to be incremented
// is already the largest value it can hold.
type ErrOverflow struct {
	version *Version
	kind    Kind
}

func (err *ErrOverflow) Error() string {
	return fmt.Sprintf("cannot increment the %v component of version %v", err.kind, err.version)
}

// Version is a project version, a triple of non-negative integers.
// Pre-release and build metadata are never set.
type Version struct {
	semver.Version
}

func New(major, minor, patch uint64) *Version {
	return &Version{semver.Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}}
}

func (v *Version) Clone() *Version {
	return New(v.Major, v.Minor, v.Patch)
}

func (v *Version) Zero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0
}

func (v *Version) IncrementMajor() *Version {
	return New(v.Major+1, 0, 0)
}

func (v *Version) IncrementMinor() *Version {
	return New(v.Major, v.Minor+1, 0)
}

func (v *Version) IncrementPatch() *Version {
	return New(v.Major, v.Minor, v.Patch+1)
}

// Bump returns the version following v according to kind.
// It fails with *ErrOverflow when the component cannot be incremented.
func (v *Version) Bump(kind Kind) (*Version, error) {
	switch kind {
	case KindMajor:
		if v.Major == math.MaxUint64 {
			return nil, &ErrOverflow{v.Clone(), kind}
		}
		return v.IncrementMajor(), nil
	case KindMinor:
		if v.Minor == math.MaxUint64 {
			return nil, &ErrOverflow{v.Clone(), kind}
		}
		return v.IncrementMinor(), nil
	case KindPatch:
		if v.Patch == math.MaxUint64 {
			return nil, &ErrOverflow{v.Clone(), kind}
		}
		return v.IncrementPatch(), nil
	default:
		return nil, &ErrInvalidKind{string(kind)}
	}
}

func (v *Version) ReleaseTagString() string {
	return "v" + v.String()
}

// Parse parses a MAJOR.MINOR.PATCH version string.
//
// Leading zeros are accepted, "1.02.3" is the same as "1.2.3".
func Parse(versionString string) (*Version, error) {
	if !tripleRegexp.MatchString(versionString) {
		return nil, &ErrMalformed{versionString}
	}

	// The regexp guarantees three numeric parts.
	// blang/semver rejects leading zeros, so strip them first.
	parts := strings.Split(versionString, ".")
	for i, part := range parts {
		trimmed := strings.TrimLeft(part, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		parts[i] = trimmed
	}

	v, err := semver.Parse(strings.Join(parts, "."))
	if err != nil {
		return nil, err
	}
	return &Version{v}, nil
}

func MustParse(versionString string) *Version {
	v, err := Parse(versionString)
	if err != nil {
		panic(err)
	}
	return v
}

// FromTag parses a release tag name, e.g. v1.2.3.
func FromTag(tag string) (*Version, error) {
	if !strings.HasPrefix(tag, "v") {
		return nil, &ErrMalformed{tag}
	}
	return Parse(tag[1:])
}

// Set implements flag.Value interface.
func (v *Version) Set(versionString string) error {
	ver, err := Parse(versionString)
	if err != nil {
		return err
	}
	v.Version = ver.Version
	return nil
}
