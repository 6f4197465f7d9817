package version

import (
	"fmt"
	"strings"
)

// Kind selects which part of the version is incremented.
type Kind string

const (
	KindMajor Kind = "major"
	KindMinor Kind = "minor"
	KindPatch Kind = "patch"
)

var kinds = []Kind{KindMajor, KindMinor, KindPatch}

type ErrInvalidKind struct {
	input string
}

func (err *ErrInvalidKind) Error() string {
	if err.input == "" {
		return fmt.Sprintf("version increment type not specified; expected one of %v", KindStrings())
	}
	return fmt.Sprintf("invalid version increment type '%v'; expected one of %v",
		err.input, KindStrings())
}

func (err *ErrInvalidKind) Input() string {
	return err.input
}

// ParseKind is strict, "Major" or " patch" are rejected.
func ParseKind(kind string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == kind {
			return k, nil
		}
	}
	return "", &ErrInvalidKind{kind}
}

func (kind Kind) Valid() bool {
	_, err := ParseKind(string(kind))
	return err == nil
}

func KindStrings() string {
	ss := make([]string, 0, len(kinds))
	for _, k := range kinds {
		ss = append(ss, string(k))
	}
	return "{" + strings.Join(ss, "|") + "}"
}

// String implements flag.Value interface.
func (kind *Kind) String() string {
	return string(*kind)
}

// Set implements flag.Value interface.
func (kind *Kind) Set(value string) error {
	k, err := ParseKind(value)
	if err != nil {
		return err
	}
	*kind = k
	return nil
}
