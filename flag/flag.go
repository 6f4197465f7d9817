package flag

import (
	"fmt"
	"strings"
)

// StringEnumFlag is a flag.Value that only accepts values from a fixed set.
type StringEnumFlag struct {
	choices []string
	value   string
}

func NewStringEnumFlag(choices []string, defaultValue string) *StringEnumFlag {
	return &StringEnumFlag{
		choices: choices,
		value:   defaultValue,
	}
}

func (f *StringEnumFlag) Value() string {
	return f.value
}

func (f *StringEnumFlag) Choices() []string {
	return f.choices
}

func (f *StringEnumFlag) String() string {
	return f.value
}

func (f *StringEnumFlag) Set(value string) error {
	for _, choice := range f.choices {
		if choice == value {
			f.value = value
			return nil
		}
	}
	return fmt.Errorf("value '%v' not in {%v}", value, strings.Join(f.choices, "|"))
}
