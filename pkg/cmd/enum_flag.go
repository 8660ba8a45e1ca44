package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// choices is a closed set of flag values.
type choices []string

var colorModes = choices{colorAuto, colorAlways, colorNever}

func (cs choices) match(value string) (string, bool) {
	for _, c := range cs {
		if strings.EqualFold(c, value) {
			return c, true
		}
	}
	return "", false
}

func (cs choices) String() string {
	switch len(cs) {
	case 0:
		return ""
	case 1:
		return cs[0]
	}
	return strings.Join(cs[:len(cs)-1], ", ") + " or " + cs[len(cs)-1]
}

// EnumValue is a cli.Generic accepting one of a closed set of values,
// case-insensitively. It reports def until Set succeeds.
type EnumValue struct {
	allowed  choices
	def      string
	selected string
}

var _ cli.Generic = (*EnumValue)(nil)

// NewEnumValue returns an EnumValue over allowed, defaulting to def.
func NewEnumValue(def string, allowed ...string) *EnumValue {
	return &EnumValue{allowed: allowed, def: def}
}

func (e *EnumValue) Set(value string) error {
	v, ok := e.allowed.match(strings.TrimSpace(value))
	if !ok {
		return fmt.Errorf("invalid value %q: must be %s", value, e.allowed)
	}
	e.selected = v
	return nil
}

func (e *EnumValue) String() string {
	if e == nil {
		return ""
	}
	if e.selected == "" {
		return e.def
	}
	return e.selected
}
