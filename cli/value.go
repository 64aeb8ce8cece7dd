package cli

import (
	"fmt"
	"strconv"

	"github.com/gclaussn/go-bpmn-schema/codec"
)

// formatValue is a custom flag value for an output format.
type formatValue codec.Format

func (v *formatValue) Set(s string) error {
	format := codec.MapFormat(s)
	if format != codec.FormatJSON && format != codec.FormatYAML {
		return fmt.Errorf("invalid output format %s: must be json or yaml", s)
	}

	*v = formatValue(format)
	return nil
}

func (v formatValue) String() string {
	return codec.Format(v).String()
}

func (v formatValue) Type() string {
	return "format"
}

// optionalBoolValue is a custom flag value for a boolean, which is nil, when not set.
type optionalBoolValue struct {
	value *bool
}

func (v *optionalBoolValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %s", s)
	}

	v.value = &b
	return nil
}

func (v optionalBoolValue) String() string {
	if v.value == nil {
		return ""
	}
	return strconv.FormatBool(*v.value)
}

func (v optionalBoolValue) Type() string {
	return "bool"
}
