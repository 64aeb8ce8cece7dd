package validation

import (
	"fmt"
	"strings"
)

// Finding is the outcome of a rule, which found an issue in a diagram.
type Finding struct {
	Severity    Severity `json:"severity"`
	ElementId   string   `json:"elementId,omitempty"`   // ID of the offending element - empty, if the finding concerns the diagram.
	ElementType string   `json:"elementType,omitempty"` // Label like Process, StartEvent or Gateway.
	Message     string   `json:"message"`
	RuleName    string   `json:"ruleName"`
}

func (f Finding) String() string {
	var element string
	if f.ElementId != "" {
		element = fmt.Sprintf(" (element: %s)", f.ElementId)
	}
	return fmt.Sprintf("%s: %s%s", f.Severity, f.Message, element)
}

// Severity classifies findings. Only findings of severity ERROR fail a validation.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityInfo
	SeverityWarning
)

func MapSeverity(s string) Severity {
	switch strings.ToUpper(s) {
	case "ERROR":
		return SeverityError
	case "INFO":
		return SeverityInfo
	case "WARNING":
		return SeverityWarning
	default:
		return 0
	}
}

func (v Severity) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v Severity) String() string {
	switch v {
	case SeverityError:
		return "ERROR"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	default:
		return ""
	}
}

func (v *Severity) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapSeverity(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid severity data %s", s)
	}
	return nil
}
