package common

import (
	"fmt"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/validation"
)

const (
	ContentTypeJson        = "application/json"
	ContentTypeProblemJson = "application/problem+json"
	ContentTypeXml         = "application/xml"
	ContentTypeXmlText     = "text/xml"
	ContentTypeYaml        = "application/yaml"

	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	PathDiagrams         = "/diagrams"
	PathDiagramsFindings = "/diagrams/{id}/findings"
	PathDiagramsId       = "/diagrams/{id}"
	PathDiagramsQuery    = "/diagrams/query"
	PathDiagramsValidate = "/diagrams/validate"

	PathReadiness = "/readiness"

	QueryRevision = "revision"
	QueryRules    = "rules"
)

// Names of opt-in validation rules, as used by query parameter "rules".
const (
	RuleCondition = "condition"
	RuleReference = "reference"
	RuleTimer     = "timer"
)

// RuleNames lists the names of all opt-in validation rules.
var RuleNames = []string{RuleCondition, RuleReference, RuleTimer}

// EnableRules returns a customizer, which enables the named opt-in rules of a validator.
func EnableRules(names []string) (func(*validation.Options), error) {
	var condition, reference, timer bool
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case RuleCondition:
			condition = true
		case RuleReference:
			reference = true
		case RuleTimer:
			timer = true
		case "":
			continue
		default:
			return nil, fmt.Errorf("rule %s is not supported: must be one of %s", name, strings.Join(RuleNames, ", "))
		}
	}

	return func(o *validation.Options) {
		o.ConditionRuleEnabled = condition
		o.ReferenceRuleEnabled = reference
		o.TimerRuleEnabled = timer
	}, nil
}
