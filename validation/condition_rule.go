package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/google/cel-go/cel"
)

var celEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv()
})

// validateConditionExpressions parses the conditions of sequence flows as CEL expressions.
// Conditions on outgoing flows of parallel gateways are reported, since they are ignored.
func validateConditionExpressions(d *model.Diagram) []Finding {
	env, err := celEnv()
	if err != nil {
		return []Finding{{
			Severity: SeverityError,
			Message:  fmt.Sprintf("Failed to create expression environment: %v", err),
			RuleName: RuleConditionExpression,
		}}
	}

	index := newElementIndex(d)

	var findings []Finding
	for _, s := range index.scopes {
		for _, sequenceFlow := range s.sequenceFlows {
			if !sequenceFlow.IsConditional() {
				continue
			}

			newFinding := func(severity Severity, message string) Finding {
				return Finding{
					Severity:    severity,
					ElementId:   sequenceFlow.Id(),
					ElementType: elementTypeLabel(sequenceFlow),
					Message:     message,
					RuleName:    RuleConditionExpression,
				}
			}

			if gateway, ok := s.flowObjectsById[sequenceFlow.SourceRef].(*model.Gateway); ok && gateway.IsParallel() {
				findings = append(findings, newFinding(SeverityInfo, "Conditions on outgoing flows of parallel gateways are ignored"))
			}

			expression := unwrapExpression(sequenceFlow.ConditionExpression)
			if expression == "" {
				findings = append(findings, newFinding(SeverityWarning, "Condition expression is empty"))
				continue
			}

			_, issues := env.Parse(expression)
			if issues != nil && issues.Err() != nil {
				reason, _, _ := strings.Cut(issues.Err().Error(), "\n")
				findings = append(findings, newFinding(SeverityWarning, fmt.Sprintf("Condition %s is not a valid expression: %s", sequenceFlow.ConditionExpression, reason)))
			}
		}
	}
	return findings
}

// unwrapExpression removes the ${...} wrapper, commonly used by process engines.
func unwrapExpression(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}") {
		v = strings.TrimSpace(v[2 : len(v)-1])
	}
	return v
}
