package validation

import (
	"fmt"

	"github.com/gclaussn/go-bpmn-schema/model"
)

// Names of the built-in rules.
const (
	RuleConditionExpression = "condition_expression_rule"
	RuleEndEvent            = "end_event_rule"
	RuleGateway             = "gateway_rule"
	RuleReference           = "reference_rule"
	RuleSequenceFlow        = "sequence_flow_rule"
	RuleStartEvent          = "start_event_rule"
	RuleTimerTrigger        = "timer_trigger_rule"
)

// Rule inspects a diagram and reports issues as findings.
// A rule must not modify the diagram.
type Rule interface {
	Name() string
	Validate(*model.Diagram) []Finding
}

// NewRule creates a rule from a function.
func NewRule(name string, validate func(*model.Diagram) []Finding) Rule {
	return ruleFunc{name: name, validate: validate}
}

type ruleFunc struct {
	name     string
	validate func(*model.Diagram) []Finding
}

func (r ruleFunc) Name() string {
	return r.name
}

func (r ruleFunc) Validate(d *model.Diagram) []Finding {
	return r.validate(d)
}

func defaultRules() []Rule {
	return []Rule{
		NewRule(RuleStartEvent, validateStartEvents),
		NewRule(RuleEndEvent, validateEndEvents),
		NewRule(RuleSequenceFlow, validateSequenceFlows),
		NewRule(RuleGateway, validateGateways),
	}
}

func validateStartEvents(d *model.Diagram) []Finding {
	var findings []Finding
	for _, process := range d.Processes() {
		n := len(process.StartEvents())
		if n == 0 {
			findings = append(findings, Finding{
				Severity:    SeverityError,
				ElementId:   process.Id(),
				ElementType: "Process",
				Message:     "Process must have at least one start event",
				RuleName:    RuleStartEvent,
			})
		} else if n > 1 {
			findings = append(findings, Finding{
				Severity:    SeverityWarning,
				ElementId:   process.Id(),
				ElementType: "Process",
				Message:     fmt.Sprintf("Process has %d start events (multiple start events should be used carefully)", n),
				RuleName:    RuleStartEvent,
			})
		}
	}
	return findings
}

func validateEndEvents(d *model.Diagram) []Finding {
	var findings []Finding
	for _, process := range d.Processes() {
		if len(process.EndEvents()) == 0 {
			findings = append(findings, Finding{
				Severity:    SeverityWarning,
				ElementId:   process.Id(),
				ElementType: "Process",
				Message:     "Process should have at least one end event",
				RuleName:    RuleEndEvent,
			})
		}
	}
	return findings
}

func validateSequenceFlows(d *model.Diagram) []Finding {
	var findings []Finding
	for _, process := range d.Processes() {
		incoming, outgoing := countSequenceFlows(process.SequenceFlows())

		for _, flowObject := range process.AllFlowObjects() {
			id := flowObject.Base().Id()

			switch v := flowObject.(type) {
			case *model.Event:
				if v.IsStartEvent() && incoming[id] != 0 {
					findings = append(findings, Finding{
						Severity:    SeverityError,
						ElementId:   id,
						ElementType: "StartEvent",
						Message:     "Start events cannot have incoming sequence flows",
						RuleName:    RuleSequenceFlow,
					})
				}
				if v.IsEndEvent() && outgoing[id] != 0 {
					findings = append(findings, Finding{
						Severity:    SeverityError,
						ElementId:   id,
						ElementType: "EndEvent",
						Message:     "End events cannot have outgoing sequence flows",
						RuleName:    RuleSequenceFlow,
					})
				}
			case *model.Task:
				if incoming[id] == 0 && outgoing[id] == 0 {
					findings = append(findings, Finding{
						Severity:    SeverityWarning,
						ElementId:   id,
						ElementType: "Task",
						Message:     "Task is not connected to any sequence flows",
						RuleName:    RuleSequenceFlow,
					})
				}
			}
		}
	}
	return findings
}

func validateGateways(d *model.Diagram) []Finding {
	var findings []Finding
	for _, process := range d.Processes() {
		incoming, outgoing := countSequenceFlows(process.SequenceFlows())

		for _, gateway := range process.Gateways() {
			id := gateway.Id()

			newFinding := func(severity Severity, message string) Finding {
				return Finding{
					Severity:    severity,
					ElementId:   id,
					ElementType: "Gateway",
					Message:     message,
					RuleName:    RuleGateway,
				}
			}

			if incoming[id] == 0 {
				findings = append(findings, newFinding(SeverityError, "Gateway must have at least one incoming sequence flow"))
			}
			if outgoing[id] == 0 {
				findings = append(findings, newFinding(SeverityError, "Gateway must have at least one outgoing sequence flow"))
			}
			if gateway.IsDiverging() && outgoing[id] < 2 {
				findings = append(findings, newFinding(SeverityWarning, "Diverging gateway should have multiple outgoing flows"))
			}
			if gateway.IsConverging() && incoming[id] < 2 {
				findings = append(findings, newFinding(SeverityWarning, "Converging gateway should have multiple incoming flows"))
			}
		}
	}
	return findings
}

// countSequenceFlows counts the incoming and outgoing sequence flows per flow object ID.
func countSequenceFlows(sequenceFlows []*model.SequenceFlow) (map[string]int, map[string]int) {
	incoming := make(map[string]int, len(sequenceFlows))
	outgoing := make(map[string]int, len(sequenceFlows))
	for _, sequenceFlow := range sequenceFlows {
		incoming[sequenceFlow.TargetRef]++
		outgoing[sequenceFlow.SourceRef]++
	}
	return incoming, outgoing
}
