package validation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/samber/lo"
)

// New creates a validator for the given diagram.
// The built-in rules are registered first, followed by the enabled opt-in rules and the custom rules of the options.
func New(d *model.Diagram, customizers ...func(*Options)) (*Validator, error) {
	if d == nil {
		return nil, errors.New("diagram must not be nil")
	}

	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	rules := defaultRules()
	if options.ReferenceRuleEnabled {
		rules = append(rules, NewRule(RuleReference, validateReferences))
	}
	if options.TimerRuleEnabled {
		rules = append(rules, NewRule(RuleTimerTrigger, validateTimerTriggers))
	}
	if options.ConditionRuleEnabled {
		rules = append(rules, NewRule(RuleConditionExpression, validateConditionExpressions))
	}

	v := Validator{diagram: d, rules: rules}
	for _, rule := range options.Rules {
		if err := v.AddRule(rule); err != nil {
			return nil, err
		}
	}

	return &v, nil
}

func NewOptions() Options {
	return Options{}
}

type Options struct {
	ConditionRuleEnabled bool // Determines if conditions of sequence flows are parsed as CEL expressions.
	ReferenceRuleEnabled bool // Determines if IDs and ID based references are checked.
	TimerRuleEnabled     bool // Determines if triggers of timer events are checked.

	Rules []Rule // Custom rules, executed after the built-in rules.
}

func (o Options) Validate() error {
	names := make(map[string]bool, len(o.Rules))
	for _, rule := range o.Rules {
		if rule == nil {
			return errors.New("rule must not be nil")
		}
		if isBuiltInRule(rule.Name()) {
			return fmt.Errorf("rule name %s is reserved", rule.Name())
		}
		if names[rule.Name()] {
			return fmt.Errorf("rule name %s is not unique", rule.Name())
		}
		names[rule.Name()] = true
	}
	return nil
}

// Validator runs an ordered list of rules against a diagram and collects the findings.
// A validator is not safe for concurrent use.
type Validator struct {
	diagram  *model.Diagram
	rules    []Rule
	findings []Finding
}

// AddRule appends a rule, which is executed after all rules, added before.
func (v *Validator) AddRule(rule Rule) error {
	if rule == nil {
		return errors.New("rule must not be nil")
	}
	for _, r := range v.rules {
		if r.Name() == rule.Name() {
			return fmt.Errorf("rule name %s is not unique", rule.Name())
		}
	}
	v.rules = append(v.rules, rule)
	return nil
}

func (v *Validator) Errors() []Finding {
	return v.filter(SeverityError)
}

// Findings returns the findings of the last validation, in rule order.
func (v *Validator) Findings() []Finding {
	return slices.Clone(v.findings)
}

func (v *Validator) HasErrors() bool {
	return slices.ContainsFunc(v.findings, func(f Finding) bool { return f.Severity == SeverityError })
}

func (v *Validator) HasWarnings() bool {
	return slices.ContainsFunc(v.findings, func(f Finding) bool { return f.Severity == SeverityWarning })
}

func (v *Validator) Infos() []Finding {
	return v.filter(SeverityInfo)
}

func (v *Validator) Rules() []Rule {
	return slices.Clone(v.rules)
}

// Validate clears the findings of a previous validation and runs all rules.
// It returns true, if no finding of severity ERROR exists.
func (v *Validator) Validate() bool {
	v.findings = nil
	for _, rule := range v.rules {
		v.findings = append(v.findings, rule.Validate(v.diagram)...)
	}
	return !v.HasErrors()
}

func (v *Validator) Warnings() []Finding {
	return v.filter(SeverityWarning)
}

func (v *Validator) filter(severity Severity) []Finding {
	return lo.Filter(v.findings, func(f Finding, _ int) bool {
		return f.Severity == severity
	})
}

func isBuiltInRule(name string) bool {
	switch name {
	case
		RuleConditionExpression,
		RuleEndEvent,
		RuleGateway,
		RuleReference,
		RuleSequenceFlow,
		RuleStartEvent,
		RuleTimerTrigger:
		return true
	default:
		return false
	}
}
