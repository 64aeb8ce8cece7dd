package validation

import (
	"encoding/json"
	"testing"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	t.Run("default rules", func(t *testing.T) {
		v := mustCreateValidator(t, model.NewDiagram("d1"))

		var names []string
		for _, rule := range v.Rules() {
			names = append(names, rule.Name())
		}

		assert.Equal([]string{RuleStartEvent, RuleEndEvent, RuleSequenceFlow, RuleGateway}, names)
	})

	t.Run("opt-in and custom rules", func(t *testing.T) {
		custom := NewRule("custom_rule", func(*model.Diagram) []Finding { return nil })

		v := mustCreateValidator(t, model.NewDiagram("d1"), func(o *Options) {
			o.ConditionRuleEnabled = true
			o.ReferenceRuleEnabled = true
			o.TimerRuleEnabled = true
			o.Rules = []Rule{custom}
		})

		var names []string
		for _, rule := range v.Rules() {
			names = append(names, rule.Name())
		}

		assert.Equal([]string{
			RuleStartEvent,
			RuleEndEvent,
			RuleSequenceFlow,
			RuleGateway,
			RuleReference,
			RuleTimerTrigger,
			RuleConditionExpression,
			"custom_rule",
		}, names)
	})

	t.Run("returns error when diagram is nil", func(t *testing.T) {
		_, err := New(nil)
		require.Error(err)
	})

	t.Run("returns error when options are invalid", func(t *testing.T) {
		noop := func(*model.Diagram) []Finding { return nil }

		tests := map[string][]Rule{
			"nil rule":       {nil},
			"reserved name":  {NewRule(RuleStartEvent, noop)},
			"duplicate name": {NewRule("x", noop), NewRule("x", noop)},
		}

		for name, rules := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := New(model.NewDiagram("d1"), func(o *Options) {
					o.Rules = rules
				})
				assert.Error(err)
			})
		}
	})
}

func TestValidatorAddRule(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	v := mustCreateValidator(t, mustCreateDiagram(t, mustCreateSimpleProcess(t)))

	var calls int
	rule := NewRule("custom_rule", func(d *model.Diagram) []Finding {
		calls++
		return []Finding{{Severity: SeverityInfo, Message: "custom", RuleName: "custom_rule"}}
	})

	require.NoError(v.AddRule(rule))
	assert.Error(v.AddRule(rule))
	assert.Error(v.AddRule(nil))

	assert.True(v.Validate())
	assert.Equal(1, calls)
	assert.Equal([]Finding{{Severity: SeverityInfo, Message: "custom", RuleName: "custom_rule"}}, v.Infos())
}

func TestValidatorValidate(t *testing.T) {
	assert := assert.New(t)

	t.Run("empty process", func(t *testing.T) {
		d := mustCreateDiagram(t, model.NewProcess("p1"))
		v := mustCreateValidator(t, d)

		// when
		valid := v.Validate()

		// then
		assert.False(valid)
		assert.True(v.HasErrors())
		assert.True(v.HasWarnings())

		assert.Equal([]Finding{{
			Severity:    SeverityError,
			ElementId:   "p1",
			ElementType: "Process",
			Message:     "Process must have at least one start event",
			RuleName:    RuleStartEvent,
		}}, v.Errors())
		assert.Equal([]Finding{{
			Severity:    SeverityWarning,
			ElementId:   "p1",
			ElementType: "Process",
			Message:     "Process should have at least one end event",
			RuleName:    RuleEndEvent,
		}}, v.Warnings())
		assert.Empty(v.Infos())
	})

	t.Run("simple process", func(t *testing.T) {
		d := mustCreateDiagram(t, mustCreateSimpleProcess(t))
		v := mustCreateValidator(t, d)

		assert.True(v.Validate())
		assert.Empty(v.Findings())
		assert.False(v.HasErrors())
		assert.False(v.HasWarnings())
	})

	t.Run("diverging gateway with one outgoing flow", func(t *testing.T) {
		p := model.NewProcess("p1")

		g1 := model.NewGateway("g1", model.GatewayExclusive)
		g1.Direction = model.GatewayDirectionDiverging

		mustAdd(t, p.AddFlowObject(model.NewEvent("s1", model.EventStart)))
		mustAdd(t, p.AddFlowObject(g1))
		mustAdd(t, p.AddFlowObject(model.NewEvent("e1", model.EventEnd)))
		mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f1", "s1", "g1")))
		mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f2", "g1", "e1")))

		v := mustCreateValidator(t, mustCreateDiagram(t, p))

		assert.True(v.Validate())
		assert.Empty(v.Errors())
		assert.Equal([]Finding{{
			Severity:    SeverityWarning,
			ElementId:   "g1",
			ElementType: "Gateway",
			Message:     "Diverging gateway should have multiple outgoing flows",
			RuleName:    RuleGateway,
		}}, v.Warnings())
	})

	t.Run("gateway with one incoming and one outgoing flow", func(t *testing.T) {
		tests := []struct {
			direction        model.GatewayDirection
			expectedWarnings []string
		}{
			{model.GatewayDirectionConverging, []string{"Converging gateway should have multiple incoming flows"}},
			{model.GatewayDirectionDiverging, []string{"Diverging gateway should have multiple outgoing flows"}},
			{model.GatewayDirectionMixed, nil},
			{model.GatewayDirectionUnspecified, nil},
		}

		for _, test := range tests {
			t.Run(test.direction.String(), func(t *testing.T) {
				p := model.NewProcess("p1")

				g1 := model.NewGateway("g1", model.GatewayInclusive)
				g1.Direction = test.direction

				mustAdd(t, p.AddFlowObject(model.NewEvent("s1", model.EventStart)))
				mustAdd(t, p.AddFlowObject(g1))
				mustAdd(t, p.AddFlowObject(model.NewEvent("e1", model.EventEnd)))
				mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f1", "s1", "g1")))
				mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f2", "g1", "e1")))

				v := mustCreateValidator(t, mustCreateDiagram(t, p))

				assert.True(v.Validate())

				var warnings []string
				for _, f := range findingsOf(v.Findings(), RuleGateway) {
					warnings = append(warnings, f.Message)
				}
				assert.Equal(test.expectedWarnings, warnings)
			})
		}
	})

	t.Run("start event with incoming flow", func(t *testing.T) {
		p := model.NewProcess("p1")
		mustAdd(t, p.AddFlowObject(model.NewEvent("s1", model.EventStart)))
		mustAdd(t, p.AddFlowObject(model.NewTask("t0", model.TaskPlain)))
		mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f1", "t0", "s1")))

		v := mustCreateValidator(t, mustCreateDiagram(t, p))

		assert.False(v.Validate())
		assert.Equal([]Finding{{
			Severity:    SeverityError,
			ElementId:   "s1",
			ElementType: "StartEvent",
			Message:     "Start events cannot have incoming sequence flows",
			RuleName:    RuleSequenceFlow,
		}}, v.Errors())
	})

	t.Run("end event with outgoing flow and unconnected task", func(t *testing.T) {
		p := mustCreateSimpleProcess(t)
		mustAdd(t, p.AddFlowObject(model.NewTask("t2", model.TaskPlain)))
		mustAdd(t, p.AddFlowObject(model.NewTask("t3", model.TaskPlain)))
		mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f3", "e1", "t3")))

		v := mustCreateValidator(t, mustCreateDiagram(t, p))

		assert.False(v.Validate())

		findings := findingsOf(v.Findings(), RuleSequenceFlow)
		assert.Len(findings, 2)
		assert.Equal("End events cannot have outgoing sequence flows", findings[0].Message)
		assert.Equal("e1", findings[0].ElementId)
		assert.Equal("Task is not connected to any sequence flows", findings[1].Message)
		assert.Equal("t2", findings[1].ElementId)
	})

	t.Run("multiple start events", func(t *testing.T) {
		p := mustCreateSimpleProcess(t)
		mustAdd(t, p.AddFlowObject(model.NewEvent("s2", model.EventStart)))

		v := mustCreateValidator(t, mustCreateDiagram(t, p))

		assert.True(v.Validate())

		findings := findingsOf(v.Findings(), RuleStartEvent)
		assert.Len(findings, 1)
		assert.Equal(SeverityWarning, findings[0].Severity)
		assert.Equal("Process has 2 start events (multiple start events should be used carefully)", findings[0].Message)
	})

	t.Run("gateway without flows", func(t *testing.T) {
		p := mustCreateSimpleProcess(t)

		g1 := model.NewGateway("g1", model.GatewayParallel)
		g1.Direction = model.GatewayDirectionConverging
		mustAdd(t, p.AddFlowObject(g1))

		v := mustCreateValidator(t, mustCreateDiagram(t, p))

		assert.False(v.Validate())

		findings := findingsOf(v.Findings(), RuleGateway)
		assert.Len(findings, 3)
		assert.Equal("Gateway must have at least one incoming sequence flow", findings[0].Message)
		assert.Equal("Gateway must have at least one outgoing sequence flow", findings[1].Message)
		assert.Equal("Converging gateway should have multiple incoming flows", findings[2].Message)
		assert.Equal(SeverityWarning, findings[2].Severity)
	})

	t.Run("does not fail fast", func(t *testing.T) {
		d := mustCreateDiagram(t, model.NewProcess("p1"), model.NewProcess("p2"))

		v := mustCreateValidator(t, d, func(o *Options) {
			o.Rules = []Rule{NewRule("custom_rule", func(*model.Diagram) []Finding {
				return []Finding{{Severity: SeverityInfo, Message: "executed", RuleName: "custom_rule"}}
			})}
		})

		assert.False(v.Validate())
		assert.Len(v.Errors(), 2)
		assert.Len(v.Warnings(), 2)
		assert.Len(v.Infos(), 1)
	})

	t.Run("idempotent", func(t *testing.T) {
		d := mustCreateDiagram(t, model.NewProcess("p1"))
		v := mustCreateValidator(t, d)

		v.Validate()
		findings := v.Findings()

		v.Validate()
		assert.Equal(findings, v.Findings())
	})

	t.Run("findings are copied", func(t *testing.T) {
		v := mustCreateValidator(t, mustCreateDiagram(t, model.NewProcess("p1")))
		v.Validate()

		findings := v.Findings()
		findings[0].Message = "changed"

		assert.NotEqual("changed", v.Findings()[0].Message)
	})
}

func TestFinding(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	t.Run("string", func(t *testing.T) {
		f := Finding{Severity: SeverityError, ElementId: "s1", Message: "Start events cannot have incoming sequence flows"}
		assert.Equal("ERROR: Start events cannot have incoming sequence flows (element: s1)", f.String())

		f = Finding{Severity: SeverityInfo, Message: "No element"}
		assert.Equal("INFO: No element", f.String())
	})

	t.Run("json", func(t *testing.T) {
		f := Finding{Severity: SeverityWarning, ElementId: "g1", ElementType: "Gateway", Message: "m", RuleName: RuleGateway}

		b, err := json.Marshal(f)
		require.NoError(err)
		assert.JSONEq(`{"severity":"WARNING","elementId":"g1","elementType":"Gateway","message":"m","ruleName":"gateway_rule"}`, string(b))

		var actual Finding
		require.NoError(json.Unmarshal(b, &actual))
		assert.Equal(f, actual)

		assert.Error(json.Unmarshal([]byte(`{"severity":"FATAL"}`), &actual))
	})
}
