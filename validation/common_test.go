package validation

import (
	"testing"

	"github.com/gclaussn/go-bpmn-schema/model"
)

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to add element: %v", err)
	}
}

// mustCreateDiagram creates a diagram, containing the given processes.
func mustCreateDiagram(t *testing.T, processes ...*model.Process) *model.Diagram {
	t.Helper()

	d := model.NewDiagram("d1")
	for _, p := range processes {
		mustAdd(t, d.AddProcess(p))
	}
	return d
}

// mustCreateSimpleProcess creates a process with the flow s1 -> t1 -> e1.
func mustCreateSimpleProcess(t *testing.T) *model.Process {
	t.Helper()

	p := model.NewProcess("p1")
	mustAdd(t, p.AddFlowObject(model.NewEvent("s1", model.EventStart)))
	mustAdd(t, p.AddFlowObject(model.NewTask("t1", model.TaskUser)))
	mustAdd(t, p.AddFlowObject(model.NewEvent("e1", model.EventEnd)))
	mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f1", "s1", "t1")))
	mustAdd(t, p.AddConnectingObject(model.NewSequenceFlow("f2", "t1", "e1")))
	return p
}

func mustCreateValidator(t *testing.T, d *model.Diagram, customizers ...func(*Options)) *Validator {
	t.Helper()

	v, err := New(d, customizers...)
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}
	return v
}

// findingsOf returns the findings of the given rule.
func findingsOf(findings []Finding, ruleName string) []Finding {
	var result []Finding
	for _, f := range findings {
		if f.RuleName == ruleName {
			result = append(result, f)
		}
	}
	return result
}
