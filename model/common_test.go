package model

import (
	"errors"
	"testing"
)

func assertErrorType(t *testing.T, err error, expectedType ErrorType) {
	t.Helper()

	var modelErr Error
	if !errors.As(err, &modelErr) {
		t.Fatalf("expected error of type model.Error, but got %T: %v", err, err)
	}
	if modelErr.Type != expectedType {
		t.Fatalf("expected error type %s, but got %s: %v", expectedType, modelErr.Type, err)
	}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to add element: %v", err)
	}
}

// mustCreateSimpleProcess creates a process with the flow s1 -> t1 -> e1.
func mustCreateSimpleProcess(t *testing.T) *Process {
	p := NewProcess("p1")
	p.Name = "Simple"

	mustAdd(t, p.AddFlowObject(NewEvent("s1", EventStart)))
	mustAdd(t, p.AddFlowObject(NewTask("t1", TaskUser)))
	mustAdd(t, p.AddFlowObject(NewEvent("e1", EventEnd)))
	mustAdd(t, p.AddConnectingObject(NewSequenceFlow("f1", "s1", "t1")))
	mustAdd(t, p.AddConnectingObject(NewSequenceFlow("f2", "t1", "e1")))

	return p
}
