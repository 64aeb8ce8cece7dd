package model

import "fmt"

// ElementType classifies the BPMN elements into flow objects, connecting objects, swimlanes and artifacts.
type ElementType int

const (
	ElementAssociation ElementType = iota + 1
	ElementCallActivity
	ElementDataObject
	ElementDataStore
	ElementEvent
	ElementGateway
	ElementGroup
	ElementLane
	ElementMessageFlow
	ElementPool
	ElementProcess
	ElementSequenceFlow
	ElementSubProcess
	ElementTask
	ElementTextAnnotation
)

func MapElementType(s string) ElementType {
	switch s {
	case "ASSOCIATION":
		return ElementAssociation
	case "CALL_ACTIVITY":
		return ElementCallActivity
	case "DATA_OBJECT":
		return ElementDataObject
	case "DATA_STORE":
		return ElementDataStore
	case "EVENT":
		return ElementEvent
	case "GATEWAY":
		return ElementGateway
	case "GROUP":
		return ElementGroup
	case "LANE":
		return ElementLane
	case "MESSAGE_FLOW":
		return ElementMessageFlow
	case "POOL":
		return ElementPool
	case "PROCESS":
		return ElementProcess
	case "SEQUENCE_FLOW":
		return ElementSequenceFlow
	case "SUB_PROCESS":
		return ElementSubProcess
	case "TASK":
		return ElementTask
	case "TEXT_ANNOTATION":
		return ElementTextAnnotation
	default:
		return 0
	}
}

func (v ElementType) MarshalJSON() ([]byte, error) {
	s := v.String()
	if s == "" {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", s)), nil
}

func (v ElementType) String() string {
	switch v {
	case ElementAssociation:
		return "ASSOCIATION"
	case ElementCallActivity:
		return "CALL_ACTIVITY"
	case ElementDataObject:
		return "DATA_OBJECT"
	case ElementDataStore:
		return "DATA_STORE"
	case ElementEvent:
		return "EVENT"
	case ElementGateway:
		return "GATEWAY"
	case ElementGroup:
		return "GROUP"
	case ElementLane:
		return "LANE"
	case ElementMessageFlow:
		return "MESSAGE_FLOW"
	case ElementPool:
		return "POOL"
	case ElementProcess:
		return "PROCESS"
	case ElementSequenceFlow:
		return "SEQUENCE_FLOW"
	case ElementSubProcess:
		return "SUB_PROCESS"
	case ElementTask:
		return "TASK"
	case ElementTextAnnotation:
		return "TEXT_ANNOTATION"
	default:
		return ""
	}
}

func (v *ElementType) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) > 2 {
		s = s[1 : len(s)-1]
		*v = MapElementType(s)
	}
	if *v == 0 {
		return fmt.Errorf("invalid element type data %s", s)
	}
	return nil
}
