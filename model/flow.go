package model

import (
	"fmt"
	"slices"
)

func NewAssociation(id string, sourceRef string, targetRef string) *Association {
	return &Association{
		BaseElement: newBaseElement(id),
		Direction:   AssociationDirectionNone,
		SourceRef:   sourceRef,
		TargetRef:   targetRef,
	}
}

func NewMessageFlow(id string, sourceRef string, targetRef string) *MessageFlow {
	return &MessageFlow{
		BaseElement: newBaseElement(id),
		SourceRef:   sourceRef,
		TargetRef:   targetRef,
	}
}

func NewSequenceFlow(id string, sourceRef string, targetRef string) *SequenceFlow {
	return &SequenceFlow{
		BaseElement: newBaseElement(id),
		SourceRef:   sourceRef,
		TargetRef:   targetRef,
	}
}

// waypoints is the visual routing of a connecting object.
type waypoints struct {
	waypoints []Position
}

func (w *waypoints) AddWaypoint(x float64, y float64) {
	w.waypoints = append(w.waypoints, Position{X: x, Y: y})
}

func (w *waypoints) ClearWaypoints() {
	w.waypoints = nil
}

func (w *waypoints) Waypoints() []Position {
	return slices.Clone(w.waypoints)
}

// Association links an artifact or a text annotation with another element.
type Association struct {
	BaseElement
	waypoints

	Direction AssociationDirection
	SourceRef string
	TargetRef string
}

func (a *Association) ElementType() ElementType {
	return ElementAssociation
}

func (a *Association) IsBidirectional() bool {
	return a.Direction == AssociationDirectionBoth
}

func (a *Association) IsDirectional() bool {
	return a.Direction == AssociationDirectionOne || a.Direction == AssociationDirectionBoth
}

func (a *Association) Source() string {
	return a.SourceRef
}

func (a *Association) String() string {
	var symbol string
	switch a.Direction {
	case AssociationDirectionBoth:
		symbol = "<⋯>"
	case AssociationDirectionOne:
		symbol = "⋯>"
	default:
		symbol = "⋯"
	}
	return fmt.Sprintf("Association '%s' (%s %s %s)", a.Name, a.SourceRef, symbol, a.TargetRef)
}

func (a *Association) Target() string {
	return a.TargetRef
}

func (a *Association) isConnectingObject() {}

// MessageFlow connects elements of different pools.
type MessageFlow struct {
	BaseElement
	waypoints

	MessageRef string
	SourceRef  string
	TargetRef  string
}

func (f *MessageFlow) ElementType() ElementType {
	return ElementMessageFlow
}

func (f *MessageFlow) HasMessageRef() bool {
	return f.MessageRef != ""
}

func (f *MessageFlow) Source() string {
	return f.SourceRef
}

func (f *MessageFlow) String() string {
	var message string
	if f.HasMessageRef() {
		message = fmt.Sprintf(" [Message: %s]", f.MessageRef)
	}
	return fmt.Sprintf("Message Flow '%s' (%s ⇢ %s)%s", f.Name, f.SourceRef, f.TargetRef, message)
}

func (f *MessageFlow) Target() string {
	return f.TargetRef
}

func (f *MessageFlow) isConnectingObject() {}

// SequenceFlow defines the order of flow objects within a process or sub-process.
type SequenceFlow struct {
	BaseElement
	waypoints

	ConditionExpression string
	Immediate           bool
	SourceRef           string
	TargetRef           string
}

func (f *SequenceFlow) ElementType() ElementType {
	return ElementSequenceFlow
}

func (f *SequenceFlow) IsConditional() bool {
	return f.ConditionExpression != ""
}

// SetCondition sets a condition expression like ${approved == true}.
func (f *SequenceFlow) SetCondition(expression string) {
	f.ConditionExpression = expression
}

func (f *SequenceFlow) Source() string {
	return f.SourceRef
}

func (f *SequenceFlow) String() string {
	var condition string
	if f.IsConditional() {
		condition = fmt.Sprintf(" [%s]", f.ConditionExpression)
	}
	return fmt.Sprintf("Sequence Flow '%s' (%s → %s)%s", f.Name, f.SourceRef, f.TargetRef, condition)
}

func (f *SequenceFlow) Target() string {
	return f.TargetRef
}

func (f *SequenceFlow) isConnectingObject() {}

type AssociationDirection int

const (
	AssociationDirectionBoth AssociationDirection = iota + 1
	AssociationDirectionNone
	AssociationDirectionOne
)

func MapAssociationDirection(s string) AssociationDirection {
	switch s {
	case "BOTH":
		return AssociationDirectionBoth
	case "NONE":
		return AssociationDirectionNone
	case "ONE":
		return AssociationDirectionOne
	default:
		return 0
	}
}

func (v AssociationDirection) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v AssociationDirection) String() string {
	switch v {
	case AssociationDirectionBoth:
		return "BOTH"
	case AssociationDirectionNone:
		return "NONE"
	case AssociationDirectionOne:
		return "ONE"
	default:
		return ""
	}
}

func (v *AssociationDirection) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "association direction", func(s string) bool {
		*v = MapAssociationDirection(s)
		return *v != 0
	})
}
