package model

import (
	"fmt"
	"strings"
)

func NewEvent(id string, eventType EventType) *Event {
	return &Event{
		BaseElement:  newBaseElement(id),
		Definition:   EventDefinitionNone,
		Interrupting: true,

		eventType: eventType,
	}
}

type Event struct {
	BaseElement

	Definition   EventDefinition
	Interrupting bool   // Only relevant for boundary and event sub-process start events.
	Throwing     bool   // Determines if the event throws (true) or catches (false) its trigger.
	Trigger      string // Trigger payload like a timer expression, message or signal reference or error code.

	eventType     EventType
	attachedToRef string
}

// AttachToActivity attaches the event to the boundary of an activity.
// The transition to a boundary event cannot be undone.
func (e *Event) AttachToActivity(activityId string, interrupting bool) {
	e.eventType = EventBoundary
	e.attachedToRef = activityId
	e.Interrupting = interrupting
}

// AttachedToRef returns the ID of the activity, a boundary event is attached to.
// For all other events an empty string is returned.
func (e *Event) AttachedToRef() string {
	if e.eventType != EventBoundary {
		return ""
	}
	return e.attachedToRef
}

func (e *Event) ElementType() ElementType {
	return ElementEvent
}

func (e *Event) EventType() EventType {
	return e.eventType
}

func (e *Event) HasTrigger() bool {
	return e.Definition != EventDefinitionNone && e.Definition != 0
}

func (e *Event) IsBoundaryEvent() bool {
	return e.eventType == EventBoundary
}

func (e *Event) IsCatching() bool {
	return !e.Throwing
}

func (e *Event) IsEndEvent() bool {
	return e.eventType == EventEnd
}

func (e *Event) IsErrorEvent() bool {
	return e.Definition == EventDefinitionError
}

func (e *Event) IsIntermediateEvent() bool {
	return e.eventType == EventIntermediate
}

func (e *Event) IsMessageEvent() bool {
	return e.Definition == EventDefinitionMessage
}

func (e *Event) IsSignalEvent() bool {
	return e.Definition == EventDefinitionSignal
}

func (e *Event) IsStartEvent() bool {
	return e.eventType == EventStart
}

func (e *Event) IsThrowing() bool {
	return e.Throwing
}

func (e *Event) IsTimerEvent() bool {
	return e.Definition == EventDefinitionTimer
}

func (e *Event) SetErrorTrigger(errorCode string) {
	e.Definition = EventDefinitionError
	e.Trigger = errorCode
}

func (e *Event) SetMessageTrigger(messageRef string) {
	e.Definition = EventDefinitionMessage
	e.Trigger = messageRef
}

func (e *Event) SetSignalTrigger(signalRef string) {
	e.Definition = EventDefinitionSignal
	e.Trigger = signalRef
}

// SetTimerTrigger sets an ISO 8601 date, duration or cycle or a CRON expression as trigger.
func (e *Event) SetTimerTrigger(timerExpression string) {
	e.Definition = EventDefinitionTimer
	e.Trigger = timerExpression
}

func (e *Event) String() string {
	var definition string
	if e.HasTrigger() {
		definition = fmt.Sprintf(" (%s)", strings.ToLower(e.Definition.String()))
	}
	return fmt.Sprintf("%s Event '%s'%s", title(e.eventType.String()), e.Name, definition)
}

func (e *Event) isFlowObject() {}

// EventType describes the phase of an event within a process.
type EventType int

const (
	EventBoundary EventType = iota + 1
	EventEnd
	EventIntermediate
	EventStart
)

func MapEventType(s string) EventType {
	switch s {
	case "BOUNDARY":
		return EventBoundary
	case "END":
		return EventEnd
	case "INTERMEDIATE":
		return EventIntermediate
	case "START":
		return EventStart
	default:
		return 0
	}
}

func (v EventType) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v EventType) String() string {
	switch v {
	case EventBoundary:
		return "BOUNDARY"
	case EventEnd:
		return "END"
	case EventIntermediate:
		return "INTERMEDIATE"
	case EventStart:
		return "START"
	default:
		return ""
	}
}

func (v *EventType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "event type", func(s string) bool {
		*v = MapEventType(s)
		return *v != 0
	})
}

// EventDefinition describes the trigger or result of an event.
type EventDefinition int

const (
	EventDefinitionCancel EventDefinition = iota + 1
	EventDefinitionCompensation
	EventDefinitionConditional
	EventDefinitionError
	EventDefinitionEscalation
	EventDefinitionLink
	EventDefinitionMessage
	EventDefinitionMultiple
	EventDefinitionNone
	EventDefinitionParallelMultiple
	EventDefinitionSignal
	EventDefinitionTerminate
	EventDefinitionTimer
)

func MapEventDefinition(s string) EventDefinition {
	switch s {
	case "CANCEL":
		return EventDefinitionCancel
	case "COMPENSATION":
		return EventDefinitionCompensation
	case "CONDITIONAL":
		return EventDefinitionConditional
	case "ERROR":
		return EventDefinitionError
	case "ESCALATION":
		return EventDefinitionEscalation
	case "LINK":
		return EventDefinitionLink
	case "MESSAGE":
		return EventDefinitionMessage
	case "MULTIPLE":
		return EventDefinitionMultiple
	case "NONE":
		return EventDefinitionNone
	case "PARALLEL_MULTIPLE":
		return EventDefinitionParallelMultiple
	case "SIGNAL":
		return EventDefinitionSignal
	case "TERMINATE":
		return EventDefinitionTerminate
	case "TIMER":
		return EventDefinitionTimer
	default:
		return 0
	}
}

func (v EventDefinition) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v EventDefinition) String() string {
	switch v {
	case EventDefinitionCancel:
		return "CANCEL"
	case EventDefinitionCompensation:
		return "COMPENSATION"
	case EventDefinitionConditional:
		return "CONDITIONAL"
	case EventDefinitionError:
		return "ERROR"
	case EventDefinitionEscalation:
		return "ESCALATION"
	case EventDefinitionLink:
		return "LINK"
	case EventDefinitionMessage:
		return "MESSAGE"
	case EventDefinitionMultiple:
		return "MULTIPLE"
	case EventDefinitionNone:
		return "NONE"
	case EventDefinitionParallelMultiple:
		return "PARALLEL_MULTIPLE"
	case EventDefinitionSignal:
		return "SIGNAL"
	case EventDefinitionTerminate:
		return "TERMINATE"
	case EventDefinitionTimer:
		return "TIMER"
	default:
		return ""
	}
}

func (v *EventDefinition) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "event definition", func(s string) bool {
		*v = MapEventDefinition(s)
		return *v != 0
	})
}
