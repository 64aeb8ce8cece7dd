package codec

import (
	"time"

	"github.com/gclaussn/go-bpmn-schema/model"
)

// Document is the serializable form of a [model.Diagram], used for the JSON and YAML formats.
// Containment is expressed by nesting, references by IDs.
type Document struct {
	Id              string `json:"id" validate:"required"`
	Name            string `json:"name,omitempty"`
	TargetNamespace string `json:"targetNamespace,omitempty"`

	CreatedBy  string     `json:"createdBy,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
	Version    string     `json:"version,omitempty"`

	Processes    []*ProcessDocument     `json:"processes,omitempty" validate:"dive,required"`
	Pools        []*PoolDocument        `json:"pools,omitempty" validate:"dive,required"`
	MessageFlows []*MessageFlowDocument `json:"messageFlows,omitempty" validate:"dive,required"`

	GlobalDataStores      []*DataStoreDocument      `json:"globalDataStores,omitempty" validate:"dive,required"`
	GlobalTextAnnotations []*TextAnnotationDocument `json:"globalTextAnnotations,omitempty" validate:"dive,required"`
}

// ElementDocument holds the fields, all elements have in common.
type ElementDocument struct {
	Id            string              `json:"id" validate:"required"`
	Name          string              `json:"name,omitempty"`
	Documentation string              `json:"documentation,omitempty"`
	Position      *PositionDocument   `json:"position,omitempty"`
	Dimensions    *DimensionsDocument `json:"dimensions,omitempty"`
	Properties    map[string]any      `json:"properties,omitempty"`
}

func (e *ElementDocument) element() *ElementDocument {
	return e
}

type DimensionsDocument struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

type PositionDocument struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ProcessDocument struct {
	ElementDocument

	Executable                   bool              `json:"executable,omitempty"`
	Closed                       bool              `json:"closed,omitempty"`
	ProcessType                  model.ProcessType `json:"processType,omitempty"`
	DefinitionalCollaborationRef string            `json:"definitionalCollaborationRef,omitempty"`

	Events          []*EventDocument          `json:"events,omitempty" validate:"dive,required"`
	Tasks           []*TaskDocument           `json:"tasks,omitempty" validate:"dive,required"`
	Gateways        []*GatewayDocument        `json:"gateways,omitempty" validate:"dive,required"`
	SubProcesses    []*SubProcessDocument     `json:"subProcesses,omitempty" validate:"dive,required"`
	SequenceFlows   []*SequenceFlowDocument   `json:"sequenceFlows,omitempty" validate:"dive,required"`
	Associations    []*AssociationDocument    `json:"associations,omitempty" validate:"dive,required"`
	DataObjects     []*DataObjectDocument     `json:"dataObjects,omitempty" validate:"dive,required"`
	DataStores      []*DataStoreDocument      `json:"dataStores,omitempty" validate:"dive,required"`
	Groups          []*GroupDocument          `json:"groups,omitempty" validate:"dive,required"`
	TextAnnotations []*TextAnnotationDocument `json:"textAnnotations,omitempty" validate:"dive,required"`
	Lanes           []*LaneDocument           `json:"lanes,omitempty" validate:"dive,required"`
}

// FlowObjectDocument wraps exactly one flow object of a sub-process.
type FlowObjectDocument struct {
	Event      *EventDocument      `json:"event,omitempty"`
	Task       *TaskDocument       `json:"task,omitempty"`
	Gateway    *GatewayDocument    `json:"gateway,omitempty"`
	SubProcess *SubProcessDocument `json:"subProcess,omitempty"`
}

type EventDocument struct {
	ElementDocument

	EventType     model.EventType       `json:"eventType" validate:"required"`
	Definition    model.EventDefinition `json:"definition,omitempty"`
	Interrupting  *bool                 `json:"interrupting,omitempty"` // nil means true
	Throwing      bool                  `json:"throwing,omitempty"`
	Trigger       string                `json:"trigger,omitempty"`
	AttachedToRef string                `json:"attachedToRef,omitempty"`
}

type TaskDocument struct {
	ElementDocument

	TaskType      model.TaskType         `json:"taskType" validate:"required"`
	Markers       []model.ActivityMarker `json:"markers,omitempty"`
	MultiInstance *MultiInstanceDocument `json:"multiInstance,omitempty"`

	BusinessRuleTask *BusinessRuleTaskDocument `json:"businessRuleTask,omitempty"`
	MessageTask      *MessageTaskDocument      `json:"messageTask,omitempty"`
	ScriptTask       *ScriptTaskDocument       `json:"scriptTask,omitempty"`
	ServiceTask      *ServiceTaskDocument      `json:"serviceTask,omitempty"`
	UserTask         *UserTaskDocument         `json:"userTask,omitempty"`
}

type BusinessRuleTaskDocument struct {
	RuleImplementation string `json:"ruleImplementation,omitempty"`
	DecisionRef        string `json:"decisionRef,omitempty"`
}

type MessageTaskDocument struct {
	MessageRef  string `json:"messageRef,omitempty"`
	Operation   string `json:"operation,omitempty"`
	Instantiate bool   `json:"instantiate,omitempty"`
}

type MultiInstanceDocument struct {
	LoopCardinality     string `json:"loopCardinality,omitempty"`
	CompletionCondition string `json:"completionCondition,omitempty"`
	Collection          string `json:"collection,omitempty"`
	ElementVariable     string `json:"elementVariable,omitempty"`
}

type ScriptTaskDocument struct {
	Script       string `json:"script,omitempty"`
	ScriptFormat string `json:"scriptFormat,omitempty"`
}

type ServiceTaskDocument struct {
	Implementation string `json:"implementation,omitempty"`
	OperationRef   string `json:"operationRef,omitempty"`
}

type UserTaskDocument struct {
	Assignee        string     `json:"assignee,omitempty"`
	CandidateGroups []string   `json:"candidateGroups,omitempty"`
	CandidateUsers  []string   `json:"candidateUsers,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	Priority        *int       `json:"priority,omitempty"`
	FormKey         string     `json:"formKey,omitempty"`
}

type GatewayDocument struct {
	ElementDocument

	GatewayType model.GatewayType      `json:"gatewayType" validate:"required"`
	Direction   model.GatewayDirection `json:"direction,omitempty"`
	DefaultFlow string                 `json:"defaultFlow,omitempty"`
	Instantiate bool                   `json:"instantiate,omitempty"`
}

type SubProcessDocument struct {
	ElementDocument

	SubProcessType   model.SubProcessType   `json:"subProcessType" validate:"required"`
	Expanded         *bool                  `json:"expanded,omitempty"` // nil means true
	TriggeredByEvent bool                   `json:"triggeredByEvent,omitempty"`
	ForCompensation  bool                   `json:"forCompensation,omitempty"`
	Markers          []model.ActivityMarker `json:"markers,omitempty"`

	AdHoc        *AdHocDocument        `json:"adHoc,omitempty"`
	CallActivity *CallActivityDocument `json:"callActivity,omitempty"`
	Transaction  *TransactionDocument  `json:"transaction,omitempty"`

	FlowObjects    []*FlowObjectDocument   `json:"flowObjects,omitempty" validate:"dive,required"`
	SequenceFlows  []*SequenceFlowDocument `json:"sequenceFlows,omitempty" validate:"dive,required"`
	BoundaryEvents []*EventDocument        `json:"boundaryEvents,omitempty" validate:"dive,required"`
}

type AdHocDocument struct {
	Ordering                 model.AdHocOrdering `json:"ordering,omitempty"`
	CancelRemainingInstances *bool               `json:"cancelRemainingInstances,omitempty"` // nil means true
}

type CallActivityDocument struct {
	CalledElement     string                  `json:"calledElement,omitempty"`
	CalledElementType model.CalledElementType `json:"calledElementType,omitempty"`
}

type TransactionDocument struct {
	Method string `json:"method,omitempty"`
}

type SequenceFlowDocument struct {
	ElementDocument

	SourceRef           string             `json:"sourceRef" validate:"required"`
	TargetRef           string             `json:"targetRef" validate:"required"`
	ConditionExpression string             `json:"conditionExpression,omitempty"`
	Immediate           bool               `json:"immediate,omitempty"`
	Waypoints           []PositionDocument `json:"waypoints,omitempty"`
}

type MessageFlowDocument struct {
	ElementDocument

	SourceRef  string             `json:"sourceRef" validate:"required"`
	TargetRef  string             `json:"targetRef" validate:"required"`
	MessageRef string             `json:"messageRef,omitempty"`
	Waypoints  []PositionDocument `json:"waypoints,omitempty"`
}

type AssociationDocument struct {
	ElementDocument

	SourceRef string                     `json:"sourceRef" validate:"required"`
	TargetRef string                     `json:"targetRef" validate:"required"`
	Direction model.AssociationDirection `json:"direction,omitempty"`
	Waypoints []PositionDocument         `json:"waypoints,omitempty"`
}

type PoolDocument struct {
	ElementDocument

	Executable              bool            `json:"executable,omitempty"`
	Horizontal              *bool           `json:"horizontal,omitempty"` // nil means true
	ParticipantMultiplicity int             `json:"participantMultiplicity,omitempty" validate:"gte=0"`
	ProcessRef              string          `json:"processRef,omitempty"`
	Lanes                   []*LaneDocument `json:"lanes,omitempty" validate:"dive,required"`
}

type LaneDocument struct {
	ElementDocument

	PartitionElementRef string          `json:"partitionElementRef,omitempty"`
	FlowNodeRefs        []string        `json:"flowNodeRefs,omitempty"`
	ChildLanes          []*LaneDocument `json:"childLanes,omitempty" validate:"dive,required"`
}

type DataObjectDocument struct {
	ElementDocument

	Collection     bool   `json:"collection,omitempty"`
	ItemSubjectRef string `json:"itemSubjectRef,omitempty"`
	State          string `json:"state,omitempty"`
}

type DataStoreDocument struct {
	ElementDocument

	ItemSubjectRef string `json:"itemSubjectRef,omitempty"`
	Capacity       *int   `json:"capacity,omitempty" validate:"omitempty,gte=0"` // nil means unlimited
}

type GroupDocument struct {
	ElementDocument

	CategoryValueRef string `json:"categoryValueRef,omitempty"`
}

type TextAnnotationDocument struct {
	ElementDocument

	Text       string `json:"text,omitempty"`
	TextFormat string `json:"textFormat,omitempty"`
}
