package model

import "fmt"

func NewSubProcess(id string, subProcessType SubProcessType) *SubProcess {
	return &SubProcess{
		BaseElement: newBaseElement(id),
		Expanded:    true,

		Model:          newSubProcessModel(subProcessType),
		subProcessType: subProcessType,
	}
}

// SubProcess is a compound activity, which contains flow objects, sequence flows and boundary events.
type SubProcess struct {
	BaseElement
	activityMarkers

	Expanded         bool
	TriggeredByEvent bool
	ForCompensation  bool

	// Kind specific model - *CallActivity, *Transaction, *AdHoc or nil for EMBEDDED and EVENT.
	Model any

	subProcessType SubProcessType

	flowObjects    []FlowObject
	sequenceFlows  []*SequenceFlow
	boundaryEvents []*Event
}

func newSubProcessModel(subProcessType SubProcessType) any {
	switch subProcessType {
	case SubProcessAdHoc:
		return &AdHoc{CancelRemainingInstances: true}
	case SubProcessCallActivity:
		return &CallActivity{}
	case SubProcessTransaction:
		return &Transaction{}
	default:
		return nil
	}
}

func (sp *SubProcess) AdHoc() *AdHoc {
	v, _ := sp.Model.(*AdHoc)
	return v
}

// AddBoundaryEvent attaches the event to the sub-process and adds it to the boundary events.
// The interrupting flag of the event is kept.
func (sp *SubProcess) AddBoundaryEvent(event *Event) error {
	if event == nil {
		return typeMismatch("failed to add boundary event", event)
	}
	return sp.AttachBoundaryEvent(event, event.Interrupting)
}

// AttachBoundaryEvent works like [SubProcess.AddBoundaryEvent], but overrides the interrupting flag of the event.
func (sp *SubProcess) AttachBoundaryEvent(event *Event, interrupting bool) error {
	if event == nil {
		return typeMismatch("failed to add boundary event", event)
	}
	if err := event.claim(); err != nil {
		return err
	}

	event.AttachToActivity(sp.id, interrupting)
	sp.boundaryEvents = append(sp.boundaryEvents, event)
	return nil
}

func (sp *SubProcess) AddFlowObject(flowObject FlowObject) error {
	if isNil(flowObject) {
		return typeMismatch("failed to add flow object", flowObject)
	}
	if err := flowObject.Base().claim(); err != nil {
		return err
	}

	sp.flowObjects = append(sp.flowObjects, flowObject)
	return nil
}

func (sp *SubProcess) AddSequenceFlow(sequenceFlow *SequenceFlow) error {
	if sequenceFlow == nil {
		return typeMismatch("failed to add sequence flow", sequenceFlow)
	}
	if err := sequenceFlow.claim(); err != nil {
		return err
	}

	sp.sequenceFlows = append(sp.sequenceFlows, sequenceFlow)
	return nil
}

// AllElements returns the flow objects, sequence flows and boundary events of the sub-process.
// Elements of nested sub-processes are not included.
func (sp *SubProcess) AllElements() []Element {
	elements := make([]Element, 0, len(sp.flowObjects)+len(sp.sequenceFlows)+len(sp.boundaryEvents))
	for _, e := range sp.flowObjects {
		elements = append(elements, e)
	}
	for _, e := range sp.sequenceFlows {
		elements = append(elements, e)
	}
	for _, e := range sp.boundaryEvents {
		elements = append(elements, e)
	}
	return elements
}

func (sp *SubProcess) BoundaryEvents() []*Event {
	return sp.boundaryEvents
}

func (sp *SubProcess) CallActivity() *CallActivity {
	v, _ := sp.Model.(*CallActivity)
	return v
}

func (sp *SubProcess) ElementById(id string) (Element, bool) {
	for _, e := range sp.AllElements() {
		if e.Base().id == id {
			return e, true
		}
	}
	return nil, false
}

func (sp *SubProcess) ElementType() ElementType {
	if sp.subProcessType == SubProcessCallActivity {
		return ElementCallActivity
	}
	return ElementSubProcess
}

func (sp *SubProcess) FlowObjects() []FlowObject {
	return sp.flowObjects
}

func (sp *SubProcess) IsAdHoc() bool {
	return sp.subProcessType == SubProcessAdHoc
}

func (sp *SubProcess) IsCallActivity() bool {
	return sp.subProcessType == SubProcessCallActivity
}

func (sp *SubProcess) IsEventSubProcess() bool {
	return sp.subProcessType == SubProcessEvent
}

func (sp *SubProcess) IsTransaction() bool {
	return sp.subProcessType == SubProcessTransaction
}

func (sp *SubProcess) SequenceFlows() []*SequenceFlow {
	return sp.sequenceFlows
}

func (sp *SubProcess) String() string {
	if sp.subProcessType == SubProcessCallActivity {
		return fmt.Sprintf("Call Activity '%s'", sp.Name)
	}
	return fmt.Sprintf("%s Sub-Process '%s'", title(sp.subProcessType.String()), sp.Name)
}

func (sp *SubProcess) SubProcessType() SubProcessType {
	return sp.subProcessType
}

func (sp *SubProcess) Transaction() *Transaction {
	v, _ := sp.Model.(*Transaction)
	return v
}

// nestedSubProcesses returns the sub-processes, which are flow objects of the sub-process.
func (sp *SubProcess) nestedSubProcesses() []*SubProcess {
	var subProcesses []*SubProcess
	for _, flowObject := range sp.flowObjects {
		if v, ok := flowObject.(*SubProcess); ok {
			subProcesses = append(subProcesses, v)
		}
	}
	return subProcesses
}

func (sp *SubProcess) isActivity() {}

func (sp *SubProcess) isFlowObject() {}

// findInSubProcesses finds an element of the given sub-processes or of their nested sub-processes, depth first.
func findInSubProcesses(subProcesses []*SubProcess, id string) (Element, bool) {
	for _, subProcess := range subProcesses {
		if e, ok := subProcess.ElementById(id); ok {
			return e, true
		}
		if e, ok := findInSubProcesses(subProcess.nestedSubProcesses(), id); ok {
			return e, true
		}
	}
	return nil, false
}

type AdHoc struct {
	Ordering                 AdHocOrdering
	CancelRemainingInstances bool
}

type CallActivity struct {
	CalledElement     string
	CalledElementType CalledElementType
}

type Transaction struct {
	Method string
}

type AdHocOrdering int

const (
	AdHocOrderingParallel AdHocOrdering = iota + 1
	AdHocOrderingSequential
)

func MapAdHocOrdering(s string) AdHocOrdering {
	switch s {
	case "PARALLEL":
		return AdHocOrderingParallel
	case "SEQUENTIAL":
		return AdHocOrderingSequential
	default:
		return 0
	}
}

func (v AdHocOrdering) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v AdHocOrdering) String() string {
	switch v {
	case AdHocOrderingParallel:
		return "PARALLEL"
	case AdHocOrderingSequential:
		return "SEQUENTIAL"
	default:
		return ""
	}
}

func (v *AdHocOrdering) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "ad-hoc ordering", func(s string) bool {
		*v = MapAdHocOrdering(s)
		return *v != 0
	})
}

type CalledElementType int

const (
	CalledElementGlobalTask CalledElementType = iota + 1
	CalledElementProcess
)

func MapCalledElementType(s string) CalledElementType {
	switch s {
	case "GLOBAL_TASK":
		return CalledElementGlobalTask
	case "PROCESS":
		return CalledElementProcess
	default:
		return 0
	}
}

func (v CalledElementType) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v CalledElementType) String() string {
	switch v {
	case CalledElementGlobalTask:
		return "GLOBAL_TASK"
	case CalledElementProcess:
		return "PROCESS"
	default:
		return ""
	}
}

func (v *CalledElementType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "called element type", func(s string) bool {
		*v = MapCalledElementType(s)
		return *v != 0
	})
}

type SubProcessType int

const (
	SubProcessAdHoc SubProcessType = iota + 1
	SubProcessCallActivity
	SubProcessEmbedded
	SubProcessEvent
	SubProcessTransaction
)

func MapSubProcessType(s string) SubProcessType {
	switch s {
	case "AD_HOC":
		return SubProcessAdHoc
	case "CALL_ACTIVITY":
		return SubProcessCallActivity
	case "EMBEDDED":
		return SubProcessEmbedded
	case "EVENT":
		return SubProcessEvent
	case "TRANSACTION":
		return SubProcessTransaction
	default:
		return 0
	}
}

func (v SubProcessType) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v SubProcessType) String() string {
	switch v {
	case SubProcessAdHoc:
		return "AD_HOC"
	case SubProcessCallActivity:
		return "CALL_ACTIVITY"
	case SubProcessEmbedded:
		return "EMBEDDED"
	case SubProcessEvent:
		return "EVENT"
	case SubProcessTransaction:
		return "TRANSACTION"
	default:
		return ""
	}
}

func (v *SubProcessType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "sub-process type", func(s string) bool {
		*v = MapSubProcessType(s)
		return *v != 0
	})
}
