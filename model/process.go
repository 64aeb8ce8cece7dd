package model

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
)

// precedence of the element categories, used when the same ID occurs more than once
const (
	rankEvent = iota
	rankTask
	rankGateway
	rankSubProcess
	rankSequenceFlow
	rankAssociation
	rankDataObject
	rankDataStore
	rankGroup
	rankTextAnnotation
	rankLane
)

func NewProcess(id string) *Process {
	return &Process{
		BaseElement: newBaseElement(id),
		ProcessType: ProcessTypeNone,

		index: make(map[string]indexEntry),
	}
}

// Process contains the flow objects, connecting objects, artifacts and lanes of a business process.
type Process struct {
	BaseElement

	Executable                   bool
	Closed                       bool
	ProcessType                  ProcessType
	DefinitionalCollaborationRef string

	events       []*Event
	tasks        []*Task
	gateways     []*Gateway
	subProcesses []*SubProcess

	sequenceFlows []*SequenceFlow
	associations  []*Association

	dataObjects     []*DataObject
	dataStores      []*DataStore
	groups          []*Group
	textAnnotations []*TextAnnotation

	lanes []*Lane

	index map[string]indexEntry
}

type indexEntry struct {
	element Element
	rank    int
}

// AddArtifact adds a data object, data store, group or text annotation.
func (p *Process) AddArtifact(artifact Artifact) error {
	if isNil(artifact) {
		return typeMismatch("failed to add artifact", artifact)
	}

	switch v := artifact.(type) {
	case *DataObject:
		return p.add(v, rankDataObject, func() { p.dataObjects = append(p.dataObjects, v) })
	case *DataStore:
		return p.add(v, rankDataStore, func() { p.dataStores = append(p.dataStores, v) })
	case *Group:
		return p.add(v, rankGroup, func() { p.groups = append(p.groups, v) })
	case *TextAnnotation:
		return p.add(v, rankTextAnnotation, func() { p.textAnnotations = append(p.textAnnotations, v) })
	default:
		return typeMismatch("failed to add artifact", artifact)
	}
}

// AddConnectingObject adds a sequence flow or an association.
// Message flows connect pools and must be added to the diagram.
func (p *Process) AddConnectingObject(connectingObject ConnectingObject) error {
	if isNil(connectingObject) {
		return typeMismatch("failed to add connecting object", connectingObject)
	}

	switch v := connectingObject.(type) {
	case *SequenceFlow:
		return p.add(v, rankSequenceFlow, func() { p.sequenceFlows = append(p.sequenceFlows, v) })
	case *Association:
		return p.add(v, rankAssociation, func() { p.associations = append(p.associations, v) })
	default:
		return typeMismatch("failed to add connecting object", connectingObject)
	}
}

// AddFlowObject adds an event, task, gateway or sub-process.
func (p *Process) AddFlowObject(flowObject FlowObject) error {
	if isNil(flowObject) {
		return typeMismatch("failed to add flow object", flowObject)
	}

	switch v := flowObject.(type) {
	case *Event:
		return p.add(v, rankEvent, func() { p.events = append(p.events, v) })
	case *Task:
		return p.add(v, rankTask, func() { p.tasks = append(p.tasks, v) })
	case *Gateway:
		return p.add(v, rankGateway, func() { p.gateways = append(p.gateways, v) })
	case *SubProcess:
		return p.add(v, rankSubProcess, func() { p.subProcesses = append(p.subProcesses, v) })
	default:
		return typeMismatch("failed to add flow object", flowObject)
	}
}

func (p *Process) AddLane(lane *Lane) error {
	if lane == nil {
		return typeMismatch("failed to add lane", lane)
	}
	return p.add(lane, rankLane, func() { p.lanes = append(p.lanes, lane) })
}

// AllElements returns all elements in the order: events, tasks, gateways, sub-processes, sequence flows, associations,
// data objects, data stores, groups, text annotations and lanes.
func (p *Process) AllElements() []Element {
	elements := make([]Element, 0, len(p.index))
	for _, e := range p.AllFlowObjects() {
		elements = append(elements, e)
	}
	elements = appendElements(elements, p.sequenceFlows)
	elements = appendElements(elements, p.associations)
	elements = appendElements(elements, p.dataObjects)
	elements = appendElements(elements, p.dataStores)
	elements = appendElements(elements, p.groups)
	elements = appendElements(elements, p.textAnnotations)
	elements = appendElements(elements, p.lanes)
	return elements
}

// AllFlowObjects returns events, tasks, gateways and sub-processes, in that order.
func (p *Process) AllFlowObjects() []FlowObject {
	flowObjects := make([]FlowObject, 0, len(p.events)+len(p.tasks)+len(p.gateways)+len(p.subProcesses))
	for _, e := range p.events {
		flowObjects = append(flowObjects, e)
	}
	for _, e := range p.tasks {
		flowObjects = append(flowObjects, e)
	}
	for _, e := range p.gateways {
		flowObjects = append(flowObjects, e)
	}
	for _, e := range p.subProcesses {
		flowObjects = append(flowObjects, e)
	}
	return flowObjects
}

func (p *Process) Associations() []*Association {
	return p.associations
}

// CountElements counts the elements per category.
func (p *Process) CountElements() Counts {
	return Counts{
		CountEvents:          len(p.events),
		CountTasks:           len(p.tasks),
		CountGateways:        len(p.gateways),
		CountSubProcesses:    len(p.subProcesses),
		CountSequenceFlows:   len(p.sequenceFlows),
		CountAssociations:    len(p.associations),
		CountDataObjects:     len(p.dataObjects),
		CountDataStores:      len(p.dataStores),
		CountGroups:          len(p.groups),
		CountTextAnnotations: len(p.textAnnotations),
		CountLanes:           len(p.lanes),
	}
}

func (p *Process) DataObjects() []*DataObject {
	return p.dataObjects
}

func (p *Process) DataStores() []*DataStore {
	return p.dataStores
}

// ElementById finds an element of the process. If more than one element has the given ID, the element that comes first
// in [Process.AllElements] is returned. Elements of sub-processes and child lanes are not considered.
func (p *Process) ElementById(id string) (Element, bool) {
	entry, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return entry.element, true
}

func (p *Process) ElementType() ElementType {
	return ElementProcess
}

func (p *Process) EndEvents() []*Event {
	return lo.Filter(p.events, func(e *Event, _ int) bool { return e.IsEndEvent() })
}

func (p *Process) Events() []*Event {
	return p.events
}

func (p *Process) Gateways() []*Gateway {
	return p.gateways
}

func (p *Process) Groups() []*Group {
	return p.groups
}

func (p *Process) Lanes() []*Lane {
	return p.lanes
}

func (p *Process) SequenceFlows() []*SequenceFlow {
	return p.sequenceFlows
}

func (p *Process) ServiceTasks() []*Task {
	return lo.Filter(p.tasks, func(e *Task, _ int) bool { return e.IsServiceTask() })
}

func (p *Process) StartEvents() []*Event {
	return lo.Filter(p.events, func(e *Event, _ int) bool { return e.IsStartEvent() })
}

func (p *Process) String() string {
	var executable string
	if p.Executable {
		executable = " (executable)"
	}
	return fmt.Sprintf("Process '%s' [%d elements]%s", p.Name, p.CountElements().Total(), executable)
}

func (p *Process) SubProcesses() []*SubProcess {
	return p.subProcesses
}

func (p *Process) Tasks() []*Task {
	return p.tasks
}

func (p *Process) TextAnnotations() []*TextAnnotation {
	return p.textAnnotations
}

func (p *Process) UserTasks() []*Task {
	return lo.Filter(p.tasks, func(e *Task, _ int) bool { return e.IsUserTask() })
}

func (p *Process) add(e Element, rank int, appendElement func()) error {
	if err := e.Base().claim(); err != nil {
		return err
	}

	appendElement()

	if p.index == nil {
		p.index = make(map[string]indexEntry)
	}

	id := e.Base().id
	if entry, ok := p.index[id]; !ok || rank < entry.rank {
		p.index[id] = indexEntry{element: e, rank: rank}
	}
	return nil
}

// Count keys of [Counts].
const (
	CountAssociations          = "associations"
	CountDataObjects           = "data_objects"
	CountDataStores            = "data_stores"
	CountEvents                = "events"
	CountGateways              = "gateways"
	CountGlobalDataStores      = "global_data_stores"
	CountGlobalTextAnnotations = "global_text_annotations"
	CountGroups                = "groups"
	CountLanes                 = "lanes"
	CountMessageFlows          = "message_flows"
	CountPools                 = "pools"
	CountProcesses             = "processes"
	CountSequenceFlows         = "sequence_flows"
	CountSubProcesses          = "subprocesses"
	CountTasks                 = "tasks"
	CountTextAnnotations       = "text_annotations"
)

// Counts maps element categories to the number of elements.
type Counts map[string]int

// Keys returns the sorted count keys.
func (c Counts) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}

func (c Counts) Total() int {
	var total int
	for _, n := range c {
		total += n
	}
	return total
}

type ProcessType int

const (
	ProcessTypeNone ProcessType = iota + 1
	ProcessTypePrivate
	ProcessTypePublic
)

func MapProcessType(s string) ProcessType {
	switch s {
	case "NONE":
		return ProcessTypeNone
	case "PRIVATE":
		return ProcessTypePrivate
	case "PUBLIC":
		return ProcessTypePublic
	default:
		return 0
	}
}

func (v ProcessType) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v ProcessType) String() string {
	switch v {
	case ProcessTypeNone:
		return "NONE"
	case ProcessTypePrivate:
		return "PRIVATE"
	case ProcessTypePublic:
		return "PUBLIC"
	default:
		return ""
	}
}

func (v *ProcessType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "process type", func(s string) bool {
		*v = MapProcessType(s)
		return *v != 0
	})
}

func appendElements[T Element](elements []Element, s []T) []Element {
	for _, e := range s {
		elements = append(elements, e)
	}
	return elements
}
