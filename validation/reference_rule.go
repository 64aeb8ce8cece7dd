package validation

import (
	"fmt"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gobuffalo/flect"
)

// validateReferences checks that IDs are unique and that all ID based references resolve.
func validateReferences(d *model.Diagram) []Finding {
	index := newElementIndex(d)

	var findings []Finding

	newFinding := func(severity Severity, e model.Element, format string, a ...any) Finding {
		return Finding{
			Severity:    severity,
			ElementId:   e.Base().Id(),
			ElementType: elementTypeLabel(e),
			Message:     fmt.Sprintf(format, a...),
			RuleName:    RuleReference,
		}
	}

	for _, id := range index.ids {
		if elements := index.elements[id]; len(elements) > 1 {
			findings = append(findings, newFinding(SeverityError, elements[0], "Element ID is not unique (%d occurrences)", len(elements)))
		}
	}

	for _, s := range index.scopes {
		for _, sequenceFlow := range s.sequenceFlows {
			if _, ok := s.flowObjectsById[sequenceFlow.SourceRef]; !ok {
				findings = append(findings, newFinding(SeverityError, sequenceFlow, "Sequence flow source %s does not exist in the same %s", sequenceFlow.SourceRef, s.kind))
			}
			if _, ok := s.flowObjectsById[sequenceFlow.TargetRef]; !ok {
				findings = append(findings, newFinding(SeverityError, sequenceFlow, "Sequence flow target %s does not exist in the same %s", sequenceFlow.TargetRef, s.kind))
			}
		}

		for _, event := range s.boundaryEvents {
			attachedToRef := event.AttachedToRef()
			if attachedToRef == "" {
				findings = append(findings, newFinding(SeverityError, event, "Boundary event is not attached to an activity"))
				continue
			}
			if _, ok := s.flowObjectsById[attachedToRef].(model.Activity); !ok {
				findings = append(findings, newFinding(SeverityError, event, "Boundary event is attached to %s, which is not an activity of the same %s", attachedToRef, s.kind))
			}
		}

		for _, gateway := range s.gateways {
			defaultFlow := gateway.DefaultFlow()
			if defaultFlow == "" {
				continue
			}

			var outgoing bool
			for _, sequenceFlow := range s.sequenceFlows {
				if sequenceFlow.Id() == defaultFlow && sequenceFlow.SourceRef == gateway.Id() {
					outgoing = true
					break
				}
			}
			if !outgoing {
				findings = append(findings, newFinding(SeverityError, gateway, "Default flow %s is not an outgoing sequence flow of the gateway", defaultFlow))
			}
		}
	}

	for _, association := range index.associations {
		if !index.exists(association.SourceRef) {
			findings = append(findings, newFinding(SeverityError, association, "Association source %s does not exist", association.SourceRef))
		}
		if !index.exists(association.TargetRef) {
			findings = append(findings, newFinding(SeverityError, association, "Association target %s does not exist", association.TargetRef))
		}
	}

	for _, pool := range d.Pools() {
		if pool.ProcessRef != "" && d.ResolveProcess(pool) == nil {
			findings = append(findings, newFinding(SeverityError, pool, "Pool references unknown process %s", pool.ProcessRef))
		}
	}

	for _, messageFlow := range d.MessageFlows() {
		sourceOk := index.exists(messageFlow.SourceRef)
		if !sourceOk {
			findings = append(findings, newFinding(SeverityError, messageFlow, "Message flow source %s does not exist", messageFlow.SourceRef))
		}
		targetOk := index.exists(messageFlow.TargetRef)
		if !targetOk {
			findings = append(findings, newFinding(SeverityError, messageFlow, "Message flow target %s does not exist", messageFlow.TargetRef))
		}
		if !sourceOk || !targetOk {
			continue
		}

		sourcePool := index.poolOf(d, messageFlow.SourceRef)
		targetPool := index.poolOf(d, messageFlow.TargetRef)
		if sourcePool != nil && sourcePool == targetPool {
			findings = append(findings, newFinding(SeverityError, messageFlow, "Message flow must connect elements of different pools, but both are part of pool %s", sourcePool.Id()))
		}
	}

	for _, lane := range index.lanes {
		for _, flowNodeRef := range lane.FlowNodeRefs() {
			if !index.exists(flowNodeRef) {
				findings = append(findings, newFinding(SeverityWarning, lane, "Lane references unknown flow node %s", flowNodeRef))
			}
		}
	}

	return findings
}

// elementIndex indexes all elements of a diagram, including the elements of sub-processes and nested lanes.
type elementIndex struct {
	ids       []string                   // IDs in order of first occurrence
	elements  map[string][]model.Element // elements by ID
	processes map[string]*model.Process  // process, an element ID belongs to

	scopes       []scope
	associations []*model.Association
	events       []*model.Event
	lanes        []*model.Lane
}

// scope is a process or a sub-process, which sequence flows, boundary events and gateways are resolved within.
type scope struct {
	kind            string
	flowObjects     []model.FlowObject
	flowObjectsById map[string]model.FlowObject
	sequenceFlows   []*model.SequenceFlow
	boundaryEvents  []*model.Event
	gateways        []*model.Gateway
}

func newElementIndex(d *model.Diagram) *elementIndex {
	index := elementIndex{
		elements:  make(map[string][]model.Element),
		processes: make(map[string]*model.Process),
	}

	for _, process := range d.Processes() {
		index.add(process, process)

		s := scope{kind: "process", flowObjectsById: make(map[string]model.FlowObject)}
		for _, flowObject := range process.AllFlowObjects() {
			index.addFlowObject(&s, flowObject, process)
		}
		for _, sequenceFlow := range process.SequenceFlows() {
			index.add(sequenceFlow, process)
			s.sequenceFlows = append(s.sequenceFlows, sequenceFlow)
		}
		index.scopes = append(index.scopes, s)

		for _, association := range process.Associations() {
			index.add(association, process)
			index.associations = append(index.associations, association)
		}
		for _, e := range process.DataObjects() {
			index.add(e, process)
		}
		for _, e := range process.DataStores() {
			index.add(e, process)
		}
		for _, e := range process.Groups() {
			index.add(e, process)
		}
		for _, e := range process.TextAnnotations() {
			index.add(e, process)
		}
		index.addLanes(process.Lanes(), process)

		for _, subProcess := range process.SubProcesses() {
			index.addSubProcess(subProcess, process)
		}
	}

	for _, pool := range d.Pools() {
		index.add(pool, nil)
		index.addLanes(pool.Lanes(), nil)
	}
	for _, messageFlow := range d.MessageFlows() {
		index.add(messageFlow, nil)
	}
	for _, dataStore := range d.GlobalDataStores() {
		index.add(dataStore, nil)
	}
	for _, textAnnotation := range d.GlobalTextAnnotations() {
		index.add(textAnnotation, nil)
	}

	return &index
}

func (i *elementIndex) add(e model.Element, process *model.Process) {
	id := e.Base().Id()
	if _, ok := i.elements[id]; !ok {
		i.ids = append(i.ids, id)
		if process != nil {
			i.processes[id] = process
		}
	}
	i.elements[id] = append(i.elements[id], e)
}

func (i *elementIndex) addFlowObject(s *scope, flowObject model.FlowObject, process *model.Process) {
	i.add(flowObject, process)

	s.flowObjects = append(s.flowObjects, flowObject)

	id := flowObject.Base().Id()
	if _, ok := s.flowObjectsById[id]; !ok {
		s.flowObjectsById[id] = flowObject
	}

	switch v := flowObject.(type) {
	case *model.Event:
		i.events = append(i.events, v)
		if v.IsBoundaryEvent() {
			s.boundaryEvents = append(s.boundaryEvents, v)
		}
	case *model.Gateway:
		s.gateways = append(s.gateways, v)
	case *model.SubProcess:
		// boundary events are attached to the sub-process, but belong to the enclosing scope
		for _, event := range v.BoundaryEvents() {
			i.addFlowObject(s, event, process)
		}
	}
}

func (i *elementIndex) addLanes(lanes []*model.Lane, process *model.Process) {
	for _, lane := range lanes {
		i.add(lane, process)
		i.lanes = append(i.lanes, lane)
		i.addLanes(lane.ChildLanes(), process)
	}
}

func (i *elementIndex) addSubProcess(subProcess *model.SubProcess, process *model.Process) {
	s := scope{kind: "sub-process", flowObjectsById: make(map[string]model.FlowObject)}
	for _, flowObject := range subProcess.FlowObjects() {
		i.addFlowObject(&s, flowObject, process)
	}
	for _, sequenceFlow := range subProcess.SequenceFlows() {
		i.add(sequenceFlow, process)
		s.sequenceFlows = append(s.sequenceFlows, sequenceFlow)
	}
	i.scopes = append(i.scopes, s)

	for _, flowObject := range subProcess.FlowObjects() {
		if nested, ok := flowObject.(*model.SubProcess); ok {
			i.addSubProcess(nested, process)
		}
	}
}

func (i *elementIndex) exists(id string) bool {
	_, ok := i.elements[id]
	return ok
}

// poolOf returns the pool with the given ID or the pool, which process contains the element.
func (i *elementIndex) poolOf(d *model.Diagram, id string) *model.Pool {
	process := i.processes[id]
	for _, pool := range d.Pools() {
		if pool.Id() == id {
			return pool
		}
		if process != nil && pool.ProcessRef == process.Id() {
			return pool
		}
	}
	return nil
}

// elementTypeLabel returns a label like SequenceFlow or DataStore.
func elementTypeLabel(e model.Element) string {
	return flect.Pascalize(strings.ToLower(e.ElementType().String()))
}
