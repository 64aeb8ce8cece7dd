package codec

import (
	"encoding/json"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/samber/lo"
)

// Diagram validates the document and converts it into a diagram.
// A document, violating a constraint like a missing ID, results in an error of type [model.ErrorValidation].
// Errors of the model, like a default flow on a parallel gateway, are returned as they are.
func (doc *Document) Diagram() (*model.Diagram, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	d := model.NewDiagram(doc.Id)
	d.Name = doc.Name
	d.CreatedBy = doc.CreatedBy
	d.CreatedAt = lo.FromPtr(doc.CreatedAt)

	if doc.TargetNamespace != "" {
		d.TargetNamespace = doc.TargetNamespace
	}
	if doc.Version != "" {
		d.Version = doc.Version
	}

	for _, processDoc := range doc.Processes {
		process, err := processDoc.process()
		if err != nil {
			return nil, err
		}
		if err := d.AddProcess(process); err != nil {
			return nil, err
		}
	}
	for _, poolDoc := range doc.Pools {
		pool, err := poolDoc.pool()
		if err != nil {
			return nil, err
		}
		if err := d.AddPool(pool); err != nil {
			return nil, err
		}
	}
	for _, messageFlowDoc := range doc.MessageFlows {
		messageFlow := model.NewMessageFlow(messageFlowDoc.Id, messageFlowDoc.SourceRef, messageFlowDoc.TargetRef)
		messageFlow.MessageRef = messageFlowDoc.MessageRef
		if err := messageFlowDoc.apply(messageFlow.Base()); err != nil {
			return nil, err
		}
		for _, waypoint := range messageFlowDoc.Waypoints {
			messageFlow.AddWaypoint(waypoint.X, waypoint.Y)
		}
		if err := d.AddMessageFlow(messageFlow); err != nil {
			return nil, err
		}
	}
	for _, dataStoreDoc := range doc.GlobalDataStores {
		dataStore, err := dataStoreDoc.dataStore()
		if err != nil {
			return nil, err
		}
		if err := d.AddGlobalDataStore(dataStore); err != nil {
			return nil, err
		}
	}
	for _, textAnnotationDoc := range doc.GlobalTextAnnotations {
		textAnnotation, err := textAnnotationDoc.textAnnotation()
		if err != nil {
			return nil, err
		}
		if err := d.AddGlobalTextAnnotation(textAnnotation); err != nil {
			return nil, err
		}
	}

	d.ModifiedAt = lo.FromPtr(doc.ModifiedAt)

	return d, nil
}

func (e *ElementDocument) apply(base *model.BaseElement) error {
	base.Name = e.Name
	base.Documentation = e.Documentation

	if e.Position != nil {
		base.SetPosition(e.Position.X, e.Position.Y)
	}
	if e.Dimensions != nil {
		if err := base.SetDimensions(e.Dimensions.Width, e.Dimensions.Height); err != nil {
			return err
		}
	}
	for key, value := range e.Properties {
		base.SetProperty(key, propertyValue(value))
	}
	return nil
}

// propertyValue converts decoded numbers into int, when they are whole and fit, or float64 otherwise.
func propertyValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			if i == int64(int(i)) {
				return int(i)
			}
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		m := make(map[string]any, len(v))
		for key, value := range v {
			m[key] = propertyValue(value)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, value := range v {
			s[i] = propertyValue(value)
		}
		return s
	default:
		return value
	}
}

func (doc *ProcessDocument) process() (*model.Process, error) {
	p := model.NewProcess(doc.Id)
	if err := doc.apply(p.Base()); err != nil {
		return nil, err
	}

	p.Executable = doc.Executable
	p.Closed = doc.Closed
	p.DefinitionalCollaborationRef = doc.DefinitionalCollaborationRef
	if doc.ProcessType != 0 {
		p.ProcessType = doc.ProcessType
	}

	var flowObjects []model.FlowObject
	for _, eventDoc := range doc.Events {
		event, err := eventDoc.event()
		if err != nil {
			return nil, err
		}
		flowObjects = append(flowObjects, event)
	}
	for _, taskDoc := range doc.Tasks {
		task, err := taskDoc.task()
		if err != nil {
			return nil, err
		}
		flowObjects = append(flowObjects, task)
	}
	for _, gatewayDoc := range doc.Gateways {
		gateway, err := gatewayDoc.gateway()
		if err != nil {
			return nil, err
		}
		flowObjects = append(flowObjects, gateway)
	}
	for _, subProcessDoc := range doc.SubProcesses {
		subProcess, err := subProcessDoc.subProcess()
		if err != nil {
			return nil, err
		}
		flowObjects = append(flowObjects, subProcess)
	}

	for _, flowObject := range flowObjects {
		if err := p.AddFlowObject(flowObject); err != nil {
			return nil, err
		}
	}

	var connectingObjects []model.ConnectingObject
	for _, sequenceFlowDoc := range doc.SequenceFlows {
		sequenceFlow, err := sequenceFlowDoc.sequenceFlow()
		if err != nil {
			return nil, err
		}
		connectingObjects = append(connectingObjects, sequenceFlow)
	}
	for _, associationDoc := range doc.Associations {
		association := model.NewAssociation(associationDoc.Id, associationDoc.SourceRef, associationDoc.TargetRef)
		if err := associationDoc.apply(association.Base()); err != nil {
			return nil, err
		}
		if associationDoc.Direction != 0 {
			association.Direction = associationDoc.Direction
		}
		for _, waypoint := range associationDoc.Waypoints {
			association.AddWaypoint(waypoint.X, waypoint.Y)
		}
		connectingObjects = append(connectingObjects, association)
	}

	for _, connectingObject := range connectingObjects {
		if err := p.AddConnectingObject(connectingObject); err != nil {
			return nil, err
		}
	}

	var artifacts []model.Artifact
	for _, dataObjectDoc := range doc.DataObjects {
		dataObject := model.NewDataObject(dataObjectDoc.Id)
		if err := dataObjectDoc.apply(dataObject.Base()); err != nil {
			return nil, err
		}
		dataObject.Collection = dataObjectDoc.Collection
		dataObject.ItemSubjectRef = dataObjectDoc.ItemSubjectRef
		dataObject.State = dataObjectDoc.State
		artifacts = append(artifacts, dataObject)
	}
	for _, dataStoreDoc := range doc.DataStores {
		dataStore, err := dataStoreDoc.dataStore()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, dataStore)
	}
	for _, groupDoc := range doc.Groups {
		group := model.NewGroup(groupDoc.Id)
		if err := groupDoc.apply(group.Base()); err != nil {
			return nil, err
		}
		group.CategoryValueRef = groupDoc.CategoryValueRef
		artifacts = append(artifacts, group)
	}
	for _, textAnnotationDoc := range doc.TextAnnotations {
		textAnnotation, err := textAnnotationDoc.textAnnotation()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, textAnnotation)
	}

	for _, artifact := range artifacts {
		if err := p.AddArtifact(artifact); err != nil {
			return nil, err
		}
	}

	lanes, err := newLanes(doc.Lanes)
	if err != nil {
		return nil, err
	}
	for _, lane := range lanes {
		if err := p.AddLane(lane); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (doc *EventDocument) event() (*model.Event, error) {
	e := model.NewEvent(doc.Id, doc.EventType)
	if err := doc.apply(e.Base()); err != nil {
		return nil, err
	}

	if doc.Definition != 0 {
		e.Definition = doc.Definition
	}
	e.Interrupting = lo.FromPtrOr(doc.Interrupting, true)
	e.Throwing = doc.Throwing
	e.Trigger = doc.Trigger

	if doc.AttachedToRef != "" {
		e.AttachToActivity(doc.AttachedToRef, e.Interrupting)
	}
	return e, nil
}

func (doc *TaskDocument) task() (*model.Task, error) {
	t := model.NewTask(doc.Id, doc.TaskType)
	if err := doc.apply(t.Base()); err != nil {
		return nil, err
	}

	for _, marker := range doc.Markers {
		t.AddMarker(marker)
	}

	if multiInstance := t.MultiInstance(); multiInstance != nil && doc.MultiInstance != nil {
		multiInstance.LoopCardinality = doc.MultiInstance.LoopCardinality
		multiInstance.CompletionCondition = doc.MultiInstance.CompletionCondition
		multiInstance.Collection = doc.MultiInstance.Collection
		if doc.MultiInstance.ElementVariable != "" {
			multiInstance.ElementVariable = doc.MultiInstance.ElementVariable
		}
	}

	if v := t.BusinessRuleTask(); v != nil && doc.BusinessRuleTask != nil {
		v.RuleImplementation = doc.BusinessRuleTask.RuleImplementation
		v.DecisionRef = doc.BusinessRuleTask.DecisionRef
	}
	if v := t.MessageTask(); v != nil && doc.MessageTask != nil {
		v.MessageRef = doc.MessageTask.MessageRef
		v.Operation = doc.MessageTask.Operation
		v.Instantiate = doc.MessageTask.Instantiate
	}
	if v := t.ScriptTask(); v != nil && doc.ScriptTask != nil {
		v.Script = doc.ScriptTask.Script
		v.ScriptFormat = doc.ScriptTask.ScriptFormat
	}
	if v := t.ServiceTask(); v != nil && doc.ServiceTask != nil {
		v.Implementation = doc.ServiceTask.Implementation
		v.OperationRef = doc.ServiceTask.OperationRef
	}
	if v := t.UserTask(); v != nil && doc.UserTask != nil {
		v.Assignee = doc.UserTask.Assignee
		v.CandidateGroups = doc.UserTask.CandidateGroups
		v.CandidateUsers = doc.UserTask.CandidateUsers
		v.DueDate = lo.FromPtr(doc.UserTask.DueDate)
		v.Priority = doc.UserTask.Priority
		v.FormKey = doc.UserTask.FormKey
	}

	return t, nil
}

func (doc *GatewayDocument) gateway() (*model.Gateway, error) {
	g := model.NewGateway(doc.Id, doc.GatewayType)
	if err := doc.apply(g.Base()); err != nil {
		return nil, err
	}

	if doc.Direction != 0 {
		g.Direction = doc.Direction
	}
	if doc.DefaultFlow != "" {
		if err := g.SetDefaultFlow(doc.DefaultFlow); err != nil {
			return nil, err
		}
	}
	if doc.Instantiate {
		if err := g.EnableProcessInstantiation(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (doc *SubProcessDocument) subProcess() (*model.SubProcess, error) {
	sp := model.NewSubProcess(doc.Id, doc.SubProcessType)
	if err := doc.apply(sp.Base()); err != nil {
		return nil, err
	}

	sp.Expanded = lo.FromPtrOr(doc.Expanded, true)
	sp.TriggeredByEvent = doc.TriggeredByEvent
	sp.ForCompensation = doc.ForCompensation

	for _, marker := range doc.Markers {
		sp.AddMarker(marker)
	}

	if v := sp.AdHoc(); v != nil && doc.AdHoc != nil {
		v.Ordering = doc.AdHoc.Ordering
		v.CancelRemainingInstances = lo.FromPtrOr(doc.AdHoc.CancelRemainingInstances, true)
	}
	if v := sp.CallActivity(); v != nil && doc.CallActivity != nil {
		v.CalledElement = doc.CallActivity.CalledElement
		v.CalledElementType = doc.CallActivity.CalledElementType
	}
	if v := sp.Transaction(); v != nil && doc.Transaction != nil {
		v.Method = doc.Transaction.Method
	}

	for _, flowObjectDoc := range doc.FlowObjects {
		var (
			flowObject model.FlowObject
			err        error
		)
		switch {
		case flowObjectDoc.Event != nil:
			flowObject, err = flowObjectDoc.Event.event()
		case flowObjectDoc.Task != nil:
			flowObject, err = flowObjectDoc.Task.task()
		case flowObjectDoc.Gateway != nil:
			flowObject, err = flowObjectDoc.Gateway.gateway()
		case flowObjectDoc.SubProcess != nil:
			flowObject, err = flowObjectDoc.SubProcess.subProcess()
		}
		if err != nil {
			return nil, err
		}
		if err := sp.AddFlowObject(flowObject); err != nil {
			return nil, err
		}
	}
	for _, sequenceFlowDoc := range doc.SequenceFlows {
		sequenceFlow, err := sequenceFlowDoc.sequenceFlow()
		if err != nil {
			return nil, err
		}
		if err := sp.AddSequenceFlow(sequenceFlow); err != nil {
			return nil, err
		}
	}
	for _, eventDoc := range doc.BoundaryEvents {
		event, err := eventDoc.event()
		if err != nil {
			return nil, err
		}
		if err := sp.AddBoundaryEvent(event); err != nil {
			return nil, err
		}
	}

	return sp, nil
}

func (doc *SequenceFlowDocument) sequenceFlow() (*model.SequenceFlow, error) {
	f := model.NewSequenceFlow(doc.Id, doc.SourceRef, doc.TargetRef)
	if err := doc.apply(f.Base()); err != nil {
		return nil, err
	}

	f.ConditionExpression = doc.ConditionExpression
	f.Immediate = doc.Immediate
	for _, waypoint := range doc.Waypoints {
		f.AddWaypoint(waypoint.X, waypoint.Y)
	}
	return f, nil
}

func (doc *PoolDocument) pool() (*model.Pool, error) {
	p := model.NewPool(doc.Id)
	if err := doc.apply(p.Base()); err != nil {
		return nil, err
	}

	p.Executable = doc.Executable
	p.Horizontal = lo.FromPtrOr(doc.Horizontal, true)
	p.ParticipantMultiplicity = doc.ParticipantMultiplicity
	p.ProcessRef = doc.ProcessRef

	lanes, err := newLanes(doc.Lanes)
	if err != nil {
		return nil, err
	}
	for _, lane := range lanes {
		if err := p.AddLane(lane); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func newLanes(docs []*LaneDocument) ([]*model.Lane, error) {
	lanes := make([]*model.Lane, 0, len(docs))
	for _, doc := range docs {
		lane := model.NewLane(doc.Id)
		if err := doc.apply(lane.Base()); err != nil {
			return nil, err
		}

		lane.PartitionElementRef = doc.PartitionElementRef
		for _, flowNodeRef := range doc.FlowNodeRefs {
			lane.AddFlowNode(flowNodeRef)
		}

		childLanes, err := newLanes(doc.ChildLanes)
		if err != nil {
			return nil, err
		}
		for _, childLane := range childLanes {
			if err := lane.AddChildLane(childLane); err != nil {
				return nil, err
			}
		}

		lanes = append(lanes, lane)
	}
	return lanes, nil
}

func (doc *DataStoreDocument) dataStore() (*model.DataStore, error) {
	d := model.NewDataStore(doc.Id)
	if err := doc.apply(d.Base()); err != nil {
		return nil, err
	}

	d.ItemSubjectRef = doc.ItemSubjectRef
	if doc.Capacity != nil {
		if err := d.SetCapacity(*doc.Capacity); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (doc *TextAnnotationDocument) textAnnotation() (*model.TextAnnotation, error) {
	a := model.NewTextAnnotation(doc.Id, doc.Text)
	if err := doc.apply(a.Base()); err != nil {
		return nil, err
	}

	if doc.TextFormat != "" {
		a.TextFormat = doc.TextFormat
	}
	return a, nil
}
