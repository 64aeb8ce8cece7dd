package codec

import (
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/samber/lo"
)

// NewDocument converts a diagram into its serializable form.
func NewDocument(d *model.Diagram) *Document {
	doc := Document{
		Id:              d.Id,
		Name:            d.Name,
		TargetNamespace: d.TargetNamespace,
		CreatedBy:       d.CreatedBy,
		Version:         d.Version,
	}

	if !d.CreatedAt.IsZero() {
		doc.CreatedAt = lo.ToPtr(d.CreatedAt)
	}
	if !d.ModifiedAt.IsZero() {
		doc.ModifiedAt = lo.ToPtr(d.ModifiedAt)
	}

	for _, process := range d.Processes() {
		doc.Processes = append(doc.Processes, newProcessDocument(process))
	}
	for _, pool := range d.Pools() {
		doc.Pools = append(doc.Pools, newPoolDocument(pool))
	}
	for _, messageFlow := range d.MessageFlows() {
		doc.MessageFlows = append(doc.MessageFlows, &MessageFlowDocument{
			ElementDocument: newElementDocument(messageFlow.Base()),
			SourceRef:       messageFlow.SourceRef,
			TargetRef:       messageFlow.TargetRef,
			MessageRef:      messageFlow.MessageRef,
			Waypoints:       newWaypoints(messageFlow.Waypoints()),
		})
	}
	for _, dataStore := range d.GlobalDataStores() {
		doc.GlobalDataStores = append(doc.GlobalDataStores, newDataStoreDocument(dataStore))
	}
	for _, textAnnotation := range d.GlobalTextAnnotations() {
		doc.GlobalTextAnnotations = append(doc.GlobalTextAnnotations, newTextAnnotationDocument(textAnnotation))
	}

	return &doc
}

func newElementDocument(e *model.BaseElement) ElementDocument {
	doc := ElementDocument{
		Id:            e.Id(),
		Name:          e.Name,
		Documentation: e.Documentation,
		Properties:    e.Properties(),
	}
	if e.Position != nil {
		doc.Position = &PositionDocument{X: e.Position.X, Y: e.Position.Y}
	}
	if dimensions := e.Dimensions(); dimensions != nil {
		doc.Dimensions = &DimensionsDocument{Width: dimensions.Width, Height: dimensions.Height}
	}
	return doc
}

func newProcessDocument(p *model.Process) *ProcessDocument {
	doc := ProcessDocument{
		ElementDocument:              newElementDocument(p.Base()),
		Executable:                   p.Executable,
		Closed:                       p.Closed,
		ProcessType:                  p.ProcessType,
		DefinitionalCollaborationRef: p.DefinitionalCollaborationRef,
	}

	for _, event := range p.Events() {
		doc.Events = append(doc.Events, newEventDocument(event))
	}
	for _, task := range p.Tasks() {
		doc.Tasks = append(doc.Tasks, newTaskDocument(task))
	}
	for _, gateway := range p.Gateways() {
		doc.Gateways = append(doc.Gateways, newGatewayDocument(gateway))
	}
	for _, subProcess := range p.SubProcesses() {
		doc.SubProcesses = append(doc.SubProcesses, newSubProcessDocument(subProcess))
	}
	for _, sequenceFlow := range p.SequenceFlows() {
		doc.SequenceFlows = append(doc.SequenceFlows, newSequenceFlowDocument(sequenceFlow))
	}
	for _, association := range p.Associations() {
		doc.Associations = append(doc.Associations, &AssociationDocument{
			ElementDocument: newElementDocument(association.Base()),
			SourceRef:       association.SourceRef,
			TargetRef:       association.TargetRef,
			Direction:       association.Direction,
			Waypoints:       newWaypoints(association.Waypoints()),
		})
	}
	for _, dataObject := range p.DataObjects() {
		doc.DataObjects = append(doc.DataObjects, &DataObjectDocument{
			ElementDocument: newElementDocument(dataObject.Base()),
			Collection:      dataObject.Collection,
			ItemSubjectRef:  dataObject.ItemSubjectRef,
			State:           dataObject.State,
		})
	}
	for _, dataStore := range p.DataStores() {
		doc.DataStores = append(doc.DataStores, newDataStoreDocument(dataStore))
	}
	for _, group := range p.Groups() {
		doc.Groups = append(doc.Groups, &GroupDocument{
			ElementDocument:  newElementDocument(group.Base()),
			CategoryValueRef: group.CategoryValueRef,
		})
	}
	for _, textAnnotation := range p.TextAnnotations() {
		doc.TextAnnotations = append(doc.TextAnnotations, newTextAnnotationDocument(textAnnotation))
	}
	doc.Lanes = newLaneDocuments(p.Lanes())

	return &doc
}

func newEventDocument(e *model.Event) *EventDocument {
	doc := EventDocument{
		ElementDocument: newElementDocument(e.Base()),
		EventType:       e.EventType(),
		Definition:      e.Definition,
		Throwing:        e.Throwing,
		Trigger:         e.Trigger,
		AttachedToRef:   e.AttachedToRef(),
	}
	if !e.Interrupting {
		doc.Interrupting = lo.ToPtr(false)
	}
	return &doc
}

func newTaskDocument(t *model.Task) *TaskDocument {
	doc := TaskDocument{
		ElementDocument: newElementDocument(t.Base()),
		TaskType:        t.TaskType(),
		Markers:         t.Markers(),
	}

	if multiInstance := t.MultiInstance(); multiInstance != nil {
		doc.MultiInstance = &MultiInstanceDocument{
			LoopCardinality:     multiInstance.LoopCardinality,
			CompletionCondition: multiInstance.CompletionCondition,
			Collection:          multiInstance.Collection,
			ElementVariable:     multiInstance.ElementVariable,
		}
	}

	switch v := t.Model.(type) {
	case *model.BusinessRuleTask:
		doc.BusinessRuleTask = &BusinessRuleTaskDocument{
			RuleImplementation: v.RuleImplementation,
			DecisionRef:        v.DecisionRef,
		}
	case *model.MessageTask:
		doc.MessageTask = &MessageTaskDocument{
			MessageRef:  v.MessageRef,
			Operation:   v.Operation,
			Instantiate: v.Instantiate,
		}
	case *model.ScriptTask:
		doc.ScriptTask = &ScriptTaskDocument{
			Script:       v.Script,
			ScriptFormat: v.ScriptFormat,
		}
	case *model.ServiceTask:
		doc.ServiceTask = &ServiceTaskDocument{
			Implementation: v.Implementation,
			OperationRef:   v.OperationRef,
		}
	case *model.UserTask:
		userTask := UserTaskDocument{
			Assignee:        v.Assignee,
			CandidateGroups: v.CandidateGroups,
			CandidateUsers:  v.CandidateUsers,
			Priority:        v.Priority,
			FormKey:         v.FormKey,
		}
		if !v.DueDate.IsZero() {
			userTask.DueDate = lo.ToPtr(v.DueDate)
		}
		doc.UserTask = &userTask
	}

	return &doc
}

func newGatewayDocument(g *model.Gateway) *GatewayDocument {
	return &GatewayDocument{
		ElementDocument: newElementDocument(g.Base()),
		GatewayType:     g.GatewayType(),
		Direction:       g.Direction,
		DefaultFlow:     g.DefaultFlow(),
		Instantiate:     g.Instantiate(),
	}
}

func newSubProcessDocument(sp *model.SubProcess) *SubProcessDocument {
	doc := SubProcessDocument{
		ElementDocument:  newElementDocument(sp.Base()),
		SubProcessType:   sp.SubProcessType(),
		TriggeredByEvent: sp.TriggeredByEvent,
		ForCompensation:  sp.ForCompensation,
		Markers:          sp.Markers(),
	}
	if !sp.Expanded {
		doc.Expanded = lo.ToPtr(false)
	}

	switch v := sp.Model.(type) {
	case *model.AdHoc:
		doc.AdHoc = &AdHocDocument{Ordering: v.Ordering}
		if !v.CancelRemainingInstances {
			doc.AdHoc.CancelRemainingInstances = lo.ToPtr(false)
		}
	case *model.CallActivity:
		doc.CallActivity = &CallActivityDocument{
			CalledElement:     v.CalledElement,
			CalledElementType: v.CalledElementType,
		}
	case *model.Transaction:
		doc.Transaction = &TransactionDocument{Method: v.Method}
	}

	for _, flowObject := range sp.FlowObjects() {
		var flowObjectDoc FlowObjectDocument
		switch v := flowObject.(type) {
		case *model.Event:
			flowObjectDoc.Event = newEventDocument(v)
		case *model.Task:
			flowObjectDoc.Task = newTaskDocument(v)
		case *model.Gateway:
			flowObjectDoc.Gateway = newGatewayDocument(v)
		case *model.SubProcess:
			flowObjectDoc.SubProcess = newSubProcessDocument(v)
		}
		doc.FlowObjects = append(doc.FlowObjects, &flowObjectDoc)
	}
	for _, sequenceFlow := range sp.SequenceFlows() {
		doc.SequenceFlows = append(doc.SequenceFlows, newSequenceFlowDocument(sequenceFlow))
	}
	for _, event := range sp.BoundaryEvents() {
		doc.BoundaryEvents = append(doc.BoundaryEvents, newEventDocument(event))
	}

	return &doc
}

func newSequenceFlowDocument(f *model.SequenceFlow) *SequenceFlowDocument {
	return &SequenceFlowDocument{
		ElementDocument:     newElementDocument(f.Base()),
		SourceRef:           f.SourceRef,
		TargetRef:           f.TargetRef,
		ConditionExpression: f.ConditionExpression,
		Immediate:           f.Immediate,
		Waypoints:           newWaypoints(f.Waypoints()),
	}
}

func newPoolDocument(p *model.Pool) *PoolDocument {
	doc := PoolDocument{
		ElementDocument:         newElementDocument(p.Base()),
		Executable:              p.Executable,
		ParticipantMultiplicity: p.ParticipantMultiplicity,
		ProcessRef:              p.ProcessRef,
		Lanes:                   newLaneDocuments(p.Lanes()),
	}
	if !p.Horizontal {
		doc.Horizontal = lo.ToPtr(false)
	}
	return &doc
}

func newLaneDocuments(lanes []*model.Lane) []*LaneDocument {
	var docs []*LaneDocument
	for _, lane := range lanes {
		docs = append(docs, &LaneDocument{
			ElementDocument:     newElementDocument(lane.Base()),
			PartitionElementRef: lane.PartitionElementRef,
			FlowNodeRefs:        lane.FlowNodeRefs(),
			ChildLanes:          newLaneDocuments(lane.ChildLanes()),
		})
	}
	return docs
}

func newDataStoreDocument(d *model.DataStore) *DataStoreDocument {
	doc := DataStoreDocument{
		ElementDocument: newElementDocument(d.Base()),
		ItemSubjectRef:  d.ItemSubjectRef,
	}
	if d.HasCapacityLimit() {
		doc.Capacity = lo.ToPtr(d.Capacity())
	}
	return &doc
}

func newTextAnnotationDocument(a *model.TextAnnotation) *TextAnnotationDocument {
	return &TextAnnotationDocument{
		ElementDocument: newElementDocument(a.Base()),
		Text:            a.Text,
		TextFormat:      a.TextFormat,
	}
}

func newWaypoints(waypoints []model.Position) []PositionDocument {
	return lo.Map(waypoints, func(p model.Position, _ int) PositionDocument {
		return PositionDocument{X: p.X, Y: p.Y}
	})
}
