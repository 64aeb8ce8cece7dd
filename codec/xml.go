package codec

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/samber/lo"
)

// DecodeXML imports a BPMN 2.0 XML document.
// Elements, which have no counterpart in the model, like extension elements, are skipped.
// Bounds of BPMNShape and waypoints of BPMNEdge elements are applied to the referenced elements.
func DecodeXML(r io.Reader) (*model.Diagram, error) {
	x := xmlDecoder{
		elements: make(map[string]xmlElement),
		lanes:    make(map[string][]*LaneDocument),
	}

	decoder := xml.NewDecoder(r)

	count := 0
	for {
		token, err := decoder.Token()
		if err != nil && err != io.EOF {
			return nil, newValidationError("failed to decode XML: %v", err)
		}
		if token == nil {
			if count == 0 {
				return nil, newValidationError("XML is empty")
			}
			break
		}

		count++

		switch t := token.(type) {
		case xml.StartElement:
			x.stack = append(x.stack, x.start(t))
		case xml.CharData:
			if x.onText != nil {
				x.text.Write(t)
			}
		case xml.EndElement:
			x.end()
			x.stack = x.stack[:len(x.stack)-1]
		}
	}

	if !x.definitionsParsed {
		return nil, newValidationError("no definitions found")
	}

	x.resolve()

	return x.doc.Diagram()
}

type xmlDecoder struct {
	doc               Document
	definitionsParsed bool

	stack    []any                      // mapped documents of all open XML elements or nil, if not mapped
	elements map[string]xmlElement      // mapped documents by ID
	lanes    map[string][]*LaneDocument // top-level lanes by process ID

	eventDefinitions int  // number of event definitions of the current event
	parallelMultiple bool // parallelMultiple attribute of the current event

	shapes []*xmlShape
	edges  []*xmlEdge

	text      strings.Builder
	textDepth int
	onText    func(string) // sets the captured text, when the capturing XML element ends
}

// xmlElement is implemented by all element documents via the embedded [ElementDocument].
type xmlElement interface {
	element() *ElementDocument
}

type xmlShape struct {
	bpmnElement string
	bounds      *xmlBounds
}

type xmlBounds struct {
	x, y, width, height float64
}

type xmlEdge struct {
	bpmnElement string
	waypoints   []PositionDocument
}

// start maps an XML start element and returns the resulting document or nil.
func (x *xmlDecoder) start(t xml.StartElement) any {
	switch t.Name.Local {
	case "definitions":
		x.doc.Id = getAttrValue(t.Attr, "id")
		x.doc.Name = getAttrValue(t.Attr, "name")
		x.doc.TargetNamespace = getAttrValue(t.Attr, "targetNamespace")
		x.definitionsParsed = true
	case "documentation":
		if e, ok := find[xmlElement](x.stack); ok {
			x.capture(func(s string) { e.element().Documentation = s })
		}

	// collaboration
	case "participant":
		pool := &PoolDocument{
			ElementDocument: newXMLElement(t),
			ProcessRef:      getAttrValue(t.Attr, "processRef"),
		}
		x.doc.Pools = append(x.doc.Pools, pool)
		return x.register(pool)
	case "participantMultiplicity":
		if pool, ok := find[*PoolDocument](x.stack); ok {
			pool.ParticipantMultiplicity, _ = strconv.Atoi(getAttrValue(t.Attr, "maximum"))
		}
	case "messageFlow":
		messageFlow := &MessageFlowDocument{
			ElementDocument: newXMLElement(t),
			SourceRef:       getAttrValue(t.Attr, "sourceRef"),
			TargetRef:       getAttrValue(t.Attr, "targetRef"),
			MessageRef:      getAttrValue(t.Attr, "messageRef"),
		}
		x.doc.MessageFlows = append(x.doc.MessageFlows, messageFlow)
		return x.register(messageFlow)

	// process
	case "process":
		executable, _ := strconv.ParseBool(getAttrValue(t.Attr, "isExecutable"))
		closed, _ := strconv.ParseBool(getAttrValue(t.Attr, "isClosed"))

		process := &ProcessDocument{
			ElementDocument:              newXMLElement(t),
			Executable:                   executable,
			Closed:                       closed,
			ProcessType:                  model.MapProcessType(strings.ToUpper(getAttrValue(t.Attr, "processType"))),
			DefinitionalCollaborationRef: getAttrValue(t.Attr, "definitionalCollaborationRef"),
		}
		x.doc.Processes = append(x.doc.Processes, process)
		return x.register(process)

	// events
	case "boundaryEvent":
		cancelActivity, _ := strconv.ParseBool(getAttrValueWithDefault(t.Attr, "cancelActivity", "true"))

		event := x.newEvent(t, model.EventBoundary)
		event.AttachedToRef = getAttrValue(t.Attr, "attachedToRef")
		if !cancelActivity {
			event.Interrupting = lo.ToPtr(false)
		}
		return x.addFlowObject(FlowObjectDocument{Event: event})
	case "endEvent":
		event := x.newEvent(t, model.EventEnd)
		event.Throwing = true
		return x.addFlowObject(FlowObjectDocument{Event: event})
	case "intermediateCatchEvent":
		return x.addFlowObject(FlowObjectDocument{Event: x.newEvent(t, model.EventIntermediate)})
	case "intermediateThrowEvent":
		event := x.newEvent(t, model.EventIntermediate)
		event.Throwing = true
		return x.addFlowObject(FlowObjectDocument{Event: event})
	case "startEvent":
		interrupting, _ := strconv.ParseBool(getAttrValueWithDefault(t.Attr, "isInterrupting", "true"))

		event := x.newEvent(t, model.EventStart)
		if !interrupting {
			event.Interrupting = lo.ToPtr(false)
		}
		return x.addFlowObject(FlowObjectDocument{Event: event})

	// event definitions
	case "cancelEventDefinition":
		x.setEventDefinition(model.EventDefinitionCancel, "")
	case "compensateEventDefinition":
		x.setEventDefinition(model.EventDefinitionCompensation, getAttrValue(t.Attr, "activityRef"))
	case "conditionalEventDefinition":
		x.setEventDefinition(model.EventDefinitionConditional, "")
	case "errorEventDefinition":
		x.setEventDefinition(model.EventDefinitionError, getAttrValue(t.Attr, "errorRef"))
	case "escalationEventDefinition":
		x.setEventDefinition(model.EventDefinitionEscalation, getAttrValue(t.Attr, "escalationRef"))
	case "linkEventDefinition":
		x.setEventDefinition(model.EventDefinitionLink, getAttrValue(t.Attr, "name"))
	case "messageEventDefinition":
		x.setEventDefinition(model.EventDefinitionMessage, getAttrValue(t.Attr, "messageRef"))
	case "signalEventDefinition":
		x.setEventDefinition(model.EventDefinitionSignal, getAttrValue(t.Attr, "signalRef"))
	case "terminateEventDefinition":
		x.setEventDefinition(model.EventDefinitionTerminate, "")
	case "timerEventDefinition":
		x.setEventDefinition(model.EventDefinitionTimer, "")
	case "condition", "timeCycle", "timeDate", "timeDuration":
		if event, ok := find[*EventDocument](x.stack); ok {
			x.capture(func(s string) {
				if event.Definition == model.EventDefinitionConditional || event.Definition == model.EventDefinitionTimer {
					event.Trigger = s
				}
			})
		}

	// tasks
	case "businessRuleTask":
		task := x.newTask(t, model.TaskBusinessRule)
		task.BusinessRuleTask = &BusinessRuleTaskDocument{
			RuleImplementation: getAttrValue(t.Attr, "implementation"),
			DecisionRef:        getAttrValue(t.Attr, "decisionRef"),
		}
		return x.addFlowObject(FlowObjectDocument{Task: task})
	case "manualTask":
		return x.addFlowObject(FlowObjectDocument{Task: x.newTask(t, model.TaskManual)})
	case "receiveTask", "sendTask":
		taskType := model.TaskSend
		if t.Name.Local == "receiveTask" {
			taskType = model.TaskReceive
		}

		instantiate, _ := strconv.ParseBool(getAttrValue(t.Attr, "instantiate"))

		task := x.newTask(t, taskType)
		task.MessageTask = &MessageTaskDocument{
			MessageRef:  getAttrValue(t.Attr, "messageRef"),
			Operation:   getAttrValue(t.Attr, "operationRef"),
			Instantiate: instantiate,
		}
		return x.addFlowObject(FlowObjectDocument{Task: task})
	case "scriptTask":
		task := x.newTask(t, model.TaskScript)
		task.ScriptTask = &ScriptTaskDocument{ScriptFormat: getAttrValue(t.Attr, "scriptFormat")}
		return x.addFlowObject(FlowObjectDocument{Task: task})
	case "script":
		if task, ok := find[*TaskDocument](x.stack); ok && task.ScriptTask != nil {
			x.capture(func(s string) { task.ScriptTask.Script = s })
		}
	case "serviceTask":
		task := x.newTask(t, model.TaskService)
		task.ServiceTask = &ServiceTaskDocument{
			Implementation: getAttrValue(t.Attr, "implementation"),
			OperationRef:   getAttrValue(t.Attr, "operationRef"),
		}
		return x.addFlowObject(FlowObjectDocument{Task: task})
	case "task":
		return x.addFlowObject(FlowObjectDocument{Task: x.newTask(t, model.TaskPlain)})
	case "userTask":
		userTask := UserTaskDocument{
			Assignee:        getAttrValue(t.Attr, "assignee"),
			CandidateGroups: splitAttrValue(t.Attr, "candidateGroups"),
			CandidateUsers:  splitAttrValue(t.Attr, "candidateUsers"),
			FormKey:         getAttrValue(t.Attr, "formKey"),
		}
		if dueDate, err := time.Parse(time.RFC3339, getAttrValue(t.Attr, "dueDate")); err == nil {
			userTask.DueDate = &dueDate
		}
		if priority, err := strconv.Atoi(getAttrValue(t.Attr, "priority")); err == nil {
			userTask.Priority = &priority
		}

		task := x.newTask(t, model.TaskUser)
		task.UserTask = &userTask
		return x.addFlowObject(FlowObjectDocument{Task: task})

	// loop characteristics
	case "multiInstanceLoopCharacteristics":
		sequential, _ := strconv.ParseBool(getAttrValue(t.Attr, "isSequential"))

		marker := model.MarkerParallelMultiInstance
		if sequential {
			marker = model.MarkerSequentialMultiInstance
		}

		switch activity := x.activity().(type) {
		case *TaskDocument:
			activity.Markers = append(activity.Markers, marker)
			activity.MultiInstance = &MultiInstanceDocument{
				Collection:      getAttrValue(t.Attr, "collection"),
				ElementVariable: getAttrValue(t.Attr, "elementVariable"),
			}
		case *SubProcessDocument:
			activity.Markers = append(activity.Markers, marker)
		}
	case "completionCondition", "loopCardinality":
		if task, ok := x.activity().(*TaskDocument); ok && task.MultiInstance != nil {
			if t.Name.Local == "loopCardinality" {
				x.capture(func(s string) { task.MultiInstance.LoopCardinality = s })
			} else {
				x.capture(func(s string) { task.MultiInstance.CompletionCondition = s })
			}
		}
	case "standardLoopCharacteristics":
		switch activity := x.activity().(type) {
		case *TaskDocument:
			activity.Markers = append(activity.Markers, model.MarkerLoop)
		case *SubProcessDocument:
			activity.Markers = append(activity.Markers, model.MarkerLoop)
		}

	// gateways
	case "complexGateway":
		return x.addFlowObject(FlowObjectDocument{Gateway: x.newGateway(t, model.GatewayComplex)})
	case "eventBasedGateway":
		instantiate, _ := strconv.ParseBool(getAttrValue(t.Attr, "instantiate"))

		gatewayType := model.GatewayEventBased
		if getAttrValue(t.Attr, "eventGatewayType") == "Parallel" {
			gatewayType = model.GatewayParallelEventBased
		} else if instantiate {
			gatewayType = model.GatewayExclusiveEventBased
		}

		gateway := x.newGateway(t, gatewayType)
		gateway.Instantiate = instantiate
		return x.addFlowObject(FlowObjectDocument{Gateway: gateway})
	case "exclusiveGateway":
		gateway := x.newGateway(t, model.GatewayExclusive)
		gateway.DefaultFlow = getAttrValue(t.Attr, "default")
		return x.addFlowObject(FlowObjectDocument{Gateway: gateway})
	case "inclusiveGateway":
		gateway := x.newGateway(t, model.GatewayInclusive)
		gateway.DefaultFlow = getAttrValue(t.Attr, "default")
		return x.addFlowObject(FlowObjectDocument{Gateway: gateway})
	case "parallelGateway":
		return x.addFlowObject(FlowObjectDocument{Gateway: x.newGateway(t, model.GatewayParallel)})

	// sub-processes
	case "adHocSubProcess":
		cancelRemainingInstances, _ := strconv.ParseBool(getAttrValueWithDefault(t.Attr, "cancelRemainingInstances", "true"))

		subProcess := x.newSubProcess(t, model.SubProcessAdHoc)
		subProcess.AdHoc = &AdHocDocument{
			Ordering: model.MapAdHocOrdering(strings.ToUpper(getAttrValue(t.Attr, "ordering"))),
		}
		if !cancelRemainingInstances {
			subProcess.AdHoc.CancelRemainingInstances = lo.ToPtr(false)
		}
		return x.addFlowObject(FlowObjectDocument{SubProcess: subProcess})
	case "callActivity":
		subProcess := x.newSubProcess(t, model.SubProcessCallActivity)
		subProcess.CallActivity = &CallActivityDocument{
			CalledElement:     getAttrValue(t.Attr, "calledElement"),
			CalledElementType: model.CalledElementProcess,
		}
		return x.addFlowObject(FlowObjectDocument{SubProcess: subProcess})
	case "subProcess":
		triggeredByEvent, _ := strconv.ParseBool(getAttrValue(t.Attr, "triggeredByEvent"))

		subProcessType := model.SubProcessEmbedded
		if triggeredByEvent {
			subProcessType = model.SubProcessEvent
		}

		subProcess := x.newSubProcess(t, subProcessType)
		subProcess.TriggeredByEvent = triggeredByEvent
		return x.addFlowObject(FlowObjectDocument{SubProcess: subProcess})
	case "transaction":
		subProcess := x.newSubProcess(t, model.SubProcessTransaction)
		subProcess.Transaction = &TransactionDocument{Method: getAttrValue(t.Attr, "method")}
		return x.addFlowObject(FlowObjectDocument{SubProcess: subProcess})

	// connecting objects
	case "association":
		association := &AssociationDocument{
			ElementDocument: newXMLElement(t),
			SourceRef:       getAttrValue(t.Attr, "sourceRef"),
			TargetRef:       getAttrValue(t.Attr, "targetRef"),
			Direction:       model.MapAssociationDirection(strings.ToUpper(getAttrValue(t.Attr, "associationDirection"))),
		}
		if process, ok := find[*ProcessDocument](x.stack); ok {
			process.Associations = append(process.Associations, association)
			return x.register(association)
		}
	case "sequenceFlow":
		immediate, _ := strconv.ParseBool(getAttrValue(t.Attr, "isImmediate"))

		sequenceFlow := &SequenceFlowDocument{
			ElementDocument: newXMLElement(t),
			SourceRef:       getAttrValue(t.Attr, "sourceRef"),
			TargetRef:       getAttrValue(t.Attr, "targetRef"),
			Immediate:       immediate,
		}

		switch scope := x.scope().(type) {
		case *ProcessDocument:
			scope.SequenceFlows = append(scope.SequenceFlows, sequenceFlow)
		case *SubProcessDocument:
			scope.SequenceFlows = append(scope.SequenceFlows, sequenceFlow)
		default:
			return nil
		}
		return x.register(sequenceFlow)
	case "conditionExpression":
		if sequenceFlow, ok := find[*SequenceFlowDocument](x.stack); ok {
			x.capture(func(s string) { sequenceFlow.ConditionExpression = s })
		}

	// artifacts
	case "dataObject":
		collection, _ := strconv.ParseBool(getAttrValue(t.Attr, "isCollection"))

		dataObject := &DataObjectDocument{
			ElementDocument: newXMLElement(t),
			Collection:      collection,
			ItemSubjectRef:  getAttrValue(t.Attr, "itemSubjectRef"),
		}
		if process, ok := find[*ProcessDocument](x.stack); ok {
			process.DataObjects = append(process.DataObjects, dataObject)
			return x.register(dataObject)
		}
	case "dataState":
		if dataObject, ok := find[*DataObjectDocument](x.stack); ok {
			dataObject.State = getAttrValue(t.Attr, "name")
		}
	case "dataStore", "dataStoreReference":
		dataStore := &DataStoreDocument{
			ElementDocument: newXMLElement(t),
			ItemSubjectRef:  getAttrValue(t.Attr, "itemSubjectRef"),
		}

		unlimited, err := strconv.ParseBool(getAttrValueWithDefault(t.Attr, "isUnlimited", "true"))
		if capacity, capacityErr := strconv.Atoi(getAttrValue(t.Attr, "capacity")); capacityErr == nil && (err != nil || !unlimited) {
			dataStore.Capacity = &capacity
		}

		if process, ok := find[*ProcessDocument](x.stack); ok {
			process.DataStores = append(process.DataStores, dataStore)
		} else {
			x.doc.GlobalDataStores = append(x.doc.GlobalDataStores, dataStore)
		}
		return x.register(dataStore)
	case "group":
		group := &GroupDocument{
			ElementDocument:  newXMLElement(t),
			CategoryValueRef: getAttrValue(t.Attr, "categoryValueRef"),
		}
		if process, ok := find[*ProcessDocument](x.stack); ok {
			process.Groups = append(process.Groups, group)
			return x.register(group)
		}
	case "textAnnotation":
		textAnnotation := &TextAnnotationDocument{
			ElementDocument: newXMLElement(t),
			TextFormat:      getAttrValue(t.Attr, "textFormat"),
		}
		if process, ok := find[*ProcessDocument](x.stack); ok {
			process.TextAnnotations = append(process.TextAnnotations, textAnnotation)
		} else {
			x.doc.GlobalTextAnnotations = append(x.doc.GlobalTextAnnotations, textAnnotation)
		}
		return x.register(textAnnotation)
	case "text":
		if textAnnotation, ok := find[*TextAnnotationDocument](x.stack); ok {
			x.capture(func(s string) { textAnnotation.Text = s })
		}

	// lanes
	case "lane":
		lane := &LaneDocument{
			ElementDocument:     newXMLElement(t),
			PartitionElementRef: getAttrValue(t.Attr, "partitionElementRef"),
		}

		if parent, ok := find[*LaneDocument](x.stack); ok {
			parent.ChildLanes = append(parent.ChildLanes, lane)
		} else if process, ok := find[*ProcessDocument](x.stack); ok {
			x.lanes[process.Id] = append(x.lanes[process.Id], lane)
		} else {
			return nil
		}
		return x.register(lane)
	case "flowNodeRef":
		if lane, ok := find[*LaneDocument](x.stack); ok {
			x.capture(func(s string) { lane.FlowNodeRefs = append(lane.FlowNodeRefs, s) })
		}

	// diagram interchange
	case "BPMNShape":
		shape := &xmlShape{bpmnElement: getAttrValue(t.Attr, "bpmnElement")}
		x.shapes = append(x.shapes, shape)
		return shape
	case "Bounds":
		if shape, ok := x.parent().(*xmlShape); ok {
			shape.bounds = &xmlBounds{
				x:      parseFloat(t.Attr, "x"),
				y:      parseFloat(t.Attr, "y"),
				width:  parseFloat(t.Attr, "width"),
				height: parseFloat(t.Attr, "height"),
			}
		}
	case "BPMNEdge":
		edge := &xmlEdge{bpmnElement: getAttrValue(t.Attr, "bpmnElement")}
		x.edges = append(x.edges, edge)
		return edge
	case "waypoint":
		if edge, ok := x.parent().(*xmlEdge); ok {
			edge.waypoints = append(edge.waypoints, PositionDocument{X: parseFloat(t.Attr, "x"), Y: parseFloat(t.Attr, "y")})
		}
	}

	return nil
}

// end completes a text capture, started by the XML element, which ends.
func (x *xmlDecoder) end() {
	if x.onText == nil || x.textDepth != len(x.stack)-1 {
		return
	}

	x.onText(strings.TrimSpace(x.text.String()))
	x.onText = nil
	x.text.Reset()
}

// activity returns the task or sub-process document, the current XML element belongs to.
func (x *xmlDecoder) activity() any {
	for i := len(x.stack) - 1; i >= 0; i-- {
		switch x.stack[i].(type) {
		case *TaskDocument, *SubProcessDocument:
			return x.stack[i]
		}
	}
	return nil
}

// addFlowObject adds a flow object to the current process or sub-process.
// If the flow object is not part of a scope, it is skipped.
func (x *xmlDecoder) addFlowObject(flowObject FlowObjectDocument) any {
	var e xmlElement
	switch {
	case flowObject.Event != nil:
		e = flowObject.Event
	case flowObject.Task != nil:
		e = flowObject.Task
	case flowObject.Gateway != nil:
		e = flowObject.Gateway
	case flowObject.SubProcess != nil:
		e = flowObject.SubProcess
	}

	switch scope := x.scope().(type) {
	case *ProcessDocument:
		switch {
		case flowObject.Event != nil:
			scope.Events = append(scope.Events, flowObject.Event)
		case flowObject.Task != nil:
			scope.Tasks = append(scope.Tasks, flowObject.Task)
		case flowObject.Gateway != nil:
			scope.Gateways = append(scope.Gateways, flowObject.Gateway)
		case flowObject.SubProcess != nil:
			scope.SubProcesses = append(scope.SubProcesses, flowObject.SubProcess)
		}
	case *SubProcessDocument:
		scope.FlowObjects = append(scope.FlowObjects, &flowObject)
	default:
		return nil
	}

	return x.register(e)
}

// capture starts capturing the character data of the current XML element.
func (x *xmlDecoder) capture(onText func(string)) {
	x.onText = onText
	x.textDepth = len(x.stack)
	x.text.Reset()
}

func (x *xmlDecoder) newEvent(t xml.StartElement, eventType model.EventType) *EventDocument {
	x.eventDefinitions = 0
	x.parallelMultiple, _ = strconv.ParseBool(getAttrValue(t.Attr, "parallelMultiple"))

	return &EventDocument{
		ElementDocument: newXMLElement(t),
		EventType:       eventType,
	}
}

func (x *xmlDecoder) newGateway(t xml.StartElement, gatewayType model.GatewayType) *GatewayDocument {
	return &GatewayDocument{
		ElementDocument: newXMLElement(t),
		GatewayType:     gatewayType,
		Direction:       model.MapGatewayDirection(strings.ToUpper(getAttrValue(t.Attr, "gatewayDirection"))),
	}
}

func (x *xmlDecoder) newSubProcess(t xml.StartElement, subProcessType model.SubProcessType) *SubProcessDocument {
	forCompensation, _ := strconv.ParseBool(getAttrValue(t.Attr, "isForCompensation"))

	return &SubProcessDocument{
		ElementDocument: newXMLElement(t),
		SubProcessType:  subProcessType,
		ForCompensation: forCompensation,
	}
}

func (x *xmlDecoder) newTask(t xml.StartElement, taskType model.TaskType) *TaskDocument {
	task := TaskDocument{
		ElementDocument: newXMLElement(t),
		TaskType:        taskType,
	}

	forCompensation, _ := strconv.ParseBool(getAttrValue(t.Attr, "isForCompensation"))
	if forCompensation {
		task.Markers = append(task.Markers, model.MarkerCompensation)
	}
	return &task
}

// parent returns the document of the parent XML element.
func (x *xmlDecoder) parent() any {
	if len(x.stack) == 0 {
		return nil
	}
	return x.stack[len(x.stack)-1]
}

func (x *xmlDecoder) register(e xmlElement) xmlElement {
	id := e.element().Id
	if _, ok := x.elements[id]; !ok {
		x.elements[id] = e
	}
	return e
}

// resolve assigns lanes to pools or processes and applies shapes and edges.
func (x *xmlDecoder) resolve() {
	for _, process := range x.doc.Processes {
		lanes := x.lanes[process.Id]
		if len(lanes) == 0 {
			continue
		}

		pool, ok := lo.Find(x.doc.Pools, func(pool *PoolDocument) bool {
			return pool.ProcessRef == process.Id
		})
		if ok {
			pool.Lanes = append(pool.Lanes, lanes...)
		} else {
			process.Lanes = append(process.Lanes, lanes...)
		}
	}

	for _, shape := range x.shapes {
		e, ok := x.elements[shape.bpmnElement]
		if !ok || shape.bounds == nil {
			continue
		}

		element := e.element()
		element.Position = &PositionDocument{X: shape.bounds.x, Y: shape.bounds.y}
		if shape.bounds.width > 0 && shape.bounds.height > 0 {
			element.Dimensions = &DimensionsDocument{Width: shape.bounds.width, Height: shape.bounds.height}
		}
	}

	for _, edge := range x.edges {
		switch e := x.elements[edge.bpmnElement].(type) {
		case *AssociationDocument:
			e.Waypoints = edge.waypoints
		case *MessageFlowDocument:
			e.Waypoints = edge.waypoints
		case *SequenceFlowDocument:
			e.Waypoints = edge.waypoints
		}
	}
}

// scope returns the process or sub-process document, the current XML element belongs to.
func (x *xmlDecoder) scope() any {
	for i := len(x.stack) - 1; i >= 0; i-- {
		switch scope := x.stack[i].(type) {
		case *ProcessDocument:
			return scope
		case *SubProcessDocument:
			if scope.SubProcessType != model.SubProcessCallActivity {
				return scope
			}
		}
	}
	return nil
}

// setEventDefinition sets the definition of the current event.
// An event with more than one definition becomes a multiple or parallel multiple event.
func (x *xmlDecoder) setEventDefinition(definition model.EventDefinition, trigger string) {
	event, ok := find[*EventDocument](x.stack)
	if !ok {
		return
	}

	x.eventDefinitions++
	if x.eventDefinitions > 1 {
		if x.parallelMultiple {
			event.Definition = model.EventDefinitionParallelMultiple
		} else {
			event.Definition = model.EventDefinitionMultiple
		}
		event.Trigger = ""
		return
	}

	event.Definition = definition
	event.Trigger = trigger
}

// find returns the innermost document of type T.
func find[T any](stack []any) (T, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if v, ok := stack[i].(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func getAttrValue(attributes []xml.Attr, name string) string {
	for i := range attributes {
		if attributes[i].Name.Local == name {
			return attributes[i].Value
		}
	}
	return ""
}

func getAttrValueWithDefault(attributes []xml.Attr, name string, defaultValue string) string {
	if value := getAttrValue(attributes, name); value != "" {
		return value
	} else {
		return defaultValue
	}
}

func newXMLElement(t xml.StartElement) ElementDocument {
	return ElementDocument{
		Id:   getAttrValue(t.Attr, "id"),
		Name: getAttrValue(t.Attr, "name"),
	}
}

func parseFloat(attributes []xml.Attr, name string) float64 {
	v, _ := strconv.ParseFloat(getAttrValue(attributes, name), 64)
	return v
}

// splitAttrValue splits a comma separated attribute value.
func splitAttrValue(attributes []xml.Attr, name string) []string {
	value := getAttrValue(attributes, name)
	if value == "" {
		return nil
	}

	var values []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
