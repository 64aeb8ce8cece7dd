// Package sample provides example diagrams, which demonstrate the model.
package sample

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gclaussn/go-bpmn-schema/model"
)

const (
	createdBy = "SimLab120"

	NameOrderFulfillment           = "order-fulfillment"
	NamePurchaseOrderCollaboration = "purchase-order-collaboration"
	NameSimpleApproval             = "simple-approval"
)

var samples = map[string]func() (*model.Diagram, error){
	NameOrderFulfillment:           OrderFulfillment,
	NamePurchaseOrderCollaboration: PurchaseOrderCollaboration,
	NameSimpleApproval:             SimpleApproval,
}

// ByName creates the sample diagram with the given name.
func ByName(name string) (*model.Diagram, error) {
	create, ok := samples[name]
	if !ok {
		return nil, fmt.Errorf("no sample named %s: must be one of %s", name, strings.Join(Names(), ", "))
	}
	return create()
}

// Names returns the names of all samples in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SimpleApproval creates a document approval process, where a reviewer approves or rejects a document.
func SimpleApproval() (*model.Diagram, error) {
	d := model.NewDiagram("simple_approval_process")
	d.Name = "Simple Document Approval Process"
	d.CreatedBy = createdBy
	d.CreatedAt = time.Now().UTC()
	d.Version = "1.0"

	p := model.NewProcess("approval_process")
	p.Name = "Document Approval Process"
	p.Executable = true
	p.ProcessType = model.ProcessTypePrivate

	startEvent := model.NewEvent("start_document_request", model.EventStart)
	startEvent.Name = "Document Request Received"
	startEvent.Definition = model.EventDefinitionMessage

	endApproved := model.NewEvent("end_approved", model.EventEnd)
	endApproved.Name = "Document Approved"

	endRejected := model.NewEvent("end_rejected", model.EventEnd)
	endRejected.Name = "Document Rejected"

	reviewDocument := model.NewTask("review_document", model.TaskUser)
	reviewDocument.Name = "Review Document"
	reviewDocument.SetPosition(150, 100)

	notifyApproval := model.NewTask("notify_approval", model.TaskService)
	notifyApproval.Name = "Notify Approval"
	notifyApproval.ServiceTask().Implementation = "email_service"

	notifyRejection := model.NewTask("notify_rejection", model.TaskService)
	notifyRejection.Name = "Notify Rejection"
	notifyRejection.ServiceTask().Implementation = "email_service"

	approvalDecision := model.NewGateway("approval_decision", model.GatewayExclusive)
	approvalDecision.Name = "Approval Decision"
	approvalDecision.Direction = model.GatewayDirectionDiverging
	approvalDecision.SetPosition(300, 100)

	document := model.NewDataObject("document")
	document.Name = "Document"
	document.State = "Under Review"

	processNote := model.NewTextAnnotation("process_note", "This process handles document approval requests from employees. Documents are reviewed by designated reviewers who can approve or reject them.")
	processNote.Name = "Process Documentation"

	flowStartToReview := model.NewSequenceFlow("flow_start_to_review", "start_document_request", "review_document")
	flowStartToReview.Name = "Submit Request"

	flowReviewToDecision := model.NewSequenceFlow("flow_review_to_decision", "review_document", "approval_decision")
	flowReviewToDecision.Name = "Complete Review"

	flowApprove := model.NewSequenceFlow("flow_approve", "approval_decision", "notify_approval")
	flowApprove.Name = "Approved"
	flowApprove.SetCondition("${approved == true}")

	flowReject := model.NewSequenceFlow("flow_reject", "approval_decision", "notify_rejection")
	flowReject.Name = "Rejected"
	flowReject.SetCondition("${approved == false}")

	b := builder{d: d}
	b.do(reviewDocument.AssignToUser("reviewer"))
	b.do(reviewDocument.AddCandidateGroup("reviewers"))
	b.do(reviewDocument.SetDimensions(100, 80))
	b.do(approvalDecision.SetDefaultFlow("flow_reject"))

	b.addFlowObjects(p, startEvent, reviewDocument, approvalDecision, notifyApproval, notifyRejection, endApproved, endRejected)
	b.addArtifacts(p, document, processNote)
	b.addConnectingObjects(p,
		flowStartToReview,
		flowReviewToDecision,
		flowApprove,
		flowReject,
		model.NewSequenceFlow("flow_approval_to_end", "notify_approval", "end_approved"),
		model.NewSequenceFlow("flow_rejection_to_end", "notify_rejection", "end_rejected"),
	)
	b.do(d.AddProcess(p))

	return b.diagram()
}

// OrderFulfillment creates an order fulfillment process, which processes the payment and prepares the shipment in parallel.
func OrderFulfillment() (*model.Diagram, error) {
	d := model.NewDiagram("order_fulfillment")
	d.Name = "Order Fulfillment Process"
	d.CreatedBy = createdBy
	d.CreatedAt = time.Now().UTC()

	p := model.NewProcess("fulfillment_process")
	p.Name = "Order Fulfillment"
	p.Executable = true

	orderReceived := model.NewEvent("order_received", model.EventStart)
	orderReceived.Name = "Order Received"

	paymentTimeout := model.NewEvent("payment_timeout", model.EventBoundary)
	paymentTimeout.Name = "Payment Timeout"
	paymentTimeout.SetTimerTrigger("PT30M")

	orderCompleted := model.NewEvent("order_completed", model.EventEnd)
	orderCompleted.Name = "Order Completed"

	validateOrder := model.NewTask("validate_order", model.TaskBusinessRule)
	validateOrder.Name = "Validate Order"
	validateOrder.BusinessRuleTask().RuleImplementation = "order_validation_rules"

	processPayment := model.NewTask("process_payment", model.TaskService)
	processPayment.Name = "Process Payment"
	processPayment.ServiceTask().Implementation = "payment_service"

	prepareShipment := model.NewTask("prepare_shipment", model.TaskUser)
	prepareShipment.Name = "Prepare Shipment"
	prepareShipment.SetMultiInstanceParallel("${order.items}", "item")

	sendConfirmation := model.NewTask("send_confirmation", model.TaskSend)
	sendConfirmation.Name = "Send Confirmation"
	sendConfirmation.MessageTask().MessageRef = "order_confirmation"

	parallelSplit := model.NewGateway("parallel_split", model.GatewayParallel)
	parallelSplit.Name = "Process in Parallel"
	parallelSplit.Direction = model.GatewayDirectionDiverging

	parallelJoin := model.NewGateway("parallel_join", model.GatewayParallel)
	parallelJoin.Name = "Join Parallel"
	parallelJoin.Direction = model.GatewayDirectionConverging

	paymentTimeout.AttachToActivity("process_payment", true)

	b := builder{d: d}
	b.addFlowObjects(p, orderReceived, validateOrder, parallelSplit, processPayment, prepareShipment, parallelJoin, sendConfirmation, orderCompleted, paymentTimeout)
	b.addConnectingObjects(p,
		model.NewSequenceFlow("f1", "order_received", "validate_order"),
		model.NewSequenceFlow("f2", "validate_order", "parallel_split"),
		model.NewSequenceFlow("f3", "parallel_split", "process_payment"),
		model.NewSequenceFlow("f4", "parallel_split", "prepare_shipment"),
		model.NewSequenceFlow("f5", "process_payment", "parallel_join"),
		model.NewSequenceFlow("f6", "prepare_shipment", "parallel_join"),
		model.NewSequenceFlow("f7", "parallel_join", "send_confirmation"),
		model.NewSequenceFlow("f8", "send_confirmation", "order_completed"),
	)
	b.do(d.AddProcess(p))

	return b.diagram()
}

// PurchaseOrderCollaboration creates a collaboration between a customer and a supplier, which exchange messages.
func PurchaseOrderCollaboration() (*model.Diagram, error) {
	d := model.NewDiagram("purchase_collaboration")
	d.Name = "Purchase Order Collaboration"
	d.CreatedBy = createdBy
	d.CreatedAt = time.Now().UTC()

	b := builder{d: d}

	// customer
	customerProcess := model.NewProcess("customer_process")
	customerProcess.Name = "Customer Purchase Process"
	customerProcess.Executable = true

	waitConfirmation := model.NewEvent("wait_confirmation", model.EventIntermediate)
	waitConfirmation.Name = "Wait for Confirmation"
	waitConfirmation.Definition = model.EventDefinitionMessage

	b.addFlowObjects(customerProcess,
		newEvent("customer_start", "Need Identified", model.EventStart),
		newTask("create_purchase_order", "Create Purchase Order", model.TaskUser),
		waitConfirmation,
		newTask("receive_goods", "Receive Goods", model.TaskUser),
		newEvent("customer_end", "Order Completed", model.EventEnd),
	)
	b.addConnectingObjects(customerProcess,
		model.NewSequenceFlow("cf1", "customer_start", "create_purchase_order"),
		model.NewSequenceFlow("cf2", "create_purchase_order", "wait_confirmation"),
		model.NewSequenceFlow("cf3", "wait_confirmation", "receive_goods"),
		model.NewSequenceFlow("cf4", "receive_goods", "customer_end"),
	)

	// supplier
	supplierProcess := model.NewProcess("supplier_process")
	supplierProcess.Name = "Supplier Order Processing"
	supplierProcess.Executable = true

	receiveOrder := newEvent("receive_order", "Order Received", model.EventStart)
	receiveOrder.Definition = model.EventDefinitionMessage

	b.addFlowObjects(supplierProcess,
		receiveOrder,
		newTask("check_inventory", "Check Inventory", model.TaskService),
		newTask("send_confirmation", "Send Confirmation", model.TaskSend),
		newTask("prepare_shipment", "Prepare Shipment", model.TaskUser),
		newTask("ship_goods", "Ship Goods", model.TaskSend),
		newEvent("supplier_end", "Order Fulfilled", model.EventEnd),
	)
	b.addConnectingObjects(supplierProcess,
		model.NewSequenceFlow("sf1", "receive_order", "check_inventory"),
		model.NewSequenceFlow("sf2", "check_inventory", "send_confirmation"),
		model.NewSequenceFlow("sf3", "send_confirmation", "prepare_shipment"),
		model.NewSequenceFlow("sf4", "prepare_shipment", "ship_goods"),
		model.NewSequenceFlow("sf5", "ship_goods", "supplier_end"),
	)

	// pools
	customerPool := newPool("customer_pool", "Customer", "customer_process")
	b.do(customerPool.AddLane(newLane("purchasing_lane", "Purchasing Department", "create_purchase_order")))
	b.do(customerPool.AddLane(newLane("receiving_lane", "Receiving Department", "receive_goods")))

	supplierPool := newPool("supplier_pool", "Supplier", "supplier_process")
	b.do(supplierPool.AddLane(newLane("sales_lane", "Sales Department", "receive_order", "send_confirmation")))
	b.do(supplierPool.AddLane(newLane("warehouse_lane", "Warehouse", "check_inventory", "prepare_shipment", "ship_goods")))

	b.do(d.AddProcess(customerProcess))
	b.do(d.AddProcess(supplierProcess))
	b.do(d.AddPool(customerPool))
	b.do(d.AddPool(supplierPool))

	// message flows
	b.do(d.AddMessageFlow(newMessageFlow("order_message", "Purchase Order", "create_purchase_order", "receive_order", "purchase_order")))
	b.do(d.AddMessageFlow(newMessageFlow("confirmation_message", "Order Confirmation", "send_confirmation", "wait_confirmation", "order_confirmation")))
	b.do(d.AddMessageFlow(newMessageFlow("shipment_message", "Goods Shipment", "ship_goods", "receive_goods", "goods_shipment")))

	return b.diagram()
}

// builder keeps the first error, which occurs while a diagram is assembled.
type builder struct {
	d   *model.Diagram
	err error
}

func (b *builder) addArtifacts(p *model.Process, artifacts ...model.Artifact) {
	for _, artifact := range artifacts {
		b.do(p.AddArtifact(artifact))
	}
}

func (b *builder) addConnectingObjects(p *model.Process, connectingObjects ...model.ConnectingObject) {
	for _, connectingObject := range connectingObjects {
		b.do(p.AddConnectingObject(connectingObject))
	}
}

func (b *builder) addFlowObjects(p *model.Process, flowObjects ...model.FlowObject) {
	for _, flowObject := range flowObjects {
		b.do(p.AddFlowObject(flowObject))
	}
}

func (b *builder) diagram() (*model.Diagram, error) {
	if b.err != nil {
		return nil, fmt.Errorf("failed to create sample %s: %v", b.d.Id, b.err)
	}
	return b.d, nil
}

func (b *builder) do(err error) {
	if b.err == nil {
		b.err = err
	}
}

func newEvent(id string, name string, eventType model.EventType) *model.Event {
	e := model.NewEvent(id, eventType)
	e.Name = name
	return e
}

func newLane(id string, name string, flowNodeIds ...string) *model.Lane {
	l := model.NewLane(id)
	l.Name = name
	for _, flowNodeId := range flowNodeIds {
		l.AddFlowNode(flowNodeId)
	}
	return l
}

func newMessageFlow(id string, name string, sourceRef string, targetRef string, messageRef string) *model.MessageFlow {
	f := model.NewMessageFlow(id, sourceRef, targetRef)
	f.Name = name
	f.MessageRef = messageRef
	return f
}

func newPool(id string, name string, processRef string) *model.Pool {
	p := model.NewPool(id)
	p.Name = name
	p.Executable = true
	p.ProcessRef = processRef
	return p
}

func newTask(id string, name string, taskType model.TaskType) *model.Task {
	t := model.NewTask(id, taskType)
	t.Name = name
	return t
}
