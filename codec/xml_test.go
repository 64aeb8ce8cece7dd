package codec

import (
	"os"
	"strings"
	"testing"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeXML(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := DecodeXML(strings.NewReader(""))
		assertValidationError(t, err, "XML is empty")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeXML(strings.NewReader("<definitions><process></definitions>"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode XML: ")
	})

	t.Run("no definitions", func(t *testing.T) {
		_, err := DecodeXML(strings.NewReader("<process id=\"p1\"></process>"))
		assertValidationError(t, err, "no definitions found")
	})

	t.Run("missing ID", func(t *testing.T) {
		_, err := DecodeXML(strings.NewReader(`<definitions id="d1"><process><startEvent id="s1" /></process></definitions>`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "#/processes/0/id")
	})
}

func TestDecodeXMLApproval(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	f, err := os.Open("./testdata/approval.bpmn")
	require.NoError(err)
	defer f.Close()

	d, err := DecodeXML(f)
	require.NoError(err)

	assert.Equal("simple_approval_process", d.Id)
	assert.Equal("Simple Document Approval Process", d.Name)
	assert.Equal(model.DefaultTargetNamespace, d.TargetNamespace)

	require.Len(d.Processes(), 1)

	p := d.Processes()[0]
	assert.Equal("approval_process", p.Id())
	assert.Equal("Document Approval Process", p.Name)
	assert.Equal("Approval of documents, requested by employees", p.Documentation)
	assert.True(p.Executable)
	assert.Equal(model.ProcessTypePrivate, p.ProcessType)

	assert.Len(p.Events(), 4)
	assert.Len(p.Tasks(), 3)
	assert.Len(p.Gateways(), 1)
	assert.Len(p.SequenceFlows(), 6)
	assert.Len(p.Associations(), 1)
	assert.Len(p.DataObjects(), 1)
	assert.Len(p.TextAnnotations(), 1)

	t.Run("events", func(t *testing.T) {
		startEvent := mustGetElement[*model.Event](t, d, "start_document_request")
		assert.True(startEvent.IsStartEvent())
		assert.True(startEvent.IsMessageEvent())
		assert.Equal("document_request", startEvent.Trigger)
		assert.Equal(&model.Position{X: 52, Y: 122}, startEvent.Position)
		assert.Equal(&model.Dimensions{Width: 36, Height: 36}, startEvent.Dimensions())

		endEvent := mustGetElement[*model.Event](t, d, "end_approved")
		assert.True(endEvent.IsEndEvent())
		assert.True(endEvent.Throwing)

		reviewTimeout := mustGetElement[*model.Event](t, d, "review_timeout")
		assert.True(reviewTimeout.IsBoundaryEvent())
		assert.True(reviewTimeout.IsTimerEvent())
		assert.False(reviewTimeout.Interrupting)
		assert.Equal("review_document", reviewTimeout.AttachedToRef())
		assert.Equal("P3D", reviewTimeout.Trigger)
	})

	t.Run("tasks", func(t *testing.T) {
		reviewDocument := mustGetElement[*model.Task](t, d, "review_document")
		require.NotNil(reviewDocument.UserTask())
		assert.Equal("reviewer", reviewDocument.UserTask().Assignee)
		assert.Equal([]string{"reviewers"}, reviewDocument.UserTask().CandidateGroups)
		assert.Equal(&model.Position{X: 150, Y: 100}, reviewDocument.Position)
		assert.Equal(&model.Dimensions{Width: 100, Height: 80}, reviewDocument.Dimensions())

		notifyApproval := mustGetElement[*model.Task](t, d, "notify_approval")
		require.NotNil(notifyApproval.ServiceTask())
		assert.Equal("email_service", notifyApproval.ServiceTask().Implementation)
	})

	t.Run("gateway", func(t *testing.T) {
		approvalDecision := mustGetElement[*model.Gateway](t, d, "approval_decision")
		assert.True(approvalDecision.IsExclusive())
		assert.True(approvalDecision.IsDiverging())
		assert.Equal("flow_reject", approvalDecision.DefaultFlow())
		assert.Equal(&model.Position{X: 300, Y: 100}, approvalDecision.Position)
	})

	t.Run("sequence flows", func(t *testing.T) {
		flowApprove := mustGetElement[*model.SequenceFlow](t, d, "flow_approve")
		assert.Equal("approval_decision", flowApprove.SourceRef)
		assert.Equal("notify_approval", flowApprove.TargetRef)
		assert.Equal("${approved == true}", flowApprove.ConditionExpression)
		assert.Equal([]model.Position{{X: 325, Y: 100}, {X: 325, Y: 40}, {X: 420, Y: 40}}, flowApprove.Waypoints())

		flowStartToReview := mustGetElement[*model.SequenceFlow](t, d, "flow_start_to_review")
		assert.Equal("Submit Request", flowStartToReview.Name)
		assert.False(flowStartToReview.IsConditional())
		assert.Len(flowStartToReview.Waypoints(), 2)
	})

	t.Run("artifacts", func(t *testing.T) {
		document := mustGetElement[*model.DataObject](t, d, "document")
		assert.Equal("Under Review", document.State)

		processNote := mustGetElement[*model.TextAnnotation](t, d, "process_note")
		assert.True(strings.HasPrefix(processNote.Text, "This process handles document approval requests"))
		assert.True(processNote.IsPlainText())

		noteAssociation := mustGetElement[*model.Association](t, d, "note_association")
		assert.Equal(model.AssociationDirectionNone, noteAssociation.Direction)
	})
}

func TestDecodeXMLCollaboration(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	d, err := DecodeXML(strings.NewReader(`<?xml version="1.0" encoding="UTF-8"?>
<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL" id="c1">
  <collaboration id="collaboration">
    <participant id="customer_pool" name="Customer" processRef="customer_process" />
    <participant id="supplier_pool" name="Supplier" processRef="supplier_process">
      <participantMultiplicity minimum="1" maximum="3" />
    </participant>
    <messageFlow id="order_message" sourceRef="create_order" targetRef="receive_order" messageRef="purchase_order" />
  </collaboration>
  <process id="customer_process" isExecutable="true">
    <laneSet id="customer_lanes">
      <lane id="purchasing_lane" name="Purchasing">
        <flowNodeRef>create_order</flowNodeRef>
        <childLaneSet id="purchasing_child_lanes">
          <lane id="buyer_lane">
            <flowNodeRef>customer_start</flowNodeRef>
          </lane>
        </childLaneSet>
      </lane>
    </laneSet>
    <startEvent id="customer_start" />
    <sendTask id="create_order" messageRef="purchase_order" />
    <sequenceFlow id="cf1" sourceRef="customer_start" targetRef="create_order" />
  </process>
  <process id="supplier_process">
    <startEvent id="receive_order" isInterrupting="false">
      <messageEventDefinition messageRef="purchase_order" />
      <signalEventDefinition signalRef="urgent" />
    </startEvent>
    <subProcess id="handle_order">
      <startEvent id="handle_start" />
      <scriptTask id="calculate" scriptFormat="groovy">
        <multiInstanceLoopCharacteristics isSequential="true" collection="items" elementVariable="i">
          <loopCardinality>3</loopCardinality>
          <completionCondition>${done}</completionCondition>
        </multiInstanceLoopCharacteristics>
        <script>return 1</script>
      </scriptTask>
      <sequenceFlow id="hf1" sourceRef="handle_start" targetRef="calculate" />
    </subProcess>
    <callActivity id="ship" calledElement="shipping_process" />
    <eventBasedGateway id="wait" eventGatewayType="Parallel" />
    <adHocSubProcess id="adhoc" ordering="Sequential" cancelRemainingInstances="false" />
    <transaction id="tx" method="##Image" />
    <subProcess id="on_error" triggeredByEvent="true" />
    <intermediateThrowEvent id="escalate">
      <escalationEventDefinition escalationRef="esc1" />
    </intermediateThrowEvent>
    <sequenceFlow id="sf1" sourceRef="receive_order" targetRef="handle_order" />
    <dataStoreReference id="orders" />
    <group id="group1" categoryValueRef="cv1" />
  </process>
  <dataStore id="warehouse" capacity="100" isUnlimited="false" />
  <textAnnotation id="global_note">
    <text>Global</text>
  </textAnnotation>
</definitions>`))
	require.NoError(err)

	assert.True(d.IsCollaboration())
	require.Len(d.Pools(), 2)
	assert.Equal(2, len(d.Processes()))

	customerPool := d.Pools()[0]
	assert.Equal("customer_process", customerPool.ProcessRef)
	require.Len(customerPool.Lanes(), 1)
	assert.Equal([]string{"create_order"}, customerPool.Lanes()[0].FlowNodeRefs())
	require.Len(customerPool.Lanes()[0].ChildLanes(), 1)
	assert.Equal([]string{"create_order", "customer_start"}, customerPool.Lanes()[0].AllFlowNodes())

	supplierPool := d.Pools()[1]
	assert.Equal(3, supplierPool.ParticipantMultiplicity)

	require.Len(d.MessageFlows(), 1)
	assert.Equal("purchase_order", d.MessageFlows()[0].MessageRef)

	createOrder := mustGetElement[*model.Task](t, d, "create_order")
	require.NotNil(createOrder.MessageTask())
	assert.Equal("purchase_order", createOrder.MessageTask().MessageRef)

	receiveOrder := mustGetElement[*model.Event](t, d, "receive_order")
	assert.Equal(model.EventDefinitionMultiple, receiveOrder.Definition)
	assert.False(receiveOrder.Interrupting)

	handleOrder := mustGetElement[*model.SubProcess](t, d, "handle_order")
	assert.Equal(model.SubProcessEmbedded, handleOrder.SubProcessType())
	assert.Len(handleOrder.FlowObjects(), 2)
	assert.Len(handleOrder.SequenceFlows(), 1)

	e, ok := handleOrder.ElementById("calculate")
	require.True(ok)

	calculate := e.(*model.Task)
	require.NotNil(calculate.ScriptTask())
	assert.Equal("return 1", calculate.ScriptTask().Script)
	assert.Equal("groovy", calculate.ScriptTask().ScriptFormat)
	assert.True(calculate.IsSequentialMultiInstance())
	assert.Equal("3", calculate.MultiInstance().LoopCardinality)
	assert.Equal("${done}", calculate.MultiInstance().CompletionCondition)
	assert.Equal("items", calculate.MultiInstance().Collection)
	assert.Equal("i", calculate.MultiInstance().ElementVariable)

	ship := mustGetElement[*model.SubProcess](t, d, "ship")
	assert.Equal("shipping_process", ship.CallActivity().CalledElement)

	wait := mustGetElement[*model.Gateway](t, d, "wait")
	assert.Equal(model.GatewayParallelEventBased, wait.GatewayType())

	adhoc := mustGetElement[*model.SubProcess](t, d, "adhoc")
	assert.Equal(model.AdHocOrderingSequential, adhoc.AdHoc().Ordering)
	assert.False(adhoc.AdHoc().CancelRemainingInstances)

	tx := mustGetElement[*model.SubProcess](t, d, "tx")
	assert.Equal("##Image", tx.Transaction().Method)

	onError := mustGetElement[*model.SubProcess](t, d, "on_error")
	assert.Equal(model.SubProcessEvent, onError.SubProcessType())
	assert.True(onError.TriggeredByEvent)

	escalate := mustGetElement[*model.Event](t, d, "escalate")
	assert.True(escalate.IsThrowing())
	assert.Equal(model.EventDefinitionEscalation, escalate.Definition)
	assert.Equal("esc1", escalate.Trigger)

	require.Len(d.GlobalDataStores(), 1)
	assert.True(d.GlobalDataStores()[0].HasCapacityLimit())
	assert.Equal(100, d.GlobalDataStores()[0].Capacity())

	require.Len(d.GlobalTextAnnotations(), 1)
	assert.Equal("Global", d.GlobalTextAnnotations()[0].Text)

	supplierProcess := d.ResolveProcess(supplierPool)
	require.NotNil(supplierProcess)
	assert.Len(supplierProcess.DataStores(), 1)
	assert.Len(supplierProcess.Groups(), 1)
}

func mustGetElement[T model.Element](t *testing.T, d *model.Diagram, id string) T {
	t.Helper()

	e, ok := d.ElementById(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}

	v, ok := e.(T)
	if !ok {
		t.Fatalf("expected element %s to be of type %T, but got %T", id, v, e)
	}
	return v
}
