package codec

import (
	"testing"
	"time"

	"github.com/gclaussn/go-bpmn-schema/model"
)

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to add element: %v", err)
	}
}

// mustCreateDiagram creates a collaboration, which uses every element kind and most kind specific fields.
func mustCreateDiagram(t *testing.T) *model.Diagram {
	t.Helper()

	d := model.NewDiagram("d1")
	d.Name = "Test Diagram"
	d.CreatedBy = "test"
	d.CreatedAt = time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
	d.Version = "2.1"

	// process p1
	p1 := model.NewProcess("p1")
	p1.Name = "Process 1"
	p1.Documentation = "first process"
	p1.Executable = true
	p1.ProcessType = model.ProcessTypePublic

	s1 := model.NewEvent("s1", model.EventStart)
	s1.SetTimerTrigger("R3/PT10H")
	s1.SetProperty("owner", "team-a")
	s1.SetProperty("critical", true)
	s1.SetProperty("retries", 3)
	s1.SetProperty("ratio", 0.75)
	s1.SetProperty("limits", map[string]any{"max": 10, "tags": []any{"a", 2}})

	t1 := model.NewTask("t1", model.TaskUser)
	t1.Name = "Review"
	t1.SetPosition(100, 50)
	mustAdd(t, t1.SetDimensions(100, 80))
	mustAdd(t, t1.AssignToUser("u1"))
	mustAdd(t, t1.AddCandidateGroup("g1"))
	mustAdd(t, t1.AddCandidateUser("u2"))
	t1.UserTask().DueDate = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	t1.UserTask().Priority = new(int)
	*t1.UserTask().Priority = 3
	t1.UserTask().FormKey = "review-form"
	t1.SetMultiInstanceSequential("${reviewers}", "reviewer")
	t1.MultiInstance().CompletionCondition = "${approved}"

	t2 := model.NewTask("t2", model.TaskScript)
	t2.SetScript("return 1", "groovy")
	t2.AddMarker(model.MarkerLoop)

	t3 := model.NewTask("t3", model.TaskBusinessRule)
	t3.BusinessRuleTask().DecisionRef = "decision1"

	t4 := model.NewTask("t4", model.TaskSend)
	t4.MessageTask().MessageRef = "m1"
	t4.MessageTask().Operation = "op1"

	t5 := model.NewTask("t5", model.TaskService)
	t5.ServiceTask().Implementation = "##WebService"
	t5.ServiceTask().OperationRef = "op2"

	b1 := model.NewEvent("b1", model.EventBoundary)
	b1.SetErrorTrigger("E001")
	b1.AttachToActivity("t5", false)

	g1 := model.NewGateway("g1", model.GatewayInclusive)
	g1.Direction = model.GatewayDirectionDiverging
	mustAdd(t, g1.SetDefaultFlow("f4"))

	g2 := model.NewGateway("g2", model.GatewayEventBased)
	mustAdd(t, g2.EnableProcessInstantiation())

	// embedded sub-process
	sp1 := model.NewSubProcess("sp1", model.SubProcessTransaction)
	sp1.Transaction().Method = "##Compensate"
	sp1.Expanded = false
	sp1.AddMarker(model.MarkerParallelMultiInstance)

	sp1s := model.NewEvent("sp1s", model.EventStart)
	sp1t := model.NewTask("sp1t", model.TaskManual)
	sp1e := model.NewEvent("sp1e", model.EventEnd)
	sp1e.Throwing = true

	sp2 := model.NewSubProcess("sp2", model.SubProcessAdHoc)
	sp2.AdHoc().Ordering = model.AdHocOrderingSequential
	sp2.AdHoc().CancelRemainingInstances = false

	mustAdd(t, sp1.AddFlowObject(sp1s))
	mustAdd(t, sp1.AddFlowObject(sp1t))
	mustAdd(t, sp1.AddFlowObject(sp1e))
	mustAdd(t, sp1.AddFlowObject(sp2))
	mustAdd(t, sp1.AddSequenceFlow(model.NewSequenceFlow("sp1f1", "sp1s", "sp1t")))
	mustAdd(t, sp1.AddSequenceFlow(model.NewSequenceFlow("sp1f2", "sp1t", "sp1e")))

	sp1b := model.NewEvent("sp1b", model.EventIntermediate)
	sp1b.SetSignalTrigger("cancel")
	sp1b.Interrupting = false
	mustAdd(t, sp1.AddBoundaryEvent(sp1b))

	ca1 := model.NewSubProcess("ca1", model.SubProcessCallActivity)
	ca1.CallActivity().CalledElement = "p2"
	ca1.CallActivity().CalledElementType = model.CalledElementProcess

	e1 := model.NewEvent("e1", model.EventEnd)
	e1.Definition = model.EventDefinitionTerminate
	e1.Throwing = true

	for _, flowObject := range []model.FlowObject{s1, t1, t2, t3, t4, t5, b1, g1, g2, sp1, ca1, e1} {
		mustAdd(t, p1.AddFlowObject(flowObject))
	}

	f1 := model.NewSequenceFlow("f1", "s1", "t1")
	f1.AddWaypoint(10, 20)
	f1.AddWaypoint(100, 20)

	f3 := model.NewSequenceFlow("f3", "g1", "t2")
	f3.SetCondition("${amount > 100}")
	f3.Immediate = true

	a1 := model.NewAssociation("a1", "ta1", "t1")
	a1.Direction = model.AssociationDirectionOne

	for _, connectingObject := range []model.ConnectingObject{
		f1,
		model.NewSequenceFlow("f2", "t1", "g1"),
		f3,
		model.NewSequenceFlow("f4", "g1", "t3"),
		a1,
	} {
		mustAdd(t, p1.AddConnectingObject(connectingObject))
	}

	do1 := model.NewDataObject("do1")
	do1.Collection = true
	do1.ItemSubjectRef = "item1"
	do1.State = "draft"

	ds1 := model.NewDataStore("ds1")
	mustAdd(t, ds1.SetCapacity(10))

	gr1 := model.NewGroup("gr1")
	gr1.CategoryValueRef = "cv1"

	ta1 := model.NewTextAnnotation("ta1", "<b>note</b>")
	ta1.TextFormat = "text/html"

	for _, artifact := range []model.Artifact{do1, ds1, gr1, ta1} {
		mustAdd(t, p1.AddArtifact(artifact))
	}

	l0 := model.NewLane("l0")
	l0.AddFlowNode("s1")
	mustAdd(t, p1.AddLane(l0))

	// process p2
	p2 := model.NewProcess("p2")
	p2.Closed = true
	mustAdd(t, p2.AddFlowObject(model.NewEvent("p2s", model.EventStart)))
	mustAdd(t, p2.AddFlowObject(model.NewEvent("p2e", model.EventEnd)))
	mustAdd(t, p2.AddConnectingObject(model.NewSequenceFlow("p2f1", "p2s", "p2e")))

	mustAdd(t, d.AddProcess(p1))
	mustAdd(t, d.AddProcess(p2))

	// pools
	pool1 := model.NewPool("pool1")
	pool1.ProcessRef = "p1"
	pool1.Executable = true
	pool1.Horizontal = false
	pool1.ParticipantMultiplicity = 2

	l1 := model.NewLane("l1")
	l1.PartitionElementRef = "r1"
	l1.AddFlowNode("t1")

	l11 := model.NewLane("l11")
	l11.AddFlowNode("t2")
	l11.AddFlowNode("t3")
	mustAdd(t, l1.AddChildLane(l11))
	mustAdd(t, pool1.AddLane(l1))

	pool2 := model.NewPool("pool2")
	pool2.ProcessRef = "p2"

	mustAdd(t, d.AddPool(pool1))
	mustAdd(t, d.AddPool(pool2))

	mf1 := model.NewMessageFlow("mf1", "t4", "p2s")
	mf1.MessageRef = "m1"
	mf1.AddWaypoint(300, 100)
	mustAdd(t, d.AddMessageFlow(mf1))

	gds1 := model.NewDataStore("gds1")
	gds1.ItemSubjectRef = "item2"
	mustAdd(t, d.AddGlobalDataStore(gds1))
	mustAdd(t, d.AddGlobalTextAnnotation(model.NewTextAnnotation("gta1", "global note")))

	return d
}
