package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

func NewLane(id string) *Lane {
	return &Lane{BaseElement: newBaseElement(id)}
}

func NewPool(id string) *Pool {
	return &Pool{
		BaseElement: newBaseElement(id),
		Horizontal:  true,
	}
}

// Lane organizes flow nodes of a pool or process by role, responsibility or department.
type Lane struct {
	BaseElement

	PartitionElementRef string

	flowNodeRefs []string
	childLanes   []*Lane
}

// AddChildLane adds a nested lane. A lane cannot be added to itself or to one of its descendants.
func (l *Lane) AddChildLane(lane *Lane) error {
	if lane == nil {
		return typeMismatch("failed to add child lane", lane)
	}
	if lane == l || isDescendant(lane.childLanes, l) {
		return newConfigurationError("failed to add child lane", "lane %s contains lane %s", lane.id, l.id)
	}
	if err := lane.claim(); err != nil {
		return err
	}

	l.childLanes = append(l.childLanes, lane)
	return nil
}

// AddFlowNode adds a reference to a flow node, unless already referenced.
func (l *Lane) AddFlowNode(flowNodeId string) {
	if !slices.Contains(l.flowNodeRefs, flowNodeId) {
		l.flowNodeRefs = append(l.flowNodeRefs, flowNodeId)
	}
}

// AllFlowNodes returns the flow node references of the lane, followed by the references of all child lanes.
func (l *Lane) AllFlowNodes() []string {
	flowNodeRefs := slices.Clone(l.flowNodeRefs)
	for _, childLane := range l.childLanes {
		flowNodeRefs = append(flowNodeRefs, childLane.AllFlowNodes()...)
	}
	return flowNodeRefs
}

func (l *Lane) ChildLanes() []*Lane {
	return l.childLanes
}

func (l *Lane) ElementType() ElementType {
	return ElementLane
}

func (l *Lane) FlowNodeRefs() []string {
	return slices.Clone(l.flowNodeRefs)
}

func (l *Lane) HasChildLanes() bool {
	return len(l.childLanes) != 0
}

func (l *Lane) HasFlowNodes() bool {
	return len(l.flowNodeRefs) != 0
}

func (l *Lane) RemoveFlowNode(flowNodeId string) {
	l.flowNodeRefs = lo.Without(l.flowNodeRefs, flowNodeId)
}

func (l *Lane) String() string {
	var childLanes string
	if l.HasChildLanes() {
		childLanes = fmt.Sprintf(" (%d child lanes)", len(l.childLanes))
	}
	return fmt.Sprintf("Lane '%s' [%d nodes]%s", l.Name, len(l.AllFlowNodes()), childLanes)
}

// Pool is a participant of a collaboration.
type Pool struct {
	BaseElement

	Executable              bool
	Horizontal              bool
	ParticipantMultiplicity int    // Number of participant instances - 0, if not specified.
	ProcessRef              string // ID of the process, the participant executes.

	lanes []*Lane
}

func (p *Pool) AddLane(lane *Lane) error {
	if lane == nil {
		return typeMismatch("failed to add lane", lane)
	}
	if err := lane.claim(); err != nil {
		return err
	}

	p.lanes = append(p.lanes, lane)
	return nil
}

func (p *Pool) ElementType() ElementType {
	return ElementPool
}

func (p *Pool) Lanes() []*Lane {
	return p.lanes
}

func (p *Pool) String() string {
	var processRef string
	if p.ProcessRef != "" {
		processRef = fmt.Sprintf(" (process: %s)", p.ProcessRef)
	}
	return fmt.Sprintf("Pool '%s' [%d lanes]%s", p.Name, len(p.lanes), processRef)
}

func isDescendant(lanes []*Lane, lane *Lane) bool {
	for _, childLane := range lanes {
		if childLane == lane || isDescendant(childLane.childLanes, lane) {
			return true
		}
	}
	return false
}

// findLane finds a lane, including nested child lanes, by ID.
func findLane(lanes []*Lane, id string) (*Lane, bool) {
	for _, lane := range lanes {
		if lane.id == id {
			return lane, true
		}
		if childLane, ok := findLane(lane.childLanes, id); ok {
			return childLane, true
		}
	}
	return nil, false
}
