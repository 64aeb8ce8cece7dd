package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLane(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	lane := NewLane("l1")
	lane.Name = "Sales"

	assert.False(lane.HasFlowNodes())
	assert.False(lane.HasChildLanes())

	lane.AddFlowNode("t1")
	lane.AddFlowNode("t2")
	lane.AddFlowNode("t1")
	assert.Equal([]string{"t1", "t2"}, lane.FlowNodeRefs())

	childLane := NewLane("l2")
	childLane.AddFlowNode("t3")
	require.NoError(lane.AddChildLane(childLane))

	assert.Equal([]*Lane{childLane}, lane.ChildLanes())
	assert.Equal([]string{"t1", "t2", "t3"}, lane.AllFlowNodes())
	assert.Equal("Lane 'Sales' [3 nodes] (1 child lanes)", lane.String())

	lane.RemoveFlowNode("t1")
	lane.RemoveFlowNode("unknown")
	assert.Equal([]string{"t2"}, lane.FlowNodeRefs())

	assertErrorType(t, lane.AddChildLane(childLane), ErrorConflict)
	assertErrorType(t, lane.AddChildLane(nil), ErrorTypeMismatch)

	t.Run("returns error when lane contains itself", func(t *testing.T) {
		l1 := NewLane("l1")
		l2 := NewLane("l2")
		l3 := NewLane("l3")

		require.NoError(l1.AddChildLane(l2))
		require.NoError(l2.AddChildLane(l3))

		assertErrorType(t, l1.AddChildLane(l1), ErrorConfiguration)
		assertErrorType(t, l3.AddChildLane(l1), ErrorConfiguration)
		assertErrorType(t, l2.AddChildLane(l1), ErrorConfiguration)

		assert.Equal([]*Lane{l3}, l2.ChildLanes())
		assert.Empty(l3.ChildLanes())
		assert.Equal("Lane '' [0 nodes] (1 child lanes)", l1.String())
	})
}

func TestPool(t *testing.T) {
	assert, require := assert.New(t), require.New(t)

	pool := NewPool("customer_pool")
	pool.Name = "Customer"

	assert.True(pool.Horizontal)
	assert.Equal("Pool 'Customer' [0 lanes]", pool.String())

	lane := NewLane("l1")
	require.NoError(pool.AddLane(lane))

	pool.ProcessRef = "customer_process"
	assert.Equal([]*Lane{lane}, pool.Lanes())
	assert.Equal("Pool 'Customer' [1 lanes] (process: customer_process)", pool.String())

	assertErrorType(t, pool.AddLane(lane), ErrorConflict)
}
