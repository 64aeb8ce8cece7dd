package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseElement(t *testing.T) {
	assert := assert.New(t)

	t.Run("set dimensions", func(t *testing.T) {
		task := NewTask("t1", TaskPlain)

		assert.Nil(task.Dimensions())
		assert.NoError(task.SetDimensions(100, 80))
		assert.Equal(&Dimensions{Width: 100, Height: 80}, task.Dimensions())
	})

	t.Run("set dimensions returns error when width or height is not positive", func(t *testing.T) {
		task := NewTask("t1", TaskPlain)

		assertErrorType(t, task.SetDimensions(0, 80), ErrorConfiguration)
		assertErrorType(t, task.SetDimensions(100, -1), ErrorConfiguration)
		assert.Nil(task.Dimensions())
	})

	t.Run("set position", func(t *testing.T) {
		event := NewEvent("s1", EventStart)
		event.SetPosition(10, 20.5)

		assert.Equal(&Position{X: 10, Y: 20.5}, event.Position)
	})

	t.Run("properties", func(t *testing.T) {
		gateway := NewGateway("g1", GatewayExclusive)

		_, ok := gateway.Property("a")
		assert.False(ok)

		gateway.SetProperty("a", "x")
		gateway.SetProperty("b", 1.5)

		v, ok := gateway.Property("a")
		assert.True(ok)
		assert.Equal("x", v)

		properties := gateway.Properties()
		assert.Len(properties, 2)

		properties["c"] = true
		assert.Len(gateway.Properties(), 2)

		gateway.DeleteProperty("a")
		assert.Equal(map[string]any{"b": 1.5}, gateway.Properties())
	})
}

func TestElementType(t *testing.T) {
	assert := assert.New(t)

	tests := map[Element]ElementType{
		NewAssociation("a1", "x", "y"):                ElementAssociation,
		NewDataObject("do1"):                          ElementDataObject,
		NewDataStore("ds1"):                           ElementDataStore,
		NewEvent("e1", EventEnd):                      ElementEvent,
		NewGateway("g1", GatewayParallel):             ElementGateway,
		NewGroup("gr1"):                               ElementGroup,
		NewLane("l1"):                                 ElementLane,
		NewMessageFlow("mf1", "x", "y"):               ElementMessageFlow,
		NewPool("p1"):                                 ElementPool,
		NewProcess("p1"):                              ElementProcess,
		NewSequenceFlow("f1", "x", "y"):               ElementSequenceFlow,
		NewSubProcess("sp1", SubProcessEmbedded):      ElementSubProcess,
		NewSubProcess("ca1", SubProcessCallActivity):  ElementCallActivity,
		NewTask("t1", TaskService):                    ElementTask,
		NewTextAnnotation("ta1", "text"):              ElementTextAnnotation,
	}

	for element, expected := range tests {
		t.Run(expected.String(), func(t *testing.T) {
			assert.Equal(expected, element.ElementType())
		})
	}

	t.Run("json", func(t *testing.T) {
		b, err := json.Marshal(ElementCallActivity)
		assert.NoError(err)
		assert.Equal(`"CALL_ACTIVITY"`, string(b))

		var elementType ElementType
		assert.NoError(json.Unmarshal([]byte(`"TEXT_ANNOTATION"`), &elementType))
		assert.Equal(ElementTextAnnotation, elementType)

		assert.Error(json.Unmarshal([]byte(`"UNKNOWN"`), &elementType))
	})
}

func TestEnumJSON(t *testing.T) {
	assert := assert.New(t)

	t.Run("marshal zero value", func(t *testing.T) {
		b, err := json.Marshal(GatewayType(0))
		assert.NoError(err)
		assert.Equal("null", string(b))
	})

	t.Run("unmarshal null", func(t *testing.T) {
		taskType := TaskUser
		assert.NoError(json.Unmarshal([]byte("null"), &taskType))
		assert.Equal(TaskUser, taskType)
	})

	t.Run("unmarshal", func(t *testing.T) {
		var markers []ActivityMarker
		assert.NoError(json.Unmarshal([]byte(`["LOOP","SEQUENTIAL_MULTI_INSTANCE"]`), &markers))
		assert.Equal([]ActivityMarker{MarkerLoop, MarkerSequentialMultiInstance}, markers)
	})

	t.Run("unmarshal invalid", func(t *testing.T) {
		var definition EventDefinition
		err := json.Unmarshal([]byte(`"TIMER_X"`), &definition)
		assert.EqualError(err, "invalid event definition data TIMER_X")
	})
}
