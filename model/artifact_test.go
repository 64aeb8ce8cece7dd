package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataObject(t *testing.T) {
	assert := assert.New(t)

	dataObject := NewDataObject("do1")
	dataObject.Name = "Order"
	assert.Equal("Data Object 'Order'", dataObject.String())

	dataObject.Collection = true
	dataObject.State = "approved"
	assert.Equal("Data Object 'Order' (collection) [approved]", dataObject.String())
}

func TestDataStore(t *testing.T) {
	assert := assert.New(t)

	dataStore := NewDataStore("ds1")
	dataStore.Name = "Orders"

	assert.True(dataStore.IsUnlimited())
	assert.False(dataStore.HasCapacityLimit())
	assert.Equal("Data Store 'Orders' (unlimited)", dataStore.String())

	assert.NoError(dataStore.SetCapacity(100))
	assert.True(dataStore.HasCapacityLimit())
	assert.Equal(100, dataStore.Capacity())
	assert.Equal("Data Store 'Orders' (capacity: 100)", dataStore.String())

	assertErrorType(t, dataStore.SetCapacity(-1), ErrorConfiguration)
	assert.Equal(100, dataStore.Capacity())

	dataStore.SetUnlimitedCapacity()
	assert.True(dataStore.IsUnlimited())
	assert.Equal(0, dataStore.Capacity())
}

func TestGroup(t *testing.T) {
	assert := assert.New(t)

	group := NewGroup("gr1")
	group.Name = "Payment"
	assert.Equal("Group 'Payment'", group.String())

	group.CategoryValueRef = "finance"
	assert.Equal("Group 'Payment' (category: finance)", group.String())
}

func TestTextAnnotation(t *testing.T) {
	assert := assert.New(t)

	textAnnotation := NewTextAnnotation("ta1", "Approval required")

	assert.True(textAnnotation.IsPlainText())
	assert.False(textAnnotation.IsHTML())
	assert.Equal(17, textAnnotation.TextLength())
	assert.Equal("Text Annotation '': Approval required", textAnnotation.String())

	textAnnotation.TextFormat = TextFormatHTML
	assert.True(textAnnotation.IsHTML())

	textAnnotation.Text = strings.Repeat("a", 60)
	assert.Equal("Text Annotation '': "+strings.Repeat("a", 50)+"...", textAnnotation.String())
}
