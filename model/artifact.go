package model

import (
	"fmt"
	"unicode/utf8"
)

const (
	TextFormatHTML  = "text/html"
	TextFormatPlain = "text/plain"
)

func NewDataObject(id string) *DataObject {
	return &DataObject{BaseElement: newBaseElement(id)}
}

func NewDataStore(id string) *DataStore {
	return &DataStore{
		BaseElement: newBaseElement(id),
		unlimited:   true,
	}
}

func NewGroup(id string) *Group {
	return &Group{BaseElement: newBaseElement(id)}
}

func NewTextAnnotation(id string, text string) *TextAnnotation {
	return &TextAnnotation{
		BaseElement: newBaseElement(id),
		Text:        text,
		TextFormat:  TextFormatPlain,
	}
}

type DataObject struct {
	BaseElement

	Collection     bool
	ItemSubjectRef string
	State          string
}

func (d *DataObject) ElementType() ElementType {
	return ElementDataObject
}

func (d *DataObject) String() string {
	var collection, state string
	if d.Collection {
		collection = " (collection)"
	}
	if d.State != "" {
		state = fmt.Sprintf(" [%s]", d.State)
	}
	return fmt.Sprintf("Data Object '%s'%s%s", d.Name, collection, state)
}

func (d *DataObject) isArtifact() {}

type DataStore struct {
	BaseElement

	ItemSubjectRef string

	capacity  int
	unlimited bool
}

// Capacity returns the storage capacity, which is only meaningful if the store has a capacity limit.
func (d *DataStore) Capacity() int {
	return d.capacity
}

func (d *DataStore) ElementType() ElementType {
	return ElementDataStore
}

func (d *DataStore) HasCapacityLimit() bool {
	return !d.unlimited
}

func (d *DataStore) IsUnlimited() bool {
	return d.unlimited
}

// SetCapacity limits the storage capacity. The capacity must not be negative.
func (d *DataStore) SetCapacity(capacity int) error {
	if err := validate.Var(capacity, "gte=0"); err != nil {
		return newConfigurationError(
			"failed to set capacity",
			"capacity %d of data store %s is invalid: must be greater than or equal to 0",
			capacity,
			d.id,
		)
	}

	d.capacity = capacity
	d.unlimited = false
	return nil
}

func (d *DataStore) SetUnlimitedCapacity() {
	d.capacity = 0
	d.unlimited = true
}

func (d *DataStore) String() string {
	var capacity string
	if d.HasCapacityLimit() {
		capacity = fmt.Sprintf(" (capacity: %d)", d.capacity)
	} else {
		capacity = " (unlimited)"
	}
	return fmt.Sprintf("Data Store '%s'%s", d.Name, capacity)
}

func (d *DataStore) isArtifact() {}

// Group visually groups elements, without affecting the flow.
type Group struct {
	BaseElement

	CategoryValueRef string
}

func (g *Group) ElementType() ElementType {
	return ElementGroup
}

func (g *Group) String() string {
	var category string
	if g.CategoryValueRef != "" {
		category = fmt.Sprintf(" (category: %s)", g.CategoryValueRef)
	}
	return fmt.Sprintf("Group '%s'%s", g.Name, category)
}

func (g *Group) isArtifact() {}

type TextAnnotation struct {
	BaseElement

	Text       string
	TextFormat string
}

func (a *TextAnnotation) ElementType() ElementType {
	return ElementTextAnnotation
}

func (a *TextAnnotation) IsHTML() bool {
	return a.TextFormat == TextFormatHTML
}

func (a *TextAnnotation) IsPlainText() bool {
	return a.TextFormat == TextFormatPlain
}

func (a *TextAnnotation) String() string {
	preview := a.Text
	if utf8.RuneCountInString(preview) > 50 {
		preview = string([]rune(preview)[:50]) + "..."
	}
	return fmt.Sprintf("Text Annotation '%s': %s", a.Name, preview)
}

// TextLength returns the number of characters of the text.
func (a *TextAnnotation) TextLength() int {
	return utf8.RuneCountInString(a.Text)
}

func (a *TextAnnotation) isArtifact() {}
