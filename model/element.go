package model

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/flect"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Element is implemented by all BPMN elements of a diagram.
type Element interface {
	// Base returns the identity and visual metadata, shared by all elements.
	Base() *BaseElement
	ElementType() ElementType
	// String returns a human-readable summary.
	String() string

	isElement()
}

// FlowObject is an event, task, gateway or sub-process - a node that can participate in sequence flow.
type FlowObject interface {
	Element
	isFlowObject()
}

// Activity is a task or a sub-process, which boundary events can be attached to.
type Activity interface {
	FlowObject
	isActivity()
}

// ConnectingObject is a sequence flow, message flow or association - an edge between elements.
type ConnectingObject interface {
	Element
	Source() string
	Target() string
	isConnectingObject()
}

// Artifact is a data object, data store, group or text annotation - without flow semantics.
type Artifact interface {
	Element
	isArtifact()
}

type BaseElement struct {
	id string

	Name          string
	Documentation string
	Position      *Position

	dimensions *Dimensions
	properties map[string]any

	contained bool // set, when the element is added to a container
}

func newBaseElement(id string) BaseElement {
	return BaseElement{id: id}
}

func (e *BaseElement) Base() *BaseElement {
	return e
}

// Contained determines if the element has been added to a process, sub-process, pool or diagram.
func (e *BaseElement) Contained() bool {
	return e.contained
}

func (e *BaseElement) DeleteProperty(key string) {
	delete(e.properties, key)
}

// Dimensions returns the visual dimensions or nil, if not set.
func (e *BaseElement) Dimensions() *Dimensions {
	return e.dimensions
}

func (e *BaseElement) Id() string {
	return e.id
}

// Properties returns a copy of the caller-defined metadata.
func (e *BaseElement) Properties() map[string]any {
	return maps.Clone(e.properties)
}

func (e *BaseElement) Property(key string) (any, bool) {
	v, ok := e.properties[key]
	return v, ok
}

// SetDimensions sets the visual dimensions. Width and height must be greater than 0.
func (e *BaseElement) SetDimensions(width float64, height float64) error {
	dimensions := Dimensions{Width: width, Height: height}
	if err := validate.Struct(dimensions); err != nil {
		return newConfigurationError(
			"failed to set dimensions",
			"dimensions %gx%g of element %s are invalid: width and height must be greater than 0",
			width,
			height,
			e.id,
		)
	}

	e.dimensions = &dimensions
	return nil
}

func (e *BaseElement) SetPosition(x float64, y float64) {
	e.Position = &Position{X: x, Y: y}
}

// SetProperty sets a custom property. Properties are not subject to any validation.
func (e *BaseElement) SetProperty(key string, value any) {
	if e.properties == nil {
		e.properties = make(map[string]any)
	}
	e.properties[key] = value
}

func (e *BaseElement) claim() error {
	if e.contained {
		return Error{
			Type:   ErrorConflict,
			Title:  "failed to add element",
			Detail: fmt.Sprintf("element %s is already contained", e.id),
		}
	}

	e.contained = true
	return nil
}

func (e *BaseElement) isElement() {}

type Dimensions struct {
	Width  float64 `validate:"gt=0"`
	Height float64 `validate:"gt=0"`
}

type Position struct {
	X float64
	Y float64
}

// title converts an UPPER_SNAKE enum value into a title, e.g. USER_TASK -> User Task.
func title(s string) string {
	return flect.Titleize(strings.ToLower(s))
}

// isNil determines if an element is nil or a typed nil pointer.
func isNil(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func typeMismatch(title string, v any) error {
	return Error{
		Type:   ErrorTypeMismatch,
		Title:  title,
		Detail: fmt.Sprintf("unsupported type %T", v),
	}
}
