package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/validation"
	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/flect"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationErrorDetail describes the first field error, e.g. "default query limit must be greater than or equal to 1".
func validationErrorDetail(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fieldError := validationErrors[0]
	name := strings.ToLower(flect.Humanize(fieldError.StructField()))

	switch fieldError.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fieldError.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", name, fieldError.Param())
	default:
		return fmt.Sprintf("%s is invalid: %s", name, fieldError.Tag())
	}
}

// A Store saves, loads, queries and deletes diagrams.
type Store interface {
	// Save validates and stores a diagram.
	//
	// A diagram, which is already stored, is replaced and the revision of its record is increased.
	// If the command specifies a revision, which does not match the stored revision, an error of type [model.ErrorConflict] is returned.
	// If the store rejects invalid diagrams, a diagram with errors is not stored and an error of type [model.ErrorValidation] is returned.
	Save(context.Context, SaveCmd) (Record, error)

	// Load loads a stored diagram and its record.
	// If the diagram does not exist, an error of type [model.ErrorNotFound] is returned.
	Load(context.Context, string) (*model.Diagram, Record, error)

	// Query queries records, which match the criteria, ordered by diagram ID.
	Query(context.Context, Criteria) ([]Record, error)

	// Delete deletes a stored diagram.
	// If the diagram does not exist, an error of type [model.ErrorNotFound] is returned.
	Delete(context.Context, string) error

	// Shutdown shuts the store down.
	Shutdown()
}

// Options are common configuration options that are shared between store implementations.
type Options struct {
	DefaultQueryLimit int  `validate:"gte=1,lte=10000"` // Default limit for queries, executed without an explicit limit.
	RejectInvalid     bool // Determines if diagrams with validation errors are rejected.
}

func NewOptions() Options {
	return Options{
		DefaultQueryLimit: 1000,
	}
}

func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.New(validationErrorDetail(err))
	}
	return nil
}

// Criteria restrict the records, returned by a query.
// The zero value matches all records.
type Criteria struct {
	DiagramId string `json:"diagramId,omitempty"` // Diagram ID to match.
	Name      string `json:"name,omitempty"`      // Substring of the diagram name, matched case-insensitive.
	Version   string `json:"version,omitempty"`   // Diagram version to match.
	HasErrors *bool  `json:"hasErrors,omitempty"` // Determines if only diagrams with (true) or without (false) validation errors match.

	// Limit specifies the maximum number of records to return.
	// If Limit is 0, the option's DefaultQueryLimit is applied.
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=10000"`
	// Offset specifies the number of records to skip, before returning any record.
	Offset int `json:"offset,omitempty" validate:"gte=0"`
}

// Validate returns an error of type [model.ErrorValidation], if limit or offset are out of range.
func (c Criteria) Validate() error {
	if err := validate.Struct(c); err != nil {
		return model.Error{
			Type:   model.ErrorValidation,
			Title:  "failed to query diagrams",
			Detail: validationErrorDetail(err),
		}
	}
	return nil
}

// Record describes a stored diagram.
type Record struct {
	DiagramId string    `json:"diagramId"`
	Name      string    `json:"name,omitempty"`
	Version   string    `json:"version"`
	Revision  int       `json:"revision"` // Revision, starting at 1, which is increased on every save.
	Errors    int       `json:"errors"`   // Number of ERROR findings at save time.
	Warnings  int       `json:"warnings"` // Number of WARNING findings at save time.
	Infos     int       `json:"infos"`    // Number of INFO findings at save time.
	SavedAt   time.Time `json:"savedAt"`
}

func (r Record) String() string {
	return fmt.Sprintf("%s@%d", r.DiagramId, r.Revision)
}

// SaveCmd is used to save a diagram.
type SaveCmd struct {
	Diagram *model.Diagram
	// Revision, expected to be stored, or 0, if the diagram is saved unconditionally.
	// When a diagram is saved the first time, the expected revision must be 0.
	Revision int
}

// Prepare validates the diagram of a save command with the default validator and creates a record without revision and save time.
// If options reject invalid diagrams and the diagram has errors, an error of type [model.ErrorValidation] is returned.
func Prepare(cmd SaveCmd, options Options) (Record, error) {
	if cmd.Diagram == nil {
		return Record{}, model.Error{
			Type:   model.ErrorValidation,
			Title:  "failed to save diagram",
			Detail: "diagram is nil",
		}
	}
	if cmd.Revision < 0 {
		return Record{}, model.Error{
			Type:   model.ErrorValidation,
			Title:  "failed to save diagram",
			Detail: fmt.Sprintf("revision %d must be greater than or equal to 0", cmd.Revision),
		}
	}

	d := cmd.Diagram

	v, err := validation.New(d)
	if err != nil {
		return Record{}, err
	}

	v.Validate()

	if options.RejectInvalid && v.HasErrors() {
		errorFindings := v.Errors()

		causes := make([]model.ErrorCause, len(errorFindings))
		for i, finding := range errorFindings {
			causes[i] = model.ErrorCause{
				Pointer: finding.ElementId,
				Type:    finding.RuleName,
				Detail:  finding.Message,
			}
		}

		return Record{}, model.Error{
			Type:   model.ErrorValidation,
			Title:  "failed to save diagram",
			Detail: fmt.Sprintf("diagram %s has %d validation errors", d.Id, len(errorFindings)),
			Causes: causes,
		}
	}

	return Record{
		DiagramId: d.Id,
		Name:      d.Name,
		Version:   d.Version,
		Errors:    len(v.Errors()),
		Warnings:  len(v.Warnings()),
		Infos:     len(v.Infos()),
	}, nil
}

// NewConflictError returns the error, used when the expected revision of a save command does not match the stored revision.
func NewConflictError(diagramId string, expected int, actual int) error {
	var detail string
	if actual == 0 {
		detail = fmt.Sprintf("diagram %s is not stored, but revision %d is expected", diagramId, expected)
	} else {
		detail = fmt.Sprintf("diagram %s has revision %d, but revision %d is expected", diagramId, actual, expected)
	}

	return model.Error{
		Type:   model.ErrorConflict,
		Title:  "failed to save diagram",
		Detail: detail,
	}
}

// NewNotFoundError returns the error, used when a diagram does not exist.
func NewNotFoundError(title string, diagramId string) error {
	return model.Error{
		Type:   model.ErrorNotFound,
		Title:  title,
		Detail: fmt.Sprintf("diagram %s could not be found", diagramId),
	}
}
