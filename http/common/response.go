package common

import (
	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/store"
	"github.com/gclaussn/go-bpmn-schema/validation"
)

// Response of a diagram retrieval.
type DiagramRes struct {
	Record  store.Record    `json:"record" validate:"required"`  // Record of the stored diagram.
	Diagram *codec.Document `json:"diagram" validate:"required"` // Diagram document.
}

// Response of a diagram validation.
type FindingsRes struct {
	DiagramId string `json:"diagramId" validate:"required"`
	Valid     bool   `json:"valid"` // Determines if the diagram has no findings of severity ERROR.

	Errors   int `json:"errors" validate:"gte=0"`   // Number of ERROR findings.
	Warnings int `json:"warnings" validate:"gte=0"` // Number of WARNING findings.
	Infos    int `json:"infos" validate:"gte=0"`    // Number of INFO findings.

	Findings []validation.Finding `json:"findings" validate:"required"` // Findings in rule order.
}

// NewFindingsRes validates a diagram and creates a response from the findings.
func NewFindingsRes(d *model.Diagram, customizers ...func(*validation.Options)) (FindingsRes, error) {
	v, err := validation.New(d, customizers...)
	if err != nil {
		return FindingsRes{}, err
	}

	valid := v.Validate()

	findings := v.Findings()
	if findings == nil {
		findings = make([]validation.Finding, 0)
	}

	return FindingsRes{
		DiagramId: d.Id,
		Valid:     valid,

		Errors:   len(v.Errors()),
		Warnings: len(v.Warnings()),
		Infos:    len(v.Infos()),

		Findings: findings,
	}, nil
}

// query responses

// Response of a diagram query.
type RecordRes struct {
	Count   int            `json:"count" validate:"required,gte=0"` // Number of results.
	Results []store.Record `json:"results" validate:"required"`     // Query results.
}
