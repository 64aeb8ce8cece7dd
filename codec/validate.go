package codec

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0] // e.g. `json:"sourceRef,omitempty"` -> sourceRef
	})

	validate.RegisterStructValidation(validateFlowObjectDocument, FlowObjectDocument{})
	validate.RegisterStructValidation(validateSubProcessDocument, SubProcessDocument{})
	validate.RegisterStructValidation(validateTaskDocument, TaskDocument{})

	return validate
}

func validateFlowObjectDocument(sl validator.StructLevel) {
	doc := sl.Current().Interface().(FlowObjectDocument)

	var n int
	for _, set := range []bool{doc.Event != nil, doc.Task != nil, doc.Gateway != nil, doc.SubProcess != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		sl.ReportError(doc, "", "", "flow_object", "")
	}
}

func validateSubProcessDocument(sl validator.StructLevel) {
	doc := sl.Current().Interface().(SubProcessDocument)

	check := func(set bool, field any, fieldName string, structFieldName string, subProcessType model.SubProcessType) {
		if set && doc.SubProcessType != subProcessType {
			sl.ReportError(field, fieldName, structFieldName, "sub_process_type", doc.SubProcessType.String())
		}
	}

	check(doc.AdHoc != nil, doc.AdHoc, "adHoc", "AdHoc", model.SubProcessAdHoc)
	check(doc.CallActivity != nil, doc.CallActivity, "callActivity", "CallActivity", model.SubProcessCallActivity)
	check(doc.Transaction != nil, doc.Transaction, "transaction", "Transaction", model.SubProcessTransaction)
}

func validateTaskDocument(sl validator.StructLevel) {
	doc := sl.Current().Interface().(TaskDocument)

	check := func(set bool, field any, fieldName string, structFieldName string, taskTypes ...model.TaskType) {
		if set && !slices.Contains(taskTypes, doc.TaskType) {
			sl.ReportError(field, fieldName, structFieldName, "task_type", doc.TaskType.String())
		}
	}

	check(doc.BusinessRuleTask != nil, doc.BusinessRuleTask, "businessRuleTask", "BusinessRuleTask", model.TaskBusinessRule)
	check(doc.MessageTask != nil, doc.MessageTask, "messageTask", "MessageTask", model.TaskReceive, model.TaskSend)
	check(doc.ScriptTask != nil, doc.ScriptTask, "scriptTask", "ScriptTask", model.TaskScript)
	check(doc.ServiceTask != nil, doc.ServiceTask, "serviceTask", "ServiceTask", model.TaskService)
	check(doc.UserTask != nil, doc.UserTask, "userTask", "UserTask", model.TaskUser)
}

// validateDocument validates a document and returns a validation error with one cause per field error.
func validateDocument(doc *Document) error {
	err := validate.Struct(doc)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return newValidationError("failed to validate document: %v", err)
	}

	causes := make([]model.ErrorCause, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		var detail string
		switch fieldError.Tag() {
		case "gt":
			detail = fmt.Sprintf("must be greater than %s", fieldError.Param())
		case "gte":
			detail = fmt.Sprintf("must be greater than or equal to %s", fieldError.Param())
		case "required":
			detail = "is required"
		// custom validation
		case "flow_object":
			detail = "must specify exactly one of event, task, gateway or subProcess"
		case "sub_process_type":
			detail = fmt.Sprintf("is not supported for sub-process type %s", fieldError.Param())
		case "task_type":
			detail = fmt.Sprintf("is not supported for task type %s", fieldError.Param())
		default:
			detail = "is invalid"
		}

		causes = append(causes, model.ErrorCause{
			Pointer: newPointer(fieldError.Namespace()),
			Type:    fieldError.Tag(),
			Detail:  detail,
		})
	}

	return model.Error{
		Type:   model.ErrorValidation,
		Title:  "failed to decode diagram",
		Detail: "failed to validate document",
		Causes: causes,
	}
}

// newPointer converts a validator namespace into a JSON pointer like fragment.
// e.g. Document.processes[0].tasks[1].ElementDocument.id -> #/processes/0/tasks/1/id
func newPointer(namespace string) string {
	var sb strings.Builder
	sb.WriteRune('#')

	segments := strings.Split(namespace, ".")
	for _, segment := range segments[1:] {
		if segment == "" || segment == "ElementDocument" {
			continue
		}

		name, index, indexed := strings.Cut(segment, "[")
		if name != "" {
			sb.WriteRune('/')
			sb.WriteString(name)
		}
		if indexed {
			sb.WriteRune('/')
			sb.WriteString(strings.TrimSuffix(index, "]"))
		}
	}

	if sb.Len() == 1 {
		sb.WriteRune('/')
	}
	return sb.String()
}

func newValidationError(format string, a ...any) error {
	return model.Error{
		Type:   model.ErrorValidation,
		Title:  "failed to decode diagram",
		Detail: fmt.Sprintf(format, a...),
	}
}
