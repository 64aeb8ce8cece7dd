package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/codec"
	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/gclaussn/go-bpmn-schema/model"
	"github.com/gclaussn/go-bpmn-schema/validation"
	"github.com/go-playground/validator/v10"
)

const maxRequestBodySize = 4194304 // 4mb = 4 * 1024 * 1024

var validate = newValidate()

func newValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0] // e.g. `json:"diagramId,omitempty"` -> diagramId
	})
	return validate
}

// decodeDiagramRequestBody decodes a diagram from the request body.
// The format is determined by the media type: JSON (default), YAML or BPMN 2.0 XML.
// Media type or request body related errors are returned as a Problem, decoding errors as they are.
func decodeDiagramRequestBody(w http.ResponseWriter, r *http.Request) (*model.Diagram, error) {
	format := codec.FormatJSON
	if contentType := r.Header.Get(common.HeaderContentType); contentType != "" {
		mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
		switch mediaType {
		case common.ContentTypeJson:
			format = codec.FormatJSON
		case common.ContentTypeXml, common.ContentTypeXmlText:
			format = codec.FormatXML
		case common.ContentTypeYaml:
			format = codec.FormatYAML
		default:
			return nil, common.Problem{
				Status: http.StatusUnsupportedMediaType,
				Type:   common.ProblemHttpMediaType,
				Title:  "unsupported media type",
				Detail: fmt.Sprintf("media type %s is not supported", mediaType),
			}
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	b, err := io.ReadAll(r.Body)
	if err != nil {
		problem := common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestBody,
			Title:  "invalid request body",
		}

		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			problem.Status = http.StatusRequestEntityTooLarge
			problem.Detail = "request body size must not exceed 4MB"
		} else {
			problem.Detail = fmt.Sprintf("failed to read request body: %v", err)
		}

		return nil, problem
	}

	if len(b) == 0 {
		return nil, common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestBody,
			Title:  "invalid request body",
			Detail: "request body is empty",
		}
	}

	return codec.Decode(format, b)
}

// decodeJSONRequestBody decodes the request body using v and validates it.
// Media type, request body or validation related errors are returned as a Problem.
//
// inspired by https://www.alexedwards.net/blog/how-to-properly-parse-a-json-request-body
func decodeJSONRequestBody(w http.ResponseWriter, r *http.Request, v any) error {
	if contentType := r.Header.Get(common.HeaderContentType); contentType != "" {
		mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
		if mediaType != common.ContentTypeJson {
			return common.Problem{
				Status: http.StatusUnsupportedMediaType,
				Type:   common.ProblemHttpMediaType,
				Title:  "unsupported media type",
				Detail: fmt.Sprintf("media type %s is not supported", mediaType),
			}
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576) // 1mb = 1024 * 1024

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&v); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		problem := common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestBody,
			Title:  "invalid request body",
		}

		switch {
		case errors.As(err, &syntaxError):
			problem.Detail = fmt.Sprintf("malformed JSON at position %d", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			problem.Detail = "unexpected end of JSON"
		case errors.As(err, &unmarshalTypeError):
			problem.Detail = fmt.Sprintf("JSON field %s has an invalid value at position %d", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			problem.Detail = fmt.Sprintf("unknown JSON field %s", fieldName)
		case errors.Is(err, io.EOF):
			problem.Detail = "request body is empty"
		case err.Error() == "http: request body too large":
			problem.Detail = "request body size must not exceed 1MB"
		default:
			problem.Detail = fmt.Sprintf("failed to unmarshal JSON: %v", err)
		}

		return problem
	}

	if err := validate.Struct(v); err != nil {
		errors := make([]common.Error, 0)
		for _, fieldError := range err.(validator.ValidationErrors) {
			var (
				pointerBuilder strings.Builder
				next           rune
			)
			for _, r := range fieldError.Namespace() {
				if pointerBuilder.Len() == 0 {
					// skip until first dot
					if r == '.' {
						pointerBuilder.WriteString("#/")
					}
					continue
				}

				switch r {
				case '.':
					next = '/'
				case '[':
					next = '/'
				case ']':
					continue
				default:
					next = r
				}

				pointerBuilder.WriteRune(next)
			}

			var (
				detail string
				value  string
			)
			switch fieldError.Tag() {
			case "gte":
				detail = fmt.Sprintf("must be greater than or equal to %s", fieldError.Param())
				value = fmt.Sprintf("%d", fieldError.Value())
			case "lte":
				detail = fmt.Sprintf("must be less than or equal to %s", fieldError.Param())
				value = fmt.Sprintf("%d", fieldError.Value())
			case "required":
				detail = "is required"
			default:
				detail = "unknown error"
				value = fmt.Sprintf("%v", fieldError.Value())
			}

			errors = append(errors, common.Error{
				Pointer: pointerBuilder.String(),
				Type:    fieldError.Tag(),
				Detail:  detail,
				Value:   value,
			})
		}

		return common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestBody,
			Title:  "invalid request body",
			Detail: "failed to validate request body",
			Errors: errors,
		}
	}

	return nil
}

func parseId(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		return "", common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestUri,
			Title:  "invalid path parameter id",
			Detail: "ID is empty",
		}
	}
	return id, nil
}

func parseRevision(r *http.Request) (int, error) {
	revisionValues, ok := r.URL.Query()[common.QueryRevision]
	if !ok {
		return 0, nil
	}

	revision, err := strconv.ParseInt(revisionValues[0], 10, 32)
	if err != nil {
		return 0, common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestUri,
			Title:  "invalid query parameter " + common.QueryRevision,
			Detail: "failed to parse value " + revisionValues[0],
		}
	}
	if revision < 0 {
		return 0, common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemValidation,
			Title:  "invalid query parameter " + common.QueryRevision,
			Detail: fmt.Sprintf("%s %d must be greater than or equal to 0", common.QueryRevision, revision),
		}
	}

	return int(revision), nil
}

func parseRules(r *http.Request) (func(*validation.Options), error) {
	var names []string
	for _, rulesValue := range r.URL.Query()[common.QueryRules] {
		names = append(names, strings.Split(rulesValue, ",")...)
	}

	customizer, err := common.EnableRules(names)
	if err != nil {
		return nil, common.Problem{
			Status: http.StatusBadRequest,
			Type:   common.ProblemHttpRequestUri,
			Title:  "invalid query parameter " + common.QueryRules,
			Detail: err.Error(),
		}
	}

	return customizer, nil
}
