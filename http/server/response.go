package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/gclaussn/go-bpmn-schema/model"
)

func encodeJSONProblemResponseBody(w http.ResponseWriter, r *http.Request, err error) {
	problem, ok := err.(common.Problem)
	if !ok {
		modelErr, ok := err.(model.Error)
		if !ok || modelErr.Type == 0 {
			log.Printf("%s %s: unexpected error occurred: %v", r.Method, r.RequestURI, err)

			problem = common.Problem{
				Status: http.StatusInternalServerError,
				Title:  "unexpected error occurred",
				Detail: "see server logs",
			}
		} else {
			var (
				status      int
				problemType common.ProblemType
			)

			switch modelErr.Type {
			case model.ErrorConfiguration:
				status = http.StatusUnprocessableEntity
				problemType = common.ProblemConfiguration
			case model.ErrorConflict:
				status = http.StatusConflict
				problemType = common.ProblemConflict
			case model.ErrorNotFound:
				status = http.StatusNotFound
				problemType = common.ProblemNotFound
			case model.ErrorTypeMismatch:
				status = http.StatusUnprocessableEntity
				problemType = common.ProblemTypeMismatch
			case model.ErrorValidation:
				status = http.StatusBadRequest
				problemType = common.ProblemValidation
			default:
				status = http.StatusInternalServerError
			}

			errors := make([]common.Error, len(modelErr.Causes))
			for i, cause := range modelErr.Causes {
				errors[i] = common.Error{
					Pointer: cause.Pointer,
					Type:    cause.Type,
					Detail:  cause.Detail,
				}
			}

			problem = common.Problem{
				Status: status,
				Type:   problemType,
				Title:  modelErr.Title,
				Detail: modelErr.Detail,
				Errors: errors,
			}
		}
	}

	w.Header().Set(common.HeaderContentType, common.ContentTypeProblemJson)
	w.WriteHeader(problem.Status)

	if err := json.NewEncoder(w).Encode(problem); err != nil {
		log.Printf("%s %s: failed to create JSON problem response body: %v", r.Method, r.RequestURI, err)
		http.Error(w, "unexpected error occurred - see server logs", http.StatusInternalServerError)
	}
}

func encodeJSONResponseBody(w http.ResponseWriter, r *http.Request, v any, statusCode int) {
	w.Header().Set(common.HeaderContentType, common.ContentTypeJson)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("%s %s: failed to create JSON response body: %v", r.Method, r.RequestURI, err)
		http.Error(w, "unexpected error occurred - see logs", http.StatusInternalServerError)
	}
}
