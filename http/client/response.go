package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gclaussn/go-bpmn-schema/http/common"
	"github.com/gclaussn/go-bpmn-schema/model"
)

func decodeJSONResponseBody(res *http.Response, v any) error {
	defer res.Body.Close()

	decoder := json.NewDecoder(res.Body)

	contentType := res.Header.Get(common.HeaderContentType)
	if contentType == common.ContentTypeProblemJson {
		var problem common.Problem
		if err := decoder.Decode(&problem); err != nil {
			return fmt.Errorf("failed to decode JSON problem response body: %v", err)
		}

		var errorType model.ErrorType
		switch problem.Type {
		case common.ProblemConfiguration:
			errorType = model.ErrorConfiguration
		case common.ProblemConflict:
			errorType = model.ErrorConflict
		case common.ProblemNotFound:
			errorType = model.ErrorNotFound
		case common.ProblemTypeMismatch:
			errorType = model.ErrorTypeMismatch
		case common.ProblemValidation:
			errorType = model.ErrorValidation
		default:
			return problem
		}

		var causes []model.ErrorCause
		for _, e := range problem.Errors {
			causes = append(causes, model.ErrorCause{
				Pointer: e.Pointer,
				Type:    e.Type,
				Detail:  e.Detail,
			})
		}

		return model.Error{
			Type:   errorType,
			Title:  problem.Title,
			Detail: problem.Detail,
			Causes: causes,
		}
	}

	if res.StatusCode >= 300 {
		text := fmt.Sprintf(
			"%s %s: HTTP %d",
			res.Request.Method,
			res.Request.URL.Path,
			res.StatusCode,
		)

		b, err := io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("%s: %v", text, err)
		} else if len(b) != 0 {
			return fmt.Errorf("%s: %s", text, string(b))
		} else {
			return errors.New(text)
		}
	}

	if v == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON response body: %v", err)
	}

	return nil
}
