// Package codec converts diagrams from and to JSON, YAML and BPMN 2.0 XML.
//
// JSON and YAML are lossless formats: encoding a diagram and decoding the result reproduces IDs, element kinds,
// kind specific fields, properties and containment. BPMN 2.0 XML can only be decoded.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gclaussn/go-bpmn-schema/model"
	"sigs.k8s.io/yaml"
)

// Decode decodes a diagram in the given format.
func Decode(format Format, b []byte) (*model.Diagram, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(b)
	case FormatXML:
		return DecodeXML(bytes.NewReader(b))
	case FormatYAML:
		return DecodeYAML(b)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

// Encode encodes a diagram in the given format. XML is not supported.
func Encode(format Format, d *model.Diagram) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(d)
	case FormatYAML:
		return EncodeYAML(d)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

func DecodeJSON(b []byte) (*model.Diagram, error) {
	var doc Document
	if err := unmarshalDocument(b, &doc); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			return nil, newValidationError("malformed JSON at position %d", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, newValidationError("unexpected end of JSON")
		case errors.As(err, &unmarshalTypeError):
			return nil, newValidationError("JSON field %s has an invalid value at position %d", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return nil, newValidationError("unknown JSON field %s", fieldName)
		case errors.Is(err, io.EOF):
			return nil, newValidationError("JSON is empty")
		default:
			return nil, newValidationError("failed to unmarshal JSON: %v", err)
		}
	}

	return doc.Diagram()
}

func EncodeJSON(d *model.Diagram) ([]byte, error) {
	b, err := json.MarshalIndent(NewDocument(d), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %v", err)
	}
	return b, nil
}

func DecodeYAML(b []byte) (*model.Diagram, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, newValidationError("YAML is empty")
	}

	var doc Document
	if err := yaml.UnmarshalStrict(b, &doc, useNumber); err != nil {
		return nil, newValidationError("failed to unmarshal YAML: %v", err)
	}

	return doc.Diagram()
}

// unmarshalDocument decodes JSON strictly. Numbers of the property bag are kept as [json.Number].
func unmarshalDocument(b []byte, doc *Document) error {
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	return useNumber(decoder).Decode(doc)
}

func useNumber(decoder *json.Decoder) *json.Decoder {
	decoder.UseNumber()
	return decoder
}

func EncodeYAML(d *model.Diagram) ([]byte, error) {
	b, err := yaml.Marshal(NewDocument(d))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %v", err)
	}
	return b, nil
}

// Format is a supported diagram serialization format.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatXML
	FormatYAML
)

// FormatByFileName determines the format by the extension of a file name.
func FormatByFileName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".bpmn", ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("failed to determine format of file %s: extension must be .json, .bpmn, .xml, .yaml or .yml", name)
	}
}

func MapFormat(s string) Format {
	switch strings.ToUpper(s) {
	case "JSON":
		return FormatJSON
	case "XML":
		return FormatXML
	case "YAML":
		return FormatYAML
	default:
		return 0
	}
}

func (v Format) String() string {
	switch v {
	case FormatJSON:
		return "JSON"
	case FormatXML:
		return "XML"
	case FormatYAML:
		return "YAML"
	default:
		return "UNKNOWN"
	}
}
