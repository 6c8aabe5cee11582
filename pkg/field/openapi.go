package field

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI derives a registry from the request-body schema of one
// operation in an OpenAPI document. Property names become field names;
// type/format/enum and the numeric and length constraints map onto
// descriptor bounds. Properties are ordered alphabetically because the
// OpenAPI object form carries no declaration order.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (*Registry, error) {
	if len(data) == 0 {
		return nil, errors.New("field registry: openapi document is empty")
	}
	if operationID == "" {
		return nil, errors.New("field registry: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("field registry: load openapi document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("field registry: operation %q not found", operationID)
	}

	schema := requestSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("field registry: operation %q has no object request schema", operationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	descriptors := make([]Descriptor, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		descriptors = append(descriptors, descriptorFromSchema(name, ref.Value, required[name]))
	}
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("field registry: operation %q declares no scalar properties", operationID)
	}
	return NewRegistry(descriptors...)
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func descriptorFromSchema(name string, src *openapi3.Schema, required bool) Descriptor {
	d := Descriptor{
		Name:     name,
		Kind:     kindFromSchema(src),
		Required: required,
		Help:     src.Description,
	}
	if src.Title != "" {
		d.Label = src.Title
	}
	if s, ok := src.Default.(string); ok {
		d.Default = s
	}
	if len(src.Enum) > 0 {
		d.Kind = KindChoice
		for _, v := range src.Enum {
			d.Choices = append(d.Choices, fmt.Sprint(v))
		}
	}
	if src.Min != nil {
		value := *src.Min
		d.Min = &value
	}
	if src.Max != nil {
		value := *src.Max
		d.Max = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		d.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		d.MaxLength = &value
	}
	return d
}

func kindFromSchema(src *openapi3.Schema) Kind {
	switch {
	case src.Type.Is(openapi3.TypeBoolean):
		return KindBoolean
	case src.Type.Is(openapi3.TypeNumber), src.Type.Is(openapi3.TypeInteger):
		if src.Format == "currency" {
			return KindCurrency
		}
		return KindNumber
	default:
		switch src.Format {
		case "date", "date-time":
			return KindDate
		case "abn":
			return KindABN
		case "currency":
			return KindCurrency
		case "textarea":
			return KindMultiline
		default:
			return KindText
		}
	}
}
