package field

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type registryDocument struct {
	Fields []Descriptor `yaml:"fields"`
}

// LoadYAML reads a registry document of the form:
//
//	fields:
//	  - name: companyName
//	    kind: text
//	    required: true
//
// Unknown keys are rejected so typos in hand-edited registries surface
// immediately instead of silently dropping constraints.
func LoadYAML(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc registryDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("field registry: decode yaml: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("field registry: document declares no fields")
	}
	return NewRegistry(doc.Fields...)
}
