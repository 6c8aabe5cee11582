package field

// Kind is the simplified enum of scalar value kinds a questionnaire
// field can hold. Parsing of the underlying text happens once, at the
// validation boundary, keyed off this kind.
type Kind string

const (
	KindText      Kind = "text"
	KindMultiline Kind = "multiline"
	KindNumber    Kind = "number"
	KindCurrency  Kind = "currency"
	KindDate      Kind = "date"
	KindBoolean   Kind = "boolean"
	KindChoice    Kind = "choice"
	// KindABN is an identifier-with-checksum: an 11 digit Australian
	// Business Number validated with the weighted modulo-89 test.
	KindABN Kind = "abn"
)

// Descriptor is the static metadata for one named input. Descriptors
// are fixed at startup and never mutated at runtime.
type Descriptor struct {
	Name     string   `yaml:"name" json:"name"`
	Kind     Kind     `yaml:"kind" json:"kind"`
	Label    string   `yaml:"label,omitempty" json:"label,omitempty"`
	Section  string   `yaml:"section,omitempty" json:"section,omitempty"`
	Required bool     `yaml:"required,omitempty" json:"required"`
	Help     string   `yaml:"help,omitempty" json:"help,omitempty"`
	Default  string   `yaml:"default,omitempty" json:"default,omitempty"`
	Choices  []string `yaml:"choices,omitempty" json:"choices,omitempty"`

	MinLength *int     `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength *int     `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	Min       *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (d Descriptor) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// EmptyValue returns the field's natural empty representation.
func (d Descriptor) EmptyValue() string {
	if d.Kind == KindBoolean {
		return "false"
	}
	return ""
}
