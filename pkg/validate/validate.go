// Package validate runs the per-field and cross-field checks over a
// captured snapshot. Errors block generation; warnings only inform.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dealdocs/termsheet/pkg/field"
	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// DateLayout is the configured input format for date fields.
const DateLayout = "2006-01-02"

// ParseDate parses a date field value in the input layout.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// Issue is one user-visible validation message tied to a field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// Result is the outcome of one validation run. It is recomputed every
// time and never persisted. Message order is deterministic: required
// checks in registry order, then kind checks in registry order, then
// business rules in their fixed list order.
type Result struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Valid reports whether generation may proceed. Warnings never block.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(name, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Field: name, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(name, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Field: name, Message: fmt.Sprintf(format, args...)})
}

// Validate checks snap against every descriptor in reg and then runs
// the cross-field business rules.
func Validate(reg *field.Registry, snap snapshot.Snapshot) Result {
	var result Result

	for _, d := range reg.Fields() {
		if d.Required && snap.IsEmpty(d.Name) {
			result.errorf(d.Name, "%s is required", d.Name)
		}
	}

	for _, d := range reg.Fields() {
		if snap.IsEmpty(d.Name) {
			continue
		}
		checkKind(&result, d, strings.TrimSpace(snap.Get(d.Name)))
	}

	applyBusinessRules(&result, snap)

	return result
}

func checkKind(result *Result, d field.Descriptor, value string) {
	switch d.Kind {
	case field.KindCurrency, field.KindNumber:
		checkNumber(result, d, value)
	case field.KindDate:
		if _, err := time.Parse(DateLayout, value); err != nil {
			result.errorf(d.Name, "%s must be a date in YYYY-MM-DD form", d.Name)
		}
	case field.KindBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			result.errorf(d.Name, "%s must be true or false", d.Name)
		}
	case field.KindChoice:
		if !containsChoice(d.Choices, value) {
			result.errorf(d.Name, "%s must be one of %s", d.Name, strings.Join(d.Choices, ", "))
		}
	case field.KindABN:
		if !ValidABN(value) {
			result.errorf(d.Name, "%s is not a valid ABN", d.Name)
		}
	default:
		checkLength(result, d, value)
	}
}

func checkNumber(result *Result, d field.Descriptor, value string) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		result.errorf(d.Name, "%s must be a number", d.Name)
		return
	}

	min := float64(0)
	if d.Min != nil {
		min = *d.Min
	}
	if parsed < min {
		result.errorf(d.Name, "%s must be at least %v", d.Name, min)
	}
	if d.Max != nil && parsed > *d.Max {
		result.errorf(d.Name, "%s must be at most %v", d.Name, *d.Max)
	}
}

func checkLength(result *Result, d field.Descriptor, value string) {
	length := utf8.RuneCountInString(value)
	if d.MinLength != nil && length < *d.MinLength {
		result.errorf(d.Name, "%s must be at least %d characters", d.Name, *d.MinLength)
	}
	if d.MaxLength != nil && length > *d.MaxLength {
		result.errorf(d.Name, "%s must be at most %d characters", d.Name, *d.MaxLength)
	}
}

func containsChoice(choices []string, value string) bool {
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}
