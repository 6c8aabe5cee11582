// Package prompt drives the interactive question flow. Fields are
// asked in registry order, and section visibility is re-evaluated
// after every answer so questions for hidden sections never appear.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dealdocs/termsheet/pkg/field"
	"github.com/dealdocs/termsheet/pkg/snapshot"
	"github.com/dealdocs/termsheet/pkg/validate"
	"github.com/dealdocs/termsheet/pkg/visibility"
)

// Asker walks the registry and collects one value per visible field.
type Asker struct {
	reg    *field.Registry
	ctrl   *visibility.Controller
	driver Driver
}

// NewAsker wires the question flow. A nil driver selects the
// interactive survey driver; nil registry and controller select the
// built-in defaults. The controller must be the same instance the
// assembler uses, or the prompts and the document will disagree.
func NewAsker(reg *field.Registry, ctrl *visibility.Controller, driver Driver) *Asker {
	if reg == nil {
		reg = field.Default()
	}
	if ctrl == nil {
		ctrl = visibility.Default()
	}
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Asker{reg: reg, ctrl: ctrl, driver: driver}
}

// Fill asks every applicable field and returns the answers as a
// snapshot. Seed values prefill prompt defaults, so a loaded draft can
// be resumed without retyping.
func (a *Asker) Fill(ctx context.Context, seed snapshot.Snapshot) (snapshot.Snapshot, error) {
	answers := make(snapshot.MapSource)
	for _, d := range a.reg.Fields() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snap := snapshot.Capture(a.reg, answers)
		if a.skip(d, snap) {
			answers.Set(d.Name, d.EmptyValue())
			continue
		}

		value, err := a.ask(ctx, d, seed.Get(d.Name))
		if err != nil {
			return nil, err
		}
		answers.Set(d.Name, value)
	}
	return snapshot.Capture(a.reg, answers), nil
}

// skip reports whether the field's section is currently hidden. A
// field named in its own section rule is always asked; its answer is
// what decides whether the section opens.
func (a *Asker) skip(d field.Descriptor, snap snapshot.Snapshot) bool {
	for _, s := range a.ctrl.Sections() {
		if s.Name != d.Section {
			continue
		}
		if strings.Contains(s.Rule, d.Name) {
			return false
		}
		return !a.ctrl.Visible(s.Name, snap)
	}
	return false
}

func (a *Asker) ask(ctx context.Context, d field.Descriptor, seeded string) (string, error) {
	def := seeded
	if def == "" {
		def = d.Default
	}

	switch d.Kind {
	case field.KindChoice:
		idx := indexOf(d.Choices, def)
		if idx < 0 {
			idx = 0
		}
		selected, err := a.driver.Select(ctx, SelectConfig{
			Message:      d.DisplayLabel(),
			Options:      d.Choices,
			DefaultIndex: idx,
			Help:         d.Help,
		})
		if err != nil {
			return "", err
		}
		if selected < 0 || selected >= len(d.Choices) {
			return "", fmt.Errorf("prompt: %s: selection out of range", d.Name)
		}
		return d.Choices[selected], nil

	case field.KindBoolean:
		b, err := a.driver.Confirm(ctx, ConfirmConfig{
			Message: d.DisplayLabel(),
			Default: def == "true",
			Help:    d.Help,
		})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil

	case field.KindMultiline:
		return a.driver.TextArea(ctx, TextAreaConfig{
			Message: d.DisplayLabel(),
			Default: def,
			Help:    d.Help,
		})

	default:
		return a.driver.Input(ctx, InputConfig{
			Message:   d.DisplayLabel(),
			Default:   def,
			Help:      d.Help,
			Validator: fieldValidator(d),
		})
	}
}

// fieldValidator checks a single answer inline, so the user can fix it
// immediately instead of finding out at the final validation pass.
func fieldValidator(d field.Descriptor) func(string) error {
	return func(raw string) error {
		value := strings.TrimSpace(raw)
		if value == "" {
			if d.Required {
				return fmt.Errorf("%s is required", d.Name)
			}
			return nil
		}
		switch d.Kind {
		case field.KindNumber, field.KindCurrency:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return fmt.Errorf("%s must be a number", d.Name)
			}
		case field.KindDate:
			if _, err := validate.ParseDate(value); err != nil {
				return fmt.Errorf("%s must be a date in %s form", d.Name, validate.DateLayout)
			}
		case field.KindABN:
			if !validate.ValidABN(value) {
				return fmt.Errorf("%s is not a valid ABN", d.Name)
			}
		}
		return nil
	}
}
