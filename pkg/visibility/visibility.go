// Package visibility decides which named sections of the term sheet
// are active for a given snapshot. The same controller instance gates
// both the interactive prompt flow and document assembly, so what the
// user sees is exactly what gets generated.
package visibility

import (
	"fmt"

	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// Section pairs a section name with the rule expression that gates it.
// An empty rule means always visible.
type Section struct {
	Name string
	Rule string
}

// Controller evaluates a fixed, ordered section catalog against a
// snapshot. Rules are compiled once at construction; evaluation is a
// pure function of the snapshot.
type Controller struct {
	sections []Section
	compiled []node
}

// NewController compiles the catalog. A malformed rule is a programmer
// error surfaced at startup, not at generation time.
func NewController(sections []Section) (*Controller, error) {
	c := &Controller{
		sections: make([]Section, 0, len(sections)),
		compiled: make([]node, 0, len(sections)),
	}
	for _, s := range sections {
		if s.Name == "" {
			return nil, fmt.Errorf("visibility: section without a name")
		}
		expr, err := compile(s.Rule)
		if err != nil {
			return nil, fmt.Errorf("visibility: section %q: %w", s.Name, err)
		}
		c.sections = append(c.sections, s)
		c.compiled = append(c.compiled, expr)
	}
	return c, nil
}

// MustController is NewController for static catalogs.
func MustController(sections []Section) *Controller {
	c, err := NewController(sections)
	if err != nil {
		panic(err)
	}
	return c
}

// Sections returns the catalog in priority order.
func (c *Controller) Sections() []Section {
	return c.sections
}

// Evaluate returns the visibility decision for every section. It is
// deterministic and total: the same snapshot always yields the same
// mapping, whichever call site asks.
func (c *Controller) Evaluate(snap snapshot.Snapshot) map[string]bool {
	out := make(map[string]bool, len(c.sections))
	for i, s := range c.sections {
		if c.compiled[i] == nil {
			out[s.Name] = true
			continue
		}
		out[s.Name] = c.compiled[i].eval(snap)
	}
	return out
}

// Visible evaluates a single section by name. Unknown sections default
// to visible.
func (c *Controller) Visible(name string, snap snapshot.Snapshot) bool {
	for i, s := range c.sections {
		if s.Name != name {
			continue
		}
		if c.compiled[i] == nil {
			return true
		}
		return c.compiled[i].eval(snap)
	}
	return true
}

// Default is the share-sale term sheet catalog, in the fixed priority
// order the assembler emits conditional sections.
func Default() *Controller {
	return MustController([]Section{
		{Name: "deposit", Rule: `depositAmount != "" && depositAmount != 0`},
		{Name: "dueDiligence", Rule: `dueDiligenceDate != "" || dueDiligenceStructure == "structured"`},
		{Name: "escrow", Rule: `escrowRequired == "yes"`},
		{Name: "exclusivity", Rule: `exclusivityRequired == "yes"`},
		{Name: "restraints", Rule: ""},
		{Name: "schedules", Rule: `suppliersSchedule != "" || customersSchedule != ""`},
	})
}
