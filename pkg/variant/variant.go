// Package variant maps a captured snapshot to one of the eighteen
// master term sheet templates (nine binding, nine non-binding). The
// selection walks a fixed filter priority: due diligence structure,
// then deposit, escrow, exclusivity and jurisdiction.
package variant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dealdocs/termsheet/pkg/snapshot"
)

// Characteristics are the five traits that distinguish the templates.
type Characteristics struct {
	Binding        bool
	StructuredDD   bool
	HasDeposit     bool
	HasEscrow      bool
	HasExclusivity bool
	ExclusiveJD    bool
}

// Selection identifies the chosen template.
type Selection struct {
	Option          int
	Binding         bool
	Characteristics Characteristics
}

// Name returns the template identifier, e.g. "BINDING_Option_9".
func (s Selection) Name() string {
	prefix := "BINDING"
	if !s.Binding {
		prefix = "NON_BINDING"
	}
	return fmt.Sprintf("%s_Option_%d", prefix, s.Option)
}

// Description returns the human-readable trait summary.
func (s Selection) Description() string {
	parts := make([]string, 0, 5)
	if s.Characteristics.StructuredDD {
		parts = append(parts, "Structured DD")
	} else {
		parts = append(parts, "Unstructured DD")
	}
	if s.Characteristics.HasDeposit {
		parts = append(parts, "Deposit")
	} else {
		parts = append(parts, "No Deposit")
	}
	if s.Characteristics.HasEscrow {
		parts = append(parts, "Escrow")
	} else {
		parts = append(parts, "No Escrow")
	}
	if s.Characteristics.HasExclusivity {
		parts = append(parts, "Exclusivity")
	} else {
		parts = append(parts, "No Exclusivity")
	}
	if s.Characteristics.ExclusiveJD {
		parts = append(parts, "Exclusive JD")
	} else {
		parts = append(parts, "Non-Exclusive JD")
	}
	return strings.Join(parts, ", ")
}

// Select derives the template variant for snap. An empty candidate set
// falls back to option 9, the standard template.
func Select(snap snapshot.Snapshot) Selection {
	ch := characteristics(snap)
	return Selection{
		Option:          mapToOption(ch),
		Binding:         ch.Binding,
		Characteristics: ch,
	}
}

func characteristics(snap snapshot.Snapshot) Characteristics {
	deposit, _ := strconv.ParseFloat(strings.TrimSpace(snap.Get("depositAmount")), 64)
	return Characteristics{
		Binding:        !strings.Contains(strings.ToLower(snap.Get("termSheetType")), "non-binding"),
		StructuredDD:   strings.Contains(strings.ToLower(snap.Get("dueDiligenceStructure")), "struct") && !strings.Contains(strings.ToLower(snap.Get("dueDiligenceStructure")), "unstruct"),
		HasDeposit:     deposit > 0,
		HasEscrow:      affirmative(snap.Get("escrowRequired")),
		HasExclusivity: affirmative(snap.Get("exclusivityRequired")),
		ExclusiveJD:    !strings.Contains(strings.ToLower(snap.Get("jurisdiction")), "non"),
	}
}

func affirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true
	default:
		return false
	}
}

// mapToOption filters the nine candidates trait by trait. The filter
// order is significant and mirrors the template catalogue.
func mapToOption(ch Characteristics) int {
	candidates := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true}

	if ch.StructuredDD {
		keep(candidates, 1, 3)
	} else {
		keep(candidates, 2, 4, 5, 6, 7, 8, 9)
	}
	if ch.HasDeposit {
		keep(candidates, 3, 4, 6, 7, 8, 9)
	} else {
		keep(candidates, 1, 2, 5)
	}
	if ch.HasEscrow {
		keep(candidates, 1, 2, 3, 4, 7, 8, 9)
	} else {
		keep(candidates, 5, 6)
	}
	if ch.HasExclusivity {
		keep(candidates, 1, 2, 3, 4, 5, 6, 8, 9)
	} else {
		keep(candidates, 7)
	}
	if ch.ExclusiveJD {
		keep(candidates, 1, 2, 3, 4, 5, 6, 7, 9)
	} else {
		keep(candidates, 8)
	}

	best := 0
	for option := range candidates {
		if best == 0 || option < best {
			best = option
		}
	}
	if best == 0 {
		return 9
	}
	return best
}

func keep(candidates map[int]bool, options ...int) {
	allowed := make(map[int]bool, len(options))
	for _, o := range options {
		allowed[o] = true
	}
	for option := range candidates {
		if !allowed[option] {
			delete(candidates, option)
		}
	}
}
