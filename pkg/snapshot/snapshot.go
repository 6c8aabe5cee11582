// Package snapshot holds the captured form state: a flat mapping from
// field name to scalar value, plus the capture/restore bridge between
// a live form surface and that mapping.
package snapshot

import (
	"strings"

	"github.com/dealdocs/termsheet/pkg/field"
)

// Snapshot is a complete set of current field values at one point in
// time. Values are kept as text; typed parsing happens once, at the
// validation boundary. Booleans are "true"/"false", choices verbatim.
type Snapshot map[string]string

// Get returns the value for name, or "" when absent.
func (s Snapshot) Get(name string) string {
	return s[name]
}

// IsEmpty reports whether the named value is absent or blank.
func (s Snapshot) IsEmpty(name string) bool {
	return strings.TrimSpace(s[name]) == ""
}

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Values exposes the snapshot as a generic map for rule evaluation.
func (s Snapshot) Values() map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Source abstracts the live form the snapshot is captured from and
// restored onto. Implementations are expected to be total: Get returns
// the natural empty value for unset fields and Set never fails.
type Source interface {
	Get(name string) string
	Set(name, value string)
}

// Capture reads every registered field's current value. The returned
// snapshot has exactly one entry per registry field; unset fields get
// their kind's natural empty representation.
func Capture(reg *field.Registry, src Source) Snapshot {
	snap := make(Snapshot, reg.Len())
	for _, d := range reg.Fields() {
		value := src.Get(d.Name)
		if value == "" {
			value = d.EmptyValue()
		}
		snap[d.Name] = value
	}
	return snap
}

// Restore writes each present key back onto its matching field. Keys
// with no registered field are ignored silently so snapshots saved by
// older or newer field sets still load. It returns the names applied,
// in registry order, so the caller can trigger conditional
// re-evaluation afterwards.
func Restore(reg *field.Registry, src Source, snap Snapshot) []string {
	applied := make([]string, 0, len(snap))
	for _, d := range reg.Fields() {
		value, ok := snap[d.Name]
		if !ok {
			continue
		}
		src.Set(d.Name, value)
		applied = append(applied, d.Name)
	}
	return applied
}

// MapSource is a Source backed by a plain map, used by tests and by
// the CLI when values arrive from a file rather than a live form.
type MapSource map[string]string

func (m MapSource) Get(name string) string { return m[name] }
func (m MapSource) Set(name, value string) { m[name] = value }
