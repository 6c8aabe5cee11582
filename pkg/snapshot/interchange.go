package snapshot

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes the snapshot to the plain-text interchange form:
// a single flat JSON object with string values. encoding/json emits
// object keys in sorted order, so output is deterministic and
// Parse(Marshal(s)) == s for every snapshot.
func Marshal(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(map[string]string(snap), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal: %w", err)
	}
	return data, nil
}

// Parse reads the interchange form produced by Marshal. Non-string
// scalars are tolerated and coerced to their text form so hand-edited
// files with bare numbers or booleans still load.
func Parse(data []byte) (Snapshot, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("snapshot: parse: %w", err)
	}
	snap := make(Snapshot, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			snap[key] = v
		case bool:
			if v {
				snap[key] = "true"
			} else {
				snap[key] = "false"
			}
		case float64:
			snap[key] = trimFloat(v)
		case nil:
			snap[key] = ""
		default:
			return nil, fmt.Errorf("snapshot: parse: field %q holds a non-scalar value", key)
		}
	}
	return snap, nil
}

func trimFloat(v float64) string {
	// %v keeps integers free of a trailing ".0" so 1500000 round-trips
	// as "1500000".
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%v", v)
}
