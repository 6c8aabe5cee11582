package variant_test

import (
	"testing"

	"github.com/dealdocs/termsheet/pkg/snapshot"
	"github.com/dealdocs/termsheet/pkg/variant"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		snap    snapshot.Snapshot
		option  int
		binding bool
	}{
		{
			name: "standard deal",
			snap: snapshot.Snapshot{
				"termSheetType":         "binding",
				"dueDiligenceStructure": "unstructured",
				"depositAmount":         "150000",
				"escrowRequired":        "yes",
				"exclusivityRequired":   "yes",
				"jurisdiction":          "exclusive",
			},
			option:  4,
			binding: true,
		},
		{
			name: "structured dd without deposit",
			snap: snapshot.Snapshot{
				"termSheetType":         "binding",
				"dueDiligenceStructure": "structured",
				"depositAmount":         "",
				"escrowRequired":        "yes",
				"exclusivityRequired":   "yes",
				"jurisdiction":          "exclusive",
			},
			option:  1,
			binding: true,
		},
		{
			name: "no escrow no deposit",
			snap: snapshot.Snapshot{
				"termSheetType":         "binding",
				"dueDiligenceStructure": "unstructured",
				"depositAmount":         "0",
				"escrowRequired":        "no",
				"exclusivityRequired":   "yes",
				"jurisdiction":          "exclusive",
			},
			option:  5,
			binding: true,
		},
		{
			name: "non-exclusive jurisdiction",
			snap: snapshot.Snapshot{
				"termSheetType":         "binding",
				"dueDiligenceStructure": "unstructured",
				"depositAmount":         "150000",
				"escrowRequired":        "yes",
				"exclusivityRequired":   "yes",
				"jurisdiction":          "non-exclusive",
			},
			option:  8,
			binding: true,
		},
		{
			name: "no exclusivity",
			snap: snapshot.Snapshot{
				"termSheetType":         "binding",
				"dueDiligenceStructure": "unstructured",
				"depositAmount":         "150000",
				"escrowRequired":        "yes",
				"exclusivityRequired":   "no",
				"jurisdiction":          "exclusive",
			},
			option:  7,
			binding: true,
		},
		{
			name: "contradictory traits fall back to the standard template",
			snap: snapshot.Snapshot{
				"termSheetType":         "binding",
				"dueDiligenceStructure": "structured",
				"depositAmount":         "150000",
				"escrowRequired":        "no",
				"exclusivityRequired":   "yes",
				"jurisdiction":          "exclusive",
			},
			option:  9,
			binding: true,
		},
		{
			name: "non-binding standard deal",
			snap: snapshot.Snapshot{
				"termSheetType":         "non-binding",
				"dueDiligenceStructure": "unstructured",
				"depositAmount":         "150000",
				"escrowRequired":        "yes",
				"exclusivityRequired":   "yes",
				"jurisdiction":          "exclusive",
			},
			option:  4,
			binding: false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sel := variant.Select(tc.snap)
			if sel.Option != tc.option {
				t.Fatalf("expected option %d, got %d (%s)", tc.option, sel.Option, sel.Description())
			}
			if sel.Binding != tc.binding {
				t.Fatalf("expected binding=%v, got %v", tc.binding, sel.Binding)
			}
		})
	}
}

func TestSelectionName(t *testing.T) {
	t.Parallel()

	binding := variant.Selection{Option: 4, Binding: true}
	if got := binding.Name(); got != "BINDING_Option_4" {
		t.Fatalf("unexpected name %q", got)
	}

	nonBinding := variant.Selection{Option: 9, Binding: false}
	if got := nonBinding.Name(); got != "NON_BINDING_Option_9" {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestSelectionDescriptionCoversEveryTrait(t *testing.T) {
	t.Parallel()

	sel := variant.Select(snapshot.Snapshot{
		"termSheetType":         "binding",
		"dueDiligenceStructure": "structured",
		"escrowRequired":        "yes",
		"exclusivityRequired":   "no",
		"jurisdiction":          "non-exclusive",
	})

	want := "Structured DD, No Deposit, Escrow, No Exclusivity, Non-Exclusive JD"
	if got := sel.Description(); got != want {
		t.Fatalf("description mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestSelectIsDeterministic(t *testing.T) {
	t.Parallel()

	snap := snapshot.Snapshot{
		"termSheetType":         "binding",
		"dueDiligenceStructure": "unstructured",
		"depositAmount":         "150000",
		"escrowRequired":        "yes",
		"exclusivityRequired":   "yes",
		"jurisdiction":          "exclusive",
	}

	first := variant.Select(snap)
	for i := 0; i < 50; i++ {
		if again := variant.Select(snap); again != first {
			t.Fatalf("selection changed between runs: %+v vs %+v", first, again)
		}
	}
}
