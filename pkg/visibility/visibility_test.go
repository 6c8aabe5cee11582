package visibility_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dealdocs/termsheet/pkg/snapshot"
	"github.com/dealdocs/termsheet/pkg/visibility"
)

func TestNewControllerRejectsMalformedRules(t *testing.T) {
	t.Parallel()

	_, err := visibility.NewController([]visibility.Section{
		{Name: "deposit", Rule: `depositAmount == `},
	})
	if err == nil {
		t.Fatalf("expected malformed rule to fail at construction")
	}

	_, err = visibility.NewController([]visibility.Section{{Rule: "x"}})
	if err == nil {
		t.Fatalf("expected unnamed section to fail")
	}
}

func TestEvaluateDefaultCatalog(t *testing.T) {
	t.Parallel()

	ctrl := visibility.Default()

	snap := snapshot.Snapshot{
		"depositAmount":         "150000",
		"dueDiligenceDate":      "",
		"dueDiligenceStructure": "structured",
		"escrowRequired":        "no",
		"exclusivityRequired":   "yes",
		"suppliersSchedule":     "",
		"customersSchedule":     "",
	}

	want := map[string]bool{
		"deposit":      true,
		"dueDiligence": true,
		"escrow":       false,
		"exclusivity":  true,
		"restraints":   true,
		"schedules":    false,
	}
	if diff := cmp.Diff(want, ctrl.Evaluate(snap)); diff != "" {
		t.Fatalf("evaluation mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	t.Parallel()

	ctrl := visibility.Default()
	snap := snapshot.Snapshot{
		"depositAmount":     "0",
		"suppliersSchedule": "Supplier A",
	}

	first := ctrl.Evaluate(snap)
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, ctrl.Evaluate(snap)); diff != "" {
			t.Fatalf("evaluation changed between runs (-first +again):\n%s", diff)
		}
	}
	if first["deposit"] {
		t.Fatalf("zero deposit must hide the deposit section")
	}
	if !first["schedules"] {
		t.Fatalf("a supplier entry must show the schedules section")
	}
}

func TestVisibleMatchesEvaluate(t *testing.T) {
	t.Parallel()

	ctrl := visibility.Default()
	snap := snapshot.Snapshot{"escrowRequired": "yes"}

	all := ctrl.Evaluate(snap)
	for _, s := range ctrl.Sections() {
		if got := ctrl.Visible(s.Name, snap); got != all[s.Name] {
			t.Fatalf("Visible(%s)=%v disagrees with Evaluate=%v", s.Name, got, all[s.Name])
		}
	}

	if !ctrl.Visible("unknownSection", snap) {
		t.Fatalf("unknown sections default to visible")
	}
}

func TestRuleExpressions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rule string
		snap snapshot.Snapshot
		want bool
	}{
		{`escrowRequired == "yes"`, snapshot.Snapshot{"escrowRequired": "yes"}, true},
		{`escrowRequired == "yes"`, snapshot.Snapshot{"escrowRequired": "no"}, false},
		{`depositAmount != ""`, snapshot.Snapshot{"depositAmount": "1"}, true},
		{`depositAmount != ""`, snapshot.Snapshot{}, false},
		{`depositAmount != 0`, snapshot.Snapshot{"depositAmount": "0.00"}, false},
		{`depositAmount != 0`, snapshot.Snapshot{"depositAmount": "25000"}, true},
		{`a == "x" && b == "y"`, snapshot.Snapshot{"a": "x", "b": "y"}, true},
		{`a == "x" && b == "y"`, snapshot.Snapshot{"a": "x"}, false},
		{`a == "x" || b == "y"`, snapshot.Snapshot{"b": "y"}, true},
		{`!(a == "x")`, snapshot.Snapshot{"a": "z"}, true},
		{`directorsResign`, snapshot.Snapshot{"directorsResign": "true"}, true},
		{`directorsResign`, snapshot.Snapshot{"directorsResign": "false"}, false},
		{`directorsResign`, snapshot.Snapshot{"directorsResign": "no"}, false},
		{`flag == true`, snapshot.Snapshot{"flag": "true"}, true},
		{`flag == true`, snapshot.Snapshot{"flag": ""}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.rule, func(t *testing.T) {
			t.Parallel()

			ctrl, err := visibility.NewController([]visibility.Section{
				{Name: "probe", Rule: tc.rule},
			})
			if err != nil {
				t.Fatalf("compile %q: %v", tc.rule, err)
			}
			if got := ctrl.Visible("probe", tc.snap); got != tc.want {
				t.Fatalf("rule %q on %v = %v, want %v", tc.rule, tc.snap, got, tc.want)
			}
		})
	}
}
