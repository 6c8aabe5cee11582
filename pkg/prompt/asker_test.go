package prompt_test

import (
	"context"
	"testing"

	"github.com/dealdocs/termsheet/pkg/field"
	"github.com/dealdocs/termsheet/pkg/prompt"
	"github.com/dealdocs/termsheet/pkg/snapshot"
	"github.com/dealdocs/termsheet/pkg/visibility"
)

// fakeDriver answers prompts from a script keyed by prompt message and
// records which prompts were shown.
type fakeDriver struct {
	answers map[string]string
	asked   []string
}

func (d *fakeDriver) record(message string) {
	d.asked = append(d.asked, message)
}

func (d *fakeDriver) Input(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	d.record(cfg.Message)
	answer, ok := d.answers[cfg.Message]
	if !ok {
		answer = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (d *fakeDriver) Confirm(ctx context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.record(cfg.Message)
	if answer, ok := d.answers[cfg.Message]; ok {
		return answer == "true", nil
	}
	return cfg.Default, nil
}

func (d *fakeDriver) Select(ctx context.Context, cfg prompt.SelectConfig) (int, error) {
	d.record(cfg.Message)
	if answer, ok := d.answers[cfg.Message]; ok {
		for i, option := range cfg.Options {
			if option == answer {
				return i, nil
			}
		}
	}
	return cfg.DefaultIndex, nil
}

func (d *fakeDriver) TextArea(ctx context.Context, cfg prompt.TextAreaConfig) (string, error) {
	d.record(cfg.Message)
	if answer, ok := d.answers[cfg.Message]; ok {
		return answer, nil
	}
	return cfg.Default, nil
}

func (d *fakeDriver) Info(ctx context.Context, msg string) error { return nil }

func (d *fakeDriver) wasAsked(message string) bool {
	for _, m := range d.asked {
		if m == message {
			return true
		}
	}
	return false
}

func TestFillAsksEveryVisibleField(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{answers: map[string]string{
		"Target company name":           "Acme Pty Ltd",
		"Seller name":                   "Jordan Smith",
		"Buyer name":                    "Northbridge Holdings Pty Ltd",
		"Purchase price":                "1500000",
		"Term sheet date":               "2025-11-01",
		"Completion date":               "2026-02-28",
		"Due diligence completion date": "2025-12-15",
		"Exclusivity required":          "yes",
		"Exclusivity end date":          "2026-01-31",
	}}

	asker := prompt.NewAsker(nil, nil, driver)
	snap, err := asker.Fill(context.Background(), snapshot.Snapshot{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if got := snap.Get("companyName"); got != "Acme Pty Ltd" {
		t.Fatalf("unexpected companyName %q", got)
	}
	if got := snap.Get("exclusivityEndDate"); got != "2026-01-31" {
		t.Fatalf("exclusivity end date should be asked when exclusivity is on, got %q", got)
	}
	if len(snap) != field.Default().Len() {
		t.Fatalf("expected one entry per registry field, got %d of %d", len(snap), field.Default().Len())
	}
}

func TestFillSkipsHiddenSections(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{answers: map[string]string{
		"Target company name":           "Acme Pty Ltd",
		"Seller name":                   "Jordan Smith",
		"Buyer name":                    "Northbridge Holdings Pty Ltd",
		"Purchase price":                "1500000",
		"Term sheet date":               "2025-11-01",
		"Completion date":               "2026-02-28",
		"Due diligence completion date": "",
		"Due diligence structure":       "unstructured",
		"Exclusivity required":          "no",
	}}

	asker := prompt.NewAsker(nil, nil, driver)
	snap, err := asker.Fill(context.Background(), snapshot.Snapshot{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	// The gating questions are always asked.
	if !driver.wasAsked("Exclusivity required") {
		t.Fatalf("gating question must be asked")
	}
	if !driver.wasAsked("Due diligence structure") {
		t.Fatalf("gating question must be asked")
	}

	// Questions inside switched-off sections are not.
	if driver.wasAsked("Exclusivity end date") {
		t.Fatalf("exclusivity end date asked despite exclusivity being off")
	}
	if driver.wasAsked("Information request period (days)") {
		t.Fatalf("due diligence detail asked despite unstructured dd with no date")
	}

	// Skipped fields still land in the snapshot with empty values.
	if got := snap.Get("exclusivityEndDate"); got != "" {
		t.Fatalf("expected empty exclusivityEndDate, got %q", got)
	}
	if got := snap.Get("infoRequestDays"); got != "" {
		t.Fatalf("expected empty infoRequestDays, got %q", got)
	}
}

func TestFillPromptSkippingMatchesDocumentVisibility(t *testing.T) {
	t.Parallel()

	ctrl := visibility.Default()
	driver := &fakeDriver{answers: map[string]string{
		"Target company name":  "Acme Pty Ltd",
		"Seller name":          "Jordan Smith",
		"Buyer name":           "Northbridge Holdings Pty Ltd",
		"Purchase price":       "1500000",
		"Term sheet date":      "2025-11-01",
		"Completion date":      "2026-02-28",
		"Exclusivity required": "no",
	}}

	asker := prompt.NewAsker(nil, ctrl, driver)
	snap, err := asker.Fill(context.Background(), snapshot.Snapshot{})
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	vis := ctrl.Evaluate(snap)
	if vis["exclusivity"] {
		t.Fatalf("document shows exclusivity although its questions were skipped")
	}
	if driver.wasAsked("Exclusivity end date") {
		t.Fatalf("prompt flow asked a question the document will not use")
	}
}

func TestFillSeedsDefaultsFromDraft(t *testing.T) {
	t.Parallel()

	seed := snapshot.Snapshot{
		"companyName":   "Resumed Co Pty Ltd",
		"purchasePrice": "2500000",
	}

	// Only the required fields the draft lacks are scripted; everywhere
	// else the fake driver accepts each prompt's default, so seeded
	// values must round-trip.
	driver := &fakeDriver{answers: map[string]string{
		"Seller name":     "Jordan Smith",
		"Buyer name":      "Northbridge Holdings Pty Ltd",
		"Term sheet date": "2025-11-01",
		"Completion date": "2026-02-28",
	}}

	asker := prompt.NewAsker(nil, nil, driver)
	snap, err := asker.Fill(context.Background(), seed)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if got := snap.Get("companyName"); got != "Resumed Co Pty Ltd" {
		t.Fatalf("seeded company name lost, got %q", got)
	}
	if got := snap.Get("purchasePrice"); got != "2500000" {
		t.Fatalf("seeded price lost, got %q", got)
	}
	// Registry defaults still apply where the draft holds nothing.
	if got := snap.Get("governingState"); got != "New South Wales" {
		t.Fatalf("expected registry default for governingState, got %q", got)
	}
}

func TestFillValidatorRejectsBadAnswer(t *testing.T) {
	t.Parallel()

	driver := &fakeDriver{answers: map[string]string{
		"Target company name": "Acme Pty Ltd",
		"Target company ABN":  "12345678901",
	}}

	asker := prompt.NewAsker(nil, nil, driver)
	if _, err := asker.Fill(context.Background(), snapshot.Snapshot{}); err == nil {
		t.Fatalf("expected invalid ABN to surface from the inline validator")
	}
}
