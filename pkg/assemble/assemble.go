package assemble

import (
	"fmt"
	"html"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/dealdocs/termsheet/pkg/field"
	"github.com/dealdocs/termsheet/pkg/snapshot"
	"github.com/dealdocs/termsheet/pkg/variant"
)

// Assembler builds the document block sequence for one term sheet.
// Section templates are compiled once at construction; Assemble itself
// is a pure function of its inputs.
type Assembler struct {
	reg       *field.Registry
	templates map[string][]*pongo2.Template
}

// New compiles the section catalog against reg. Template errors are
// programmer errors and surface here, not at generation time.
func New(reg *field.Registry) (*Assembler, error) {
	if reg == nil {
		reg = field.Default()
	}
	set := pongo2.NewSet("termsheet", pongo2.MustNewLocalFileSystemLoader(""))

	a := &Assembler{
		reg:       reg,
		templates: make(map[string][]*pongo2.Template),
	}

	compile := func(group string, bodies []string) error {
		for i, body := range bodies {
			tmpl, err := set.FromString(body)
			if err != nil {
				return fmt.Errorf("assemble: compile %s template %d: %w", group, i, err)
			}
			a.templates[group] = append(a.templates[group], tmpl)
		}
		return nil
	}

	if err := compile("recitals", recitalTemplates); err != nil {
		return nil, err
	}
	for _, s := range staticSections {
		if err := compile(s.Name, s.Body); err != nil {
			return nil, err
		}
	}
	for _, s := range conditionalSections {
		if err := compile(s.Name, s.Body); err != nil {
			return nil, err
		}
	}
	if err := compile("signatures", signatureTemplates); err != nil {
		return nil, err
	}
	return a, nil
}

// Assemble builds the ordered block sequence: title, front-matter
// table, recitals, static sections, conditional sections gated by vis
// in catalog priority order, then the signature block. The emitted
// content never contains an unreplaced placeholder token; that
// invariant is checked before returning.
func (a *Assembler) Assemble(snap snapshot.Snapshot, vis map[string]bool, sel variant.Selection) ([]Block, error) {
	ctx := a.renderContext(snap, sel)

	var blocks []Block
	blocks = append(blocks, Heading("Term Sheet", 1))
	blocks = append(blocks, StyledParagraph("emphasis", titleLine(sel)))

	blocks = append(blocks, a.frontMatter(snap, sel))

	recitals, err := a.renderGroup("recitals", ctx)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, Heading("Background", 2))
	blocks = append(blocks, recitals...)

	for _, s := range staticSections {
		rendered, err := a.renderGroup(s.Name, ctx)
		if err != nil {
			return nil, err
		}
		if len(rendered) == 0 {
			continue
		}
		blocks = append(blocks, Heading(s.Title, 2))
		blocks = append(blocks, rendered...)
	}

	for _, s := range conditionalSections {
		if !vis[s.Name] {
			continue
		}
		section, err := a.conditionalSection(s, snap, ctx)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, section...)
	}

	blocks = append(blocks, Heading("Execution", 2))
	signatures, err := a.renderGroup("signatures", ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range signatures {
		blocks = append(blocks, StyledParagraph("signature", p.Text))
	}

	if err := checkPlaceholders(blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (a *Assembler) conditionalSection(s sectionDef, snap snapshot.Snapshot, ctx pongo2.Context) ([]Block, error) {
	out := []Block{Heading(s.Title, 2)}

	rendered, err := a.renderGroup(s.Name, ctx)
	if err != nil {
		return nil, err
	}
	out = append(out, rendered...)

	switch s.Name {
	case "exclusivity":
		// The end-date row is always present; an unset date renders
		// empty rather than being dropped or tokenised.
		out = append(out, Table("Exclusivity period",
			Row{Label: "Exclusivity end date", Value: Date(snap.Get("exclusivityEndDate"))},
		))
	case "schedules":
		for _, table := range a.scheduleTables(snap) {
			out = append(out, table)
		}
	}
	return out, nil
}

// scheduleTables omits rows whose source text is empty, unlike the
// front-matter table which always shows every row.
func (a *Assembler) scheduleTables(snap snapshot.Snapshot) []Block {
	var tables []Block
	schedules := []struct {
		caption string
		name    string
	}{
		{"Schedule 1 - Key suppliers", "suppliersSchedule"},
		{"Schedule 2 - Key customers", "customersSchedule"},
	}
	for _, s := range schedules {
		var rows []Row
		for i, line := range splitScheduleLines(snap.Get(s.name)) {
			rows = append(rows, Row{Label: fmt.Sprintf("Item %d", i+1), Value: line})
		}
		if len(rows) == 0 {
			continue
		}
		tables = append(tables, Table(s.caption, rows...))
	}
	return tables
}

func splitScheduleLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		cleaned := sanitizeText(line)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

// frontMatter always shows all rows; empty optional values render as
// empty strings.
func (a *Assembler) frontMatter(snap snapshot.Snapshot, sel variant.Selection) Block {
	return Table("Parties and key terms",
		Row{Label: "Seller", Value: partyLine(snap, "sellerName", "sellerABN")},
		Row{Label: "Buyer", Value: partyLine(snap, "buyerName", "buyerABN")},
		Row{Label: "Target company", Value: partyLine(snap, "companyName", "companyABN")},
		Row{Label: "Purchase price", Value: Currency(snap.Get("purchasePrice"))},
		Row{Label: "Deposit", Value: Currency(snap.Get("depositAmount"))},
		Row{Label: "Term sheet date", Value: Date(snap.Get("termSheetDate"))},
		Row{Label: "Due diligence date", Value: Date(snap.Get("dueDiligenceDate"))},
		Row{Label: "Completion date", Value: Date(snap.Get("completionDate"))},
		Row{Label: "Template", Value: sel.Name() + " (" + sel.Description() + ")"},
	)
}

func partyLine(snap snapshot.Snapshot, nameField, abnField string) string {
	name := sanitizeText(snap.Get(nameField))
	abn := strings.TrimSpace(snap.Get(abnField))
	if name == "" {
		return ""
	}
	if abn == "" {
		return name
	}
	return name + " (ABN " + abn + ")"
}

func titleLine(sel variant.Selection) string {
	if sel.Binding {
		return "Share sale - binding term sheet"
	}
	return "Share sale - non-binding term sheet"
}

// renderContext exposes every registered field under its own name,
// formatted for display according to its kind, plus derived values the
// templates need.
func (a *Assembler) renderContext(snap snapshot.Snapshot, sel variant.Selection) pongo2.Context {
	ctx := make(pongo2.Context, a.reg.Len()+2)
	for _, d := range a.reg.Fields() {
		ctx[d.Name] = displayValue(d, snap.Get(d.Name))
	}
	bindingWord := "binding"
	if !sel.Binding {
		bindingWord = "not binding"
	}
	ctx["bindingWord"] = bindingWord
	ctx["variantName"] = sel.Name()
	return ctx
}

func displayValue(d field.Descriptor, raw string) string {
	switch d.Kind {
	case field.KindCurrency:
		return Currency(raw)
	case field.KindDate:
		return Date(raw)
	case field.KindNumber, field.KindBoolean, field.KindChoice, field.KindABN:
		return strings.TrimSpace(raw)
	default:
		return sanitizeText(raw)
	}
}

func (a *Assembler) renderGroup(group string, ctx pongo2.Context) ([]Block, error) {
	var out []Block
	for i, tmpl := range a.templates[group] {
		rendered, err := tmpl.Execute(ctx)
		if err != nil {
			return nil, fmt.Errorf("assemble: render %s paragraph %d: %w", group, i, err)
		}
		// The engine HTML-escapes interpolations; the output here is
		// plain text, so undo that.
		text := strings.TrimSpace(html.UnescapeString(rendered))
		if text == "" {
			continue
		}
		out = append(out, Paragraph(text))
	}
	return out, nil
}

// checkPlaceholders enforces the placeholder-free invariant over every
// emitted text fragment.
func checkPlaceholders(blocks []Block) error {
	for _, b := range blocks {
		if err := checkText(b.Text); err != nil {
			return err
		}
		if err := checkText(b.Caption); err != nil {
			return err
		}
		for _, row := range b.Rows {
			if err := checkText(row.Label); err != nil {
				return err
			}
			if err := checkText(row.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkText(text string) error {
	lowered := strings.ToLower(text)
	for _, marker := range []string{"{{", "}}", "{%", "%}", "[insert"} {
		if strings.Contains(lowered, marker) {
			return fmt.Errorf("assemble: unresolved placeholder near %q", text)
		}
	}
	return nil
}
