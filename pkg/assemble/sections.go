package assemble

// sectionDef declares one titled section of the document. Body entries
// are pongo2 paragraph templates rendered against the formatted view
// of the snapshot; a body entry that renders to an empty string is
// dropped rather than emitted as a blank paragraph.
type sectionDef struct {
	Name  string
	Title string
	Body  []string
}

// staticSections always appear, in this order, after the recitals.
var staticSections = []sectionDef{
	{
		Name:  "transaction",
		Title: "Sale and purchase",
		Body: []string{
			`The Seller agrees to sell and the Buyer agrees to buy the entire issued share capital of {{ companyName }} free of encumbrances for {{ purchasePrice }}.`,
			`Completion is targeted for {{ completionDate }}.`,
			`{% if directorsResign %}At completion the following directors will resign: {{ directorsResign }}.{% endif %}`,
		},
	},
	{
		Name:  "legal",
		Title: "Governing law",
		Body: []string{
			`This term sheet is governed by the laws of {{ governingState }}.{% if jurisdiction == "non-exclusive" %} The parties submit to the non-exclusive jurisdiction of its courts.{% else %} The parties submit to the exclusive jurisdiction of its courts.{% endif %}`,
		},
	},
}

// conditionalSections appear only when their visibility rule holds,
// in this fixed priority order. Names match the visibility catalog.
var conditionalSections = []sectionDef{
	{
		Name:  "deposit",
		Title: "Deposit",
		Body: []string{
			`The Buyer will pay a deposit of {{ depositAmount }} on signing. The deposit is applied against the purchase price at completion and is refundable only as set out below.`,
		},
	},
	{
		Name:  "dueDiligence",
		Title: "Due diligence",
		Body: []string{
			`{% if dueDiligenceDate %}The Buyer's due diligence is to be completed by {{ dueDiligenceDate }}.{% else %}The due diligence program follows the structured workstreams agreed between the parties.{% endif %}`,
			`The Seller will respond to information requests within {{ infoRequestDays }} business days and will provide access to the company's records and premises for a period of {{ accessPeriodDays }} days.`,
		},
	},
	{
		Name:  "escrow",
		Title: "Escrow",
		Body: []string{
			`An escrow agent appointed jointly by the parties will hold the deposit pending completion and release it in accordance with the escrow instructions.`,
		},
	},
	{
		Name:  "exclusivity",
		Title: "Exclusivity",
		Body: []string{
			`The Seller grants the Buyer exclusivity and will not solicit, encourage or respond to competing proposals{% if exclusivityEndDate %} until {{ exclusivityEndDate }}{% endif %}.`,
		},
	},
	{
		Name:  "restraints",
		Title: "Restraints",
		Body: []string{
			`The Seller undertakes not to compete with the company for {{ nonCompetePeriod }} years after completion and not to solicit its employees, suppliers or customers for {{ nonSolicitationPeriod }} months after completion.`,
		},
	},
	{
		Name:  "schedules",
		Title: "Schedules",
		Body:  nil, // schedule tables are built from the snapshot directly
	},
}

// recitalTemplates introduce the parties before the numbered sections.
var recitalTemplates = []string{
	`{{ buyerName }}{% if buyerABN %} (ABN {{ buyerABN }}){% endif %} proposes to acquire the entire issued share capital of {{ companyName }}{% if companyABN %} (ABN {{ companyABN }}){% endif %} from {{ sellerName }}{% if sellerABN %} (ABN {{ sellerABN }}){% endif %}.`,
	`This term sheet records the key terms on which the parties are prepared to proceed. It is {{ bindingWord }} on the parties.`,
}

// signatureTemplates close the document.
var signatureTemplates = []string{
	`SIGNED by {{ buyerName }}`,
	`SIGNED by {{ sellerName }}`,
}
