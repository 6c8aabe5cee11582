package field_test

import (
	"context"
	"testing"

	"github.com/dealdocs/termsheet/pkg/field"
)

const termSheetSpec = `
openapi: 3.0.3
info:
  title: Term Sheet API
  version: 1.0.0
paths:
  /term-sheets:
    post:
      operationId: createTermSheet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [companyName, purchasePrice]
              properties:
                companyName:
                  type: string
                  title: Target company name
                  minLength: 2
                  maxLength: 200
                companyABN:
                  type: string
                  format: abn
                purchasePrice:
                  type: number
                  format: currency
                  minimum: 0
                completionDate:
                  type: string
                  format: date
                termSheetType:
                  type: string
                  enum: [binding, non-binding]
                  default: binding
                suppliersSchedule:
                  type: string
                  format: textarea
      responses:
        "201":
          description: created
`

func TestFromOpenAPI(t *testing.T) {
	t.Parallel()

	reg, err := field.FromOpenAPI(context.Background(), []byte(termSheetSpec), "createTermSheet")
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}
	if reg.Len() != 6 {
		t.Fatalf("expected 6 fields, got %d", reg.Len())
	}

	cases := []struct {
		name     string
		kind     field.Kind
		required bool
	}{
		{"companyABN", field.KindABN, false},
		{"companyName", field.KindText, true},
		{"completionDate", field.KindDate, false},
		{"purchasePrice", field.KindCurrency, true},
		{"suppliersSchedule", field.KindMultiline, false},
		{"termSheetType", field.KindChoice, false},
	}
	for i, tc := range cases {
		d := reg.Fields()[i]
		if d.Name != tc.name {
			t.Fatalf("field %d: expected %s (alphabetical order), got %s", i, tc.name, d.Name)
		}
		if d.Kind != tc.kind {
			t.Fatalf("field %s: expected kind %v, got %v", tc.name, tc.kind, d.Kind)
		}
		if d.Required != tc.required {
			t.Fatalf("field %s: expected required=%v", tc.name, tc.required)
		}
	}

	name, _ := reg.Lookup("companyName")
	if name.Label != "Target company name" {
		t.Fatalf("expected title to map to label, got %q", name.Label)
	}
	if name.MinLength == nil || *name.MinLength != 2 {
		t.Fatalf("expected minLength 2, got %v", name.MinLength)
	}

	tst, _ := reg.Lookup("termSheetType")
	if len(tst.Choices) != 2 || tst.Default != "binding" {
		t.Fatalf("expected enum choices with default, got %v default %q", tst.Choices, tst.Default)
	}

	price, _ := reg.Lookup("purchasePrice")
	if price.Min == nil || *price.Min != 0 {
		t.Fatalf("expected minimum 0, got %v", price.Min)
	}
}

func TestFromOpenAPIUnknownOperation(t *testing.T) {
	t.Parallel()

	if _, err := field.FromOpenAPI(context.Background(), []byte(termSheetSpec), "noSuchOp"); err == nil {
		t.Fatalf("expected unknown operation to fail")
	}
}
