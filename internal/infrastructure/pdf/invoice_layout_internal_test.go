package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

func layoutDoc() *billing.InvoiceDocument {
	line := entity.InvoiceLineItem{
		ItemID: "item-1", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(100), Total: decimal.NewFromInt(100),
	}
	return &billing.InvoiceDocument{
		Invoice: &entity.Invoice{
			ID: "inv-1", InvoiceNumber: "INV24060001",
			Date:     time.Date(2024, time.June, 1, 10, 0, 0, 0, timeutil.IST),
			SaleType: entity.SaleTypeCentral18, TaxRate: decimal.NewFromInt(18),
			Items:    []entity.InvoiceLineItem{line},
			Subtotal: decimal.NewFromInt(100), TotalTax: decimal.NewFromInt(18), Total: decimal.NewFromInt(118),
		},
		Client:   &entity.Client{ID: "client-1", Name: "Sharma Electricals", GSTIN: "07abcde1234f1z5"},
		Business: &entity.BusinessProfile{Name: "Rao Industries", GSTIN: "27aaacr5055k1zk"},
		Lines: []billing.DocumentLine{{
			Line: line,
			Item: &entity.InventoryItem{ID: "item-1", Name: "Copper Wire", HSNCode: "8544", Unit: "Mtr"},
		}},
	}
}

func tagged(t *testing.T, l *Layout, tag string) Instruction {
	t.Helper()
	in := l.Tagged(tag)
	require.Len(t, in, 1, tag)
	return in[0]
}

func TestBuildInvoiceLayout_PosicionesDesdeConstantes(t *testing.T) {
	l, err := BuildInvoiceLayout(layoutDoc())
	require.NoError(t, err)

	totalsY := tableTop + totalsOffset
	taxY := tableTop + taxBoxOffset
	wordsY := taxY + taxBoxHeight
	termsY := wordsY + wordsHeight

	cases := []struct {
		tag  string
		x, y float64
	}{
		{"business.gstin", leftTextX, headerGSTINY},
		{"business.name", 0, businessNameY},
		{"business.street", 0, streetY},
		{"business.city", 0, cityY},
		{"business.contact", 0, contactY},
		{"total.rate", igstRateX, totalsY + sectionTextDY},
		{"tax.rate", leftTextX, taxY + taxValueDY},
		{"tax.taxable", taxTaxableX, taxY + taxValueDY},
		{"tax.igst", taxIGSTX, taxY + taxValueDY},
		{"tax.total", taxTotalX, taxY + taxValueDY},
		{"total.words", leftTextX, wordsY + wordsTextDY},
		{"signature.business", rightTextX, termsY + signatureNameDY},
	}
	for _, c := range cases {
		in := tagged(t, l, c.tag)
		assert.Equal(t, c.x, in.X, c.tag)
		assert.Equal(t, c.y, in.Y, c.tag)
	}

	assert.Equal(t, totalsY+grandTotalDY, tagged(t, l, "total.grand").Y)
	assert.Equal(t, rightEdge-rightTextX-signatureRightPad, tagged(t, l, "signature.business").W)
}

func TestBuildInvoiceLayout_TextosFijos(t *testing.T) {
	l, err := BuildInvoiceLayout(layoutDoc())
	require.NoError(t, err)

	find := func(text string) Instruction {
		for _, in := range l.Instructions {
			if in.Kind == KindText && in.Text == text {
				return in
			}
		}
		t.Fatalf("texto %q no encontrado", text)
		return Instruction{}
	}

	copyLabel := find("Original Copy")
	assert.Equal(t, copyLabelX, copyLabel.X)
	assert.Equal(t, copyLabelY, copyLabel.Y)
	assert.Equal(t, titleY, find("TAX INVOICE").Y)
	assert.Equal(t, igstLabelX, find("Add : IGST").X)
	assert.Equal(t, grandTotalX, find("Grand Total").X)

	termsY := tableTop + taxBoxOffset + taxBoxHeight + wordsHeight
	for i, term := range boilerplateTerms {
		assert.Equal(t, termsY+sectionTextDY+float64(i)*termsLineStep, find(term).Y, term)
	}
	assert.Equal(t, termsY+signatoryDY, find("Authorised Signatory").Y)

	hsn := find("HSN/SAC")
	code := find("Code")
	assert.Equal(t, tableTop+tableHeaderDY, hsn.Y)
	assert.InDelta(t, lineHeight*headerLineScale, code.Y-hsn.Y, 1e-9)
}
