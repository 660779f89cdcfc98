package pdf_test

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func document(lines int) *billing.InvoiceDocument {
	inv := &entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV24060007",
		ClientID:      "client-1",
		Date:          time.Date(2024, time.June, 10, 11, 0, 0, 0, timeutil.IST),
		SaleType:      entity.SaleTypeCentral18,
		TaxRate:       d("18"),
		PlaceOfSupply: "Delhi",
		Transport:     entity.TransportDetails{GRNumber: "GR-77", TransportName: "VRL Logistics", VehicleNumber: "DL01AB1234"},
		Status:        entity.InvoiceStatusDraft,
	}
	doc := &billing.InvoiceDocument{
		Invoice: inv,
		Client: &entity.Client{
			ID: "client-1", Name: "Sharma Electricals", GSTIN: "07abcde1234f1z5",
			Address: entity.Address{Street: "22 Chandni Chowk", City: "Delhi", State: "Delhi", Pincode: "110006"},
		},
		Business: &entity.BusinessProfile{
			Name: "Rao Industries", GSTIN: "27aaacr5055k1zk", Phone: "020-2745000", Email: "accounts@example.in",
			Address: entity.BusinessAddress{Street: "Plot 7, MIDC", City: "Pune", State: "Maharashtra", Pincode: "411019"},
		},
	}
	for i := 0; i < lines; i++ {
		line := entity.InvoiceLineItem{
			ItemID: fmt.Sprintf("item-%d", i), Quantity: d("2"), Price: d("500"), Total: d("1000"),
		}
		inv.Items = append(inv.Items, line)
		doc.Lines = append(doc.Lines, billing.DocumentLine{
			Line: line,
			Item: &entity.InventoryItem{ID: line.ItemID, Name: fmt.Sprintf("Copper Wire %d", i), HSNCode: "8544", Unit: "Mtr"},
		})
	}
	inv.Subtotal = d("1000").Mul(decimal.NewFromInt(int64(lines)))
	inv.TotalTax = inv.Subtotal.Mul(d("0.18"))
	inv.Total = inv.Subtotal.Add(inv.TotalTax)
	return doc
}

func texts(l *pdf.Layout, tag string) []string {
	var out []string
	for _, in := range l.Tagged(tag) {
		out = append(out, in.Text)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Layout
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildInvoiceLayout_UnaFilaPorLinea(t *testing.T) {
	for _, n := range []int{1, 3, pdf.TableCapacity} {
		l, err := pdf.BuildInvoiceLayout(document(n))
		require.NoError(t, err)
		assert.Len(t, l.Tagged("item.serial"), n)
		assert.Len(t, l.Tagged("item.amount"), n)
	}
}

func TestBuildInvoiceLayout_Totales(t *testing.T) {
	doc := document(3)
	l, err := pdf.BuildInvoiceLayout(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"3540.00"}, texts(l, "total.grand"))
	assert.Equal(t, []string{"540.00"}, texts(l, "total.tax"))
	assert.Equal(t, []string{"3000.00"}, texts(l, "tax.taxable"))
	assert.Equal(t, []string{"18%"}, texts(l, "tax.rate"))
	assert.Equal(t, []string{"Rupees Three Thousand Five Hundred Forty Only"}, texts(l, "total.words"))
}

func TestBuildInvoiceLayout_FilasDeArticulo(t *testing.T) {
	l, err := pdf.BuildInvoiceLayout(document(2))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, texts(l, "item.serial"))
	assert.Equal(t, []string{"Copper Wire 0", "Copper Wire 1"}, texts(l, "item.description"))
	assert.Equal(t, []string{pdf.DiscountPlaceholder, pdf.DiscountPlaceholder}, texts(l, "item.discount"))
	assert.Equal(t, []string{"500.00", "500.00"}, texts(l, "item.price"))

	serials := l.Tagged("item.serial")
	assert.Equal(t, 25.0, serials[1].Y-serials[0].Y, "alto de fila fijo")
}

func TestBuildInvoiceLayout_Cabecera(t *testing.T) {
	l, err := pdf.BuildInvoiceLayout(document(1))
	require.NoError(t, err)

	assert.Equal(t, []string{"GSTIN : 27AAACR5055K1ZK"}, texts(l, "business.gstin"))
	name := l.Tagged("business.name")
	require.Len(t, name, 1)
	assert.Equal(t, pdf.StyleBold, name[0].Style)
	assert.Equal(t, 14.0, name[0].FontSize)
	assert.Equal(t, pdf.AlignCenter, name[0].Align)

	assert.Equal(t, []string{"INV24060007"}, texts(l, "invoice.number"))
	assert.Equal(t, []string{"10/06/2024"}, texts(l, "invoice.date"))
	assert.Equal(t, []string{"VRL Logistics"}, texts(l, "transport.name"))
	assert.Zero(t, l.Count(pdf.KindImage), "sin logo no hay imagen")
}

func TestBuildInvoiceLayout_MismoClienteEnAmbasColumnas(t *testing.T) {
	l, err := pdf.BuildInvoiceLayout(document(1))
	require.NoError(t, err)

	want := []string{"Sharma Electricals", "22 Chandni Chowk", "Delhi", "Delhi - 110006"}
	assert.Equal(t, want, texts(l, "billed.address"))
	assert.Equal(t, want, texts(l, "shipped.address"))
	assert.Equal(t, []string{"GSTIN/UIN : 07ABCDE1234F1Z5"}, texts(l, "billed.gstin"))
	assert.Equal(t, texts(l, "billed.gstin"), texts(l, "shipped.gstin"))
}

func TestBuildInvoiceLayout_Deterministico(t *testing.T) {
	a, err := pdf.BuildInvoiceLayout(document(2))
	require.NoError(t, err)
	b, err := pdf.BuildInvoiceLayout(document(2))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildInvoiceLayout_ExcedeCapacidad(t *testing.T) {
	_, err := pdf.BuildInvoiceLayout(document(pdf.TableCapacity + 1))
	assert.ErrorIs(t, err, pdf.ErrTooManyItems)
}

func TestBuildInvoiceLayout_Logo(t *testing.T) {
	doc := document(1)
	doc.Business.Logo = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 'P', 'N', 'G'})
	l, err := pdf.BuildInvoiceLayout(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Count(pdf.KindImage))
}

func TestBuildInvoiceLayout_DentroDeLaPagina(t *testing.T) {
	l, err := pdf.BuildInvoiceLayout(document(pdf.TableCapacity))
	require.NoError(t, err)
	for _, in := range l.Instructions {
		assert.GreaterOrEqual(t, in.X, 0.0)
		assert.LessOrEqual(t, in.Y+in.H, pdf.PageHeight, "%s fuera de la página", in.Kind)
		assert.LessOrEqual(t, in.X+in.W, pdf.PageWidth, "%s fuera de la página", in.Kind)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Renderer
// ──────────────────────────────────────────────────────────────────────────────

func TestGofpdfRenderer_UnaPagina(t *testing.T) {
	data, err := pdf.NewGofpdfRenderer().RenderInvoice(context.Background(), document(3))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
	assert.Contains(t, string(data), "/Count 1")
}

func TestGofpdfRenderer_ErrorEsRenderError(t *testing.T) {
	doc := document(1)
	doc.Business.Logo = base64.StdEncoding.EncodeToString([]byte("no es una imagen"))

	data, err := pdf.NewGofpdfRenderer().RenderInvoice(context.Background(), doc)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestGofpdfRenderer_DemasiadasLineas(t *testing.T) {
	_, err := pdf.NewGofpdfRenderer().RenderInvoice(context.Background(), document(pdf.TableCapacity+1))
	var rErr *domain.RenderError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, "layout", rErr.Op)
	assert.ErrorIs(t, err, pdf.ErrTooManyItems)
}

func TestMarotoRegisterRenderer(t *testing.T) {
	rows := []billing.RegisterRow{
		{InvoiceNumber: "INV24060001", Date: time.Now(), ClientName: "Sharma Electricals", Status: "draft",
			Subtotal: d("1000"), TotalTax: d("180"), Total: d("1180")},
		{InvoiceNumber: "INV24060002", Date: time.Now(), Status: "paid",
			Subtotal: d("123456.5"), TotalTax: d("22222.17"), Total: d("145678.67")},
	}
	data, err := pdf.NewMarotoRegisterRenderer().RenderRegister(context.Background(), "Rao Industries", rows)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}
