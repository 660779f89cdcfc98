package pdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/pkg/numwords"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

// ── Geometría de la página (puntos) ──────────────────────────────────────────

const (
	marginX      = 20.0
	contentWidth = 555.0
	rightEdge    = marginX + contentWidth
	midX         = PageWidth / 2 // divisor vertical de las cajas a dos columnas
	leftTextX    = 30.0
	rightTextX   = 307.0

	headerTop    = 20.0
	headerHeight = 105.0
	headerGSTINY = 30.0
	copyLabelX   = 495.0 // "Original Copy", esquina superior derecha
	copyLabelY   = 25.0

	// Líneas centradas de la cabecera.
	titleY        = 45.0
	businessNameY = 60.0
	streetY       = 80.0
	cityY         = 95.0
	contactY      = 110.0

	sectionTextDY = 5.0 // primera línea de texto dentro de una caja

	metaTop      = 125.0
	metaHeight   = 55.0
	metaColonDX  = 90.0 // desplazamiento de ":" respecto al rótulo
	metaValueDX  = 100.0
	metaRowStart = 135.0
	metaRowStep  = 15.0

	partiesTop      = 180.0
	partiesHeight   = 95.0
	partiesGSTINY   = 255.0
	partiesAddressY = 200.0

	tableTop         = 275.0
	tableHeight      = 350.0
	tableHeaderH     = 25.0
	tableRowHeight   = 25.0
	tableCellPadding = 2.0
	tableTextDY      = 5.0
	tableHeaderDY    = 7.0
	headerLineScale  = 0.8 // interlineado de las cabeceras a dos líneas
	totalsOffset     = 300.0 // desde tableTop
	totalsLineGap    = 15.0
	igstLabelX       = 420.0
	igstRateX        = 462.0
	grandTotalX      = 350.0
	grandTotalDY     = 20.0

	taxBoxOffset = 340.0 // desde tableTop
	taxBoxHeight = 50.0
	taxTaxableX  = 120.0
	taxIGSTX     = 220.0
	taxTotalX    = 320.0
	taxValueDY   = 25.0

	wordsHeight = 30.0
	wordsTextDY = 10.0

	termsHeight       = 92.0
	termsLineStep     = 15.0
	signatureSplit    = 46.0
	signatureRightPad = 20.0
	signatureNameDY   = 51.0
	signatoryDY       = 75.0

	logoX    = 30.0
	logoY    = 45.0
	logoSize = 60.0

	lineHeight = 12.0
)

// Tamaños de fuente.
const (
	fontBody     = 10.0
	fontTitle    = 12.0
	fontBusiness = 14.0
	fontTable    = 9.0
)

// TableCapacity filas de artículos que caben entre la cabecera de la tabla y la fila de totales.
const TableCapacity = int((totalsOffset - tableHeaderH) / tableRowHeight)

// DiscountPlaceholder valor fijo de la columna de descuento.
const DiscountPlaceholder = "0.00 %"

// ErrTooManyItems la factura no cabe en una sola página.
var ErrTooManyItems = errors.New("pdf: demasiadas líneas para una página")

type column struct {
	x, w   float64
	header []string
	align  Align
}

var itemColumns = []column{
	{20, 30, []string{"S.N."}, AlignCenter},
	{50, 180, []string{"Description of Goods"}, AlignLeft},
	{230, 70, []string{"HSN/SAC", "Code"}, AlignCenter},
	{300, 50, []string{"Qty."}, AlignCenter},
	{350, 40, []string{"Unit"}, AlignCenter},
	{390, 70, []string{"List Price"}, AlignRight},
	{460, 40, []string{"Disc."}, AlignCenter},
	{500, 75, []string{"Amount"}, AlignRight},
}

// Términos impresos en la caja inferior izquierda.
var boilerplateTerms = []string{
	"Terms and Conditions:",
	"E. & O.E.",
	"1. Goods once sold will not be taken back.",
	"2. Interest @ 18% p.a. will be charged if the payment",
	"   is not made within the stipulated time.",
	"3. Subject to local jurisdiction only.",
}

// BuildInvoiceLayout arma la página de una factura a partir de sus datos resueltos.
// Es una función pura: mismos datos, misma lista de instrucciones.
func BuildInvoiceLayout(doc *billing.InvoiceDocument) (*Layout, error) {
	if doc == nil || doc.Invoice == nil || doc.Client == nil || doc.Business == nil {
		return nil, errors.New("pdf: documento incompleto")
	}
	if len(doc.Lines) > TableCapacity {
		return nil, fmt.Errorf("%w: %d líneas, máximo %d", ErrTooManyItems, len(doc.Lines), TableCapacity)
	}

	l := NewLayout()
	if err := headerSection(l, doc); err != nil {
		return nil, err
	}
	metaSection(l, doc)
	partiesSection(l, doc)
	itemsSection(l, doc)
	taxSection(l, doc)
	if err := wordsSection(l, doc); err != nil {
		return nil, err
	}
	termsSection(l, doc)
	return l, nil
}

// ── 1. Cabecera ──────────────────────────────────────────────────────────────

func headerSection(l *Layout, doc *billing.InvoiceDocument) error {
	b := doc.Business
	l.Rect(marginX, headerTop, contentWidth, headerHeight)

	l.Text(Instruction{X: leftTextX, Y: headerGSTINY, Text: "GSTIN : " + strings.ToUpper(b.GSTIN),
		FontSize: fontBody, Style: StyleBold, Tag: "business.gstin"})
	l.Text(Instruction{X: copyLabelX, Y: copyLabelY, Text: "Original Copy", FontSize: fontBody})

	logo, imageType, err := b.LogoBytes()
	if err != nil {
		return fmt.Errorf("pdf: logo: %w", err)
	}
	if len(logo) > 0 {
		l.Image(logoX, logoY, logoSize, logoSize, logo, imageType)
	}

	centered := func(y float64, text string, size float64, style, tag string) {
		l.Text(Instruction{X: 0, Y: y, W: PageWidth, Text: text, FontSize: size, Style: style, Align: AlignCenter, Tag: tag})
	}
	centered(titleY, "TAX INVOICE", fontTitle, StyleUnderline, "")
	centered(businessNameY, b.Name, fontBusiness, StyleBold, "business.name")
	centered(streetY, b.Address.Street, fontBody, StyleRegular, "business.street")
	centered(cityY, fmt.Sprintf("%s, %s, %s", b.Address.City, b.Address.State, b.Address.Pincode), fontBody, StyleRegular, "business.city")
	centered(contactY, fmt.Sprintf("Tel: %s  email: %s", b.Phone, b.Email), fontBody, StyleRegular, "business.contact")
	return nil
}

// ── 2. Datos de la factura y transporte ──────────────────────────────────────

func metaSection(l *Layout, doc *billing.InvoiceDocument) {
	inv := doc.Invoice
	l.Rect(marginX, metaTop, contentWidth, metaHeight)
	l.Line(midX, metaTop, midX, metaTop+metaHeight)

	field := func(x float64, row int, label, value, tag string) {
		y := metaRowStart + float64(row)*metaRowStep
		l.Text(Instruction{X: x, Y: y, Text: label, FontSize: fontBody})
		l.Text(Instruction{X: x + metaColonDX, Y: y, Text: ":", FontSize: fontBody})
		l.Text(Instruction{X: x + metaValueDX, Y: y, Text: value, FontSize: fontBody, Tag: tag})
	}
	field(leftTextX, 0, "Invoice No.", inv.InvoiceNumber, "invoice.number")
	field(leftTextX, 1, "Dated", timeutil.FormatDisplayDate(inv.Date), "invoice.date")
	field(leftTextX, 2, "Place of Supply", inv.PlaceOfSupply, "invoice.place_of_supply")

	field(rightTextX, 0, "GR/RR No.", inv.Transport.GRNumber, "transport.gr_number")
	field(rightTextX, 1, "Transport", inv.Transport.TransportName, "transport.name")
	field(rightTextX, 2, "Vehicle No.", inv.Transport.VehicleNumber, "transport.vehicle")
}

// ── 3. Facturado a / Enviado a ───────────────────────────────────────────────

// El mismo cliente aparece en ambas columnas.
func partiesSection(l *Layout, doc *billing.InvoiceDocument) {
	l.Rect(marginX, partiesTop, contentWidth, partiesHeight)
	l.Line(midX, partiesTop, midX, partiesTop+partiesHeight)

	address := doc.Client.AddressLines()
	gstin := "GSTIN/UIN : " + strings.ToUpper(doc.Client.GSTIN)
	for _, party := range []struct {
		x     float64
		title string
		tag   string
	}{
		{leftTextX, "Billed to:", "billed"},
		{rightTextX, "Shipped to:", "shipped"},
	} {
		l.Text(Instruction{X: party.x, Y: partiesTop + sectionTextDY, Text: party.title, FontSize: fontBody, Style: StyleBold})
		for i, line := range address {
			l.Text(Instruction{X: party.x, Y: partiesAddressY + float64(i)*lineHeight, Text: line,
				FontSize: fontBody, Tag: party.tag + ".address"})
		}
		l.Text(Instruction{X: party.x, Y: partiesGSTINY, Text: gstin, FontSize: fontBody, Tag: party.tag + ".gstin"})
	}
}

// ── 4–5. Tabla de artículos y totales ────────────────────────────────────────

func itemsSection(l *Layout, doc *billing.InvoiceDocument) {
	inv := doc.Invoice
	l.Rect(marginX, tableTop, contentWidth, tableHeight)
	l.Rect(marginX, tableTop, contentWidth, tableHeaderH)
	for _, c := range itemColumns {
		l.Line(c.x, tableTop, c.x, tableTop+tableHeight)
	}

	for _, c := range itemColumns {
		for i, h := range c.header {
			l.Text(Instruction{
				X: c.x + tableCellPadding, Y: tableTop + tableHeaderDY + float64(i)*lineHeight*headerLineScale, W: c.w - 2*tableCellPadding,
				Text: h, FontSize: fontTable, Style: StyleBold, Align: AlignCenter,
			})
		}
	}

	// Sin líneas horizontales entre filas.
	y := tableTop + tableHeaderH
	for i, dl := range doc.Lines {
		values := []struct{ text, tag string }{
			{fmt.Sprintf("%d", i+1), "item.serial"},
			{dl.Item.Name, "item.description"},
			{dl.Item.HSNCode, "item.hsn"},
			{dl.Line.Quantity.String(), "item.quantity"},
			{dl.Item.Unit, "item.unit"},
			{dl.Line.Price.StringFixed(2), "item.price"},
			{DiscountPlaceholder, "item.discount"},
			{dl.Line.Total.StringFixed(2), "item.amount"},
		}
		for ci, v := range values {
			c := itemColumns[ci]
			l.Text(Instruction{
				X: c.x + tableCellPadding, Y: y + tableTextDY, W: c.w - 2*tableCellPadding,
				Text: v.text, FontSize: fontTable, Align: c.align, Tag: v.tag,
			})
		}
		y += tableRowHeight
	}

	totalsY := tableTop + totalsOffset
	amountCol := itemColumns[len(itemColumns)-1]
	amount := func(y float64, text, tag string) {
		l.Text(Instruction{X: amountCol.x + tableCellPadding, Y: y, W: amountCol.w - 2*tableCellPadding,
			Text: text, FontSize: fontTable, Align: AlignRight, Tag: tag})
	}

	l.Line(marginX, totalsY, rightEdge, totalsY)
	l.Text(Instruction{X: igstLabelX, Y: totalsY + sectionTextDY, Text: "Add : IGST", FontSize: fontTable})
	l.Text(Instruction{X: igstRateX, Y: totalsY + sectionTextDY, Text: "@ " + inv.TaxRate.String() + "%", FontSize: fontTable, Tag: "total.rate"})
	amount(totalsY+sectionTextDY, inv.TotalTax.StringFixed(2), "total.tax")

	l.Line(marginX, totalsY+totalsLineGap, rightEdge, totalsY+totalsLineGap)
	l.Text(Instruction{X: grandTotalX, Y: totalsY + grandTotalDY, Text: "Grand Total", FontSize: fontTable, Style: StyleBold})
	amount(totalsY+grandTotalDY, inv.Total.StringFixed(2), "total.grand")
}

// ── 6. Desglose de impuestos ─────────────────────────────────────────────────

func taxSection(l *Layout, doc *billing.InvoiceDocument) {
	inv := doc.Invoice
	taxY := tableTop + taxBoxOffset
	l.Rect(marginX, taxY, contentWidth, taxBoxHeight)

	cols := []struct {
		x            float64
		label, value string
		tag          string
	}{
		{leftTextX, "Tax Rate", inv.TaxRate.String() + "%", "tax.rate"},
		{taxTaxableX, "Taxable Amt.", inv.Subtotal.StringFixed(2), "tax.taxable"},
		{taxIGSTX, "IGST Amt.", inv.TotalTax.StringFixed(2), "tax.igst"},
		{taxTotalX, "Total Tax", inv.TotalTax.StringFixed(2), "tax.total"},
	}
	for _, c := range cols {
		l.Text(Instruction{X: c.x, Y: taxY + sectionTextDY, Text: c.label, FontSize: fontTable, Style: StyleBold})
		l.Text(Instruction{X: c.x, Y: taxY + taxValueDY, Text: c.value, FontSize: fontTable, Tag: c.tag})
	}
}

// ── 7. Importe en letras ─────────────────────────────────────────────────────

func wordsSection(l *Layout, doc *billing.InvoiceDocument) error {
	wordsY := tableTop + taxBoxOffset + taxBoxHeight
	words, err := numwords.Rupees(doc.Invoice.Total)
	if err != nil {
		return fmt.Errorf("pdf: importe en letras: %w", err)
	}
	l.Rect(marginX, wordsY, contentWidth, wordsHeight)
	l.Text(Instruction{X: leftTextX, Y: wordsY + wordsTextDY, Text: words, FontSize: fontTable, Tag: "total.words"})
	return nil
}

// ── 8. Condiciones y firma ───────────────────────────────────────────────────

func termsSection(l *Layout, doc *billing.InvoiceDocument) {
	termsY := tableTop + taxBoxOffset + taxBoxHeight + wordsHeight
	l.Rect(marginX, termsY, contentWidth, termsHeight)
	l.Line(midX, termsY, midX, termsY+termsHeight)

	for i, t := range boilerplateTerms {
		l.Text(Instruction{X: leftTextX, Y: termsY + sectionTextDY + float64(i)*termsLineStep, Text: t, FontSize: fontTable})
	}

	signatureW := rightEdge - rightTextX - signatureRightPad
	l.Text(Instruction{X: rightTextX, Y: termsY + sectionTextDY, Text: "Receiver's Signature :", FontSize: fontTable})
	l.Line(midX, termsY+signatureSplit, rightEdge, termsY+signatureSplit)
	l.Text(Instruction{X: rightTextX, Y: termsY + signatureNameDY, W: signatureW, Text: "for " + doc.Business.Name,
		FontSize: fontTable, Style: StyleBold, Align: AlignRight, Tag: "signature.business"})
	l.Text(Instruction{X: rightTextX, Y: termsY + signatoryDY, W: signatureW, Text: "Authorised Signatory",
		FontSize: fontTable, Align: AlignRight})
}
