package pdf

// Libro de facturas en PDF con Maroto v2.
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa          │  INVOICE REGISTER + fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Fecha | Cliente | GSTIN | Estado | montos      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var indianEnglish = language.MustParse("en-IN")

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRegisterRenderer implementa billing.RegisterRenderer usando Maroto v2.
type MarotoRegisterRenderer struct {
	now func() string
}

// NewMarotoRegisterRenderer construye el generador.
func NewMarotoRegisterRenderer() *MarotoRegisterRenderer {
	return &MarotoRegisterRenderer{now: func() string { return timeutil.FormatDisplayDate(timeutil.Now()) }}
}

var _ billing.RegisterRenderer = (*MarotoRegisterRenderer)(nil)

// RenderRegister genera el libro y devuelve sus bytes.
func (g *MarotoRegisterRenderer) RenderRegister(ctx context.Context, businessName string, rows []billing.RegisterRow) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Invoice Register", true).
		WithAuthor(businessName, true).
		Build()

	m := maroto.New(cfg)
	p := message.NewPrinter(indianEnglish)

	m.AddRows(registerHeaderRow(businessName, g.now(), len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(registerTableHeaderRow())
	for _, r := range registerDetailRows(p, rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(registerTotalsRow(p, rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, &domain.RenderError{Op: "register", Err: fmt.Errorf("pdf: generar libro: %w", err)}
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func registerHeaderRow(businessName, generatedAt string, count int) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d invoices", count), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE REGISTER", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+generatedAt, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func registerTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Invoice No.", 2, align.Left),
		h("Date", 1, align.Center),
		h("Client", 3, align.Left),
		h("GSTIN", 2, align.Left),
		h("Status", 1, align.Center),
		h("Taxable", 1, align.Right),
		h("Tax", 1, align.Right),
		h("Total", 1, align.Right),
	)
}

func registerDetailRows(p *message.Printer, rows []billing.RegisterRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			cell(r.InvoiceNumber, 2, align.Left),
			cell(timeutil.FormatDisplayDate(r.Date), 1, align.Center),
			cell(nonEmpty(r.ClientName, "-"), 3, align.Left),
			cell(nonEmpty(r.ClientGSTIN, "-"), 2, align.Left),
			cell(r.Status, 1, align.Center),
			cell(formatRupees(p, r.Subtotal), 1, align.Right),
			cell(formatRupees(p, r.TotalTax), 1, align.Right),
			cell(formatRupees(p, r.Total), 1, align.Right),
		))
	}
	return result
}

func registerTotalsRow(p *message.Printer, rows []billing.RegisterRow) core.Row {
	var subtotal, tax, total decimal.Decimal
	for _, r := range rows {
		subtotal = subtotal.Add(r.Subtotal)
		tax = tax.Add(r.TotalTax)
		total = total.Add(r.Total)
	}
	bold := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		col.New(6),
		bold("TOTAL", 3, align.Right),
		bold(formatRupees(p, subtotal), 1, align.Right),
		bold(formatRupees(p, tax), 1, align.Right),
		bold(formatRupees(p, total), 1, align.Right),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatRupees agrupa al estilo indio (1,23,456.00) con dos decimales.
func formatRupees(p *message.Printer, d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return p.Sprint(number.Decimal(f, number.Scale(2)))
}
