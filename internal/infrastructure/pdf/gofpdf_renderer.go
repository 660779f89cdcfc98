package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain"
)

const fontFamily = "Helvetica"

// GofpdfRenderer dibuja un Layout con gofpdf (unidad "pt", márgenes cero, sin salto de página).
// Implementa billing.InvoiceRenderer.
type GofpdfRenderer struct{}

// NewGofpdfRenderer construye el renderer.
func NewGofpdfRenderer() *GofpdfRenderer { return &GofpdfRenderer{} }

var _ billing.InvoiceRenderer = (*GofpdfRenderer)(nil)

// RenderInvoice arma el layout de la factura y devuelve el PDF completo.
// Solo devuelve bytes si el documento terminó de escribirse.
func (r *GofpdfRenderer) RenderInvoice(ctx context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layout, err := BuildInvoiceLayout(doc)
	if err != nil {
		return nil, &domain.RenderError{Op: "layout", Err: err}
	}
	var buf bytes.Buffer
	if err := r.Render(layout, &buf); err != nil {
		return nil, &domain.RenderError{Op: "invoice", Err: err}
	}
	return buf.Bytes(), nil
}

// Render escribe el layout en w como un PDF de una página.
func (r *GofpdfRenderer) Render(layout *Layout, w io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: layout.Width, Ht: layout.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetLineWidth(1)
	pdf.AddPage()

	// gofpdf con fuentes core espera cp1252
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	tr := func(s string) string {
		out, err := enc.String(s)
		if err != nil {
			return s
		}
		return out
	}

	images := 0
	for _, in := range layout.Instructions {
		switch in.Kind {
		case KindRect:
			pdf.Rect(in.X, in.Y, in.W, in.H, "D")
		case KindLine:
			pdf.Line(in.X, in.Y, in.X2, in.Y2)
		case KindText:
			pdf.SetFont(fontFamily, in.Style, in.FontSize)
			txt := tr(in.Text)
			width := in.W
			if width <= 0 {
				width = pdf.GetStringWidth(txt)
			}
			pdf.SetXY(in.X, in.Y)
			pdf.CellFormat(width, in.FontSize, txt, "", 0, string(in.Align)+"T", false, 0, "")
		case KindImage:
			images++
			name := fmt.Sprintf("img%d", images)
			opts := gofpdf.ImageOptions{ImageType: in.ImageType}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(in.Data))
			pdf.ImageOptions(name, in.X, in.Y, in.W, in.H, false, opts, 0, "")
		}
		if pdf.Err() {
			return fmt.Errorf("pdf: %s: %w", in.Kind, pdf.Error())
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}
