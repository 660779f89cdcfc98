package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

// registerMaxRows tope de facturas por libro exportado.
const registerMaxRows = 10000

// ReportUseCase genera el libro de facturas (PDF y XLSX).
type ReportUseCase struct {
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	business repository.BusinessProfileRepository
	pdf      RegisterRenderer
	xlsx     RegisterExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	business repository.BusinessProfileRepository,
	pdf RegisterRenderer,
	xlsx RegisterExporter,
) *ReportUseCase {
	return &ReportUseCase{invoices: invoices, clients: clients, business: business, pdf: pdf, xlsx: xlsx}
}

// RegisterPDF libro de facturas en PDF.
func (uc *ReportUseCase) RegisterPDF(ctx context.Context) ([]byte, string, error) {
	rows, err := uc.rows(ctx)
	if err != nil {
		return nil, "", err
	}
	name := ""
	if b, err := uc.business.Get(ctx); err == nil && b != nil {
		name = b.Name
	}
	data, err := uc.pdf.RenderRegister(ctx, name, rows)
	if err != nil {
		return nil, "", err
	}
	return data, registerFilename("pdf"), nil
}

// RegisterXLSX libro de facturas en Excel.
func (uc *ReportUseCase) RegisterXLSX(ctx context.Context) ([]byte, string, error) {
	rows, err := uc.rows(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xlsx.ExportRegister(ctx, rows)
	if err != nil {
		return nil, "", err
	}
	return data, registerFilename("xlsx"), nil
}

func registerFilename(ext string) string {
	return fmt.Sprintf("invoice-register-%s.%s", timeutil.Now().Format(timeutil.DateLayout), ext)
}

// rows arma las filas del libro, las más recientes primero.
func (uc *ReportUseCase) rows(ctx context.Context) ([]RegisterRow, error) {
	list, err := uc.invoices.List(ctx, registerMaxRows, 0)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	names := make(map[string][2]string)
	rows := make([]RegisterRow, 0, len(list))
	for _, inv := range list {
		info, seen := names[inv.ClientID]
		if !seen {
			c, err := uc.clients.GetByID(ctx, inv.ClientID)
			if err != nil {
				return nil, fmt.Errorf("obtener cliente: %w", err)
			}
			if c != nil {
				info = [2]string{c.Name, c.GSTIN}
			}
			names[inv.ClientID] = info
		}
		rows = append(rows, RegisterRow{
			InvoiceNumber: inv.InvoiceNumber,
			Date:          inv.Date,
			ClientName:    info[0],
			ClientGSTIN:   info[1],
			SaleType:      string(inv.SaleType),
			Status:        string(inv.Status),
			Subtotal:      inv.Subtotal,
			TotalTax:      inv.TotalTax,
			Total:         inv.Total,
		})
	}
	return rows, nil
}
