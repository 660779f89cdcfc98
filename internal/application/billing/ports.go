package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

// InvoiceTxRunner ejecuta fn dentro de una unidad de trabajo serializada para la numeración:
// leer la última factura y escribir la nueva no se intercalan con otra petición.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error
}

// DocumentLine línea de factura con su artículo resuelto.
type DocumentLine struct {
	Line entity.InvoiceLineItem
	Item *entity.InventoryItem
}

// InvoiceDocument datos completos para renderizar una factura.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Client   *entity.Client
	Lines    []DocumentLine
	Business *entity.BusinessProfile
}

// InvoiceRenderer genera el documento imprimible completo en memoria.
// Devuelve bytes solo si la generación terminó; nunca un documento parcial.
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// DocumentCache caché opcional de documentos renderizados.
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// RenderMetrics observa la duración y el resultado de cada render.
type RenderMetrics interface {
	ObserveRender(outcome string, elapsed time.Duration)
}

// Resultados de render para métricas.
const (
	RenderOutcomeOK       = "ok"
	RenderOutcomeCacheHit = "cache_hit"
	RenderOutcomeError    = "error"
)

// RegisterRow fila del libro de facturas.
type RegisterRow struct {
	InvoiceNumber string
	Date          time.Time
	ClientName    string
	ClientGSTIN   string
	SaleType      string
	Status        string
	Subtotal      decimal.Decimal
	TotalTax      decimal.Decimal
	Total         decimal.Decimal
}

// RegisterRenderer genera el libro de facturas en PDF.
type RegisterRenderer interface {
	RenderRegister(ctx context.Context, businessName string, rows []RegisterRow) ([]byte, error)
}

// RegisterExporter genera el libro de facturas en hoja de cálculo.
type RegisterExporter interface {
	ExportRegister(ctx context.Context, rows []RegisterRow) ([]byte, error)
}
