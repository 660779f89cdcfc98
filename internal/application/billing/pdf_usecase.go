package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

// PDFOptions límites del render.
type PDFOptions struct {
	MaxConcurrent int64
	CacheTTL      time.Duration
}

// PDFUseCase genera la factura imprimible (A4, una página).
// El render es una función pura de (factura, cliente, artículos, perfil): no persiste nada.
type PDFUseCase struct {
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	items    repository.InventoryItemRepository
	business repository.BusinessProfileRepository
	renderer InvoiceRenderer
	cache    DocumentCache
	metrics  RenderMetrics
	sem      *semaphore.Weighted
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewPDFUseCase construye el caso de uso. cache y metrics pueden ser nil.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	items repository.InventoryItemRepository,
	business repository.BusinessProfileRepository,
	renderer InvoiceRenderer,
	cache DocumentCache,
	metrics RenderMetrics,
	opts PDFOptions,
	log *logger.Logger,
) *PDFUseCase {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	return &PDFUseCase{
		invoices: invoices,
		clients:  clients,
		items:    items,
		business: business,
		renderer: renderer,
		cache:    cache,
		metrics:  metrics,
		sem:      semaphore.NewWeighted(opts.MaxConcurrent),
		cacheTTL: opts.CacheTTL,
		log:      log.Component("pdf"),
	}
}

// InvoiceFilename nombre de descarga: invoice-<número>.pdf.
func InvoiceFilename(invoiceNumber string) string {
	return "invoice-" + invoiceNumber + ".pdf"
}

// DownloadInvoicePDF resuelve los datos de la factura y devuelve el PDF completo.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si falta la factura, el cliente, algún artículo o el perfil de empresa.
//   - *domain.RenderError        si el motor de documentos falla.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	start := time.Now()

	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.NotFound("factura", invoiceID)
	}
	filename = InvoiceFilename(inv.InvoiceNumber)

	// ── 2. Cliente, artículos y perfil ────────────────────────────────────────
	doc, err := uc.loadDocument(ctx, inv)
	if err != nil {
		return nil, "", err
	}

	// ── 3. Caché (clave ligada a la última modificación de cada entrada) ──────
	key := cacheKey(doc)
	if cached, ok := uc.cacheGet(ctx, key); ok {
		uc.observe(RenderOutcomeCacheHit, start)
		return cached, filename, nil
	}

	// ── 4. Render acotado por el semáforo ─────────────────────────────────────
	if err := uc.sem.Acquire(ctx, 1); err != nil {
		return nil, "", fmt.Errorf("pdf: esperar turno de render: %w", err)
	}
	pdfBytes, err = uc.renderer.RenderInvoice(ctx, doc)
	uc.sem.Release(1)
	if err != nil {
		uc.observe(RenderOutcomeError, start)
		var rErr *domain.RenderError
		if !errors.As(err, &rErr) {
			err = &domain.RenderError{Op: "invoice", Err: err}
		}
		uc.log.Error().Err(err).Str("invoice_id", invoiceID).Msg("fallo al generar PDF")
		return nil, "", err
	}

	uc.cacheSet(ctx, key, pdfBytes)
	uc.observe(RenderOutcomeOK, start)
	uc.log.Debug().
		Str("invoice_number", inv.InvoiceNumber).
		Int("bytes", len(pdfBytes)).
		Dur("elapsed", time.Since(start)).
		Msg("PDF generado")
	return pdfBytes, filename, nil
}

func (uc *PDFUseCase) loadDocument(ctx context.Context, inv *entity.Invoice) (*InvoiceDocument, error) {
	client, err := uc.clients.GetByID(ctx, inv.ClientID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, domain.NotFound("cliente", inv.ClientID)
	}

	itemsByID, err := uc.items.GetByIDs(ctx, inv.ItemIDs())
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener artículos: %w", err)
	}
	lines := make([]DocumentLine, 0, len(inv.Items))
	for _, l := range inv.Items {
		item, ok := itemsByID[l.ItemID]
		if !ok {
			return nil, domain.NotFound("artículo", l.ItemID)
		}
		lines = append(lines, DocumentLine{Line: l, Item: item})
	}

	business, err := uc.business.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener perfil de empresa: %w", err)
	}
	if business == nil {
		return nil, domain.NotFound("perfil de empresa", "")
	}

	return &InvoiceDocument{Invoice: inv, Client: client, Lines: lines, Business: business}, nil
}

// cacheKey identifica el documento por factura y por el updated_at de todo lo que se dibuja:
// factura, cliente, perfil de empresa y artículos en orden de línea.
func cacheKey(doc *InvoiceDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "invoice-pdf:%s:%d:%d:%d",
		doc.Invoice.ID,
		doc.Invoice.UpdatedAt.UnixNano(),
		doc.Client.UpdatedAt.UnixNano(),
		doc.Business.UpdatedAt.UnixNano(),
	)
	for _, l := range doc.Lines {
		fmt.Fprintf(&b, ":%d", l.Item.UpdatedAt.UnixNano())
	}
	return b.String()
}

// cacheGet nunca falla hacia el cliente: un error de caché solo se registra.
func (uc *PDFUseCase) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if uc.cache == nil {
		return nil, false
	}
	data, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de PDF no disponible")
		return nil, false
	}
	return data, ok
}

func (uc *PDFUseCase) cacheSet(ctx context.Context, key string, data []byte) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el PDF en caché")
	}
}

func (uc *PDFUseCase) observe(outcome string, start time.Time) {
	if uc.metrics != nil {
		uc.metrics.ObserveRender(outcome, time.Since(start))
	}
}
