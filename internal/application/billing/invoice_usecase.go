package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/application/dto"
	"github.com/jhoicas/facturacion-gst/internal/application/inventory"
	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/invoicing"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
	"github.com/jhoicas/facturacion-gst/pkg/logger"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

// DefaultPaymentTerm plazo de vencimiento cuando no se envía due_date.
const DefaultPaymentTerm = 30 * 24 * time.Hour

// InvoiceUseCase crea, actualiza y consulta facturas.
// Toda escritura pasa por invoicing.PrepareForPersist dentro de InvoiceTxRunner.
type InvoiceUseCase struct {
	txRunner InvoiceTxRunner
	invoices repository.InvoiceRepository
	clients  repository.ClientRepository
	items    repository.InventoryItemRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoices repository.InvoiceRepository,
	clients repository.ClientRepository,
	items repository.InventoryItemRepository,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner: txRunner,
		invoices: invoices,
		clients:  clients,
		items:    items,
		log:      log.Component("invoices"),
		now:      timeutil.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// Submit crea una factura: asigna número, fuerza la tasa según el tipo de venta
// y valida los totales declarados antes de persistir.
func (uc *InvoiceUseCase) Submit(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := uc.now()

	date := now
	if in.Date != "" {
		d, err := parseDate("date", in.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}
	dueDate := date.Add(DefaultPaymentTerm)
	if in.DueDate != "" {
		d, err := parseDate("dueDate", in.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = d
	}
	status := entity.InvoiceStatusDraft
	if in.Status != "" {
		status = entity.InvoiceStatus(in.Status)
	}

	inv := &entity.Invoice{
		ID:                 uuid.New().String(),
		ClientID:           strings.TrimSpace(in.ClientID),
		Date:               date,
		DueDate:            dueDate,
		SaleType:           entity.SaleType(strings.TrimSpace(in.SaleType)),
		Items:              toLineItems(in.Items),
		Subtotal:           deref(in.Subtotal),
		TotalTax:           deref(in.TotalTax),
		Total:              deref(in.Total),
		Status:             status,
		Notes:              in.Notes,
		TermsAndConditions: in.TermsAndConditions,
		PlaceOfSupply:      in.PlaceOfSupply,
		Transport:          toTransport(in.Transport),
	}

	client, itemsByID, err := uc.resolveReferences(ctx, inv)
	if err != nil {
		return nil, err
	}

	// created_at se fija dentro de la sección serializada para que "la última creada"
	// coincida con el orden de numeración
	err = uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository) error {
		stamp := uc.now()
		inv.CreatedAt, inv.UpdatedAt = stamp, stamp
		latest := func() (*entity.Invoice, error) { return invoices.Latest(ctx) }
		if err := invoicing.PrepareForPersist(inv, latest, stamp); err != nil {
			return err
		}
		return invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("total", inv.Total.StringFixed(2)).
		Msg("factura creada")

	resp := toInvoiceResponse(inv, client, itemsByID)
	return &resp, nil
}

// Update aplica un parche parcial. El número nunca cambia; los totales se revalidan siempre.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var (
		updated   *entity.Invoice
		client    *entity.Client
		itemsByID map[string]*entity.InventoryItem
	)
	now := uc.now()

	err := uc.txRunner.RunInvoice(ctx, func(invoices repository.InvoiceRepository) error {
		inv, err := invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NotFound("factura", id)
		}
		if err := applyPatch(inv, in); err != nil {
			return err
		}
		client, itemsByID, err = uc.resolveReferences(ctx, inv)
		if err != nil {
			return err
		}
		inv.UpdatedAt = now

		latest := func() (*entity.Invoice, error) { return invoices.Latest(ctx) }
		if err := invoicing.PrepareForPersist(inv, latest, now); err != nil {
			return err
		}
		if err := invoices.Update(ctx, inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_id", updated.ID).Str("status", string(updated.Status)).Msg("factura actualizada")
	resp := toInvoiceResponse(updated, client, itemsByID)
	return &resp, nil
}

func applyPatch(inv *entity.Invoice, in dto.UpdateInvoiceRequest) error {
	if in.ClientID != nil {
		inv.ClientID = strings.TrimSpace(*in.ClientID)
	}
	if in.Date != nil {
		d, err := parseDate("date", *in.Date)
		if err != nil {
			return err
		}
		inv.Date = d
	}
	if in.DueDate != nil {
		d, err := parseDate("dueDate", *in.DueDate)
		if err != nil {
			return err
		}
		inv.DueDate = d
	}
	if in.SaleType != nil {
		inv.SaleType = entity.SaleType(strings.TrimSpace(*in.SaleType))
	}
	if in.Items != nil {
		inv.Items = toLineItems(in.Items)
	}
	if in.Subtotal != nil {
		inv.Subtotal = *in.Subtotal
	}
	if in.TotalTax != nil {
		inv.TotalTax = *in.TotalTax
	}
	if in.Total != nil {
		inv.Total = *in.Total
	}
	if in.Status != nil {
		if err := invoicing.TransitionStatus(inv, entity.InvoiceStatus(*in.Status)); err != nil {
			return err
		}
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.TermsAndConditions != nil {
		inv.TermsAndConditions = *in.TermsAndConditions
	}
	if in.PlaceOfSupply != nil {
		inv.PlaceOfSupply = *in.PlaceOfSupply
	}
	if in.Transport != nil {
		inv.Transport = toTransport(*in.Transport)
	}
	return nil
}

// Get devuelve una factura con cliente y artículos resueltos.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound("factura", id)
	}
	list, err := uc.resolveMany(ctx, []*entity.Invoice{inv})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// List lista facturas, las más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoices.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items, err := uc.resolveMany(ctx, invoices)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}, nil
}

// Delete elimina una factura.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.invoices.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// resolveReferences verifica que el cliente y cada artículo existan.
func (uc *InvoiceUseCase) resolveReferences(ctx context.Context, inv *entity.Invoice) (*entity.Client, map[string]*entity.InventoryItem, error) {
	var client *entity.Client
	if inv.ClientID != "" {
		c, err := uc.clients.GetByID(ctx, inv.ClientID)
		if err != nil {
			return nil, nil, fmt.Errorf("obtener cliente: %w", err)
		}
		if c == nil {
			return nil, nil, domain.NotFound("cliente", inv.ClientID)
		}
		client = c
	}
	itemsByID, err := uc.items.GetByIDs(ctx, inv.ItemIDs())
	if err != nil {
		return nil, nil, fmt.Errorf("obtener artículos: %w", err)
	}
	for _, id := range inv.ItemIDs() {
		if id == "" {
			continue
		}
		if _, ok := itemsByID[id]; !ok {
			return nil, nil, domain.NotFound("artículo", id)
		}
	}
	return client, itemsByID, nil
}

// resolveMany arma las respuestas de lectura; referencias eliminadas quedan en nil.
func (uc *InvoiceUseCase) resolveMany(ctx context.Context, invoices []*entity.Invoice) ([]dto.InvoiceResponse, error) {
	clients := make(map[string]*entity.Client)
	var itemIDs []string
	for _, inv := range invoices {
		if _, seen := clients[inv.ClientID]; !seen {
			c, err := uc.clients.GetByID(ctx, inv.ClientID)
			if err != nil {
				return nil, fmt.Errorf("obtener cliente: %w", err)
			}
			clients[inv.ClientID] = c
		}
		itemIDs = append(itemIDs, inv.ItemIDs()...)
	}
	itemsByID, err := uc.items.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("obtener artículos: %w", err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv, clients[inv.ClientID], itemsByID))
	}
	return out, nil
}

// parseDate acepta YYYY-MM-DD (en IST) o RFC3339.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(timeutil.DateLayout, s, timeutil.IST); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError(field, "fecha inválida, use YYYY-MM-DD o RFC3339", map[string]any{"value": s})
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toLineItems(in []dto.InvoiceItemRequest) []entity.InvoiceLineItem {
	out := make([]entity.InvoiceLineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.InvoiceLineItem{
			ItemID:   strings.TrimSpace(it.ItemID),
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return out
}

func toTransport(t dto.TransportDTO) entity.TransportDetails {
	return entity.TransportDetails{
		GRNumber:      t.GRNumber,
		TransportName: t.TransportName,
		VehicleNumber: t.VehicleNumber,
	}
}

func toInvoiceResponse(inv *entity.Invoice, client *entity.Client, itemsByID map[string]*entity.InventoryItem) dto.InvoiceResponse {
	lines := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, l := range inv.Items {
		line := dto.InvoiceItemResponse{
			ID:       l.ID,
			ItemID:   l.ItemID,
			Quantity: l.Quantity,
			Price:    l.Price,
			Total:    l.Total,
		}
		if it, ok := itemsByID[l.ItemID]; ok && it != nil {
			r := inventory.ToItemResponse(it)
			line.Item = &r
		}
		lines = append(lines, line)
	}
	resp := dto.InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		ClientID:           inv.ClientID,
		Date:               inv.Date,
		DueDate:            inv.DueDate,
		SaleType:           string(inv.SaleType),
		TaxRate:            inv.TaxRate,
		Items:              lines,
		Subtotal:           inv.Subtotal,
		TotalTax:           inv.TotalTax,
		Total:              inv.Total,
		Status:             string(inv.Status),
		Notes:              inv.Notes,
		TermsAndConditions: inv.TermsAndConditions,
		PlaceOfSupply:      inv.PlaceOfSupply,
		Transport: dto.TransportDTO{
			GRNumber:      inv.Transport.GRNumber,
			TransportName: inv.Transport.TransportName,
			VehicleNumber: inv.Transport.VehicleNumber,
		},
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
	if client != nil {
		c := ToClientResponse(client)
		resp.Client = &c
	}
	return resp
}
