package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var (
	_ repository.ClientRepository          = (*ClientRepo)(nil)
	_ repository.InventoryItemRepository   = (*InventoryItemRepo)(nil)
	_ repository.BusinessProfileRepository = (*BusinessProfileRepo)(nil)
	_ repository.InvoiceRepository         = (*InvoiceRepo)(nil)
)

// ── Clientes ─────────────────────────────────────────────────────────────────

// ClientRepo clientes en memoria. Email y GSTIN únicos.
type ClientRepo struct{ s *Store }

func (r *ClientRepo) conflicts(c *entity.Client) bool {
	for id, rec := range r.s.clients {
		if id == c.ID {
			continue
		}
		if rec.value.Email == c.Email || rec.value.GSTIN == c.GSTIN {
			return true
		}
	}
	return false
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if r.conflicts(c) {
		return domain.ErrDuplicate
	}
	r.s.clients[c.ID] = record[entity.Client]{seq: r.s.next(), value: *c}
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	c := rec.value
	return &c, nil
}

func (r *ClientRepo) GetByGSTIN(_ context.Context, gstin string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.clients {
		if rec.value.GSTIN == gstin {
			c := rec.value
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	r.s.mu.RLock()
	recs := make([]record[entity.Client], 0, len(r.s.clients))
	for _, rec := range r.s.clients {
		recs = append(recs, rec)
	}
	r.s.mu.RUnlock()

	sorted := page(newestFirst(recs, func(c *entity.Client) time.Time { return c.CreatedAt }), limit, offset)
	out := make([]*entity.Client, len(sorted))
	for i := range sorted {
		out[i] = &sorted[i]
	}
	return out, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.clients[c.ID]
	if !ok {
		return domain.NotFound("cliente", c.ID)
	}
	if r.conflicts(c) {
		return domain.ErrDuplicate
	}
	rec.value = *c
	r.s.clients[c.ID] = rec
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return domain.NotFound("cliente", id)
	}
	delete(r.s.clients, id)
	return nil
}

// ── Inventario ───────────────────────────────────────────────────────────────

// InventoryItemRepo artículos en memoria.
type InventoryItemRepo struct{ s *Store }

func (r *InventoryItemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if _, exists := r.s.items[it.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.items[it.ID] = record[entity.InventoryItem]{seq: r.s.next(), value: *it}
	return nil
}

func (r *InventoryItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	it := rec.value
	return &it, nil
}

func (r *InventoryItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.InventoryItem, len(ids))
	for _, id := range ids {
		if rec, ok := r.s.items[id]; ok {
			it := rec.value
			out[id] = &it
		}
	}
	return out, nil
}

func (r *InventoryItemRepo) List(_ context.Context, limit, offset int) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	recs := make([]record[entity.InventoryItem], 0, len(r.s.items))
	for _, rec := range r.s.items {
		recs = append(recs, rec)
	}
	r.s.mu.RUnlock()

	sorted := page(newestFirst(recs, func(it *entity.InventoryItem) time.Time { return it.CreatedAt }), limit, offset)
	out := make([]*entity.InventoryItem, len(sorted))
	for i := range sorted {
		out[i] = &sorted[i]
	}
	return out, nil
}

func (r *InventoryItemRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.items[it.ID]
	if !ok {
		return domain.NotFound("artículo", it.ID)
	}
	rec.value = *it
	r.s.items[it.ID] = rec
	return nil
}

// AdjustStock aplica delta bajo el lock; si el stock quedaría negativo no toca el artículo.
func (r *InventoryItemRepo) AdjustStock(_ context.Context, id string, delta int64) (*entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrInsufficientStock
	}
	if rec.value.Stock+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	rec.value.Stock += delta
	rec.value.UpdatedAt = time.Now()
	r.s.items[id] = rec
	it := rec.value
	return &it, nil
}

func (r *InventoryItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.NotFound("artículo", id)
	}
	delete(r.s.items, id)
	return nil
}

// ── Perfil de empresa ────────────────────────────────────────────────────────

// BusinessProfileRepo perfil único en memoria.
type BusinessProfileRepo struct{ s *Store }

func (r *BusinessProfileRepo) Get(_ context.Context) (*entity.BusinessProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.business == nil {
		return nil, nil
	}
	b := *r.s.business
	return &b, nil
}

func (r *BusinessProfileRepo) Create(_ context.Context, b *entity.BusinessProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.business != nil {
		return domain.ErrDuplicate
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	stored := *b
	r.s.business = &stored
	return nil
}

func (r *BusinessProfileRepo) Update(_ context.Context, b *entity.BusinessProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.business == nil || r.s.business.ID != b.ID {
		return domain.NotFound("perfil de empresa", b.ID)
	}
	stored := *b
	r.s.business = &stored
	return nil
}

// ── Facturas ─────────────────────────────────────────────────────────────────

// InvoiceRepo facturas en memoria. El número es único.
type InvoiceRepo struct{ s *Store }

func cloneInvoice(inv *entity.Invoice) entity.Invoice {
	out := *inv
	out.Items = append([]entity.InvoiceLineItem(nil), inv.Items...)
	return out
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	for _, rec := range r.s.invoices {
		if rec.value.InvoiceNumber == inv.InvoiceNumber {
			return fmt.Errorf("número de factura %s ya existe: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.New().String()
		}
	}
	r.s.invoices[inv.ID] = record[entity.Invoice]{seq: r.s.next(), value: cloneInvoice(inv)}
	return nil
}

func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.NotFound("factura", inv.ID)
	}
	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.New().String()
		}
	}
	number := rec.value.InvoiceNumber
	rec.value = cloneInvoice(inv)
	rec.value.InvoiceNumber = number
	r.s.invoices[inv.ID] = rec
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv := cloneInvoice(&rec.value)
	return &inv, nil
}

func (r *InvoiceRepo) sorted() []entity.Invoice {
	r.s.mu.RLock()
	recs := make([]record[entity.Invoice], 0, len(r.s.invoices))
	for _, rec := range r.s.invoices {
		recs = append(recs, record[entity.Invoice]{seq: rec.seq, value: cloneInvoice(&rec.value)})
	}
	r.s.mu.RUnlock()
	return newestFirst(recs, func(inv *entity.Invoice) time.Time { return inv.CreatedAt })
}

func (r *InvoiceRepo) Latest(_ context.Context) (*entity.Invoice, error) {
	list := r.sorted()
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r *InvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	list := page(r.sorted(), limit, offset)
	out := make([]*entity.Invoice, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[id]; !ok {
		return domain.NotFound("factura", id)
	}
	delete(r.s.invoices, id)
	return nil
}
