package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Create y Update escriben varias sentencias: llamar dentro de una transacción.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, client_id, date, due_date, sale_type, tax_rate,
	subtotal, total_tax, total, status, notes, terms_and_conditions, place_of_supply,
	gr_number, transport_name, vehicle_number, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var saleType, status string
	if err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.Date, &inv.DueDate, &saleType, &inv.TaxRate,
		&inv.Subtotal, &inv.TotalTax, &inv.Total, &status, &inv.Notes, &inv.TermsAndConditions, &inv.PlaceOfSupply,
		&inv.Transport.GRNumber, &inv.Transport.TransportName, &inv.Transport.VehicleNumber,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	inv.SaleType = entity.SaleType(saleType)
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}

// Create persiste la cabecera y sus líneas.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.ClientID, inv.Date, inv.DueDate, string(inv.SaleType), inv.TaxRate,
		inv.Subtotal, inv.TotalTax, inv.Total, string(inv.Status), inv.Notes, inv.TermsAndConditions, inv.PlaceOfSupply,
		inv.Transport.GRNumber, inv.Transport.TransportName, inv.Transport.VehicleNumber,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura %s ya existe: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertItems(ctx, inv)
}

func (r *InvoiceRepo) insertItems(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, item_id, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range inv.Items {
		line := &inv.Items[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		if _, err := r.q.Exec(ctx, query,
			line.ID, inv.ID, i, line.ItemID, line.Quantity, line.Price, line.Total,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// Update reemplaza la cabecera y todas las líneas. El número no se modifica.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET client_id = $2, date = $3, due_date = $4, sale_type = $5, tax_rate = $6,
			subtotal = $7, total_tax = $8, total = $9, status = $10, notes = $11,
			terms_and_conditions = $12, place_of_supply = $13,
			gr_number = $14, transport_name = $15, vehicle_number = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.ClientID, inv.Date, inv.DueDate, string(inv.SaleType), inv.TaxRate,
		inv.Subtotal, inv.TotalTax, inv.Total, string(inv.Status), inv.Notes,
		inv.TermsAndConditions, inv.PlaceOfSupply,
		inv.Transport.GRNumber, inv.Transport.TransportName, inv.Transport.VehicleNumber, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("factura", inv.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return r.insertItems(ctx, inv)
}

// GetByID obtiene una factura completa (cabecera + líneas) por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// Latest devuelve la última factura por fecha de creación, sin líneas (solo se usa el número).
func (r *InvoiceRepo) Latest(ctx context.Context) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest invoice: %w", err)
	}
	return inv, nil
}

// List lista facturas con sus líneas, las más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems completa las líneas de varias facturas con una sola consulta.
func (r *InvoiceRepo) loadItems(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Invoice, len(invoices))
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, invoice_id, item_id, quantity, price, total
		FROM invoice_items WHERE invoice_id = ANY($1::uuid[])
		ORDER BY invoice_id, position`, ids)
	if err != nil {
		return fmt.Errorf("get invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.InvoiceLineItem
		var invoiceID string
		if err := rows.Scan(&line.ID, &invoiceID, &line.ItemID, &line.Quantity, &line.Price, &line.Total); err != nil {
			return fmt.Errorf("scan invoice item: %w", err)
		}
		if inv, ok := byID[invoiceID]; ok {
			inv.Items = append(inv.Items, line)
		}
	}
	return rows.Err()
}

// Delete elimina la factura; las líneas caen en cascada.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.NotFound("factura", id)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("factura", id)
	}
	return nil
}
