package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
	"github.com/jhoicas/facturacion-gst/internal/domain/repository"
)

var _ billing.InvoiceTxRunner = (*TxRunner)(nil)

// invoiceNumberLockKey clave del advisory lock que serializa la numeración.
const invoiceNumberLockKey int64 = 0x494e56 // "INV"

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice abre una transacción, toma el advisory lock de numeración y ejecuta fn
// con un repositorio de facturas atado a la tx. Leer la última factura y escribir la nueva
// queda serializado entre peticiones; el lock se libera con Commit o Rollback.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, invoiceNumberLockKey); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}

	if err := fn(NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
