package repository

import (
	"context"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create inserta la factura con sus líneas. Número duplicado -> domain.ErrDuplicate.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update reemplaza cabecera y líneas.
	Update(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// Latest devuelve la factura creada más recientemente (por created_at), o nil.
	Latest(ctx context.Context) (*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	Delete(ctx context.Context, id string) error
}
