package repository

import (
	"context"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// Los Get devuelven (nil, nil) cuando el registro no existe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByGSTIN(ctx context.Context, gstin string) (*entity.Client, error)
	// List ordena por fecha de creación descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
}
