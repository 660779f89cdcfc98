package repository

import (
	"context"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetByIDs devuelve los artículos encontrados indexados por ID; los ausentes no aparecen.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.InventoryItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	// AdjustStock suma delta al stock solo si el resultado no queda negativo.
	// Devuelve el artículo actualizado; domain.ErrInsufficientStock si la condición falla.
	AdjustStock(ctx context.Context, id string, delta int64) (*entity.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}
