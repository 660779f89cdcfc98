package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/domain"
)

// InventoryItem representa un artículo del inventario. Stock nunca es negativo.
type InventoryItem struct {
	ID          string
	Name        string
	Description string
	HSNCode     string // código HSN/SAC de clasificación tributaria
	Unit        string // unidad de medida (Nos, Kg, Mtr...)
	Price       decimal.Decimal
	TaxRate     decimal.Decimal
	Stock       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockAfter calcula el stock resultante de aplicar delta sin modificar el artículo.
// Si el resultado sería negativo devuelve un ValidationError con el detalle.
func (i *InventoryItem) StockAfter(delta int64) (int64, error) {
	next := i.Stock + delta
	if next < 0 {
		return i.Stock, domain.NewValidationError("stock", "no se puede reducir el stock por debajo de 0", map[string]any{
			"current_stock":    i.Stock,
			"requested_change": delta,
			"resulting_stock":  next,
		})
	}
	return next, nil
}
