package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest body para POST /api/inventory.
type CreateInventoryItemRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code" validate:"max=20"`
	Unit        string          `json:"unit" validate:"max=20"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Stock       int64           `json:"stock" validate:"min=0"`
}

// UpdateInventoryItemRequest body para PATCH /api/inventory/:id.
type UpdateInventoryItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	HSNCode     *string          `json:"hsn_code" validate:"omitempty,max=20"`
	Unit        *string          `json:"unit" validate:"omitempty,max=20"`
	Price       *decimal.Decimal `json:"price"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	Stock       *int64           `json:"stock" validate:"omitempty,min=0"`
}

// AdjustStockRequest body para PATCH /api/inventory/:id/stock. Quantity es un delta con signo.
type AdjustStockRequest struct {
	Quantity *int64 `json:"quantity" validate:"required"`
}

// InventoryItemResponse artículo en respuestas.
type InventoryItemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Stock       int64           `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
