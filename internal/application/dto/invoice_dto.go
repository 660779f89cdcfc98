package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransportDTO datos de transporte (GR/RR, transportista, vehículo).
type TransportDTO struct {
	GRNumber      string `json:"gr_number,omitempty"`
	TransportName string `json:"transport_name,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

// InvoiceItemRequest línea de factura (artículo, cantidad, precio unitario).
type InvoiceItemRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Los totales son los declarados por el cliente; se validan contra los recalculados.
// tax_rate se acepta por compatibilidad pero siempre se deriva de sale_type.
// Date y DueDate aceptan YYYY-MM-DD o RFC3339.
type CreateInvoiceRequest struct {
	ClientID           string               `json:"client_id" validate:"required"`
	Date               string               `json:"date,omitempty"`
	DueDate            string               `json:"due_date,omitempty"`
	SaleType           string               `json:"sale_type" validate:"required"`
	TaxRate            *decimal.Decimal     `json:"tax_rate,omitempty"`
	Items              []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Subtotal           *decimal.Decimal     `json:"subtotal" validate:"required"`
	TotalTax           *decimal.Decimal     `json:"total_tax" validate:"required"`
	Total              *decimal.Decimal     `json:"total" validate:"required"`
	Status             string               `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid cancelled"`
	Notes              string               `json:"notes,omitempty"`
	TermsAndConditions string               `json:"terms_and_conditions,omitempty"`
	PlaceOfSupply      string               `json:"place_of_supply,omitempty"`
	Transport          TransportDTO         `json:"transport"`
}

// UpdateInvoiceRequest body para PATCH /api/invoices/:id. Solo se aplican los campos presentes.
// Si cambian las líneas o el tipo de venta, los totales declarados deben acompañar el cambio.
type UpdateInvoiceRequest struct {
	ClientID           *string              `json:"client_id"`
	Date               *string              `json:"date"`
	DueDate            *string              `json:"due_date"`
	SaleType           *string              `json:"sale_type"`
	Items              []InvoiceItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Subtotal           *decimal.Decimal     `json:"subtotal"`
	TotalTax           *decimal.Decimal     `json:"total_tax"`
	Total              *decimal.Decimal     `json:"total"`
	Status             *string              `json:"status" validate:"omitempty,oneof=draft sent paid cancelled"`
	Notes              *string              `json:"notes"`
	TermsAndConditions *string              `json:"terms_and_conditions"`
	PlaceOfSupply      *string              `json:"place_of_supply"`
	Transport          *TransportDTO        `json:"transport"`
}

// InvoiceItemResponse línea con el artículo resuelto (nil si fue eliminado).
type InvoiceItemResponse struct {
	ID       string                 `json:"id"`
	ItemID   string                 `json:"item_id"`
	Item     *InventoryItemResponse `json:"item,omitempty"`
	Quantity decimal.Decimal        `json:"quantity"`
	Price    decimal.Decimal        `json:"price"`
	Total    decimal.Decimal        `json:"total"`
}

// InvoiceResponse factura con cliente y artículos resueltos.
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	InvoiceNumber      string                `json:"invoice_number"`
	ClientID           string                `json:"client_id"`
	Client             *ClientResponse       `json:"client,omitempty"`
	Date               time.Time             `json:"date"`
	DueDate            time.Time             `json:"due_date"`
	SaleType           string                `json:"sale_type"`
	TaxRate            decimal.Decimal       `json:"tax_rate"`
	Items              []InvoiceItemResponse `json:"items"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	TotalTax           decimal.Decimal       `json:"total_tax"`
	Total              decimal.Decimal       `json:"total"`
	Status             string                `json:"status"`
	Notes              string                `json:"notes,omitempty"`
	TermsAndConditions string                `json:"terms_and_conditions,omitempty"`
	PlaceOfSupply      string                `json:"place_of_supply,omitempty"`
	Transport          TransportDTO          `json:"transport"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
