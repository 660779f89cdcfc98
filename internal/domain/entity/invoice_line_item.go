package entity

import "github.com/shopspring/decimal"

// InvoiceLineItem línea de factura: referencia a un InventoryItem con cantidad y precio unitario.
// Total = Price * Quantity redondeado a 2 decimales; se recalcula en cada persistencia.
type InvoiceLineItem struct {
	ID       string
	ItemID   string
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Total    decimal.Decimal
}
