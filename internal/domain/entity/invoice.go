package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleType clasificación de venta; determina la tasa de impuesto de la factura.
type SaleType string

// Tipos de venta reconocidos.
const (
	SaleTypeCentral5  SaleType = "Central - 5%"
	SaleTypeCentral18 SaleType = "Central - 18%"
	SaleTypeCentral28 SaleType = "Central - 28%"
)

// DefaultTaxRate tasa aplicada cuando el tipo de venta no es reconocido.
var DefaultTaxRate = decimal.NewFromInt(18)

var saleTypeRates = map[SaleType]decimal.Decimal{
	SaleTypeCentral5:  decimal.NewFromInt(5),
	SaleTypeCentral18: decimal.NewFromInt(18),
	SaleTypeCentral28: decimal.NewFromInt(28),
}

// TaxRate devuelve la tasa asociada y si el tipo es reconocido.
func (s SaleType) TaxRate() (decimal.Decimal, bool) {
	rate, ok := saleTypeRates[s]
	return rate, ok
}

// InvoiceStatus estado del ciclo de vida de una factura.
type InvoiceStatus string

// Estados de factura.
const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Transiciones permitidas: draft -> sent -> paid | cancelled, y draft -> cancelled.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft: {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:  {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// Valid indica si el estado pertenece al conjunto conocido.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo indica si el cambio s -> next está permitido. Mantener el mismo estado siempre lo está.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range invoiceTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransportDetails datos de transporte impresos en la cabecera (GR/RR, transportista, vehículo).
type TransportDetails struct {
	GRNumber      string
	TransportName string
	VehicleNumber string
}

// Invoice representa una factura con sus líneas embebidas.
type Invoice struct {
	ID                 string
	InvoiceNumber      string // INV + YY + MM + secuencia de 4 dígitos; se asigna una sola vez
	ClientID           string
	Date               time.Time
	DueDate            time.Time
	SaleType           SaleType
	TaxRate            decimal.Decimal
	Items              []InvoiceLineItem
	Subtotal           decimal.Decimal
	TotalTax           decimal.Decimal
	Total              decimal.Decimal
	Status             InvoiceStatus
	Notes              string
	TermsAndConditions string
	PlaceOfSupply      string
	Transport          TransportDetails
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ApplySaleType fija TaxRate según SaleType, ignorando cualquier tasa enviada por el cliente.
func (inv *Invoice) ApplySaleType() {
	if rate, ok := inv.SaleType.TaxRate(); ok {
		inv.TaxRate = rate
		return
	}
	inv.TaxRate = DefaultTaxRate
}

// ItemIDs devuelve los IDs de artículos referenciados, en orden de línea.
func (inv *Invoice) ItemIDs() []string {
	ids := make([]string, 0, len(inv.Items))
	for _, it := range inv.Items {
		ids = append(ids, it.ItemID)
	}
	return ids
}
