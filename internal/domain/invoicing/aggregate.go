package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

// LatestFunc devuelve la última factura creada (nil si no hay ninguna).
// Solo se invoca cuando la factura aún no tiene número.
type LatestFunc func() (*entity.Invoice, error)

// PrepareForPersist aplica las reglas de escritura sobre inv, en orden:
//  1. tasa según tipo de venta
//  2. número (solo si falta; nunca se reasigna)
//  3. chequeos estructurales y total por línea
//  4. validación de totales declarados
//
// Se ejecuta en cada persistencia, tanto al crear como al actualizar.
func PrepareForPersist(inv *entity.Invoice, latest LatestFunc, now time.Time) error {
	if inv == nil {
		return domain.NewValidationError("invoice", "factura requerida", nil)
	}

	if strings.TrimSpace(string(inv.SaleType)) == "" {
		return domain.NewValidationError("saleType", "tipo de venta requerido", nil)
	}
	inv.ApplySaleType()

	if inv.InvoiceNumber == "" {
		last, err := latest()
		if err != nil {
			return fmt.Errorf("invoicing: última factura: %w", err)
		}
		number, err := NextInvoiceNumber(last, now)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
	}

	if err := checkStructure(inv); err != nil {
		return err
	}
	for i := range inv.Items {
		inv.Items[i].Total = LineTotal(inv.Items[i].Price, inv.Items[i].Quantity)
	}

	return ValidateTotals(inv.Items, inv.TaxRate, Totals{
		Subtotal: inv.Subtotal,
		TotalTax: inv.TotalTax,
		Total:    inv.Total,
	})
}

func checkStructure(inv *entity.Invoice) error {
	if strings.TrimSpace(inv.ClientID) == "" {
		return domain.NewValidationError("client", "cliente requerido", nil)
	}
	if len(inv.Items) == 0 {
		return domain.NewValidationError("items", "la factura debe tener al menos una línea", nil)
	}
	if inv.DueDate.IsZero() {
		return domain.NewValidationError("dueDate", "fecha de vencimiento requerida", nil)
	}
	if !inv.Status.Valid() {
		return domain.NewValidationError("status", "estado inválido", map[string]any{"status": string(inv.Status)})
	}
	for i, it := range inv.Items {
		if strings.TrimSpace(it.ItemID) == "" {
			return domain.NewValidationError(fmt.Sprintf("items[%d].item", i), "artículo requerido", nil)
		}
		if it.Quantity.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "la cantidad no puede ser negativa", nil)
		}
		if it.Price.IsNegative() {
			return domain.NewValidationError(fmt.Sprintf("items[%d].price", i), "el precio no puede ser negativo", nil)
		}
	}
	return nil
}

// TransitionStatus cambia el estado si la transición está permitida.
func TransitionStatus(inv *entity.Invoice, to entity.InvoiceStatus) error {
	if !to.Valid() {
		return domain.NewValidationError("status", "estado inválido", map[string]any{"status": string(to)})
	}
	if !inv.Status.CanTransitionTo(to) {
		return domain.NewValidationError("status", "transición de estado no permitida", map[string]any{
			"from": string(inv.Status),
			"to":   string(to),
		})
	}
	inv.Status = to
	return nil
}
