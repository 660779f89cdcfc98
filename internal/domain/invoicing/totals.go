package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-gst/internal/domain"
	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Totals agregados monetarios de una factura.
type Totals struct {
	Subtotal decimal.Decimal
	TotalTax decimal.Decimal
	Total    decimal.Decimal
}

// LineTotal precio * cantidad redondeado a 2 decimales.
func LineTotal(price, quantity decimal.Decimal) decimal.Decimal {
	return price.Mul(quantity).Round(moneyPlaces)
}

// ComputeTotals recalcula los totales a partir de las líneas.
// Subtotal = Σ precio*cantidad; impuesto = subtotal*tasa/100; total = subtotal+impuesto,
// todo sobre valores sin redondear. Solo el resultado se redondea a 2 decimales.
func ComputeTotals(items []entity.InvoiceLineItem, taxRate decimal.Decimal) Totals {
	raw := rawTotals(items, taxRate)
	return Totals{
		Subtotal: raw.Subtotal.Round(moneyPlaces),
		TotalTax: raw.TotalTax.Round(moneyPlaces),
		Total:    raw.Total.Round(moneyPlaces),
	}
}

func rawTotals(items []entity.InvoiceLineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Price.Mul(it.Quantity))
	}
	tax := subtotal.Mul(taxRate).Div(hundred)
	return Totals{Subtotal: subtotal, TotalTax: tax, Total: subtotal.Add(tax)}
}

// ValidateTotals compara los totales declarados con los recalculados (ambos redondeados a 2 decimales).
// Devuelve un *domain.ValidationError distinto por campo, con el valor calculado y el declarado.
func ValidateTotals(items []entity.InvoiceLineItem, taxRate decimal.Decimal, claimed Totals) error {
	raw := rawTotals(items, taxRate)

	checks := []struct {
		field    string
		message  string
		computed decimal.Decimal
		claimed  decimal.Decimal
	}{
		{"subtotal", "subtotal inválido", raw.Subtotal, claimed.Subtotal},
		{"totalTax", "impuesto total inválido", raw.TotalTax, claimed.TotalTax},
		{"total", "total inválido", raw.Total, claimed.Total},
	}
	for _, c := range checks {
		computed := c.computed.Round(moneyPlaces)
		if !computed.Equal(c.claimed.Round(moneyPlaces)) {
			return domain.NewValidationError(c.field, c.message, map[string]any{
				"computed": computed.StringFixed(moneyPlaces),
				"claimed":  c.claimed.StringFixed(moneyPlaces),
			})
		}
	}
	return nil
}
