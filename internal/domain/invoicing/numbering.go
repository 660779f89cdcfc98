// Package invoicing: reglas de escritura de facturas (numeración, totales y ciclo de vida).
// Los pasos se invocan explícitamente desde el caso de uso, en el orden numeración -> validación.

package invoicing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/facturacion-gst/internal/domain/entity"
	"github.com/jhoicas/facturacion-gst/pkg/timeutil"
)

// NumberPrefix prefijo fijo de la numeración.
const NumberPrefix = "INV"

const sequenceDigits = 4

// NextInvoiceNumber deriva el siguiente número a partir de la última factura creada.
// Formato: INV + YY + MM + secuencia de 4 dígitos (INV24070001).
// La secuencia no se reinicia por mes ni se limita a 4 dígitos: toma los últimos 4
// caracteres del número anterior y suma uno.
func NextInvoiceNumber(last *entity.Invoice, now time.Time) (string, error) {
	now = timeutil.ToIST(now)
	yy := fmt.Sprintf("%02d", now.Year()%100)
	mm := fmt.Sprintf("%02d", int(now.Month()))

	seq := 1
	if last != nil && last.InvoiceNumber != "" {
		prev := last.InvoiceNumber
		if len(prev) > sequenceDigits {
			prev = prev[len(prev)-sequenceDigits:]
		}
		n, err := strconv.Atoi(prev)
		if err != nil {
			return "", fmt.Errorf("invoicing: secuencia no numérica en %q: %w", last.InvoiceNumber, err)
		}
		seq = n + 1
	}

	return fmt.Sprintf("%s%s%s%0*d", NumberPrefix, yy, mm, sequenceDigits, seq), nil
}
