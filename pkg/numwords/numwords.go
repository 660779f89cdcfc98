// Package numwords convierte montos enteros a palabras en inglés con el sistema
// de numeración indio (lakh / thousand), tal como se imprime en las facturas.
package numwords

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNegative se devuelve para montos negativos (no soportados).
var ErrNegative = errors.New("numwords: monto negativo")

const (
	lakh     = 100000
	thousand = 1000
)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// Convert devuelve n en palabras. 0 -> "Zero".
func Convert(n int64) (string, error) {
	if n < 0 {
		return "", ErrNegative
	}
	if n == 0 {
		return "Zero", nil
	}
	return convert(n), nil
}

// Rupees arma la leyenda "Rupees <palabras> Only" sobre la parte entera del monto.
func Rupees(amount decimal.Decimal) (string, error) {
	words, err := Convert(amount.Truncate(0).IntPart())
	if err != nil {
		return "", err
	}
	return "Rupees " + words + " Only", nil
}

func convert(n int64) string {
	var parts []string

	lakhs := n / lakh
	thousands := (n % lakh) / thousand
	rest := n % thousand

	if lakhs > 0 {
		// Más de 999 lakhs: el conteo de lakhs se expresa a su vez en palabras.
		if lakhs >= thousand {
			parts = append(parts, convert(lakhs), "Lakh")
		} else {
			parts = append(parts, belowThousand(lakhs), "Lakh")
		}
	}
	if thousands > 0 {
		parts = append(parts, belowThousand(thousands), "Thousand")
	}
	if rest > 0 {
		parts = append(parts, belowThousand(rest))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	default:
		if n%100 == 0 {
			return ones[n/100] + " Hundred"
		}
		return ones[n/100] + " Hundred " + belowThousand(n%100)
	}
}
