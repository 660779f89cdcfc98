// Package timeutil centraliza el manejo de la zona horaria de India (IST, UTC+5:30),
// usada para fechas impresas y para el prefijo año/mes de la numeración de facturas.
package timeutil

import "time"

// IST es la ubicación Asia/Kolkata.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Sin base tzdata en el contenedor: zona fija equivalente
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Formatos usados en respuestas y documentos.
const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02/01/2006"
)

// Now devuelve la hora actual en IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST convierte cualquier instante a IST.
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// FormatDisplayDate formatea una fecha como dd/mm/yyyy en IST.
func FormatDisplayDate(t time.Time) string {
	return t.In(IST).Format(DisplayDateLayout)
}
