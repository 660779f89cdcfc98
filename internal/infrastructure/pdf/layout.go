// Package pdf genera los documentos imprimibles de facturación.
//
// La factura se describe primero como una lista declarativa de instrucciones de dibujo
// (rectángulos, líneas, textos e imágenes) en puntos sobre una página A4. Un backend
// (GofpdfRenderer) consume esa lista y produce los bytes. El libro de facturas se
// genera aparte con Maroto (register.go).
package pdf

// Dimensiones de página A4 en puntos.
const (
	PageWidth  = 595.0
	PageHeight = 842.0
)

// Kind tipo de instrucción de dibujo.
type Kind int

const (
	KindRect Kind = iota
	KindLine
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Align alineación horizontal de un texto dentro de su ancho.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Estilos de fuente (combinables, ej. "BU").
const (
	StyleRegular   = ""
	StyleBold      = "B"
	StyleUnderline = "U"
)

// Instruction una operación de dibujo en coordenadas absolutas (origen arriba a la izquierda).
//
//   - Rect: X, Y, W, H.
//   - Line: de (X, Y) a (X2, Y2).
//   - Text: esquina superior izquierda en (X, Y); con W > 0 el texto se alinea dentro de ese ancho.
//   - Image: X, Y, W, H; Data con el contenido y ImageType "PNG" o "JPG".
type Instruction struct {
	Kind      Kind
	X, Y      float64
	W, H      float64
	X2, Y2    float64
	Text      string
	FontSize  float64
	Style     string
	Align     Align
	Data      []byte
	ImageType string
	// Tag identifica textos con datos (ej. "item.amount", "total.grand"); vacío para rótulos fijos.
	Tag string
}

// Layout página completa: dimensiones y secuencia ordenada de instrucciones.
type Layout struct {
	Width        float64
	Height       float64
	Instructions []Instruction
}

// NewLayout crea una página A4 vacía.
func NewLayout() *Layout {
	return &Layout{Width: PageWidth, Height: PageHeight}
}

// Rect añade un rectángulo con borde.
func (l *Layout) Rect(x, y, w, h float64) {
	l.Instructions = append(l.Instructions, Instruction{Kind: KindRect, X: x, Y: y, W: w, H: h})
}

// Line añade un segmento.
func (l *Layout) Line(x1, y1, x2, y2 float64) {
	l.Instructions = append(l.Instructions, Instruction{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2})
}

// Text añade un texto.
func (l *Layout) Text(t Instruction) {
	t.Kind = KindText
	if t.Align == "" {
		t.Align = AlignLeft
	}
	l.Instructions = append(l.Instructions, t)
}

// Image añade una imagen.
func (l *Layout) Image(x, y, w, h float64, data []byte, imageType string) {
	l.Instructions = append(l.Instructions, Instruction{
		Kind: KindImage, X: x, Y: y, W: w, H: h, Data: data, ImageType: imageType,
	})
}

// Tagged devuelve, en orden, los textos con la etiqueta dada.
func (l *Layout) Tagged(tag string) []Instruction {
	var out []Instruction
	for _, in := range l.Instructions {
		if in.Kind == KindText && in.Tag == tag {
			out = append(out, in)
		}
	}
	return out
}

// Count número de instrucciones del tipo dado.
func (l *Layout) Count(kind Kind) int {
	n := 0
	for _, in := range l.Instructions {
		if in.Kind == kind {
			n++
		}
	}
	return n
}
