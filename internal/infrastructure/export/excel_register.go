// Package export genera el libro de facturas como hoja de cálculo.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/facturacion-gst/internal/application/billing"
)

// SheetName hoja única del libro.
const SheetName = "Register"

const dataRowStart = 2

var headers = []string{"Invoice No.", "Date", "Client", "GSTIN", "Status", "Taxable", "Tax", "Total"}

var colWidths = map[string]float64{"A": 16, "B": 12, "C": 32, "D": 20, "E": 11, "F": 14, "G": 14, "H": 14}

// Columnas de montos (F, G, H): se totalizan con SUM al final.
const firstAmountCol = 6

// ExcelRegisterExporter implementa billing.RegisterExporter con excelize.
type ExcelRegisterExporter struct{}

// NewExcelRegisterExporter construye el exportador.
func NewExcelRegisterExporter() *ExcelRegisterExporter { return &ExcelRegisterExporter{} }

var _ billing.RegisterExporter = (*ExcelRegisterExporter)(nil)

// ExportRegister escribe una fila por factura y una fila final de totales.
func (e *ExcelRegisterExporter) ExportRegister(ctx context.Context, rows []billing.RegisterRow) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("export: renombrar hoja: %w", err)
	}
	styles, err := newStyles(file)
	if err != nil {
		return nil, err
	}

	if err := fillHeader(file, styles); err != nil {
		return nil, fmt.Errorf("export: cabecera: %w", err)
	}
	if err := fillRows(file, styles, rows); err != nil {
		return nil, fmt.Errorf("export: filas: %w", err)
	}
	if err := fillTotals(file, styles, len(rows)); err != nil {
		return nil, fmt.Errorf("export: totales: %w", err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

type styleSet struct {
	header, date, money, total int
}

func newStyles(file *excelize.File) (styleSet, error) {
	var s styleSet
	var err error
	dateFmt := "dd/mm/yyyy"
	if s.header, err = file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "00467F"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E8EEF4"}},
	}); err != nil {
		return s, fmt.Errorf("export: estilo cabecera: %w", err)
	}
	if s.date, err = file.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return s, fmt.Errorf("export: estilo fecha: %w", err)
	}
	if s.money, err = file.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return s, fmt.Errorf("export: estilo monto: %w", err)
	}
	if s.total, err = file.NewStyle(&excelize.Style{NumFmt: 4, Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("export: estilo total: %w", err)
	}
	return s, nil
}

func fillHeader(file *excelize.File, styles styleSet) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	for col, w := range colWidths {
		if err := file.SetColWidth(SheetName, col, col, w); err != nil {
			return err
		}
	}
	return file.SetCellStyle(SheetName, "A1", "H1", styles.header)
}

func fillRows(file *excelize.File, styles styleSet, rows []billing.RegisterRow) error {
	for i, r := range rows {
		row := dataRowStart + i
		values := []any{
			r.InvoiceNumber,
			r.Date,
			r.ClientName,
			r.ClientGSTIN,
			r.Status,
			r.Subtotal.InexactFloat64(),
			r.TotalTax.InexactFloat64(),
			r.Total.InexactFloat64(),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("fila %d: %w", row, err)
			}
		}
		if err := file.SetCellStyle(SheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), styles.date); err != nil {
			return err
		}
		if err := file.SetCellStyle(SheetName, fmt.Sprintf("F%d", row), fmt.Sprintf("H%d", row), styles.money); err != nil {
			return err
		}
	}
	return nil
}

func fillTotals(file *excelize.File, styles styleSet, count int) error {
	row := dataRowStart + count
	if err := file.SetCellValue(SheetName, fmt.Sprintf("E%d", row), "TOTAL"); err != nil {
		return err
	}
	for c := firstAmountCol; c < firstAmountCol+3; c++ {
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		formula := "0"
		if count > 0 {
			formula = fmt.Sprintf("SUM(%s%d:%s%d)", name, dataRowStart, name, row-1)
		}
		if err := file.SetCellFormula(SheetName, fmt.Sprintf("%s%d", name, row), formula); err != nil {
			return err
		}
	}
	return file.SetCellStyle(SheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("H%d", row), styles.total)
}
