package infra

// excel.go — Excel export of the quote pipeline for the back office.
// One row per quote with the full persisted breakdown.

import (
	"fmt"

	"cotizador/internal/model"

	"github.com/xuri/excelize/v2"
)

var excelHeaders = []string{
	"Número", "Cliente", "Evento", "Fecha evento", "Estado",
	"Subtotal", "Margen %", "Monto margen", "Retención %", "Monto retención",
	"Costo transporte", "Total",
}

// ExportCotizacionesExcel builds an xlsx workbook with one row per quote.
// The caller owns the returned file and must Close it.
func ExportCotizacionesExcel(cotizaciones []model.Cotizacion) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Cotizaciones"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range excelHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i := range cotizaciones {
		c := &cotizaciones[i]
		clienteNombre := ""
		if c.Cliente != nil {
			clienteNombre = c.Cliente.Nombre
		}
		fechaEvento := ""
		if c.FechaEvento != nil {
			fechaEvento = c.FechaEvento.Format("2006-01-02")
		}
		retencionPct := ""
		if c.RetencionActiva {
			retencionPct = c.RetencionPct.StringFixed(2)
		}

		row := []interface{}{
			c.Numero, clienteNombre, c.NombreEvento, fechaEvento, c.Estado,
			c.Subtotal.InexactFloat64(), c.MargenPct.StringFixed(2),
			c.MontoMargen.InexactFloat64(), retencionPct,
			c.MontoRetencion.InexactFloat64(),
			c.CostoTransporte.InexactFloat64(), c.Total.InexactFloat64(),
		}
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %s: %w", c.Numero, err)
			}
		}
	}

	return f, nil
}
