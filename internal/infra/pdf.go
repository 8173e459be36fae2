package infra

// pdf.go — quote document generation using go-pdf/fpdf.
// Generates an A4 proposal document with:
//   - Company header and quote number
//   - Client and event information
//   - Line-item table (description, quantity, total)
//   - Transport section per zone
//   - Breakdown block: subtotal, margin, retention, total
//
// The output file is saved to storagePath/cotizacion_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"cotizador/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCotizacionPDF renders the proposal document for a quote.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateCotizacionPDF(c *model.Cotizacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cotizacion_%s.pdf", c.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Comercial Su Eventos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Cotización de servicios para eventos", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Quote info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, c.Numero, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if c.Cliente != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+c.Cliente.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Evento: "+c.NombreEvento, "", 1, "L", false, 0, "")
	if c.FechaEvento != nil {
		pdf.CellFormat(contentW, 5, "Fecha del evento: "+c.FechaEvento.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Emitida: "+c.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.56 // description
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.30 // total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i := range c.Items {
		item := &c.Items[i]
		descripcion := item.Descripcion
		if len(descripcion) > 48 {
			descripcion = descripcion[:47] + "…"
		}
		pdf.CellFormat(col1, 6, descripcion, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, item.Cantidad.StringFixed(0), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.TotalItem.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Transport ─────────────────────────────────────────────────────────────
	if len(c.Zonas) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Transporte", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for i := range c.Zonas {
			z := &c.Zonas[i]
			nombre := ""
			if z.Zona != nil {
				nombre = z.Zona.Nombre
			}
			detalle := fmt.Sprintf("Zona %s — %d transporte(s)", nombre, z.NumTransportes)
			if z.IncluirEquipo {
				detalle += " (con equipo adicional)"
			}
			pdf.CellFormat(contentW, 6, detalle, "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Breakdown ─────────────────────────────────────────────────────────────
	labelW := contentW * 0.70
	valueW := contentW * 0.30

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, 6, "Subtotal (incluye transporte):", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 6, "$"+c.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.CellFormat(labelW, 6, fmt.Sprintf("Margen (%s%%):", c.MargenPct.StringFixed(0)), "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 6, "$"+c.MontoMargen.StringFixed(2), "", 1, "R", false, 0, "")

	if c.RetencionActiva {
		pdf.CellFormat(labelW, 6, fmt.Sprintf("Retención (%s%%):", c.RetencionPct.StringFixed(0)), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, "-$"+c.MontoRetencion.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, "$"+c.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	if c.Observaciones != nil && *c.Observaciones != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Observaciones: "+*c.Observaciones, "", "L", false)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Cotización válida por 15 días.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
