package infra

// pdf.go — Generación del reporte PDF de corte de caja con go-pdf/fpdf.
// Media carta apaisada con:
//   - Encabezado con nombre de la clínica
//   - Fecha y hora del corte
//   - Desglose de ventas por método de pago
//   - Saldo inicial, saldo esperado, saldo contado y diferencia
//
// El archivo se guarda en storagePath/corte_{fecha}_{hora}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/kikehil/dental/internal/model"
)

// GenerateCortePDF genera el reporte PDF de un corte de caja.
// storagePath es el directorio destino (se crea si no existe).
// Devuelve la ruta absoluta del archivo generado.
func GenerateCortePDF(corte *model.CorteCaja, storagePath, nombreClinica string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	hora := "apertura"
	if corte.Hora != nil {
		hora = strings.ReplaceAll(*corte.Hora, ":", "")
	}
	fileName := fmt.Sprintf("corte_%s_%s.pdf", corte.Fecha.Format("2006-01-02"), hora)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Encabezado ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, nombreClinica, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Reporte de Corte de Caja", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Datos del corte ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Fecha: "+corte.Fecha.Format("02/01/2006"), "", 1, "L", false, 0, "")
	etiqueta := "Corte"
	if corte.Hora != nil {
		etiqueta = "Corte de las " + *corte.Hora
	}
	pdf.CellFormat(contentW, 6, etiqueta, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Registrado: "+corte.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	colL := contentW * 0.60
	colR := contentW * 0.40

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(colL, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(colR, 6, value, "", 1, "R", false, 0, "")
	}

	// ── Ventas por método ────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Ventas del periodo", "B", 1, "L", false, 0, "")
	row("Efectivo:", "$"+corte.VentasEfectivo.StringFixed(2), false)
	row("Tarjeta:", "$"+corte.VentasTarjeta.StringFixed(2), false)
	row("Transferencia:", "$"+corte.VentasTransferencia.StringFixed(2), false)
	row("Total ventas:", "$"+corte.TotalVentas.StringFixed(2), true)
	pdf.Ln(3)

	// ── Conciliación ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "Conciliación de efectivo", "B", 1, "L", false, 0, "")
	row("Saldo inicial:", "$"+corte.SaldoInicial.StringFixed(2), false)
	esperado := corte.SaldoInicial.Add(corte.VentasEfectivo)
	row("Saldo esperado:", "$"+esperado.StringFixed(2), false)
	row("Saldo contado:", "$"+corte.SaldoFinal.StringFixed(2), false)
	row("Diferencia:", "$"+corte.Diferencia.StringFixed(2), true)

	if corte.Observaciones != nil && *corte.Observaciones != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 5, "Observaciones: "+*corte.Observaciones, "", "L", false)
	}

	// ── Pie ──────────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Documento generado automáticamente", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
