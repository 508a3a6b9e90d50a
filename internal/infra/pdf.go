package infra

// pdf.go — Generación de la "hoja de vida" de un equipo con go-pdf/fpdf.
// Una página A4 con encabezado, ficha técnica, componentes adicionales y
// tabla de periféricos asignados. El archivo se escribe en
// storagePath/hoja_vida_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"parquetec/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateHojaVidaPDF genera el reporte PDF de un equipo y sus auxiliares.
// Devuelve la ruta absoluta del archivo generado.
func GenerateHojaVidaPDF(equipo *model.Equipo, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}

	fileName := fmt.Sprintf("hoja_vida_%s.pdf", equipo.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Encabezado ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Hoja de Vida de Equipo", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Generado el %s", time.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Identificación ────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("%s — %s", equipo.ID, equipo.TipoDispositivo), "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	campo := func(etiqueta, valor string) {
		if valor == "" {
			valor = "-"
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(45, 6, etiqueta, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW-45, 6, valor, "", "L", false)
	}

	campo("Marca / Modelo", fmt.Sprintf("%s %s", equipo.Marca, equipo.Modelo))
	campo("Número de serie", equipo.NumeroSerie)
	campo("Hostname", equipo.Hostname)
	campo("MAC", equipo.MAC)
	campo("Sistema operativo", equipo.SistemaOperativo)
	campo("CPU", equipo.CPU)
	campo("RAM", equipo.RAM)
	campo("Disco", equipo.Disco)
	campo("Placa madre", equipo.PlacaMadre)
	campo("GPU", equipo.GPU)
	campo("Estado físico", equipo.EstadoFisico)
	campo("Garantía", equipo.Garantia)
	if equipo.FechaCompra != nil {
		campo("Fecha de compra", equipo.FechaCompra.Format("02/01/2006"))
	}
	campo("Estado", equipo.EstadoActivo)
	if equipo.Colaborador != nil {
		campo("Asignado a", equipo.Colaborador.Nombre)
	}
	if equipo.Incidentes != "" {
		pdf.Ln(2)
		campo("Incidentes", equipo.Incidentes)
	}

	// ── Periféricos ───────────────────────────────────────────────────────────
	if len(equipo.Auxiliares) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Periféricos asignados", "B", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(20, 6, "ID", "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 6, "Nombre", "1", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-110, 6, "Número de serie", "1", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, aux := range equipo.Auxiliares {
			pdf.CellFormat(20, 6, fmt.Sprintf("%d", aux.ID), "1", 0, "C", false, 0, "")
			pdf.CellFormat(90, 6, aux.NombreAuxiliar, "1", 0, "L", false, 0, "")
			pdf.CellFormat(contentW-110, 6, aux.NumeroSerieAux, "1", 1, "L", false, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir archivo: %w", err)
	}
	return filePath, nil
}
