package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Arial"}
}

func (g *Generator) Generate(report model.WeeklyReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Reporte semanal de flota"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Semana del %s al %s", formatDate(report.WeekStart), formatDate(report.WeekEnd))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Resumen"), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Vehículos: %d", len(report.Vehicles))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Distancia total: %s km", formatAmount(report.TotalDistance))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Costo total: %s", formatAmount(report.TotalCost))), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Historial de la semana"), "", 1, "L", false, 0, "")

	dayHeaders := []string{"Día", "Distancia, km", "Costo"}
	dayWidths := []float64{40, 55, 55}
	drawTableRow(pdf, g.fontName, tr, dayHeaders, dayWidths, true)
	for _, day := range report.Days {
		row := []string{day.Day, formatAmount(day.Distance), formatAmount(day.Cost)}
		drawTableRow(pdf, g.fontName, tr, row, dayWidths, false)
	}
	totals := []string{"Total", formatAmount(report.TotalDistance), formatAmount(report.TotalCost)}
	drawTableRow(pdf, g.fontName, tr, totals, dayWidths, true)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Indicadores de flota"), "", 1, "L", false, 0, "")

	scoreHeaders := []string{"Indicador", "Valor", "Máximo"}
	scoreWidths := []float64{80, 35, 35}
	drawTableRow(pdf, g.fontName, tr, scoreHeaders, scoreWidths, true)
	for _, score := range report.Scores {
		row := []string{score.Dimension, fmt.Sprintf("%.0f", score.Value), fmt.Sprintf("%.0f", score.Max)}
		drawTableRow(pdf, g.fontName, tr, row, scoreWidths, false)
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Vehículos"), "", 1, "L", false, 0, "")

	vehicleHeaders := []string{"Modelo", "Estado", "Conductor", "Odómetro, km", "Semana, km"}
	vehicleWidths := []float64{42, 32, 42, 34, 30}
	drawTableRow(pdf, g.fontName, tr, vehicleHeaders, vehicleWidths, true)
	for _, vehicle := range report.Vehicles {
		row := []string{
			vehicle.Model,
			string(vehicle.Status),
			vehicle.Driver,
			formatAmount(vehicle.Distance),
			formatAmount(vehicle.WeeklyDistance),
		}
		drawTableRow(pdf, g.fontName, tr, row, vehicleWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
