package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.WeeklyReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Resumen"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	historySheet := "Historial"
	file.NewSheet(historySheet)
	if err := g.writeHistory(file, historySheet, report); err != nil {
		return nil, err
	}

	vehiclesSheet := "Vehiculos"
	file.NewSheet(vehiclesSheet)
	if err := g.writeVehicles(file, vehiclesSheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.WeeklyReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Reporte semanal de flota")
	set("A2", "Inicio de semana")
	set("B2", formatDate(report.WeekStart))
	set("A3", "Fin de semana")
	set("B3", formatDate(report.WeekEnd))
	set("A4", "Vehiculos")
	set("B4", len(report.Vehicles))
	set("A5", "Distancia total, km")
	set("B5", formatFloat(report.TotalDistance))
	set("A6", "Costo total")
	set("B6", formatFloat(report.TotalCost))

	tableRow := 8
	set(fmt.Sprintf("A%d", tableRow), "Indicador")
	set(fmt.Sprintf("B%d", tableRow), "Valor")
	set(fmt.Sprintf("C%d", tableRow), "Maximo")
	for i, score := range report.Scores {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), score.Dimension)
		set(fmt.Sprintf("B%d", row), score.Value)
		set(fmt.Sprintf("C%d", row), score.Max)
	}

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "C", 16)
	return nil
}

func (g *Generator) writeHistory(file *excelize.File, sheet string, report model.WeeklyReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Dia")
	set("B1", "Distancia, km")
	set("C1", "Costo")
	for i, day := range report.Days {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), day.Day)
		set(fmt.Sprintf("B%d", row), formatFloat(day.Distance))
		set(fmt.Sprintf("C%d", row), formatFloat(day.Cost))
	}

	totalRow := 2 + len(report.Days)
	set(fmt.Sprintf("A%d", totalRow), "Total")
	set(fmt.Sprintf("B%d", totalRow), formatFloat(report.TotalDistance))
	set(fmt.Sprintf("C%d", totalRow), formatFloat(report.TotalCost))

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "C", 16)
	return nil
}

func (g *Generator) writeVehicles(file *excelize.File, sheet string, report model.WeeklyReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Modelo",
		"Estado",
		"Conductor",
		"Clase",
		"Combustible, %",
		"Temperatura",
		"Odometro, km",
		"Distancia semanal, km",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, vehicle := range report.Vehicles {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), vehicle.Model)
		set(fmt.Sprintf("B%d", row), string(vehicle.Status))
		set(fmt.Sprintf("C%d", row), vehicle.Driver)
		set(fmt.Sprintf("D%d", row), vehicle.Class)
		set(fmt.Sprintf("E%d", row), formatFloat(vehicle.Fuel))
		set(fmt.Sprintf("F%d", row), formatFloat(vehicle.Temperature))
		set(fmt.Sprintf("G%d", row), formatFloat(vehicle.Distance))
		set(fmt.Sprintf("H%d", row), formatFloat(vehicle.WeeklyDistance))
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "D", 20)
	_ = file.SetColWidth(sheet, "E", "H", 18)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatFloat(value float64) float64 {
	// Two decimals keep the workbook readable without losing cents.
	return float64(int(value*100+0.5)) / 100
}
