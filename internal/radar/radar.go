// Package radar derives the five fleet-health scores shown on the dashboard
// radar chart from a snapshot of vehicle states.
package radar

import (
	"math"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

// Calculate turns a snapshot of vehicles into the five named scores. An
// empty fleet is a valid input: count-based scores come out 0 and the
// ratio-based ones keep full credit.
func Calculate(vehicles []model.Vehicle) []model.RadarScore {
	total := float64(len(vehicles))
	if total == 0 {
		total = 1
	}

	var enRuta, mantenimiento, incidencia float64
	var fuelSum, tempSum float64
	for _, v := range vehicles {
		switch v.Status {
		case model.StatusEnRuta:
			enRuta++
		case model.StatusMantenimiento:
			mantenimiento++
		case model.StatusIncidencia:
			incidencia++
		}
		fuelSum += v.Fuel
		tempSum += v.Temperature
	}

	avgFuel := fuelSum / total
	avgTemp := tempSum / total

	engineHealth := 140.0
	if avgTemp > 95 {
		engineHealth = 60
	} else if avgTemp > 85 {
		engineHealth = 100
	}

	return []model.RadarScore{
		{Dimension: "availability", Value: math.Round(model.RadarMax * enRuta / total), Max: model.RadarMax},
		{Dimension: "maintenanceHealth", Value: math.Round(model.RadarMax * (1 - mantenimiento/total)), Max: model.RadarMax},
		{Dimension: "safety", Value: math.Round(model.RadarMax * (1 - incidencia/total)), Max: model.RadarMax},
		{Dimension: "efficiency", Value: math.Round(1.5 * avgFuel), Max: model.RadarMax},
		{Dimension: "engineHealth", Value: engineHealth, Max: model.RadarMax},
	}
}
