package model

import "time"

// WeeklyReport is the material handed to the excel and pdf exporters:
// the current week's day totals plus a snapshot of the fleet.
type WeeklyReport struct {
	WeekStart     time.Time
	WeekEnd       time.Time
	Days          []DayTotal
	Vehicles      []Vehicle
	Scores        []RadarScore
	TotalDistance float64
	TotalCost     float64
}
