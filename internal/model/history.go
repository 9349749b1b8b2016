package model

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one persisted (week, day) aggregate of the fleet's
// distance and cost. At most one row exists per (WeekStart, DayOfWeek).
type HistoryEntry struct {
	ID            uuid.UUID
	WeekStart     time.Time // Monday 00:00:00 of the week
	WeekEnd       time.Time // following Sunday 23:59:59.999
	DayOfWeek     string    // "Mon".."Sun"
	TotalDistance float64
	TotalCost     float64 // always TotalDistance * cost rate
	VehicleCount  int64   // fleet size when the row was created
	CreatedAt     time.Time
}

// DayTotal is one day of the weekly history view. Days with no recorded
// activity carry zeros.
type DayTotal struct {
	Day      string  `json:"day"`
	Distance float64 `json:"distance"`
	Cost     float64 `json:"cost"`
}
