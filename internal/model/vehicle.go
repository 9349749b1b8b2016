package model

import (
	"time"

	"github.com/google/uuid"
)

type VehicleStatus string

const (
	StatusEnRuta        VehicleStatus = "En Ruta"
	StatusDisponible    VehicleStatus = "Disponible"
	StatusMantenimiento VehicleStatus = "Mantenimiento"
	StatusIncidencia    VehicleStatus = "Incidencia"
)

func IsValidStatus(s VehicleStatus) bool {
	switch s {
	case StatusEnRuta, StatusDisponible, StatusMantenimiento, StatusIncidencia:
		return true
	default:
		return false
	}
}

type Vehicle struct {
	ID             uuid.UUID     `json:"id"`
	Model          string        `json:"model"`
	Status         VehicleStatus `json:"status"`
	Fuel           float64       `json:"fuel"`        // percentage, 0-100
	Temperature    float64       `json:"temperature"` // engine temperature, Celsius
	Distance       float64       `json:"distance"`    // cumulative odometer, never decreases
	Driver         string        `json:"driver"`
	Class          string        `json:"class"`
	LastUpdate     time.Time     `json:"lastUpdate"`
	WeekStart      time.Time     `json:"weekStart"`      // Monday 00:00:00 of the current week bucket
	WeeklyDistance float64       `json:"weeklyDistance"` // distance accumulated since WeekStart
	CreatedAt      time.Time     `json:"createdAt"`
}

// VehicleInput carries the fields accepted when creating a vehicle.
type VehicleInput struct {
	Model       string
	Status      VehicleStatus
	Fuel        float64
	Temperature float64
	Distance    float64
	Driver      string
	Class       string
}

// VehiclePatch carries a partial update. Nil fields are left untouched.
type VehiclePatch struct {
	Model       *string
	Status      *VehicleStatus
	Fuel        *float64
	Temperature *float64
	Distance    *float64
	Driver      *string
	Class       *string
}
