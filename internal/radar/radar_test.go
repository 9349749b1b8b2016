package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

func scoreByDimension(t *testing.T, scores []model.RadarScore, dim string) float64 {
	t.Helper()
	for _, s := range scores {
		if s.Dimension == dim {
			return s.Value
		}
	}
	t.Fatalf("dimension %q not found", dim)
	return 0
}

func TestCalculateMixedFleet(t *testing.T) {
	vehicles := []model.Vehicle{
		{Status: model.StatusEnRuta, Fuel: 50, Temperature: 90},
		{Status: model.StatusEnRuta, Fuel: 50, Temperature: 90},
		{Status: model.StatusMantenimiento, Fuel: 50, Temperature: 90},
		{Status: model.StatusIncidencia, Fuel: 50, Temperature: 90},
	}

	scores := Calculate(vehicles)
	require.Len(t, scores, 5)

	assert.Equal(t, 75.0, scoreByDimension(t, scores, "availability"))
	assert.Equal(t, 113.0, scoreByDimension(t, scores, "maintenanceHealth"))
	assert.Equal(t, 113.0, scoreByDimension(t, scores, "safety"))
	assert.Equal(t, 75.0, scoreByDimension(t, scores, "efficiency"))
	assert.Equal(t, 100.0, scoreByDimension(t, scores, "engineHealth"))

	for _, s := range scores {
		assert.Equal(t, float64(model.RadarMax), s.Max)
	}
}

func TestCalculateEmptyFleet(t *testing.T) {
	scores := Calculate(nil)
	require.Len(t, scores, 5)

	assert.Equal(t, 0.0, scoreByDimension(t, scores, "availability"))
	assert.Equal(t, 150.0, scoreByDimension(t, scores, "maintenanceHealth"))
	assert.Equal(t, 150.0, scoreByDimension(t, scores, "safety"))
	assert.Equal(t, 0.0, scoreByDimension(t, scores, "efficiency"))
	assert.Equal(t, 140.0, scoreByDimension(t, scores, "engineHealth"))
}

func TestCalculateEngineHealthTiers(t *testing.T) {
	tests := []struct {
		temp float64
		want float64
	}{
		{temp: 80, want: 140},
		{temp: 85, want: 140},
		{temp: 86, want: 100},
		{temp: 95, want: 100},
		{temp: 96, want: 60},
		{temp: 120, want: 60},
	}

	for _, tt := range tests {
		scores := Calculate([]model.Vehicle{{Status: model.StatusDisponible, Temperature: tt.temp}})
		assert.Equal(t, tt.want, scoreByDimension(t, scores, "engineHealth"), "avg temp %.0f", tt.temp)
	}
}

func TestCalculateFullAvailability(t *testing.T) {
	vehicles := []model.Vehicle{
		{Status: model.StatusEnRuta, Fuel: 100, Temperature: 70},
		{Status: model.StatusEnRuta, Fuel: 100, Temperature: 70},
	}

	scores := Calculate(vehicles)
	assert.Equal(t, 150.0, scoreByDimension(t, scores, "availability"))
	assert.Equal(t, 150.0, scoreByDimension(t, scores, "efficiency"))
}
