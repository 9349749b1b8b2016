package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

// VehicleStore is the storage boundary for fleet vehicles, implemented by
// repository.VehicleRepository.
type VehicleStore interface {
	Insert(ctx context.Context, input model.VehicleInput, lastUpdate, weekStart time.Time) (*model.Vehicle, error)
	BulkInsert(ctx context.Context, inputs []model.VehicleInput, lastUpdate, weekStart time.Time) (int64, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Update(ctx context.Context, id uuid.UUID, patch model.VehiclePatch, lastUpdate, weekStart time.Time, weeklyDistance float64) (*model.Vehicle, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// HistoryStore is the storage boundary for the weekly history rows,
// implemented by repository.HistoryRepository. AddDelta must increment
// atomically so concurrent writes to the same (week, day) row both land.
type HistoryStore interface {
	AddDelta(ctx context.Context, weekStart, weekEnd time.Time, day string, delta, costRate float64, vehicleCount int64) (*model.HistoryEntry, error)
	SeedWeek(ctx context.Context, weekStart, weekEnd time.Time, days []string, vehicleCount int64) error
	ListWeek(ctx context.Context, weekStart time.Time) ([]model.HistoryEntry, error)
	DeleteAll(ctx context.Context) error
}
