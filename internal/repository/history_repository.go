package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const historyColumns = `
	id,
	week_start,
	week_end,
	day_of_week,
	total_distance,
	total_cost,
	vehicle_count,
	created_at
`

// AddDelta accumulates a distance delta into the (weekStart, day) row,
// creating it on first write. The increment happens inside the database so
// concurrent deltas to the same row both land, and the cost is recomputed
// from the new total rather than incremented.
func (r *HistoryRepository) AddDelta(
	ctx context.Context,
	weekStart time.Time,
	weekEnd time.Time,
	day string,
	delta float64,
	costRate float64,
	vehicleCount int64,
) (*model.HistoryEntry, error) {
	var saved model.HistoryEntry
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO fleet_history (
			week_start,
			week_end,
			day_of_week,
			total_distance,
			total_cost,
			vehicle_count
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (week_start, day_of_week) DO UPDATE
		SET
			total_distance = fleet_history.total_distance + EXCLUDED.total_distance,
			total_cost = (fleet_history.total_distance + EXCLUDED.total_distance) * ?
		RETURNING `+historyColumns,
		weekStart,
		weekEnd,
		day,
		delta,
		delta*costRate,
		vehicleCount,
		costRate,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// SeedWeek creates one zero row per day label for the given week, leaving
// already-existing rows untouched.
func (r *HistoryRepository) SeedWeek(
	ctx context.Context,
	weekStart time.Time,
	weekEnd time.Time,
	days []string,
	vehicleCount int64,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, day := range days {
			if err := tx.Exec(`
				INSERT INTO fleet_history (
					week_start,
					week_end,
					day_of_week,
					total_distance,
					total_cost,
					vehicle_count
				) VALUES (?, ?, ?, 0, 0, ?)
				ON CONFLICT (week_start, day_of_week) DO NOTHING
			`, weekStart, weekEnd, day, vehicleCount).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *HistoryRepository) ListWeek(ctx context.Context, weekStart time.Time) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+historyColumns+`
		FROM fleet_history
		WHERE week_start = ?
	`, weekStart).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *HistoryRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM fleet_history`).Error
}
