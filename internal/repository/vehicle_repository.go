package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `
	id,
	model,
	status,
	fuel,
	temperature,
	distance,
	driver,
	class,
	last_update,
	week_start,
	weekly_distance,
	created_at
`

func (r *VehicleRepository) Insert(
	ctx context.Context,
	input model.VehicleInput,
	lastUpdate time.Time,
	weekStart time.Time,
) (*model.Vehicle, error) {
	var saved model.Vehicle
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO vehicles (
			model,
			status,
			fuel,
			temperature,
			distance,
			driver,
			class,
			last_update,
			week_start,
			weekly_distance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+vehicleColumns,
		input.Model,
		string(input.Status),
		input.Fuel,
		input.Temperature,
		input.Distance,
		input.Driver,
		input.Class,
		lastUpdate,
		weekStart,
		input.Distance,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// BulkInsert inserts all vehicles in one transaction with a shared week
// bucket. Each vehicle starts its weekly counter at its own odometer value.
func (r *VehicleRepository) BulkInsert(
	ctx context.Context,
	inputs []model.VehicleInput,
	lastUpdate time.Time,
	weekStart time.Time,
) (int64, error) {
	var inserted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, input := range inputs {
			if err := tx.Exec(`
				INSERT INTO vehicles (
					model,
					status,
					fuel,
					temperature,
					distance,
					driver,
					class,
					last_update,
					week_start,
					weekly_distance
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				input.Model,
				string(input.Status),
				input.Fuel,
				input.Temperature,
				input.Distance,
				input.Driver,
				input.Class,
				lastUpdate,
				weekStart,
				input.Distance,
			).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).Raw(`
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY created_at ASC, id ASC
	`).Scan(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&vehicle).Error
	if err != nil {
		return nil, err
	}
	if vehicle.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &vehicle, nil
}

// Update applies the non-nil patch fields plus the bookkeeping columns the
// aggregator always rewrites, returning the updated row.
func (r *VehicleRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	patch model.VehiclePatch,
	lastUpdate time.Time,
	weekStart time.Time,
	weeklyDistance float64,
) (*model.Vehicle, error) {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	var updated model.Vehicle
	err := r.db.WithContext(ctx).Raw(`
		UPDATE vehicles
		SET
			model = COALESCE(?, model),
			status = COALESCE(?::vehicle_status, status),
			fuel = COALESCE(?::DOUBLE PRECISION, fuel),
			temperature = COALESCE(?::DOUBLE PRECISION, temperature),
			distance = COALESCE(?::DOUBLE PRECISION, distance),
			driver = COALESCE(?, driver),
			class = COALESCE(?, class),
			last_update = ?,
			week_start = ?,
			weekly_distance = ?
		WHERE id = ?
		RETURNING `+vehicleColumns,
		patch.Model,
		status,
		patch.Fuel,
		patch.Temperature,
		patch.Distance,
		patch.Driver,
		patch.Class,
		lastUpdate,
		weekStart,
		weeklyDistance,
		id,
	).Scan(&updated).Error
	if err != nil {
		return nil, err
	}
	if updated.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &updated, nil
}

func (r *VehicleRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM vehicles`).Error
}

func (r *VehicleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM vehicles`).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
