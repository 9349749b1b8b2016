package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('En Ruta', 'Disponible', 'Mantenimiento', 'Incidencia');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		model VARCHAR(128) NOT NULL,
		status vehicle_status NOT NULL,
		fuel DOUBLE PRECISION NOT NULL,
		temperature DOUBLE PRECISION NOT NULL,
		distance DOUBLE PRECISION NOT NULL,
		driver VARCHAR(128) NOT NULL,
		class VARCHAR(64) NOT NULL,
		last_update TIMESTAMPTZ NOT NULL,
		week_start TIMESTAMPTZ NOT NULL,
		weekly_distance DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles (status);`,
	`CREATE TABLE IF NOT EXISTS fleet_history (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		week_start TIMESTAMPTZ NOT NULL,
		week_end TIMESTAMPTZ NOT NULL,
		day_of_week VARCHAR(3) NOT NULL,
		total_distance DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		vehicle_count BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_fleet_history_week_day ON fleet_history (week_start, day_of_week);`,
	`CREATE INDEX IF NOT EXISTS idx_fleet_history_week_start ON fleet_history (week_start);`,
}

// Migrate applies the schema statements in order. Every statement is
// idempotent, so running it against an existing schema is safe.
func Migrate(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
