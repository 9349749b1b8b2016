package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	migrations "github.com/nurpe/fleet-dashboard/internal/db"
	"github.com/nurpe/fleet-dashboard/internal/model"
)

// testDB opens the database named by TEST_DB_DSN, or skips the test when no
// database is reachable.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("failed to connect database: %v, skipping integration test", err)
	}

	if err := migrations.Migrate(db); err != nil {
		t.Skipf("failed to migrate schema: %v, skipping integration test", err)
	}
	require.NoError(t, db.Exec(`DELETE FROM fleet_history`).Error)
	require.NoError(t, db.Exec(`DELETE FROM vehicles`).Error)
	return db
}

func testInput() model.VehicleInput {
	return model.VehicleInput{
		Model:       "Volvo FH16",
		Status:      model.StatusEnRuta,
		Fuel:        80,
		Temperature: 88,
		Distance:    100000,
		Driver:      "Laura Ortiz",
		Class:       "Carga Pesada",
	}
}

func TestVehicleRepositoryInsertAndGet(t *testing.T) {
	db := testDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Insert(ctx, testInput(), now, weekStart)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, created.Distance)
	assert.Equal(t, 100000.0, created.WeeklyDistance)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, model.StatusEnRuta, fetched.Status)
	assert.True(t, fetched.WeekStart.Equal(weekStart))
}

func TestVehicleRepositoryUpdatePatchesOnlyGivenFields(t *testing.T) {
	db := testDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	now := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Insert(ctx, testInput(), now, weekStart)
	require.NoError(t, err)

	distance := 100500.0
	later := now.Add(2 * time.Hour)
	updated, err := repo.Update(ctx, created.ID, model.VehiclePatch{Distance: &distance}, later, weekStart, 100500)
	require.NoError(t, err)

	assert.Equal(t, 100500.0, updated.Distance)
	assert.Equal(t, created.Model, updated.Model)
	assert.Equal(t, created.Status, updated.Status)
	assert.Equal(t, created.Fuel, updated.Fuel)
	assert.True(t, updated.LastUpdate.Equal(later))
}

func TestHistoryRepositoryAddDeltaAccumulates(t *testing.T) {
	db := testDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 3, 16, 23, 59, 59, 0, time.UTC)

	first, err := repo.AddDelta(ctx, weekStart, weekEnd, "Tue", 300, 0.8, 4)
	require.NoError(t, err)
	assert.Equal(t, 300.0, first.TotalDistance)
	assert.Equal(t, 240.0, first.TotalCost)

	second, err := repo.AddDelta(ctx, weekStart, weekEnd, "Tue", 200, 0.8, 4)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 500.0, second.TotalDistance)
	assert.Equal(t, 400.0, second.TotalCost)

	entries, err := repo.ListWeek(ctx, weekStart)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestHistoryRepositorySeedWeekIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2025, 3, 16, 23, 59, 59, 0, time.UTC)
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	_, err := repo.AddDelta(ctx, weekStart, weekEnd, "Tue", 500, 0.8, 4)
	require.NoError(t, err)

	require.NoError(t, repo.SeedWeek(ctx, weekStart, weekEnd, days, 4))

	entries, err := repo.ListWeek(ctx, weekStart)
	require.NoError(t, err)
	require.Len(t, entries, 7)

	for _, entry := range entries {
		if entry.DayOfWeek == "Tue" {
			// The seed must not overwrite the already-accumulated row.
			assert.Equal(t, 500.0, entry.TotalDistance)
		} else {
			assert.Zero(t, entry.TotalDistance)
		}
	}
}
