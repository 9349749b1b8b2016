package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-dashboard/internal/model"
)

var errBoom = errors.New("boom")

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeVehicleStore struct {
	vehicles map[uuid.UUID]*model.Vehicle
	order    []uuid.UUID

	failNext bool
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: make(map[uuid.UUID]*model.Vehicle)}
}

func (s *fakeVehicleStore) fail() error {
	if s.failNext {
		s.failNext = false
		return errBoom
	}
	return nil
}

func (s *fakeVehicleStore) Insert(_ context.Context, input model.VehicleInput, lastUpdate, weekStart time.Time) (*model.Vehicle, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	v := &model.Vehicle{
		ID:             uuid.New(),
		Model:          input.Model,
		Status:         input.Status,
		Fuel:           input.Fuel,
		Temperature:    input.Temperature,
		Distance:       input.Distance,
		Driver:         input.Driver,
		Class:          input.Class,
		LastUpdate:     lastUpdate,
		WeekStart:      weekStart,
		WeeklyDistance: input.Distance,
		CreatedAt:      lastUpdate,
	}
	s.vehicles[v.ID] = v
	s.order = append(s.order, v.ID)
	return cloneVehicle(v), nil
}

func (s *fakeVehicleStore) BulkInsert(ctx context.Context, inputs []model.VehicleInput, lastUpdate, weekStart time.Time) (int64, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	for _, input := range inputs {
		if _, err := s.Insert(ctx, input, lastUpdate, weekStart); err != nil {
			return 0, err
		}
	}
	return int64(len(inputs)), nil
}

func (s *fakeVehicleStore) List(context.Context) ([]model.Vehicle, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]model.Vehicle, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *cloneVehicle(s.vehicles[id]))
	}
	return out, nil
}

func (s *fakeVehicleStore) GetByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	v, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneVehicle(v), nil
}

func (s *fakeVehicleStore) Update(
	_ context.Context,
	id uuid.UUID,
	patch model.VehiclePatch,
	lastUpdate, weekStart time.Time,
	weeklyDistance float64,
) (*model.Vehicle, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	v, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Model != nil {
		v.Model = *patch.Model
	}
	if patch.Status != nil {
		v.Status = *patch.Status
	}
	if patch.Fuel != nil {
		v.Fuel = *patch.Fuel
	}
	if patch.Temperature != nil {
		v.Temperature = *patch.Temperature
	}
	if patch.Distance != nil {
		v.Distance = *patch.Distance
	}
	if patch.Driver != nil {
		v.Driver = *patch.Driver
	}
	if patch.Class != nil {
		v.Class = *patch.Class
	}
	v.LastUpdate = lastUpdate
	v.WeekStart = weekStart
	v.WeeklyDistance = weeklyDistance
	return cloneVehicle(v), nil
}

func (s *fakeVehicleStore) DeleteAll(context.Context) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.vehicles = make(map[uuid.UUID]*model.Vehicle)
	s.order = nil
	return nil
}

func (s *fakeVehicleStore) Count(context.Context) (int64, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	return int64(len(s.order)), nil
}

func cloneVehicle(v *model.Vehicle) *model.Vehicle {
	clone := *v
	return &clone
}

type fakeHistoryStore struct {
	entries map[string]*model.HistoryEntry

	failNext bool
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{entries: make(map[string]*model.HistoryEntry)}
}

func historyKey(weekStart time.Time, day string) string {
	return fmt.Sprintf("%s/%s", weekStart.Format("2006-01-02"), day)
}

func (s *fakeHistoryStore) fail() error {
	if s.failNext {
		s.failNext = false
		return errBoom
	}
	return nil
}

func (s *fakeHistoryStore) AddDelta(
	_ context.Context,
	weekStart, weekEnd time.Time,
	day string,
	delta, costRate float64,
	vehicleCount int64,
) (*model.HistoryEntry, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	key := historyKey(weekStart, day)
	entry, ok := s.entries[key]
	if !ok {
		entry = &model.HistoryEntry{
			ID:           uuid.New(),
			WeekStart:    weekStart,
			WeekEnd:      weekEnd,
			DayOfWeek:    day,
			VehicleCount: vehicleCount,
		}
		s.entries[key] = entry
	}
	entry.TotalDistance += delta
	entry.TotalCost = entry.TotalDistance * costRate
	clone := *entry
	return &clone, nil
}

func (s *fakeHistoryStore) SeedWeek(_ context.Context, weekStart, weekEnd time.Time, days []string, vehicleCount int64) error {
	if err := s.fail(); err != nil {
		return err
	}
	for _, day := range days {
		key := historyKey(weekStart, day)
		if _, ok := s.entries[key]; ok {
			continue
		}
		s.entries[key] = &model.HistoryEntry{
			ID:           uuid.New(),
			WeekStart:    weekStart,
			WeekEnd:      weekEnd,
			DayOfWeek:    day,
			VehicleCount: vehicleCount,
		}
	}
	return nil
}

func (s *fakeHistoryStore) ListWeek(_ context.Context, weekStart time.Time) ([]model.HistoryEntry, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	var out []model.HistoryEntry
	for _, entry := range s.entries {
		if entry.WeekStart.Equal(weekStart) {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (s *fakeHistoryStore) DeleteAll(context.Context) error {
	if err := s.fail(); err != nil {
		return err
	}
	s.entries = make(map[string]*model.HistoryEntry)
	return nil
}
