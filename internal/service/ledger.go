package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-dashboard/internal/calendar"
	"github.com/nurpe/fleet-dashboard/internal/metrics"
	"github.com/nurpe/fleet-dashboard/internal/model"
)

// Ledger accumulates per-day distance and cost deltas into Monday-anchored
// weekly buckets.
type Ledger struct {
	history  HistoryStore
	clock    Clock
	costRate float64
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewLedger(history HistoryStore, clock Clock, costRate float64, m *metrics.Metrics, log zerolog.Logger) *Ledger {
	return &Ledger{
		history:  history,
		clock:    clock,
		costRate: costRate,
		metrics:  m,
		log:      log,
	}
}

// RecordDelta folds a non-negative distance delta into the bucket for the
// given instant (or now). Zero and negative deltas are skipped so no empty
// rows get created.
func (l *Ledger) RecordDelta(ctx context.Context, delta float64, at *time.Time, vehicleCount int64) error {
	if delta <= 0 {
		return nil
	}

	instant := l.clock.Now()
	if at != nil {
		instant = *at
	}
	weekStart := calendar.WeekStart(instant)
	weekEnd := calendar.WeekEnd(weekStart)
	day := calendar.DayLabel(instant)

	entry, err := l.history.AddDelta(ctx, weekStart, weekEnd, day, delta, l.costRate, vehicleCount)
	if err != nil {
		l.metrics.StorageFailures.Inc()
		l.log.Error().Err(err).
			Str("day", day).
			Time("week_start", weekStart).
			Float64("delta", delta).
			Msg("record history delta failed")
		return fmt.Errorf("record delta: %w", ErrStorage)
	}

	l.metrics.DeltasRecorded.Inc()
	l.metrics.DistanceTotal.Add(delta)
	l.log.Debug().
		Str("day", entry.DayOfWeek).
		Float64("delta", delta).
		Float64("total_distance", entry.TotalDistance).
		Msg("history delta recorded")
	return nil
}

// WeekRows returns exactly seven day totals for the given week in Mon..Sun
// order, zero-filled for days with no recorded activity.
func (l *Ledger) WeekRows(ctx context.Context, weekStart time.Time) ([]model.DayTotal, error) {
	entries, err := l.history.ListWeek(ctx, weekStart)
	if err != nil {
		l.metrics.StorageFailures.Inc()
		l.log.Error().Err(err).Time("week_start", weekStart).Msg("list week history failed")
		return nil, fmt.Errorf("week rows: %w", ErrStorage)
	}

	byDay := make(map[string]model.HistoryEntry, len(entries))
	for _, entry := range entries {
		byDay[entry.DayOfWeek] = entry
	}

	rows := make([]model.DayTotal, 0, len(calendar.DayLabels))
	for _, day := range calendar.DayLabels {
		row := model.DayTotal{Day: day}
		if entry, ok := byDay[day]; ok {
			row.Distance = entry.TotalDistance
			row.Cost = entry.TotalCost
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SeedWeek pre-creates the seven zero rows for the week containing now so
// the dashboard has no gap right after a fleet reset.
func (l *Ledger) SeedWeek(ctx context.Context, vehicleCount int64) error {
	weekStart := calendar.WeekStart(l.clock.Now())
	weekEnd := calendar.WeekEnd(weekStart)
	if err := l.history.SeedWeek(ctx, weekStart, weekEnd, calendar.DayLabels, vehicleCount); err != nil {
		l.metrics.StorageFailures.Inc()
		l.log.Error().Err(err).Time("week_start", weekStart).Msg("seed week history failed")
		return fmt.Errorf("seed week: %w", ErrStorage)
	}
	return nil
}

// ResetAll wipes every history row. Used only by the fleet reset operation.
func (l *Ledger) ResetAll(ctx context.Context) error {
	if err := l.history.DeleteAll(ctx); err != nil {
		l.metrics.StorageFailures.Inc()
		l.log.Error().Err(err).Msg("reset history failed")
		return fmt.Errorf("reset history: %w", ErrStorage)
	}
	return nil
}
