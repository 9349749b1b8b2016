package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-dashboard/internal/calendar"
	"github.com/nurpe/fleet-dashboard/internal/metrics"
	"github.com/nurpe/fleet-dashboard/internal/model"
	"github.com/nurpe/fleet-dashboard/internal/radar"
)

// ExcelGenerator renders a weekly report as an xlsx workbook.
type ExcelGenerator interface {
	Generate(report model.WeeklyReport) ([]byte, error)
}

// PDFGenerator renders a weekly report as a PDF document.
type PDFGenerator interface {
	Generate(report model.WeeklyReport) ([]byte, error)
}

// FleetService orchestrates vehicle updates, the weekly history ledger and
// the dashboard reads.
type FleetService struct {
	vehicles VehicleStore
	ledger   *Ledger
	clock    Clock
	excel    ExcelGenerator
	pdf      PDFGenerator
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewFleetService(
	vehicles VehicleStore,
	ledger *Ledger,
	clock Clock,
	excel ExcelGenerator,
	pdf PDFGenerator,
	m *metrics.Metrics,
	log zerolog.Logger,
) *FleetService {
	return &FleetService{
		vehicles: vehicles,
		ledger:   ledger,
		clock:    clock,
		excel:    excel,
		pdf:      pdf,
		metrics:  m,
		log:      log,
	}
}

// VehicleView is the display record the dashboard renders per vehicle.
type VehicleView struct {
	ID                uuid.UUID           `json:"id"`
	Model             string              `json:"model"`
	Status            model.VehicleStatus `json:"status"`
	Fuel              float64             `json:"fuel"`
	Temperature       float64             `json:"temperature"`
	Distance          float64             `json:"distance"`
	Driver            string              `json:"driver"`
	Class             string              `json:"class"`
	LastUpdateDisplay string              `json:"lastUpdateDisplay"`
	WeekStart         time.Time           `json:"weekStart"`
	WeeklyDistance    float64             `json:"weeklyDistance"`
}

type DashboardData struct {
	Vehicles    []VehicleView      `json:"vehicles"`
	HistoryRows []model.DayTotal   `json:"historyRows"`
	RadarScores []model.RadarScore `json:"radarScores"`
}

type BulkReplaceResult struct {
	VehiclesInserted int64 `json:"vehiclesInserted"`
	HistorySeeded    bool  `json:"historySeeded"`
}

type ReportResult struct {
	FileName string
	Content  []byte
}

// lastUpdatePlaceholder marks vehicles that never received an update.
const lastUpdatePlaceholder = "N/A"

func (s *FleetService) CreateVehicle(ctx context.Context, input model.VehicleInput) (*model.Vehicle, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	vehicle, err := s.vehicles.Insert(ctx, input, now, calendar.WeekStart(now))
	if err != nil {
		return nil, s.storageFailure(err, "insert vehicle")
	}
	s.metrics.FleetSize.Inc()
	s.log.Info().Str("vehicle_id", vehicle.ID.String()).Str("model", vehicle.Model).Msg("vehicle created")
	return vehicle, nil
}

// ApplyUpdate patches a vehicle, clamps the distance delta to keep the
// odometer monotonic and forwards any positive delta to the ledger. The
// vehicle's own week bucket always reflects the real current week; recordAt
// only back-dates the ledger entry. A ledger failure fails the whole
// operation even though the vehicle write already committed.
func (s *FleetService) ApplyUpdate(ctx context.Context, id uuid.UUID, patch model.VehiclePatch, recordAt *time.Time) (*model.Vehicle, error) {
	if patch.Status != nil && !model.IsValidStatus(*patch.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
	}

	old, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, s.storageFailure(err, "fetch vehicle")
	}

	delta := 0.0
	if patch.Distance != nil {
		if *patch.Distance < old.Distance {
			// The odometer never runs backwards; keep the old reading.
			patch.Distance = &old.Distance
		}
		delta = *patch.Distance - old.Distance
	}

	now := s.clock.Now()
	currentWeekStart := calendar.WeekStart(now)

	updated, err := s.vehicles.Update(ctx, id, patch, now, currentWeekStart, old.WeeklyDistance+delta)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, s.storageFailure(err, "update vehicle")
	}
	s.metrics.VehicleUpdates.Inc()

	if delta > 0 {
		count, err := s.vehicles.Count(ctx)
		if err != nil {
			return nil, s.storageFailure(err, "count vehicles")
		}
		if err := s.ledger.RecordDelta(ctx, delta, recordAt, count); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// Dashboard assembles the full dashboard snapshot: vehicle display records,
// the current week's history rows and the radar scores. Read-only.
func (s *FleetService) Dashboard(ctx context.Context) (*DashboardData, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, s.storageFailure(err, "list vehicles")
	}

	rows, err := s.ledger.WeekRows(ctx, calendar.WeekStart(s.clock.Now()))
	if err != nil {
		return nil, err
	}

	views := make([]VehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		views = append(views, newVehicleView(v))
	}

	return &DashboardData{
		Vehicles:    views,
		HistoryRows: rows,
		RadarScores: radar.Calculate(vehicles),
	}, nil
}

// BulkReplace wipes the fleet and its history, inserts the new vehicles and
// pre-seeds the current week's rows. Destructive and irreversible; an empty
// input clears everything and seeds nothing.
func (s *FleetService) BulkReplace(ctx context.Context, inputs []model.VehicleInput) (*BulkReplaceResult, error) {
	for _, input := range inputs {
		if err := validateInput(input); err != nil {
			return nil, err
		}
	}

	if err := s.vehicles.DeleteAll(ctx); err != nil {
		return nil, s.storageFailure(err, "delete vehicles")
	}
	if err := s.ledger.ResetAll(ctx); err != nil {
		return nil, err
	}

	result := &BulkReplaceResult{}
	s.metrics.FleetSize.Set(0)
	if len(inputs) == 0 {
		s.log.Info().Msg("fleet cleared")
		return result, nil
	}

	now := s.clock.Now()
	inserted, err := s.vehicles.BulkInsert(ctx, inputs, now, calendar.WeekStart(now))
	if err != nil {
		return nil, s.storageFailure(err, "bulk insert vehicles")
	}
	if err := s.ledger.SeedWeek(ctx, inserted); err != nil {
		return nil, err
	}

	result.VehiclesInserted = inserted
	result.HistorySeeded = true
	s.metrics.FleetSize.Set(float64(inserted))
	s.log.Info().Int64("vehicles", inserted).Msg("fleet replaced")
	return result, nil
}

// ExportWeeklyExcel renders the current week as an xlsx attachment.
func (s *FleetService) ExportWeeklyExcel(ctx context.Context) (*ReportResult, error) {
	report, err := s.buildWeeklyReport(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*report)
	if err != nil {
		return nil, fmt.Errorf("generate excel report: %w", err)
	}
	return &ReportResult{
		FileName: reportFileName(*report, "xlsx"),
		Content:  content,
	}, nil
}

// ExportWeeklyPDF renders the current week as a PDF attachment.
func (s *FleetService) ExportWeeklyPDF(ctx context.Context) (*ReportResult, error) {
	report, err := s.buildWeeklyReport(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*report)
	if err != nil {
		return nil, fmt.Errorf("generate pdf report: %w", err)
	}
	return &ReportResult{
		FileName: reportFileName(*report, "pdf"),
		Content:  content,
	}, nil
}

func (s *FleetService) buildWeeklyReport(ctx context.Context) (*model.WeeklyReport, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, s.storageFailure(err, "list vehicles")
	}

	weekStart := calendar.WeekStart(s.clock.Now())
	rows, err := s.ledger.WeekRows(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	report := &model.WeeklyReport{
		WeekStart: weekStart,
		WeekEnd:   calendar.WeekEnd(weekStart),
		Days:      rows,
		Vehicles:  vehicles,
		Scores:    radar.Calculate(vehicles),
	}
	for _, row := range rows {
		report.TotalDistance += row.Distance
		report.TotalCost += row.Cost
	}
	return report, nil
}

func (s *FleetService) storageFailure(err error, op string) error {
	s.metrics.StorageFailures.Inc()
	s.log.Error().Err(err).Str("op", op).Msg("storage operation failed")
	return fmt.Errorf("%s: %w", op, ErrStorage)
}

func newVehicleView(v model.Vehicle) VehicleView {
	display := lastUpdatePlaceholder
	if !v.LastUpdate.IsZero() {
		display = v.LastUpdate.Format("03:04 PM")
	}
	return VehicleView{
		ID:                v.ID,
		Model:             v.Model,
		Status:            v.Status,
		Fuel:              v.Fuel,
		Temperature:       v.Temperature,
		Distance:          v.Distance,
		Driver:            v.Driver,
		Class:             v.Class,
		LastUpdateDisplay: display,
		WeekStart:         v.WeekStart,
		WeeklyDistance:    v.WeeklyDistance,
	}
}

func validateInput(input model.VehicleInput) error {
	if input.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if !model.IsValidStatus(input.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}
	if input.Fuel < 0 || input.Fuel > 100 {
		return fmt.Errorf("%w: fuel must be between 0 and 100", ErrInvalidInput)
	}
	if input.Distance < 0 {
		return fmt.Errorf("%w: distance must not be negative", ErrInvalidInput)
	}
	return nil
}

func reportFileName(report model.WeeklyReport, ext string) string {
	return fmt.Sprintf("fleet-week-%s.%s", report.WeekStart.Format("20060102"), ext)
}
