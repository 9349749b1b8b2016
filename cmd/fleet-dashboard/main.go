package main

import (
	"fmt"
	"os"

	"github.com/nurpe/fleet-dashboard/internal/config"
	"github.com/nurpe/fleet-dashboard/internal/db"
	"github.com/nurpe/fleet-dashboard/internal/excel"
	httphandler "github.com/nurpe/fleet-dashboard/internal/http"
	"github.com/nurpe/fleet-dashboard/internal/logger"
	"github.com/nurpe/fleet-dashboard/internal/metrics"
	"github.com/nurpe/fleet-dashboard/internal/pdf"
	"github.com/nurpe/fleet-dashboard/internal/repository"
	"github.com/nurpe/fleet-dashboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	vehicleRepo := repository.NewVehicleRepository(database)
	historyRepo := repository.NewHistoryRepository(database)

	m := metrics.New()
	clock := service.SystemClock()
	ledger := service.NewLedger(historyRepo, clock, cfg.Fleet.CostRate, m, log)
	fleetService := service.NewFleetService(
		vehicleRepo,
		ledger,
		clock,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		m,
		log,
	)

	handler := httphandler.NewHandler(fleetService, log)
	router := httphandler.NewRouter(handler, m.Handler(), cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fleet dashboard service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
