// Package metrics exposes the service's prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	VehicleUpdates  prometheus.Counter
	DeltasRecorded  prometheus.Counter
	DistanceTotal   prometheus.Counter
	StorageFailures prometheus.Counter
	FleetSize       prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		VehicleUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleet_vehicle_updates_total",
			Help: "Vehicle update operations applied.",
		}),
		DeltasRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleet_history_deltas_total",
			Help: "Distance deltas recorded into the weekly history.",
		}),
		DistanceTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleet_distance_units_total",
			Help: "Distance units accumulated across all recorded deltas.",
		}),
		StorageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleet_storage_failures_total",
			Help: "Storage operations that failed.",
		}),
		FleetSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleet_vehicles",
			Help: "Vehicles currently tracked.",
		}),
	}
	registry.MustRegister(m.VehicleUpdates, m.DeltasRecorded, m.DistanceTotal, m.StorageFailures, m.FleetSize)
	return m
}

// Handler serves the prometheus exposition endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
