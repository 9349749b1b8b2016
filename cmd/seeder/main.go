package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// vehiclePayload mirrors the service's vehicle input contract.
type vehiclePayload struct {
	Model       string  `json:"model"`
	Status      string  `json:"status"`
	Fuel        float64 `json:"fuel"`
	Temperature float64 `json:"temperature"`
	Distance    float64 `json:"distance"`
	Driver      string  `json:"driver"`
	Class       string  `json:"class"`
}

type seedPayload struct {
	Vehicles []vehiclePayload `json:"vehicles"`
}

type createdVehicle struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
}

var (
	vehicleModels = []string{
		"Volvo FH16", "Scania R450", "Mercedes-Benz Actros", "MAN TGX",
		"DAF XF", "Iveco S-Way", "Renault T High", "Kenworth T680",
	}
	drivers = []string{
		"Laura Ortiz", "Marta Vidal", "Diego Fuentes", "Carlos Méndez",
		"Ana Robles", "Javier Soto", "Lucía Paredes", "Pedro Aguilar",
	}
	classes  = []string{"Carga Pesada", "Refrigerado", "Reparto Urbano"}
	statuses = []string{"En Ruta", "En Ruta", "Disponible", "Mantenimiento", "Incidencia"}
)

func randomVehicle(rng *rand.Rand) vehiclePayload {
	return vehiclePayload{
		Model:       vehicleModels[rng.Intn(len(vehicleModels))],
		Status:      statuses[rng.Intn(len(statuses))],
		Fuel:        float64(rng.Intn(101)),
		Temperature: 20 + float64(rng.Intn(101)),
		Distance:    10000 + float64(rng.Intn(490001)),
		Driver:      drivers[rng.Intn(len(drivers))],
		Class:       classes[rng.Intn(len(classes))],
	}
}

func postJSON(client *http.Client, url string, payload any, out any) (int, error) {
	return sendJSON(client, http.MethodPost, url, payload, out)
}

func sendJSON(client *http.Client, method, url string, payload any, out any) (int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewBuffer(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func seedFleet(client *http.Client, log zerolog.Logger, apiURL string, count int, rng *rand.Rand) error {
	payload := seedPayload{Vehicles: make([]vehiclePayload, 0, count)}
	for i := 0; i < count; i++ {
		payload.Vehicles = append(payload.Vehicles, randomVehicle(rng))
	}

	status, err := postJSON(client, apiURL+"/fleet/seed", payload, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("seed failed with status %d", status)
	}
	log.Info().Int("vehicles", count).Msg("fleet seeded")
	return nil
}

// simulate drives odometer updates against a freshly created fleet so the
// weekly history fills up with realistic deltas.
func simulate(client *http.Client, log zerolog.Logger, apiURL string, count, ticks int, interval time.Duration, rng *rand.Rand) error {
	vehicles := make([]createdVehicle, 0, count)
	for i := 0; i < count; i++ {
		var created createdVehicle
		status, err := postJSON(client, apiURL+"/fleet/vehicle", randomVehicle(rng), &created)
		if err != nil {
			return err
		}
		if status != http.StatusCreated {
			return fmt.Errorf("vehicle creation failed with status %d", status)
		}
		vehicles = append(vehicles, created)
		log.Info().Str("vehicle_id", created.ID).Msg("created vehicle")
	}

	for tick := 0; tick < ticks; tick++ {
		for i := range vehicles {
			v := &vehicles[i]
			v.Distance += 5 + float64(rng.Intn(120))

			patch := map[string]any{
				"distance": v.Distance,
				"fuel":     float64(rng.Intn(101)),
			}
			if rng.Intn(10) == 0 {
				patch["status"] = statuses[rng.Intn(len(statuses))]
			}

			status, err := sendJSON(client, http.MethodPatch, apiURL+"/fleet/vehicle/"+v.ID, patch, nil)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				log.Warn().Str("vehicle_id", v.ID).Int("status", status).Msg("update rejected")
			}
		}
		log.Info().Int("tick", tick+1).Int("of", ticks).Msg("fleet updated")
		if tick < ticks-1 {
			time.Sleep(interval)
		}
	}
	return nil
}

func main() {
	var (
		apiURL   = flag.String("api", "http://localhost:7090", "base URL of the fleet dashboard service")
		mode     = flag.String("mode", "seed", "seed: replace the fleet; simulate: create vehicles and stream odometer updates")
		count    = flag.Int("count", 8, "number of vehicles")
		ticks    = flag.Int("ticks", 10, "update rounds in simulate mode")
		interval = flag.Duration("interval", 2*time.Second, "pause between update rounds")
		seed     = flag.Int64("seed", 0, "random seed, 0 uses the current time")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: 10 * time.Second}

	var err error
	switch *mode {
	case "seed":
		err = seedFleet(client, log, *apiURL, *count, rng)
	case "simulate":
		err = simulate(client, log, *apiURL, *count, *ticks, *interval, rng)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seeder failed")
	}
}
