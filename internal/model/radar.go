package model

// RadarScore is one fleet-health dimension of the dashboard radar chart.
// Scores are recomputed on every read and never persisted.
type RadarScore struct {
	Dimension string  `json:"dimension"`
	Value     float64 `json:"value"`
	Max       float64 `json:"max"`
}

const RadarMax = 150
