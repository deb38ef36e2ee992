package domain

import "time"

// RunRecord is the audit form of a completed prediction run, published to
// the run event stream. It carries summary values only, never the full grid.
type RunRecord struct {
	RunID            string    `json:"run_id"`
	Source           string    `json:"source"` // "model" or "simulated"
	Bounds           Bounds    `json:"bounds"`
	Center           Geo       `json:"center"`
	MaxProbabilities []float64 `json:"max_probabilities"` // one per horizon
	Warning          string    `json:"warning,omitempty"`
	CompletedAt      time.Time `json:"completed_at"`
}
