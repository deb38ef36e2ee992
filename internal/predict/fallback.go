package predict

import (
	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
)

// Simulated cell probability: a low base rising toward the northeast corner
// of the patch, plus bounded noise. The shape is deterministic; only the
// noise term draws from the client's seeded source.
const (
	simBase    = 0.05
	rowWeight  = 0.2
	colWeight  = 0.3
	noiseScale = 0.2
)

// Simulate synthesizes a fallback prediction for the given bounds. The grid
// has full model geometry with every cell clamped to [0,1], and the time
// details are the fixed sample window used as a stand-in for the backend's
// metadata. The result shape is indistinguishable from a real prediction.
func (c *Client) Simulate(bounds domain.Bounds) Outcome {
	prediction := make(domain.Prediction, domain.Horizons)
	for h := range prediction {
		grid := make([][]float64, domain.PatchRows)
		for i := range grid {
			row := make([]float64, domain.PatchCols)
			for j := range row {
				p := simBase +
					float64(i)/domain.PatchRows*rowWeight +
					float64(j)/domain.PatchCols*colWeight +
					c.noise()
				row[j] = domain.Clamp(p)
			}
			grid[i] = row
		}
		prediction[h] = grid
	}

	return Outcome{
		Prediction:  prediction,
		TimeDetails: domain.TimeWindow(domain.FixedSampleIndex, domain.BaseDate),
		Bounds:      bounds,
		Center:      bounds.Center(),
		Source:      SourceSimulated,
		Warning:     "model backend unreachable; showing simulated probabilities",
	}
}
