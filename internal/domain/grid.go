package domain

// Prediction is the model output: Horizons grids of PatchRows×PatchCols fire
// probabilities in [0,1]. Produced atomically by the prediction client and
// never mutated afterwards; a new run replaces it wholesale.
type Prediction [][][]float64

// Horizon returns the grid for one forecast hour, or nil when the index is
// out of range or the prediction is empty.
func (p Prediction) Horizon(h int) [][]float64 {
	if h < 0 || h >= len(p) {
		return nil
	}
	return p[h]
}

// MaxProbability is the largest cell value within one horizon's grid, used
// for the summary readout. Returns 0 for an empty prediction or an
// out-of-range horizon rather than failing.
func (p Prediction) MaxProbability(h int) float64 {
	grid := p.Horizon(h)
	maxVal := 0.0
	for _, row := range grid {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	return maxVal
}

// CellCoord is the approximate coordinate reported for a display cell: one
// degree per cell off the bounds corner, matching the reference frontend.
// It is not a geodetic mapping of the patch onto the bounding box; display
// row 0 is the northernmost row.
func (b Bounds) CellCoord(displayRow, col int) Geo {
	return Geo{
		Lat: b.LatMax - float64(displayRow),
		Lon: b.LonMin + float64(col),
	}
}

// Clamp limits v to [0,1] for display. Model output should already be in
// range; this is the renderer-side guarantee for values that are not.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
