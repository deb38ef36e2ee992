package domain

import (
	"encoding/json"
	"fmt"
)

// ManifestEntry is one channel's slot in the outbound file manifest. Dynamic
// channels serialize as an ordered list of file names (empty list when nothing
// is selected); static channels as a single name or null.
type ManifestEntry struct {
	Kind  ChannelKind
	Files []string
}

// MarshalJSON emits the wire shape the model backend expects:
// string[] for dynamic entries, string or null for static ones.
func (e ManifestEntry) MarshalJSON() ([]byte, error) {
	if e.Kind == ChannelStatic {
		if len(e.Files) == 0 {
			return []byte("null"), nil
		}
		return json.Marshal(e.Files[0])
	}
	if e.Files == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.Files)
}

// Manifest maps channel abbreviations to their serialized upload slots.
type Manifest map[string]ManifestEntry

// BuildManifest assembles the manifest for the given catalog from the current
// form state. File names only; raw file contents are never transmitted.
func BuildManifest(specs []ChannelSpec, fs FormState) Manifest {
	m := make(Manifest, len(specs))
	for _, spec := range specs {
		m[spec.Abbrev] = ManifestEntry{Kind: spec.Kind, Files: fs[spec.Abbrev]}
	}
	return m
}

// RequestBody is the outbound JSON payload for the model backend.
type RequestBody struct {
	LatMin       float64  `json:"latMin"`
	LatMax       float64  `json:"latMax"`
	LonMin       float64  `json:"lonMin"`
	LonMax       float64  `json:"lonMax"`
	FileManifest Manifest `json:"fileManifest"`
}

// BuildRequest combines validated bounds with a manifest. Pure transform,
// no I/O.
func BuildRequest(b Bounds, m Manifest) RequestBody {
	return RequestBody{
		LatMin:       b.LatMin,
		LatMax:       b.LatMax,
		LonMin:       b.LonMin,
		LonMax:       b.LonMax,
		FileManifest: m,
	}
}

// ValidatePrediction checks that a prediction grid has the exact model
// geometry and all cells in [0,1]. A response failing this check is treated
// as unparseable by the prediction client.
func ValidatePrediction(p Prediction) error {
	if len(p) != Horizons {
		return fmt.Errorf("expected %d horizons, got %d", Horizons, len(p))
	}
	for h, grid := range p {
		if len(grid) != PatchRows {
			return fmt.Errorf("horizon %d: expected %d rows, got %d", h, PatchRows, len(grid))
		}
		for i, row := range grid {
			if len(row) != PatchCols {
				return fmt.Errorf("horizon %d row %d: expected %d cols, got %d", h, i, PatchCols, len(row))
			}
			for j, v := range row {
				if v < 0 || v > 1 {
					return fmt.Errorf("horizon %d cell (%d,%d): probability %f out of range", h, i, j, v)
				}
			}
		}
	}
	return nil
}
