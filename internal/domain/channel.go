package domain

// Model geometry constants. These must match the trained model exactly: the
// backend rejects nothing, it simply reshapes, so a mismatch silently corrupts
// the prediction.
const (
	SeqLen    = 6  // hourly rasters per dynamic channel
	Horizons  = 3  // forecast hours returned per run
	PatchRows = 13 // grid rows (latitude)
	PatchCols = 13 // grid columns (longitude)
)

// ChannelKind distinguishes per-hour inputs from whole-window inputs.
type ChannelKind string

const (
	ChannelDynamic ChannelKind = "dynamic"
	ChannelStatic  ChannelKind = "static"
)

// ChannelSpec describes one model input channel. The catalog is fixed at
// build time and immutable for the session.
type ChannelSpec struct {
	Name          string      `json:"name"`
	Abbrev        string      `json:"abbrev"`
	Kind          ChannelKind `json:"kind"`
	RequiredFiles int         `json:"required_files"`
}

// Channels is the catalog of the seven model input channels, in model
// channel order.
var Channels = []ChannelSpec{
	{Name: "2m Temperature", Abbrev: "T2M", Kind: ChannelDynamic, RequiredFiles: SeqLen},
	{Name: "Relative Humidity", Abbrev: "RH", Kind: ChannelDynamic, RequiredFiles: SeqLen},
	{Name: "10m Wind (U)", Abbrev: "U10", Kind: ChannelDynamic, RequiredFiles: SeqLen},
	{Name: "10m Wind (V)", Abbrev: "V10", Kind: ChannelDynamic, RequiredFiles: SeqLen},
	{Name: "Precipitation", Abbrev: "PRCP", Kind: ChannelDynamic, RequiredFiles: SeqLen},
	{Name: "Elevation", Abbrev: "DEM", Kind: ChannelStatic, RequiredFiles: 1},
	{Name: "Vegetation Index", Abbrev: "NDVI", Kind: ChannelStatic, RequiredFiles: 1},
}

// ChannelByAbbrev looks up a catalog entry. The second return is false for
// unknown abbreviations.
func ChannelByAbbrev(abbrev string) (ChannelSpec, bool) {
	for _, c := range Channels {
		if c.Abbrev == abbrev {
			return c, true
		}
	}
	return ChannelSpec{}, false
}

// TotalRequiredFiles is the number of uploads that complete a submission
// across the whole catalog.
func TotalRequiredFiles() int {
	total := 0
	for _, c := range Channels {
		total += c.RequiredFiles
	}
	return total
}
