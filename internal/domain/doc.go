// Package domain models the forest fire prediction dashboard session.
//
// # Model Contract
//
// The upstream model backend is a CNN-RNN-UNet served over HTTP. It consumes a
// 6-hour input window of gridded weather and terrain channels covering a 13×13
// patch and emits fire ignition probabilities for the next 3 hourly horizons.
// This service never sees raster bytes: uploads are described by file name and
// count only, and the backend resolves the named files on its side.
//
// # Channel Catalog
//
// Seven channels feed the model, fixed for the session:
//
//	Dynamic (one raster per input hour, 6 files each):
//	  T2M   2-metre air temperature
//	  RH    relative humidity
//	  U10   10-metre wind, zonal component
//	  V10   10-metre wind, meridional component
//	  PRCP  hourly precipitation
//	Static (one raster for the whole window):
//	  DEM   elevation
//	  NDVI  vegetation / fuel index
//
// 5×6 + 2 = 32 files complete a submission.
//
// # Coordinate Conventions
//
// Bounds are WGS-84 degrees, entered as raw text and parsed on validation.
// Grid row 0 is the southernmost row; renderers flip row order so north sits
// at the top. Per-cell coordinates use the unit-per-cell approximation
// (latMax − row, lonMin + col) carried over from the reference frontend; the
// true pixel size of the 13×13 patch is not derivable from the bounds alone.
//
// # Probability Buckets
//
// Cell probabilities in [0,1] map to display colors with fixed thresholds:
// below 0.1 transparent, then yellow, orange, and red bands starting at 0.1,
// 0.3, and 0.6, with alpha rising linearly inside each band. See [ColorFor].
package domain
