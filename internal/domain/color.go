package domain

import "fmt"

// CellColor is a display color with an alpha channel in [0,1].
type CellColor struct {
	R, G, B uint8
	Alpha   float64
}

// Risk hues. Thresholds and alpha ramps are fixed, not configurable.
var (
	lowRisk    = CellColor{R: 255, G: 235, B: 59} // yellow
	mediumRisk = CellColor{R: 255, G: 152, B: 0}  // orange
	highRisk   = CellColor{R: 211, G: 47, B: 47}  // red
)

// ColorFor maps a probability to its display color. Total over all inputs;
// the caller guarantees p is in [0,1] and out-of-range values are clamped by
// the renderer before they get here.
//
//	[0, 0.1)   transparent
//	[0.1, 0.3) yellow,  alpha 0.4 + p·0.3
//	[0.3, 0.6) orange,  alpha 0.5 + p·0.4
//	[0.6, 1]   red,     alpha 0.6 + p·0.4
func ColorFor(p float64) CellColor {
	switch {
	case p < 0.1:
		return CellColor{}
	case p < 0.3:
		c := lowRisk
		c.Alpha = 0.4 + p*0.3
		return c
	case p < 0.6:
		c := mediumRisk
		c.Alpha = 0.5 + p*0.4
		return c
	default:
		c := highRisk
		c.Alpha = 0.6 + p*0.4
		return c
	}
}

// CSS renders the color as an rgba() value.
func (c CellColor) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, c.Alpha)
}

// Transparent reports whether the cell should not be painted at all.
func (c CellColor) Transparent() bool {
	return c.Alpha == 0
}
