// Package render produces the dashboard HTML: the upload form, the colored
// probability grid, and standalone snapshot pages.
package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
)

// ChannelView is one upload section of the form.
type ChannelView struct {
	Spec     domain.ChannelSpec
	Files    []string
	Complete bool
}

// CellView is one painted grid cell.
type CellView struct {
	Value string       // probability, 4 decimal places
	Title string       // approximate coordinates + probability tooltip
	Style template.CSS // background-color, empty for transparent cells
}

// GridView is the display model for one forecast horizon.
type GridView struct {
	Horizon  int
	Horizons []int
	Rows     [][]CellView
	// Axis labels derived from the bounds.
	TopLat    string
	BottomLat string
	LeftLon   string
	RightLon  string
	MaxProb   string
	Time      domain.TimeDetails
}

// PageView is the display model for the full dashboard page.
type PageView struct {
	Channels []ChannelView
	Bounds   domain.RawBounds
	Valid    bool
	InFlight bool
	Warning  string
	Source   string
	Grid     *GridView
}

// NewGridView builds the display model for one horizon. Returns nil when the
// prediction is empty or the horizon is out of range: the caller renders
// nothing rather than an error state.
//
// Rows are flipped so the northernmost row sits at the top. Cell coordinates
// are the unit-per-cell approximation off the bounds corner, not a geodetic
// mapping of the patch.
func NewGridView(bounds domain.Bounds, p domain.Prediction, horizon int, td domain.TimeDetails) *GridView {
	grid := p.Horizon(horizon)
	if grid == nil {
		return nil
	}

	rows := make([][]CellView, len(grid))
	for d := range rows {
		stored := grid[len(grid)-1-d]
		cells := make([]CellView, len(stored))
		for j, raw := range stored {
			v := domain.Clamp(raw)
			coord := bounds.CellCoord(d, j)
			cell := CellView{
				Value: fmt.Sprintf("%.4f", raw),
				Title: fmt.Sprintf("lat ≈ %.1f, lon ≈ %.1f | p=%.4f", coord.Lat, coord.Lon, raw),
			}
			if c := domain.ColorFor(v); !c.Transparent() {
				cell.Style = template.CSS("background-color:" + c.CSS())
			}
			cells[j] = cell
		}
		rows[d] = cells
	}

	horizons := make([]int, len(p))
	for h := range horizons {
		horizons[h] = h
	}

	return &GridView{
		Horizon:   horizon,
		Horizons:  horizons,
		Rows:      rows,
		TopLat:    fmt.Sprintf("%.2f", bounds.LatMax),
		BottomLat: fmt.Sprintf("%.2f", bounds.LatMin),
		LeftLon:   fmt.Sprintf("%.2f", bounds.LonMin),
		RightLon:  fmt.Sprintf("%.2f", bounds.LonMax),
		MaxProb:   fmt.Sprintf("%.4f", p.MaxProbability(horizon)),
		Time:      td,
	}
}

// RenderGrid writes the grid fragment for one horizon. A nil view writes
// nothing.
func RenderGrid(w io.Writer, view *GridView) error {
	if view == nil {
		return nil
	}
	return gridTmpl.ExecuteTemplate(w, "grid", view)
}

// RenderPage writes the full dashboard page.
func RenderPage(w io.Writer, view PageView) error {
	return pageTmpl.ExecuteTemplate(w, "page", view)
}

// RenderSnapshot writes a standalone HTML document containing only the grid,
// for static generation by the render CLI.
func RenderSnapshot(w io.Writer, title string, warning string, view *GridView) error {
	return snapshotTmpl.ExecuteTemplate(w, "snapshot", struct {
		Title   string
		Warning string
		Grid    *GridView
	}{Title: title, Warning: warning, Grid: view})
}
