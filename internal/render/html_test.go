package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
)

func knownGrid() domain.Prediction {
	return domain.Prediction{
		{{0.9, 0.1, 0.0}, {0.5, 0.5, 0.5}, {0.0, 0.1, 0.9}},
	}
}

func knownBounds() domain.Bounds {
	return domain.Bounds{LatMin: 10, LatMax: 12, LonMin: 20, LonMax: 22}
}

func TestNewGridView_RowOrderAndTooltips(t *testing.T) {
	view := NewGridView(knownBounds(), knownGrid(), 0, domain.TimeDetails{})
	require.NotNil(t, view)
	require.Len(t, view.Rows, 3)

	// Stored row order is reversed: the last stored row renders at the top
	// with the northern latitude, the first stored row at the bottom.
	top := view.Rows[0]
	assert.Equal(t, "0.0000", top[0].Value)
	assert.Equal(t, "0.1000", top[1].Value)
	assert.Equal(t, "0.9000", top[2].Value)
	assert.Contains(t, top[0].Title, "lat ≈ 12.0")
	assert.Contains(t, top[0].Title, "lon ≈ 20.0")
	assert.Contains(t, top[2].Title, "lon ≈ 22.0")
	assert.Contains(t, top[2].Title, "p=0.9000")

	bottom := view.Rows[2]
	assert.Equal(t, "0.9000", bottom[0].Value)
	assert.Equal(t, "0.1000", bottom[1].Value)
	assert.Equal(t, "0.0000", bottom[2].Value)
	assert.Contains(t, bottom[0].Title, "lat ≈ 10.0")
}

func TestNewGridView_ColorsAndMax(t *testing.T) {
	view := NewGridView(knownBounds(), knownGrid(), 0, domain.TimeDetails{})
	require.NotNil(t, view)

	// 0.0 cells stay unpainted, high cells get the red band.
	assert.Empty(t, string(view.Rows[0][0].Style))
	assert.Contains(t, string(view.Rows[0][2].Style), "rgba(211,47,47")
	// 0.5 sits in the orange band.
	assert.Contains(t, string(view.Rows[1][1].Style), "rgba(255,152,0")

	assert.Equal(t, "0.9000", view.MaxProb)
	assert.Equal(t, "12.00", view.TopLat)
	assert.Equal(t, "10.00", view.BottomLat)
	assert.Equal(t, "20.00", view.LeftLon)
	assert.Equal(t, "22.00", view.RightLon)
}

func TestNewGridView_PreconditionFailures(t *testing.T) {
	assert.Nil(t, NewGridView(knownBounds(), nil, 0, domain.TimeDetails{}))
	assert.Nil(t, NewGridView(knownBounds(), knownGrid(), 1, domain.TimeDetails{}))
	assert.Nil(t, NewGridView(knownBounds(), knownGrid(), -1, domain.TimeDetails{}))
}

func TestRenderGrid_NilViewRendersNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestRenderGrid_Fragment(t *testing.T) {
	td := domain.TimeWindow(domain.FixedSampleIndex, domain.BaseDate)
	view := NewGridView(knownBounds(), knownGrid(), 0, td)

	var buf bytes.Buffer
	require.NoError(t, RenderGrid(&buf, view))
	html := buf.String()

	assert.Contains(t, html, "max p = 0.9000")
	assert.Contains(t, html, "2015-01-01")
	assert.Contains(t, html, "17:00:00")
	assert.Contains(t, html, "12.00°N")
	assert.Contains(t, html, "20.00°E")

	// Top table row carries the reversed stored row.
	firstRow := html[strings.Index(html, "<tr>"):]
	firstRow = firstRow[:strings.Index(firstRow, "</tr>")]
	assert.Contains(t, firstRow, "lat ≈ 12.0")
	assert.Contains(t, firstRow, ">0.0000<")
}

func TestRenderPage(t *testing.T) {
	view := PageView{
		Channels: []ChannelView{
			{Spec: domain.Channels[0], Files: []string{"t2m_00.tif"}},
		},
		Bounds:  domain.RawBounds{LatMin: "30.2"},
		Valid:   false,
		Warning: "model backend unreachable; showing simulated probabilities",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, view))
	html := buf.String()

	assert.Contains(t, html, "Forest Fire Prediction")
	assert.Contains(t, html, "model backend unreachable")
	assert.Contains(t, html, "2m Temperature")
	assert.Contains(t, html, `value="30.2"`)
	assert.Contains(t, html, "disabled")
}

func TestRenderSnapshot(t *testing.T) {
	view := NewGridView(knownBounds(), knownGrid(), 0, domain.TimeDetails{Date: "2015-01-01"})

	var buf bytes.Buffer
	require.NoError(t, RenderSnapshot(&buf, "Snapshot", "simulated output", view))
	html := buf.String()

	assert.Contains(t, html, "<title>Snapshot</title>")
	assert.Contains(t, html, "simulated output")
	assert.Contains(t, html, "max p = 0.9000")
}
