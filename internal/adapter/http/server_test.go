package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankiibott/Forest-fire-prediction/internal/config"
	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
	"github.com/ankiibott/Forest-fire-prediction/internal/observability"
	"github.com/ankiibott/Forest-fire-prediction/internal/predict"
	"github.com/ankiibott/Forest-fire-prediction/internal/state"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires a server around the given predictor with a fresh
// session store and no publisher.
func newTestServer(t *testing.T, predictor Predictor) *Server {
	t.Helper()
	store := state.NewStore(clockwork.NewRealClock())
	return NewServer(":0", store, predictor, nil, observability.NewMetricsForTesting(), discardLogger())
}

// fallbackClient is a real prediction client aimed at a dead endpoint with a
// short fallback delay, so every run completes simulated.
func fallbackClient(t *testing.T) *predict.Client {
	t.Helper()
	cfg := &config.Config{
		ModelURL:       "http://127.0.0.1:1",
		ModelTimeout:   time.Second,
		FallbackDelay:  2 * time.Millisecond,
		SimulationSeed: 42,
	}
	return predict.NewClient(cfg, observability.NewMetricsForTesting(), discardLogger())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// fillSession drives the JSON API until the form is submittable: all 32
// files and valid bounds.
func fillSession(t *testing.T, s *Server) {
	t.Helper()
	for _, c := range domain.Channels {
		files := make([]string, c.RequiredFiles)
		for i := range files {
			files[i] = fmt.Sprintf("%s_%02d.tif", c.Abbrev, i)
		}
		rec := doJSON(t, s, http.MethodPost, "/api/form/files", setFilesRequest{Channel: c.Abbrev, Files: files})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	for field, value := range map[string]string{
		"latMin": "30.2", "latMax": "30.3", "lonMin": "77.8", "lonMax": "77.9",
	} {
		rec := doJSON(t, s, http.MethodPost, "/api/form/bounds", setBoundRequest{Field: field, Value: value})
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	rec := doJSON(t, s, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestAPIForm_ValidityFlip(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	rec := doJSON(t, s, http.MethodGet, "/api/form", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var before formResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &before))
	assert.False(t, before.Valid)
	assert.Equal(t, 6, before.Required["T2M"])
	assert.Equal(t, 1, before.Required["DEM"])

	fillSession(t, s)

	rec = doJSON(t, s, http.MethodGet, "/api/form", nil)
	var after formResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.True(t, after.Valid)
	assert.Equal(t, 6, after.Files["T2M"])
}

func TestAPIFiles_UnknownChannel(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	rec := doJSON(t, s, http.MethodPost, "/api/form/files", setFilesRequest{Channel: "XYZ"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAPIPredict_RejectsIncompleteForm(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	rec := doJSON(t, s, http.MethodPost, "/api/predict", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "incomplete")
}

// A complete form submitted against an unreachable backend still yields a
// full 3-horizon 13×13 result, flagged as simulated with a visible warning.
func TestAPIPredict_EndToEndFallback(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))
	fillSession(t, s)

	rec := doJSON(t, s, http.MethodPost, "/api/predict", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp predictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "simulated", resp.Source)
	assert.NotEmpty(t, resp.Warning)
	assert.Len(t, resp.MaxProbabilities, domain.Horizons)
	assert.InDelta(t, 30.25, resp.Center.Lat, 1e-9)
	assert.Equal(t, "17:00:00", resp.TimeDetails.InputStart)

	// The stored result serves full grids per horizon.
	for h := 0; h < domain.Horizons; h++ {
		rec = doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/result?horizon=%d", h), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var result resultResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		require.Len(t, result.Grid, domain.PatchRows)
		for _, row := range result.Grid {
			require.Len(t, row, domain.PatchCols)
			for _, v := range row {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
		assert.Greater(t, result.MaxProbability, 0.0)
	}

	// The dashboard page shows the warning banner and the grid.
	rec = doJSON(t, s, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "simulated probabilities")
	assert.Contains(t, rec.Body.String(), "max p =")
}

// blockingPredictor parks until released, to hold a run in flight.
type blockingPredictor struct {
	release chan struct{}
	once    sync.Once
	started chan struct{}
}

func newBlockingPredictor() *blockingPredictor {
	return &blockingPredictor{release: make(chan struct{}), started: make(chan struct{})}
}

func (b *blockingPredictor) Predict(ctx context.Context, bounds domain.Bounds, _ domain.Manifest) (predict.Outcome, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-ctx.Done():
		return predict.Outcome{}, ctx.Err()
	case <-b.release:
	}
	return predict.Outcome{
		Prediction: domain.Prediction{{{0.5}}, {{0.5}}, {{0.5}}},
		Bounds:     bounds,
		Center:     bounds.Center(),
		Source:     predict.SourceModel,
	}, nil
}

func TestAPIPredict_SecondRunConflicts(t *testing.T) {
	predictor := newBlockingPredictor()
	s := newTestServer(t, predictor)
	fillSession(t, s)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- doJSON(t, s, http.MethodPost, "/api/predict", nil)
	}()
	<-predictor.started

	rec := doJSON(t, s, http.MethodPost, "/api/predict", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(predictor.release)
	first := <-done
	assert.Equal(t, http.StatusOK, first.Code)
}

func TestAPIResult_NoRunYet(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	rec := doJSON(t, s, http.MethodGet, "/api/result", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIHorizon(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))
	fillSession(t, s)
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/api/predict", nil).Code)

	h := 2
	rec := doJSON(t, s, http.MethodPost, "/api/horizon", selectHorizonRequest{Horizon: &h})
	assert.Equal(t, http.StatusOK, rec.Code)

	h = 7
	rec = doJSON(t, s, http.MethodPost, "/api/horizon", selectHorizonRequest{Horizon: &h})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGridFragment(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	// Nothing to render before the first run.
	rec := doJSON(t, s, http.MethodGet, "/grid", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	fillSession(t, s)
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/api/predict", nil).Code)

	rec = doJSON(t, s, http.MethodGet, "/grid?horizon=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prob-grid")

	// Out-of-range horizon renders nothing rather than erroring.
	rec = doJSON(t, s, http.MethodGet, "/grid?horizon=9", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// Browser multipart uploads contribute file names only.
func TestFormFiles_Multipart(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("channel", "DEM"))
	fw, err := mw.CreateFormFile("files", "dem_patch.tif")
	require.NoError(t, err)
	_, err = fw.Write([]byte("raster bytes the server must ignore"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/form/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	form := doJSON(t, s, http.MethodGet, "/api/form", nil)
	var resp formResponse
	require.NoError(t, json.Unmarshal(form.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Files["DEM"])
}

func TestFormBounds_StoredVerbatim(t *testing.T) {
	s := newTestServer(t, fallbackClient(t))

	body := bytes.NewBufferString("latMin=not-a-number&latMax=30.3")
	req := httptest.NewRequest(http.MethodPost, "/form/bounds", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	form := doJSON(t, s, http.MethodGet, "/api/form", nil)
	var resp formResponse
	require.NoError(t, json.Unmarshal(form.Body.Bytes(), &resp))
	assert.Equal(t, "not-a-number", resp.Bounds.LatMin)
	assert.Equal(t, "30.3", resp.Bounds.LatMax)
	assert.False(t, resp.Valid)
}
