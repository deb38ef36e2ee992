package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
	"github.com/ankiibott/Forest-fire-prediction/internal/render"
	"github.com/ankiibott/Forest-fire-prediction/internal/state"
)

const maxMultipartMemory = 32 << 20

// handlePage renders the full dashboard from the current session snapshot.
func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()

	channels := make([]render.ChannelView, 0, len(domain.Channels))
	for _, spec := range domain.Channels {
		channels = append(channels, render.ChannelView{
			Spec:     spec,
			Files:    snap.Form[spec.Abbrev],
			Complete: snap.Form.ChannelComplete(spec),
		})
	}

	view := render.PageView{
		Channels: channels,
		Bounds:   snap.Bounds,
		Valid:    snap.Valid(),
		InFlight: snap.InFlight,
		Warning:  snap.LastWarning,
	}
	if snap.Result != nil {
		out := snap.Result.Outcome
		view.Source = string(out.Source)
		view.Grid = render.NewGridView(out.Bounds, out.Prediction, snap.SelectedHorizon, out.TimeDetails)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderPage(w, view); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

// handleFormFiles accepts a browser multipart upload for one channel. Only
// file names are read; contents are discarded unopened.
func (s *Server) handleFormFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		http.Error(w, "malformed upload", http.StatusBadRequest)
		return
	}
	channel := r.FormValue("channel")
	var names []string
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			names = append(names, fh.Filename)
		}
	}
	s.store.SetChannelFiles(channel, names)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleFormBounds stores whichever bound fields the form carried, verbatim.
func (s *Server) handleFormBounds(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	for _, field := range []domain.BoundField{domain.LatMin, domain.LatMax, domain.LonMin, domain.LonMax} {
		if vals, ok := r.PostForm[string(field)]; ok && len(vals) > 0 {
			s.store.SetBound(field, vals[0])
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFormPredict(w http.ResponseWriter, r *http.Request) {
	if _, err := s.runPredict(r.Context()); err != nil {
		// Gate rejections surface on the page itself; anything else is logged.
		if !errors.Is(err, state.ErrFormInvalid) && !errors.Is(err, state.ErrRunInFlight) {
			s.logger.Error("prediction run failed", "error", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFormHorizon(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		if h, err := strconv.Atoi(r.PostFormValue("horizon")); err == nil {
			if err := s.store.SelectHorizon(h); err != nil {
				s.logger.Warn("horizon selection rejected", "horizon", h, "error", err)
			}
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGridFragment serves the colored grid for one horizon as an HTML
// fragment. Responds 204 when there is nothing to render.
func (s *Server) handleGridFragment(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap.Result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	horizon := snap.SelectedHorizon
	if q := r.URL.Query().Get("horizon"); q != "" {
		h, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, "horizon must be an integer", http.StatusBadRequest)
			return
		}
		horizon = h
	}

	out := snap.Result.Outcome
	view := render.NewGridView(out.Bounds, out.Prediction, horizon, out.TimeDetails)
	if view == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderGrid(w, view); err != nil {
		s.logger.Error("render grid failed", "error", err)
	}
}

// --- JSON API ---

type setFilesRequest struct {
	Channel string   `json:"channel" validate:"required"`
	Files   []string `json:"files"`
}

type setBoundRequest struct {
	Field string `json:"field" validate:"required,oneof=latMin latMax lonMin lonMax"`
	Value string `json:"value"`
}

type selectHorizonRequest struct {
	Horizon *int `json:"horizon" validate:"required,min=0"`
}

type formResponse struct {
	Valid    bool             `json:"valid"`
	InFlight bool             `json:"in_flight"`
	Files    map[string]int   `json:"files"`
	Required map[string]int   `json:"required"`
	Bounds   domain.RawBounds `json:"bounds"`
}

type predictResponse struct {
	RunID            string             `json:"run_id"`
	Source           string             `json:"source"`
	Warning          string             `json:"warning,omitempty"`
	TimeDetails      domain.TimeDetails `json:"time_details"`
	Center           domain.Geo         `json:"center"`
	MaxProbabilities []float64          `json:"max_probabilities"`
}

type resultResponse struct {
	RunID          string             `json:"run_id"`
	Source         string             `json:"source"`
	Horizon        int                `json:"horizon"`
	Grid           [][]float64        `json:"grid"`
	MaxProbability float64            `json:"max_probability"`
	TimeDetails    domain.TimeDetails `json:"time_details"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return s.validate.Struct(v)
}

func (s *Server) handleAPIFiles(w http.ResponseWriter, r *http.Request) {
	var req setFilesRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "channel is required"})
		return
	}
	if _, ok := domain.ChannelByAbbrev(req.Channel); !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "unknown channel " + req.Channel})
		return
	}
	s.store.SetChannelFiles(req.Channel, req.Files)
	s.handleAPIForm(w, r)
}

func (s *Server) handleAPIBounds(w http.ResponseWriter, r *http.Request) {
	var req setBoundRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "field must be one of latMin, latMax, lonMin, lonMax"})
		return
	}
	s.store.SetBound(domain.BoundField(req.Field), req.Value)
	s.handleAPIForm(w, r)
}

func (s *Server) handleAPIForm(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	resp := formResponse{
		Valid:    snap.Valid(),
		InFlight: snap.InFlight,
		Files:    make(map[string]int, len(domain.Channels)),
		Required: make(map[string]int, len(domain.Channels)),
		Bounds:   snap.Bounds,
	}
	for _, spec := range domain.Channels {
		resp.Files[spec.Abbrev] = len(snap.Form[spec.Abbrev])
		resp.Required[spec.Abbrev] = spec.RequiredFiles
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	result, err := s.runPredict(r.Context())
	switch {
	case errors.Is(err, state.ErrRunInFlight):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, state.ErrFormInvalid):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "prediction run aborted"})
		return
	}

	out := result.Outcome
	writeJSON(w, http.StatusOK, predictResponse{
		RunID:            result.RunID,
		Source:           string(out.Source),
		Warning:          out.Warning,
		TimeDetails:      out.TimeDetails,
		Center:           out.Center,
		MaxProbabilities: maxPerHorizon(out.Prediction),
	})
}

func (s *Server) handleAPIHorizon(w http.ResponseWriter, r *http.Request) {
	var req selectHorizonRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "horizon is required and must be non-negative"})
		return
	}
	if err := s.store.SelectHorizon(*req.Horizon); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"horizon": *req.Horizon})
}

func (s *Server) handleAPIResult(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	if snap.Result == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no prediction has run yet"})
		return
	}
	horizon := snap.SelectedHorizon
	if q := r.URL.Query().Get("horizon"); q != "" {
		h, err := strconv.Atoi(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "horizon must be an integer"})
			return
		}
		horizon = h
	}

	out := snap.Result.Outcome
	writeJSON(w, http.StatusOK, resultResponse{
		RunID:          snap.Result.RunID,
		Source:         string(out.Source),
		Horizon:        horizon,
		Grid:           out.Prediction.Horizon(horizon),
		MaxProbability: out.Prediction.MaxProbability(horizon),
		TimeDetails:    out.TimeDetails,
	})
}

// runPredict executes one gated prediction run end to end: gate, call,
// land result, publish audit event.
func (s *Server) runPredict(ctx context.Context) (*state.RunResult, error) {
	runID, bounds, manifest, err := s.store.BeginRun()
	if err != nil {
		reason := "invalid_form"
		if errors.Is(err, state.ErrRunInFlight) {
			reason = "run_in_flight"
		}
		s.metrics.RunsRejected.WithLabelValues(reason).Inc()
		return nil, err
	}

	s.metrics.RunsStarted.Inc()
	s.metrics.RunInFlight.Set(1)
	defer s.metrics.RunInFlight.Set(0)

	outcome, err := s.predictor.Predict(ctx, bounds, manifest)
	if err != nil {
		s.store.AbortRun(runID)
		return nil, err
	}
	if err := s.store.CompleteRun(runID, outcome); err != nil {
		return nil, err
	}

	snap := s.store.Snapshot()
	s.publishRun(snap.Result)
	return snap.Result, nil
}

// publishRun emits the audit event, best-effort. Failures are warn-logged
// and never fail the run.
func (s *Server) publishRun(result *state.RunResult) {
	if s.publisher == nil || result == nil {
		return
	}
	out := result.Outcome
	rec := domain.RunRecord{
		RunID:            result.RunID,
		Source:           string(out.Source),
		Bounds:           out.Bounds,
		Center:           out.Center,
		MaxProbabilities: maxPerHorizon(out.Prediction),
		Warning:          out.Warning,
		CompletedAt:      result.CompletedAt,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.publisher.PublishRun(ctx, rec); err != nil {
		s.logger.Warn("run event publish failed", "error", err, "run_id", rec.RunID)
		s.metrics.RunEventsPublished.WithLabelValues("error").Inc()
		return
	}
	s.metrics.RunEventsPublished.WithLabelValues("success").Inc()
}

func maxPerHorizon(p domain.Prediction) []float64 {
	maxes := make([]float64, len(p))
	for h := range p {
		maxes[h] = p.MaxProbability(h)
	}
	return maxes
}
