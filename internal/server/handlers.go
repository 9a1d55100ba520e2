package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/models"
)

// layoutResponse is the payload of GET /api/layout.
type layoutResponse struct {
	Title     string           `json:"title"`
	Layout    dashboard.Layout `json:"layout"`
	Selection models.Selection `json:"selection"`
	Outputs   []string         `json:"outputs"`
}

type siteRequest struct {
	Site string `json:"site"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": s.dataset.Len(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, layoutResponse{
		Title:     s.opts.Title,
		Layout:    s.layout,
		Selection: sess.shell.Selection(),
		Outputs:   []string{string(dashboard.OutputPie), string(dashboard.OutputScatter)},
	})
}

func (s *Server) handleSelectSite(w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess := s.session(w, r)
	update, err := sess.shell.SetSite(req.Site)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

func (s *Server) handleSelectPayload(w http.ResponseWriter, r *http.Request) {
	var req models.PayloadRange
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess := s.session(w, r)
	update, err := sess.shell.SetPayloadRange(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// handlePieSpec computes a pie chart statelessly from query parameters.
func (s *Server) handlePieSpec(w http.ResponseWriter, r *http.Request) {
	sel := s.queryDefaults(r)
	writeJSON(w, http.StatusOK, dashboard.PieHandler(s.dataset.Records(), sel))
}

// handleScatterSpec computes a scatter chart statelessly from query parameters.
func (s *Server) handleScatterSpec(w http.ResponseWriter, r *http.Request) {
	sel := s.queryDefaults(r)
	q := r.URL.Query()

	var err error
	if v := q.Get("low"); v != "" {
		if sel.Payload.Low, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid low: %w", err))
			return
		}
	}
	if v := q.Get("high"); v != "" {
		if sel.Payload.High, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid high: %w", err))
			return
		}
	}
	if err := sel.Payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard.ScatterHandler(s.dataset.Records(), sel))
}

// handleChartPNG serves the session's current chart for an output as PNG.
func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess := s.session(w, r)
	ch, found := sess.shell.Chart(dashboard.Output(name))
	if !found {
		http.NotFound(w, r)
		return
	}

	data, err := ch.PNG(s.opts.ChartWidth, s.opts.ChartHeight)
	if err != nil {
		logger.Error("Failed to render %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to render chart"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(data); err != nil {
		logger.Debug("Failed to write %s: %v", name, err)
	}
}

// queryDefaults reads the site parameter and fills the initial selection around it.
func (s *Server) queryDefaults(r *http.Request) models.Selection {
	sel := models.Selection{
		Site:    models.AllSites,
		Payload: models.PayloadRange{Low: s.layout.Slider.Min, High: s.layout.Slider.Max},
	}
	if site := r.URL.Query().Get("site"); site != "" {
		sel.Site = site
	}
	return sel
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
