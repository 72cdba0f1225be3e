package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fitcoach/internal/planning"
	"fitcoach/internal/service"
	"fitcoach/internal/store"
)

const maxBodyBytes = 1 << 20

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	rec, err := s.coach.Current(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	var in planning.ProfileInputs
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, err := s.coach.Recompute(r.Context(), in)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleHistory lists past bundles, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit <= 0 {
		limit = 10
	}
	records, err := s.coach.History(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if records == nil {
		records = []store.BundleRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	target, err := planning.ParseEnergySystem(chi.URLParam(r, "system"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	minutes, err := intParam(r, "minutes")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := s.coach.Session(r.Context(), target, listParam(r, "equipment"), minutes)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, params)
}

// handleNextSession picks the most under-trained system.
func (s *Server) handleNextSession(w http.ResponseWriter, r *http.Request) {
	minutes, err := intParam(r, "minutes")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	params, err := s.coach.NextSession(r.Context(), listParam(r, "equipment"), minutes)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, params)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.coach.Progress(r.Context(), limit, r.URL.Query().Get("feedback"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	weeks, err := intParam(r, "weeks")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if weeks > service.MaxChartWeeks {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("weeks must be at most %d", service.MaxChartWeeks))
		return
	}
	counts, err := s.coach.WeeklySystemCounts(r.Context(), weeks)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit <= 0 {
		limit = 50
	}
	sessions, err := s.coach.RecentSessions(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	if sessions == nil {
		sessions = []store.Session{}
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

// logSessionRequest is the body of POST /api/sessions.
type logSessionRequest struct {
	System          string    `json:"system"`
	PerformedAt     time.Time `json:"performed_at"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Note            string    `json:"note"`
}

func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	var req logSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	system, err := planning.ParseEnergySystem(req.System)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DurationMinutes < 0 {
		s.writeError(w, http.StatusBadRequest, "duration_minutes must not be negative")
		return
	}

	sess := &store.Session{
		PerformedAt:     req.PerformedAt,
		System:          system,
		Name:            req.Name,
		DurationSeconds: req.DurationMinutes * 60,
		Note:            req.Note,
	}
	if err := s.coach.LogSession(r.Context(), sess); err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.coach.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.coach.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps service errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNoBundle), errors.Is(err, store.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case isInputError(err):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isInputError(err error) bool {
	for _, target := range []error{
		planning.ErrUnknownExperienceLevel,
		planning.ErrUnknownEnergySystem,
		planning.ErrUnknownPhase,
		planning.ErrUnknownPersona,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}

// intParam reads an optional non-negative integer query parameter.
func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return n, nil
}

// listParam splits a comma-separated query parameter, dropping blanks.
func listParam(r *http.Request, name string) []string {
	var out []string
	for _, part := range strings.Split(r.URL.Query().Get(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
