package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lycans-tracker/internal/domain"
	"lycans-tracker/internal/repository"
	"lycans-tracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var errGameNotFound = errors.New("game not found")

type StatsServer struct {
	ingestSvc *service.IngestService
	statsSvc  *service.StatsService
	logger    zerolog.Logger
}

func NewStatsServer(ingestSvc *service.IngestService, statsSvc *service.StatsService, logger zerolog.Logger) *StatsServer {
	return &StatsServer{ingestSvc: ingestSvc, statsSvc: statsSvc, logger: logger}
}

func (s *StatsServer) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/games", s.handleIngest)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/games/{id}/timeline", s.handleTimeline)
		r.Get("/players/{id}/consistency", s.handleConsistency)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/camps", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.CampWinStats(r.Context(), f)
			}))
			r.Get("/players", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.PlayerStats(r.Context(), f)
			}))
			r.Get("/pairings", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.PairingStats(r.Context(), f)
			}))
			r.Get("/compositions", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.TeamCompositionStats(r.Context(), f)
			}))
			r.Get("/colors", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.ColorStats(r.Context(), f)
			}))
			r.Get("/survival", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.SurvivalAnalysis(r.Context(), f)
			}))
			r.Get("/transforms", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.TransformStats(r.Context(), f)
			}))
			r.Get("/activity", s.report(func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error) {
				return s.statsSvc.ActivityByDay(r.Context(), f)
			}))
			r.Get("/monthly", s.handleMonthly)
		})
	})

	return r
}

type reportFunc func(w http.ResponseWriter, r *http.Request, f repository.GameFilter) (any, error)

func (s *StatsServer) report(fn reportFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(w, r, parseFilter(r))
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		s.writeJSON(w, http.StatusOK, out)
	}
}

func (s *StatsServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *StatsServer) handleIngest(w http.ResponseWriter, r *http.Request) {
	var games []domain.GameRecord
	if err := json.NewDecoder(r.Body).Decode(&games); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	stored, err := s.ingestSvc.IngestBatch(r.Context(), games)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]int{"received": len(games), "stored": stored})
}

func (s *StatsServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	stored, err := s.ingestSvc.Refresh(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"stored": stored})
}

func (s *StatsServer) handleMonthly(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	month := r.URL.Query().Get("month")
	prefixRaw := r.URL.Query().Get("prefix")
	if month != "" && prefixRaw != "" {
		prefix, err := strconv.Atoi(prefixRaw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		out, err := s.statsSvc.MonthRankingAt(r.Context(), filter, month, prefix)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		s.writeJSON(w, http.StatusOK, out)
		return
	}

	out, err := s.statsSvc.MonthlyRanking(r.Context(), filter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *StatsServer) handleTimeline(w http.ResponseWriter, r *http.Request) {
	tl, err := s.statsSvc.Timeline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if tl == nil {
		s.writeError(w, http.StatusNotFound, errGameNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, tl)
}

func (s *StatsServer) handleConsistency(w http.ResponseWriter, r *http.Request) {
	score, known, err := s.statsSvc.Consistency(r.Context(), parseFilter(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !known {
		// Absent from the filtered population: an empty state, not a
		// server error.
		s.writeJSON(w, http.StatusOK, map[string]any{"score": nil})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"score": score})
}

// parseFilter reads the coarse filters from query parameters. Dates
// are "2006-01-02"; malformed values are ignored rather than rejected.
func parseFilter(r *http.Request) repository.GameFilter {
	q := r.URL.Query()
	var filter repository.GameFilter

	if from, err := time.Parse("2006-01-02", q.Get("from")); err == nil {
		filter.From = from
	}
	if to, err := time.Parse("2006-01-02", q.Get("to")); err == nil {
		// Inclusive end of day.
		filter.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	filter.ModOnly = q.Get("mod") == "true" || q.Get("mod") == "1"
	filter.MapName = q.Get("map")

	return filter
}

func (s *StatsServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *StatsServer) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
