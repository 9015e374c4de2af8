package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/abelzeko/popo-bot/internal/apperr"
	"github.com/abelzeko/popo-bot/internal/entities"
	"github.com/abelzeko/popo-bot/internal/render"
	"github.com/abelzeko/popo-bot/internal/usecases"
)

// ReportService answers report queries. *usecases.VolcanoUseCase implements it.
type ReportService interface {
	Latest(ctx context.Context) (entities.VolcanoReport, error)
	ByDate(ctx context.Context, raw string) (entities.VolcanoReport, error)
}

// alertResponse is the body of GET /alert.
type alertResponse struct {
	Date           entities.Date       `json:"date"`
	AlertLevel     entities.AlertLevel `json:"alert_level"`
	AlertPhase     string              `json:"alert_phase"`
	SummarySpanish string              `json:"summary_spanish"`
}

// Server exposes the report REST API, health and metrics endpoints.
type Server struct {
	httpServer *http.Server
	service    ReportService
}

// NewServer creates an HTTP server with the daily report routes plus
// /latest, /alert, /schema, /healthz and /metrics.
func NewServer(addr string, service ReportService) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
	}

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/schema", s.handleSchema)
	r.Get("/latest", s.handleLatest)
	r.Get("/alert", s.handleAlert)
	r.Get("/daily/{date}", s.handleDaily(func(rep entities.VolcanoReport) any { return rep }))
	r.Get("/daily/{date}/exhalations", s.handleDaily(func(rep entities.VolcanoReport) any { return rep.Exhalations }))
	r.Get("/daily/{date}/phase", s.handleDaily(func(rep entities.VolcanoReport) any { return rep.AlertPhase }))
	r.Get("/daily/{date}/directionOfPlume", s.handleDaily(func(rep entities.VolcanoReport) any { return rep.WindDirection }))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	body, err := render.SchemaJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Latest(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeReport(w, report)
}

func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Latest(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, alertResponse{
		Date:           report.Date,
		AlertLevel:     report.AlertLevel,
		AlertPhase:     report.AlertPhase,
		SummarySpanish: report.SummarySpanish,
	})
}

// handleDaily validates the {date} parameter before fetching and writes the
// part of the report selected by pick.
func (s *Server) handleDaily(pick func(entities.VolcanoReport) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "date")
		date, err := usecases.ParseRequestDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		report, err := s.service.ByDate(r.Context(), date.String())
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}

		v := pick(report)
		if full, ok := v.(entities.VolcanoReport); ok {
			writeReport(w, full)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// statusFor maps an upstream failure to a response status. A bulletin that
// is not for the requested day is reported as missing.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrDateMismatch), apperr.Is(err, apperr.KindNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeReport(w http.ResponseWriter, report entities.VolcanoReport) {
	var buf bytes.Buffer
	if err := render.JSON(&buf, report); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
