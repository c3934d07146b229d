// Package httpapi exposes the interview service over HTTP: session
// lifecycle, response submission (text and audio), reports, the live
// websocket mode, and operational endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mockingbird-ai/mockingbird/internal/analytics"
	"github.com/mockingbird-ai/mockingbird/internal/config"
	"github.com/mockingbird-ai/mockingbird/internal/interview"
	"github.com/mockingbird-ai/mockingbird/internal/observability"
	"github.com/mockingbird-ai/mockingbird/internal/resume"
	"github.com/mockingbird-ai/mockingbird/internal/session"
	"github.com/mockingbird-ai/mockingbird/internal/transcribe"
)

// SetupInfo reports which backends the app actually wired, for the setup
// status endpoint. Modes are the resolved ones, not the configured ones.
type SetupInfo struct {
	GenAIMode       string
	GenAIModel      string
	TranscriberMode string
	ArchiveMode     string
	BankSize        int
	BankSource      string
}

type Server struct {
	cfg         config.Config
	controller  *interview.Controller
	resumes     *resume.Registry
	transcriber transcribe.Transcriber
	metrics     *observability.Metrics
	setup       SetupInfo
	upgrader    websocket.Upgrader
}

func New(
	cfg config.Config,
	controller *interview.Controller,
	resumes *resume.Registry,
	transcriber transcribe.Transcriber,
	metrics *observability.Metrics,
	setup SetupInfo,
) *Server {
	return &Server{
		cfg:         cfg,
		controller:  controller,
		resumes:     resumes,
		transcriber: transcriber,
		metrics:     metrics,
		setup:       setup,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections from the
				// same origin, so other websites cannot drive a candidate's
				// interview session if the service is exposed beyond localhost.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Get("/v1/setup/status", s.handleSetupStatus)
	r.Get("/v1/perf/turns", s.handlePerfTurns)

	r.Post("/v1/resumes", s.handleCreateResume)
	r.Get("/v1/resumes/{id}", s.handleGetResume)

	r.Post("/v1/interviews", s.handleStartInterview)
	r.Get("/v1/interviews", s.handleListInterviews)
	r.Get("/v1/interviews/live", s.handleLiveWS)
	r.Get("/v1/interviews/{id}", s.handleGetInterview)
	r.Get("/v1/interviews/{id}/question", s.handleCurrentQuestion)
	r.Post("/v1/interviews/{id}/responses", s.handleSubmitResponse)
	r.Post("/v1/interviews/{id}/responses/audio", s.handleSubmitAudio)
	r.Post("/v1/interviews/{id}/end", s.handleEndInterview)
	r.Get("/v1/interviews/{id}/behavioral", s.handleBehavioralReport)
	r.Get("/v1/interviews/{id}/report", s.handleFinalReport)
	r.Get("/v1/interviews/{id}/transcript", s.handleTranscript)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"archive_mode": s.setup.ArchiveMode,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":       "ready",
		"archive_mode": s.setup.ArchiveMode,
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondDomainError maps controller and store errors onto the error
// envelope. Unknown errors become a 500 without leaking detail.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code := domainErrorCode(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, code, "internal error")
		return
	}
	respondError(w, status, code, err.Error())
}

func domainErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, resume.ErrNotFound):
		return http.StatusNotFound, "resume_not_found"
	case errors.Is(err, session.ErrTurnInFlight):
		return http.StatusConflict, "turn_in_flight"
	case errors.Is(err, session.ErrCompleted),
		errors.Is(err, interview.ErrNotCompleted),
		errors.Is(err, interview.ErrNoCurrentQuestion),
		errors.Is(err, analytics.ErrNoResponses):
		return http.StatusBadRequest, "invalid_state"
	case errors.Is(err, interview.ErrResumeRequired):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
