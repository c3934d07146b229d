package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mockingbird-ai/mockingbird/internal/archive"
	"github.com/mockingbird-ai/mockingbird/internal/interview"
)

type startInterviewRequest struct {
	ResumeID       string `json:"resume_id"`
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
	InterviewType  string `json:"interview_type"`
	Difficulty     string `json:"difficulty"`
	QuestionCount  int    `json:"question_count"`
}

func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	var req startInterviewRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	res, err := s.controller.StartSession(r.Context(), interview.StartParams{
		ResumeID:       req.ResumeID,
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		InterviewType:  req.InterviewType,
		Difficulty:     req.Difficulty,
		QuestionCount:  req.QuestionCount,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

type submitResponseRequest struct {
	Text            string  `json:"text"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (s *Server) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req submitResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "response text is required")
		return
	}
	if req.DurationSeconds < 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "duration_seconds must not be negative")
		return
	}

	res, err := s.controller.SubmitResponse(r.Context(), interview.SubmitParams{
		SessionID:       chi.URLParam(r, "id"),
		Response:        req.Text,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleListInterviews(w http.ResponseWriter, _ *http.Request) {
	sessions := s.controller.Sessions()
	respondJSON(w, http.StatusOK, map[string]any{
		"interviews": sessions,
		"count":      len(sessions),
	})
}

func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	sess, err := s.controller.Session(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	q, number, total, err := s.controller.CurrentQuestion(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"question":        q,
		"question_number": number,
		"total_questions": total,
	})
}

func (s *Server) handleEndInterview(w http.ResponseWriter, r *http.Request) {
	res, err := s.controller.EndSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleBehavioralReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.controller.BehavioralReport(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleFinalReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.controller.FinalReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	id := chi.URLParam(r, "id")
	turns, err := s.controller.SessionTranscript(r.Context(), id, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if turns == nil {
		turns = []archive.TurnRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session_id": id,
		"turns":      turns,
		"count":      len(turns),
	})
}
