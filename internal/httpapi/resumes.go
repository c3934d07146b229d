package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type createResumeRequest struct {
	Text           string `json:"text"`
	JobDescription string `json:"job_description"`
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req createResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "resume text is required")
		return
	}

	snap := s.resumes.Add(req.Text, req.JobDescription)
	respondJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	snap, err := s.resumes.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
