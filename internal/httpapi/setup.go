package httpapi

import (
	"fmt"
	"net/http"
)

type setupCheck struct {
	ID     string `json:"id"`
	Status string `json:"status"` // ok|warn|error
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
	Fix    string `json:"fix,omitempty"`
}

type setupStatusResponse struct {
	GenAIMode       string       `json:"genai_mode"`
	TranscriberMode string       `json:"transcriber_mode"`
	ArchiveMode     string       `json:"archive_mode"`
	Checks          []setupCheck `json:"checks"`
}

func (s *Server) handleSetupStatus(w http.ResponseWriter, _ *http.Request) {
	checks := make([]setupCheck, 0, 4)

	switch s.setup.GenAIMode {
	case "http":
		checks = append(checks, setupCheck{
			ID:     "genai",
			Status: "ok",
			Label:  "Interview model",
			Detail: fmt.Sprintf("http (%s)", s.setup.GenAIModel),
		})
	default:
		checks = append(checks, setupCheck{
			ID:     "genai",
			Status: "warn",
			Label:  "Interview model",
			Detail: "mock: questions, evaluations, and reports are canned",
			Fix:    "Set GENAI_HTTP_URL (and GENAI_API_KEY) to use a real model.",
		})
	}

	switch s.setup.TranscriberMode {
	case "http", "failover":
		checks = append(checks, setupCheck{
			ID:     "transcriber",
			Status: "ok",
			Label:  "Speech-to-text",
			Detail: s.setup.TranscriberMode,
		})
	default:
		checks = append(checks, setupCheck{
			ID:     "transcriber",
			Status: "warn",
			Label:  "Speech-to-text",
			Detail: "mock: audio responses transcribe to canned text",
			Fix:    "Set TRANSCRIBER_HTTP_URL to point at a whisper server.",
		})
	}

	switch s.setup.ArchiveMode {
	case "postgres":
		checks = append(checks, setupCheck{
			ID:     "archive",
			Status: "ok",
			Label:  "Transcript archive",
			Detail: "postgres",
		})
	default:
		checks = append(checks, setupCheck{
			ID:     "archive",
			Status: "warn",
			Label:  "Transcript archive",
			Detail: "in-memory only",
			Fix:    "Set DATABASE_URL to persist transcripts across restarts.",
		})
	}

	if s.setup.BankSize > 0 {
		checks = append(checks, setupCheck{
			ID:     "question_bank",
			Status: "ok",
			Label:  "Question bank",
			Detail: fmt.Sprintf("%d questions (%s)", s.setup.BankSize, s.setup.BankSource),
		})
	} else {
		checks = append(checks, setupCheck{
			ID:     "question_bank",
			Status: "error",
			Label:  "Question bank",
			Detail: "no fallback questions loaded",
			Fix:    "Check INTERVIEW_QUESTION_BANK or restore the embedded bank.",
		})
	}

	respondJSON(w, http.StatusOK, setupStatusResponse{
		GenAIMode:       s.setup.GenAIMode,
		TranscriberMode: s.setup.TranscriberMode,
		ArchiveMode:     s.setup.ArchiveMode,
		Checks:          checks,
	})
}
