package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mockingbird-ai/mockingbird/internal/audio"
	"github.com/mockingbird-ai/mockingbird/internal/interview"
)

// maxAudioBody caps uploaded clips. 25 MiB is around 13 minutes of 16 kHz
// mono PCM16.
const maxAudioBody = 25 << 20

type audioTurnResponse struct {
	Transcript      string  `json:"transcript"`
	DurationSeconds float64 `json:"duration_seconds"`
	interview.TurnResult
}

// handleSubmitAudio accepts a WAV clip, or raw PCM16LE plus a sample_rate
// query parameter, transcribes it, and runs the same turn as a text
// submission. A transcription failure never mutates the session and never
// substitutes text for the candidate's own words.
func (s *Server) handleSubmitAudio(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if _, err := s.controller.Session(sessionID); err != nil {
		respondDomainError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAudioBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "read audio body: "+err.Error())
		return
	}
	if len(body) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "audio body is empty")
		return
	}

	wav := body
	if !audio.IsWAV(body) {
		// Raw PCM needs the sample rate to build a container.
		rate, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("sample_rate")))
		if err != nil || rate <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_request", "raw audio requires a positive sample_rate query parameter")
			return
		}
		wav, err = audio.EncodeWAVPCM16LE(body, rate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "encode wav: "+err.Error())
			return
		}
	}

	info, err := audio.ProbeWAV(wav)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "unsupported audio: "+err.Error())
		return
	}

	transcript, err := s.transcriber.Transcribe(r.Context(), wav)
	if err != nil {
		s.metrics.ProviderErrors.WithLabelValues("transcriber", "transcribe_failed").Inc()
		respondError(w, http.StatusBadGateway, "transcription_failed", err.Error())
		return
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "transcription produced no text")
		return
	}

	res, err := s.controller.SubmitResponse(r.Context(), interview.SubmitParams{
		SessionID:       sessionID,
		Response:        transcript,
		DurationSeconds: info.Duration.Seconds(),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, audioTurnResponse{
		Transcript:      transcript,
		DurationSeconds: info.Duration.Seconds(),
		TurnResult:      res,
	})
}
