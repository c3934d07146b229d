package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/mockingbird-ai/mockingbird/internal/audio"
)

func postAudio(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/octet-stream", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST audio: %v", err)
	}
	return res
}

func TestSubmitAudioWAV(t *testing.T) {
	env := newTestEnv(t)
	id := env.startInterview(t, 3)

	pcm := make([]byte, 32000) // one second at 16 kHz mono PCM16
	wav, err := audio.EncodeWAVPCM16LE(pcm, 16000)
	if err != nil {
		t.Fatalf("EncodeWAVPCM16LE: %v", err)
	}

	res := postAudio(t, env.ts.URL+"/v1/interviews/"+id+"/responses/audio", wav)
	wantStatus(t, res, http.StatusOK)
	body := decodeBody(t, res)
	if body["transcript"] != "In my last role I cut deploy times by thirty percent." {
		t.Fatalf("transcript = %v, want the stubbed text", body["transcript"])
	}
	if body["duration_seconds"] != float64(1) {
		t.Fatalf("duration_seconds = %v, want 1", body["duration_seconds"])
	}
	if body["evaluation_summary"] == "" || body["evaluation_summary"] == nil {
		t.Fatalf("missing evaluation summary: %+v", body)
	}
	if got := env.transcriber.callCount(); got != 1 {
		t.Fatalf("transcriber calls = %d, want 1", got)
	}
}

func TestSubmitAudioRawPCM(t *testing.T) {
	env := newTestEnv(t)
	id := env.startInterview(t, 3)
	pcm := make([]byte, 16000) // half a second at 16 kHz mono PCM16

	res := postAudio(t, env.ts.URL+"/v1/interviews/"+id+"/responses/audio", pcm)
	wantStatus(t, res, http.StatusBadRequest)
	body := decodeBody(t, res)
	if body["code"] != "invalid_request" {
		t.Fatalf("code = %v, want invalid_request", body["code"])
	}

	res = postAudio(t, env.ts.URL+"/v1/interviews/"+id+"/responses/audio?sample_rate=16000", pcm)
	wantStatus(t, res, http.StatusOK)
	body = decodeBody(t, res)
	if body["duration_seconds"] != float64(0.5) {
		t.Fatalf("duration_seconds = %v, want 0.5", body["duration_seconds"])
	}
}

func TestSubmitAudioTranscriberFailure(t *testing.T) {
	env := newTestEnv(t)
	id := env.startInterview(t, 3)
	env.transcriber.err = errors.New("whisper offline")

	pcm := make([]byte, 8000)
	wav, err := audio.EncodeWAVPCM16LE(pcm, 16000)
	if err != nil {
		t.Fatalf("EncodeWAVPCM16LE: %v", err)
	}

	res := postAudio(t, env.ts.URL+"/v1/interviews/"+id+"/responses/audio", wav)
	wantStatus(t, res, http.StatusBadGateway)
	body := decodeBody(t, res)
	if body["code"] != "transcription_failed" {
		t.Fatalf("code = %v, want transcription_failed", body["code"])
	}

	sess, err := env.controller.Session(id)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if len(sess.Responses) != 0 {
		t.Fatalf("turn ran despite transcription failure: %d responses", len(sess.Responses))
	}
}

func TestSubmitAudioUnknownSession(t *testing.T) {
	env := newTestEnv(t)

	wav, err := audio.EncodeWAVPCM16LE(make([]byte, 64), 16000)
	if err != nil {
		t.Fatalf("EncodeWAVPCM16LE: %v", err)
	}
	res := postAudio(t, env.ts.URL+"/v1/interviews/ghost/responses/audio", wav)
	wantStatus(t, res, http.StatusNotFound)
	res.Body.Close()

	if got := env.transcriber.callCount(); got != 0 {
		t.Fatalf("transcriber calls = %d, want 0 for unknown session", got)
	}
}

func TestSubmitAudioEmptyBody(t *testing.T) {
	env := newTestEnv(t)
	id := env.startInterview(t, 3)

	res := postAudio(t, env.ts.URL+"/v1/interviews/"+id+"/responses/audio", nil)
	wantStatus(t, res, http.StatusBadRequest)
	res.Body.Close()
}

func TestSubmitAudioBadContainer(t *testing.T) {
	env := newTestEnv(t)
	id := env.startInterview(t, 3)

	res := postAudio(t, env.ts.URL+"/v1/interviews/"+id+"/responses/audio", []byte("RIFF\x00\x00\x00\x00WAVE"))
	wantStatus(t, res, http.StatusBadRequest)
	body := decodeBody(t, res)
	if body["code"] != "invalid_request" {
		t.Fatalf("code = %v, want invalid_request", body["code"])
	}
}
