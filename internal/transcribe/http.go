package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// HTTPTranscriber posts WAV clips to a whisper-server /inference endpoint.
type HTTPTranscriber struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTranscriber(url string, timeout time.Duration) *HTTPTranscriber {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTranscriber{
		baseURL: strings.TrimRight(strings.TrimSpace(url), "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTranscriber) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		_ = mw.Close()
		return "", err
	}
	if _, err := fw.Write(wav); err != nil {
		_ = mw.Close()
		return "", err
	}
	_ = mw.WriteField("temperature", "0.0")
	_ = mw.WriteField("response_format", "json")
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/inference", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper-server HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("decode whisper-server reply: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
