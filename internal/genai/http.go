package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mockingbird-ai/mockingbird/internal/reliability"
)

// HTTPAdapter speaks the OpenAI-compatible chat completions protocol, which
// local runtimes such as llama.cpp, vLLM, and Ollama also expose.
type HTTPAdapter struct {
	url        string
	apiKey     string
	model      string
	maxRetries int
	client     *http.Client
}

func NewHTTPAdapter(cfg Config) *HTTPAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &HTTPAdapter{
		url:        strings.TrimRight(strings.TrimSpace(cfg.HTTPURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      strings.TrimSpace(cfg.Model),
		maxRetries: retries,
		client:     &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletion struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (a *HTTPAdapter) Generate(ctx context.Context, req Request) (Response, error) {
	body := chatRequest{Model: a.model}
	if strings.TrimSpace(req.System) != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})
	if req.JSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := reliability.ExponentialBackoff(attempt-1, 250*time.Millisecond, 4*time.Second)
			select {
			case <-ctx.Done():
				return Response{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, retryable, err := a.send(ctx, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable {
			return Response{}, err
		}
	}
	return Response{}, lastErr
}

func (a *HTTPAdapter) send(ctx context.Context, payload []byte) (Response, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Response{}, false, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	res, err := a.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, false, ctx.Err()
		}
		return Response{}, true, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		err := fmt.Errorf("genai http status %d: %s", res.StatusCode, string(excerpt))
		return Response{}, reliability.IsRetryableHTTPStatus(res.StatusCode), err
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, true, fmt.Errorf("read response: %w", err)
	}

	var completion chatCompletion
	if err := json.Unmarshal(data, &completion); err != nil {
		return Response{}, false, fmt.Errorf("decode response: %w", err)
	}
	if completion.Error != nil {
		return Response{}, false, fmt.Errorf("genai provider error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return Response{}, false, fmt.Errorf("genai response has no choices")
	}
	return Response{Text: completion.Choices[0].Message.Content}, false, nil
}
