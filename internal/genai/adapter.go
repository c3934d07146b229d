// Package genai is the boundary to the language-model provider used for
// question generation, response evaluation, and report writing. Callers
// define their own result schemas and must degrade deterministically when
// a call fails.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Request kinds let the mock adapter answer in the right shape and give
// metrics a low-cardinality label.
const (
	KindQuestion   = "question"
	KindFollowUp   = "follow_up"
	KindEvaluation = "evaluation"
	KindIntro      = "intro"
	KindClosing    = "closing"
	KindReport     = "report"
)

// Request is one generation call.
type Request struct {
	Kind   string
	System string
	Prompt string
	JSON   bool
}

// Response carries the raw model text.
type Response struct {
	Text string
}

// Adapter produces model text for a request.
type Adapter interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Config controls adapter construction.
type Config struct {
	Mode       string
	HTTPURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

func NewAdapter(cfg Config) (Adapter, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.HTTPURL) != "" {
			return NewFallbackAdapter(NewHTTPAdapter(cfg), NewMockAdapter()), nil
		}
		return NewMockAdapter(), nil
	case "http":
		if strings.TrimSpace(cfg.HTTPURL) == "" {
			return nil, errors.New("genai HTTP url is required for http mode")
		}
		return NewHTTPAdapter(cfg), nil
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported genai adapter mode %q", cfg.Mode)
	}
}

// GenerateStructured runs a JSON-mode generation and decodes the first JSON
// object in the reply into out.
func GenerateStructured(ctx context.Context, a Adapter, req Request, out any) error {
	req.JSON = true
	resp, err := a.Generate(ctx, req)
	if err != nil {
		return err
	}
	raw := ExtractJSON(resp.Text)
	if raw == "" {
		return fmt.Errorf("no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}
