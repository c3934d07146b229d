package app

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mockingbird-ai/mockingbird/internal/config"
	"github.com/mockingbird-ai/mockingbird/internal/interview"
)

var appMetricsSeq atomic.Int64

// testConfig returns a config that selects only in-process backends.
// Each call gets its own metrics namespace so repeated Builds in one
// test binary do not collide in the prometheus default registry.
func testConfig() config.Config {
	return config.Config{
		BindAddr:                  ":0",
		MetricsNamespace:          fmt.Sprintf("apptest%d", appMetricsSeq.Add(1)),
		ShutdownTimeout:           5 * time.Second,
		SessionInactivityTimeout:  30 * time.Minute,
		SessionJanitorInterval:    time.Minute,
		SessionRetention:          time.Hour,
		GenAIModel:                "gpt-4o-mini",
		InterviewDefaultQuestions: 5,
		InterviewMaxQuestions:     20,
	}
}

func TestBuildWiresMockBackends(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, err := Build(ctx, testConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			t.Fatalf("Cleanup: %v", err)
		}
	}()

	if res.API == nil || res.Controller == nil || res.Sessions == nil {
		t.Fatalf("Build returned nil components: %+v", res)
	}
	if res.Setup.GenAIMode != "mock" {
		t.Fatalf("GenAIMode = %q, want %q", res.Setup.GenAIMode, "mock")
	}
	if res.Setup.TranscriberMode != "mock" {
		t.Fatalf("TranscriberMode = %q, want %q", res.Setup.TranscriberMode, "mock")
	}
	if res.Setup.ArchiveMode != "in-memory" {
		t.Fatalf("ArchiveMode = %q, want %q", res.Setup.ArchiveMode, "in-memory")
	}
	if res.Setup.BankSize == 0 || res.Setup.BankSource != "embedded" {
		t.Fatalf("bank = %d questions from %q, want embedded questions", res.Setup.BankSize, res.Setup.BankSource)
	}

	// The graph must be live end to end, not just non-nil.
	start, err := res.Controller.StartSession(ctx, interview.StartParams{
		ResumeText:    "Seven years of Go and Python backend work at two startups.",
		InterviewType: "technical",
		QuestionCount: 1,
	})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if start.FirstQuestion.Text == "" {
		t.Fatalf("StartSession returned no first question")
	}
}

func TestBuildResolvesHTTPBackends(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	cfg.GenAIHTTPURL = "http://localhost:9999/v1"
	cfg.TranscriberHTTPURL = "http://localhost:9991/inference, http://localhost:9992/inference"

	res, err := Build(ctx, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer res.Cleanup()

	if res.Setup.GenAIMode != "http" {
		t.Fatalf("GenAIMode = %q, want %q", res.Setup.GenAIMode, "http")
	}
	if res.Setup.TranscriberMode != "failover" {
		t.Fatalf("TranscriberMode = %q, want %q", res.Setup.TranscriberMode, "failover")
	}
}

func TestBuildRejectsBadModes(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig()
	cfg.GenAIAdapterMode = "http" // no URL configured
	if _, err := Build(ctx, cfg); err == nil || !strings.Contains(err.Error(), "genai adapter") {
		t.Fatalf("Build with http genai mode and no URL: err = %v, want genai adapter error", err)
	}

	cfg = testConfig()
	cfg.TranscriberMode = "http"
	if _, err := Build(ctx, cfg); err == nil || !strings.Contains(err.Error(), "transcriber") {
		t.Fatalf("Build with http transcriber mode and no URL: err = %v, want transcriber error", err)
	}
}
