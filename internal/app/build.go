package app

import (
	"context"
	"fmt"

	"github.com/mockingbird-ai/mockingbird/internal/archive"
	"github.com/mockingbird-ai/mockingbird/internal/config"
	"github.com/mockingbird-ai/mockingbird/internal/genai"
	"github.com/mockingbird-ai/mockingbird/internal/httpapi"
	"github.com/mockingbird-ai/mockingbird/internal/interview"
	"github.com/mockingbird-ai/mockingbird/internal/observability"
	"github.com/mockingbird-ai/mockingbird/internal/prompts"
	"github.com/mockingbird-ai/mockingbird/internal/resume"
	"github.com/mockingbird-ai/mockingbird/internal/session"
	"github.com/mockingbird-ai/mockingbird/internal/transcribe"
)

type BuildResult struct {
	Config     config.Config
	API        *httpapi.Server
	Controller *interview.Controller
	Sessions   *session.Store
	Resumes    *resume.Registry
	Archive    archive.Store
	Metrics    *observability.Metrics
	Setup      httpapi.SetupInfo

	// Cleanup should be called on shutdown to release external resources (DB pools etc).
	Cleanup func() error
}

// Build assembles the full service graph from configuration. The session
// janitor stops when ctx is cancelled.
func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	archiveStore, err := archive.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("transcript archive init failed: %w", err)
	}

	adapter, err := genai.NewAdapter(genai.Config{
		Mode:       cfg.GenAIAdapterMode,
		HTTPURL:    cfg.GenAIHTTPURL,
		APIKey:     cfg.GenAIAPIKey,
		Model:      cfg.GenAIModel,
		Timeout:    cfg.GenAITimeout,
		MaxRetries: cfg.GenAIMaxRetries,
	})
	if err != nil {
		_ = archiveStore.Close()
		return nil, fmt.Errorf("genai adapter init failed: %w", err)
	}

	transcriber, err := transcribe.NewTranscriber(transcribe.Config{
		Mode:    cfg.TranscriberMode,
		HTTPURL: cfg.TranscriberHTTPURL,
	})
	if err != nil {
		_ = archiveStore.Close()
		return nil, fmt.Errorf("transcriber init failed: %w", err)
	}

	bank, err := prompts.LoadBank(cfg.QuestionBankPath)
	if err != nil {
		_ = archiveStore.Close()
		return nil, fmt.Errorf("question bank load failed: %w", err)
	}

	store := session.NewStore(cfg.SessionInactivityTimeout, cfg.SessionRetention)
	store.StartJanitor(ctx, cfg.SessionJanitorInterval)

	resumes := resume.NewRegistry()

	controller := interview.NewController(
		store,
		resumes,
		adapter,
		bank,
		archiveStore,
		metrics,
		cfg.InterviewDefaultQuestions,
		cfg.InterviewMaxQuestions,
	)

	setup := resolveSetup(cfg, len(bank))

	api := httpapi.New(cfg, controller, resumes, transcriber, metrics, setup)

	return &BuildResult{
		Config:     cfg,
		API:        api,
		Controller: controller,
		Sessions:   store,
		Resumes:    resumes,
		Archive:    archiveStore,
		Metrics:    metrics,
		Setup:      setup,
		Cleanup:    archiveStore.Close,
	}, nil
}
