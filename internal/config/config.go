package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the interview service.
type Config struct {
	BindAddr                 string
	MetricsNamespace         string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration
	SessionJanitorInterval   time.Duration
	SessionRetention         time.Duration

	AllowAnyOrigin bool

	GenAIAdapterMode string
	GenAIHTTPURL     string
	GenAIAPIKey      string
	GenAIModel       string
	GenAITimeout     time.Duration
	GenAIMaxRetries  int

	TranscriberMode    string
	TranscriberHTTPURL string

	DatabaseURL string

	InterviewDefaultQuestions int
	InterviewMaxQuestions     int
	QuestionBankPath          string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:                 envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:         envOrDefault("APP_METRICS_NAMESPACE", "mockingbird"),
		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 30 * time.Minute,
		SessionJanitorInterval:   time.Minute,
		SessionRetention:         time.Hour,
		AllowAnyOrigin:           false,

		GenAIAdapterMode: envOrDefault("GENAI_ADAPTER_MODE", "auto"),
		GenAIHTTPURL:     stringsTrimSpace("GENAI_HTTP_URL"),
		GenAIAPIKey:      stringsTrimSpace("GENAI_API_KEY"),
		GenAIModel:       envOrDefault("GENAI_MODEL", "gpt-4o-mini"),
		GenAITimeout:     60 * time.Second,
		GenAIMaxRetries:  2,

		TranscriberMode:    envOrDefault("TRANSCRIBER_MODE", "auto"),
		TranscriberHTTPURL: stringsTrimSpace("TRANSCRIBER_HTTP_URL"),

		DatabaseURL: stringsTrimSpace("DATABASE_URL"),

		InterviewDefaultQuestions: 5,
		InterviewMaxQuestions:     20,
		QuestionBankPath:          stringsTrimSpace("INTERVIEW_QUESTION_BANK"),
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionJanitorInterval, err = durationFromEnv("APP_SESSION_JANITOR_INTERVAL", cfg.SessionJanitorInterval)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionRetention, err = durationFromEnv("APP_SESSION_RETENTION", cfg.SessionRetention)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.GenAITimeout, err = durationFromEnv("GENAI_TIMEOUT", cfg.GenAITimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.GenAIMaxRetries, err = intFromEnv("GENAI_MAX_RETRIES", cfg.GenAIMaxRetries)
	if err != nil {
		return Config{}, err
	}
	cfg.InterviewDefaultQuestions, err = intFromEnv("INTERVIEW_DEFAULT_QUESTIONS", cfg.InterviewDefaultQuestions)
	if err != nil {
		return Config{}, err
	}
	cfg.InterviewMaxQuestions, err = intFromEnv("INTERVIEW_MAX_QUESTIONS", cfg.InterviewMaxQuestions)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.SessionJanitorInterval <= 0 {
		return Config{}, fmt.Errorf("APP_SESSION_JANITOR_INTERVAL must be positive")
	}
	if cfg.SessionRetention <= 0 {
		return Config{}, fmt.Errorf("APP_SESSION_RETENTION must be positive")
	}
	if cfg.GenAITimeout <= 0 {
		return Config{}, fmt.Errorf("GENAI_TIMEOUT must be positive")
	}
	if cfg.GenAIMaxRetries < 0 {
		return Config{}, fmt.Errorf("GENAI_MAX_RETRIES must be >= 0")
	}
	if cfg.InterviewMaxQuestions <= 0 {
		return Config{}, fmt.Errorf("INTERVIEW_MAX_QUESTIONS must be positive")
	}
	if cfg.InterviewDefaultQuestions <= 0 || cfg.InterviewDefaultQuestions > cfg.InterviewMaxQuestions {
		return Config{}, fmt.Errorf("INTERVIEW_DEFAULT_QUESTIONS must be in [1, %d]", cfg.InterviewMaxQuestions)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
