package app

import (
	"strings"

	"github.com/mockingbird-ai/mockingbird/internal/config"
	"github.com/mockingbird-ai/mockingbird/internal/httpapi"
)

// resolveSetup reports which backends the configuration actually selected,
// after the "auto" modes are settled. It runs after the constructors, so
// invalid combinations (e.g. http mode with no URL) never reach it.
func resolveSetup(cfg config.Config, bankSize int) httpapi.SetupInfo {
	info := httpapi.SetupInfo{
		GenAIMode:       resolveGenAIMode(cfg),
		GenAIModel:      cfg.GenAIModel,
		TranscriberMode: resolveTranscriberMode(cfg),
		ArchiveMode:     "in-memory",
		BankSize:        bankSize,
		BankSource:      "embedded",
	}
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		info.ArchiveMode = "postgres"
	}
	if path := strings.TrimSpace(cfg.QuestionBankPath); path != "" {
		info.BankSource = path
	}
	return info
}

func resolveGenAIMode(cfg config.Config) string {
	mode := strings.ToLower(strings.TrimSpace(cfg.GenAIAdapterMode))
	switch mode {
	case "", "auto":
		if strings.TrimSpace(cfg.GenAIHTTPURL) != "" {
			return "http"
		}
		return "mock"
	default:
		return mode
	}
}

func resolveTranscriberMode(cfg config.Config) string {
	mode := strings.ToLower(strings.TrimSpace(cfg.TranscriberMode))
	urls := 0
	for _, part := range strings.Split(cfg.TranscriberHTTPURL, ",") {
		if strings.TrimSpace(part) != "" {
			urls++
		}
	}
	switch {
	case mode == "mock":
		return "mock"
	case urls > 1:
		return "failover"
	case urls == 1:
		return "http"
	default:
		return "mock"
	}
}
