package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mockingbird-ai/mockingbird/internal/app"
	"github.com/mockingbird-ai/mockingbird/internal/config"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	res, err := app.Build(runCtx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			log.Printf("cleanup: %v", err)
		}
	}()

	if res.Setup.GenAIMode == "http" {
		log.Printf("genai adapter: http (%s)", res.Setup.GenAIModel)
	} else {
		log.Printf("genai adapter: mock (canned questions and evaluations)")
	}
	log.Printf("transcriber: %s", res.Setup.TranscriberMode)
	log.Printf("transcript archive: %s", res.Setup.ArchiveMode)
	log.Printf("question bank: %d questions (%s)", res.Setup.BankSize, res.Setup.BankSource)

	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: res.API.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
