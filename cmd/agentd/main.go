package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TariqH19/agent-toolkit/common/version"
	"github.com/TariqH19/agent-toolkit/internal/agent"
	"github.com/TariqH19/agent-toolkit/internal/audit"
	"github.com/TariqH19/agent-toolkit/internal/llm"
	"github.com/TariqH19/agent-toolkit/internal/observability"
	"github.com/TariqH19/agent-toolkit/internal/paypal"
	"github.com/TariqH19/agent-toolkit/internal/server"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

// config is the full environment-derived configuration of the service.
type config struct {
	Port string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalEnvironment  string

	OllamaBaseURL string
	OllamaModel   string

	ActionsConfig string
	DatabasePath  string

	LogLevel  string
	LogFormat string
}

func main() {
	fmt.Printf("PayPal Agent Toolkit API\n")
	fmt.Printf("Version: %s\n", version.Version)
	fmt.Printf("Commit: %s\n", version.GitCommit)
	fmt.Printf("Build Time: %s\n", version.BuildTime)
	fmt.Println()

	cfg := loadConfig()

	if cfg.PayPalClientID == "" {
		fmt.Fprintf(os.Stderr, "Error: PAYPAL_CLIENT_ID is required\n")
		os.Exit(1)
	}
	if cfg.PayPalClientSecret == "" {
		fmt.Fprintf(os.Stderr, "Error: PAYPAL_CLIENT_SECRET is required\n")
		os.Exit(1)
	}

	observability.Setup(cfg.LogLevel, cfg.LogFormat)
	log := slog.Default()

	actions := paypal.DefaultActions()
	if cfg.ActionsConfig != "" {
		loaded, err := paypal.LoadActions(cfg.ActionsConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading actions config: %v\n", err)
			os.Exit(1)
		}
		actions = loaded
	}

	client := paypal.NewClient(paypal.Config{
		ClientID:     cfg.PayPalClientID,
		ClientSecret: cfg.PayPalClientSecret,
		Environment:  cfg.PayPalEnvironment,
	})

	registry, err := tools.NewRegistry(paypal.Tools(client, actions)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building capability registry: %v\n", err)
		os.Exit(1)
	}
	log.Info("capabilities registered",
		"count", len(registry.Names()),
		"environment", cfg.PayPalEnvironment,
	)

	narrator := llm.NewOllama(llm.OllamaConfig{
		BaseURL: cfg.OllamaBaseURL,
		Model:   cfg.OllamaModel,
	})

	var recorder audit.Recorder = audit.Noop{}
	if cfg.DatabasePath != "" {
		store, err := audit.New(cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening audit database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		recorder = store
	}

	handlers := &server.Handlers{
		Agent:            agent.New(registry, narrator),
		ToolNames:        registry.Names(),
		ToolDescriptions: registry.Descriptions(),
		Audit:            recorder,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfig loads configuration from environment variables
func loadConfig() config {
	return config{
		Port:               getEnv("PORT", "3001"),
		PayPalClientID:     getEnv("PAYPAL_CLIENT_ID", ""),
		PayPalClientSecret: getEnv("PAYPAL_CLIENT_SECRET", ""),
		PayPalEnvironment:  getEnv("PAYPAL_ENVIRONMENT", "sandbox"),
		OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:        getEnv("OLLAMA_MODEL", "llama3.2"),
		ActionsConfig:      getEnv("ACTIONS_CONFIG", ""),
		DatabasePath:       getEnv("DATABASE_PATH", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
