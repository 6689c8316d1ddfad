package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socagents/internal/agent"
	"socagents/internal/api"
	"socagents/internal/auth"
	"socagents/internal/backend"
	"socagents/internal/chat"
	"socagents/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	backendURL := config.BackendURL()
	if backendURL == "" {
		logger.Fatal("BACKEND_URL is required")
	}

	timeout := config.BackendTimeout()
	companyHeader := config.CompanyHeader()

	gateway := backend.NewClient(backendURL, timeout, companyHeader)
	tokens := auth.NewTokenCache(backendURL, config.AgentAccessKey(), timeout, logger)

	var sophiaChat chat.Completer = agent.RuleBasedCompleter{Agent: "SOPHIA"}
	var victorChat chat.Completer = agent.RuleBasedCompleter{Agent: "VICTOR"}
	if chatURL := config.ChatURL(); chatURL != "" {
		client := chat.NewClient(chatURL, timeout)
		sophiaChat = client
		victorChat = client
	}

	triage := agent.NewTriageService(gateway, sophiaChat, tokens, config.AgentType("SOPHIA"), logger)
	execution := agent.NewExecutionService(gateway, victorChat, tokens, config.AgentType("VICTOR"), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/v1", api.Routes(api.Dependencies{
		Triage:        triage,
		Execution:     execution,
		CompanyHeader: companyHeader,
		Log:           logger,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	addr := config.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	logger.Info("Starting server", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
