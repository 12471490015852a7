package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"aftercare-assistant/internal/audit"
	"aftercare-assistant/internal/config"
	"aftercare-assistant/internal/core"
	"aftercare-assistant/internal/db"
	httpapi "aftercare-assistant/internal/http"
	"aftercare-assistant/internal/intent"
	"aftercare-assistant/internal/llm"
	"aftercare-assistant/internal/patient"
	"aftercare-assistant/internal/rag"
	"aftercare-assistant/internal/search"
	"aftercare-assistant/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg)
	auditLog := audit.NewLog(logger, cfg.AuditBuffer)

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.PingContext(pingCtx); err != nil {
		logger.Fatal().Err(err).Msg("database unreachable")
	}
	if err := db.Migrate(ctx, database); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	store := db.NewStore(database)
	client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.EmbeddingModel)
	patients := patient.NewProvider(store, auditLog)

	// A missing or empty chunk index degrades retrieval to web-only
	// answers rather than refusing to start.
	var retriever core.Retriever
	engine, err := rag.Open(cfg.VectorStorePath, cfg.VectorCollection, rag.EmbedderFrom(client), client, auditLog)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.VectorStorePath).
			Msg("reference index unavailable, continuing without retrieval")
	} else {
		retriever = engine
	}

	searcher := search.NewChain(search.NewTavily(cfg.TavilyAPIKey), search.NewDuckDuckGo(), auditLog)

	frontDesk := core.NewFrontDesk(client, patients, intent.Lexical{}, auditLog)
	expert := core.NewExpert(client, retriever, searcher, auditLog)
	orchestrator := core.NewOrchestrator(frontDesk, expert, auditLog)

	sessions := session.NewStore()
	api := httpapi.NewServer(orchestrator, sessions, auditLog, store, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown incomplete")
		}
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
