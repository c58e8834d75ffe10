// cmd/concierge-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/agents"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/config"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/database"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/common/logger"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/llm"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/menu"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/notify"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/server"
	"github.com/chouhanpreeti302-png/Agentic-AI-System-for-a-Resort/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting concierge server...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis (optional) ---
	var redisClient *redis.Client
	if cfg.Database.Redis.Enabled {
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			// Context caching degrades to postgres lookups without redis.
			zapLog.Warn("redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer rc.Close()
			redisClient = rc.GetClient()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Storage ---
	st := store.New(pg.DB, redisClient, log)
	if err := st.Migrate(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}
	if err := st.SeedRooms(ctx, cfg.Rooms.Seed); err != nil {
		zapLog.Fatal("room seeding failed", zap.Error(err))
	}

	// --- Menu ---
	menuItems := menu.Load(cfg.Menu.SpreadsheetPath, log)
	zapLog.Info("Menu loaded", zap.Int("items", len(menuItems)))

	// --- LLM Gateway ---
	gateway := llm.New(cfg.OpenAI, log)

	// --- Notifications ---
	notifier, err := notify.New(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Warn("notifications disabled", zap.Error(err))
	}

	// --- Orchestrator & HTTP ---
	orchestrator := agents.NewOrchestrator(gateway, st, menuItems, log)
	srv := server.New(orchestrator, st, gateway, notifier, menuItems, log)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: srv.Router(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Concierge server stopped gracefully")
}
