package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	web "naphtha/internal/adapters/http"
	"naphtha/internal/adapters/storage"
	contactStore "naphtha/internal/adapters/storage/contact"
	orderStore "naphtha/internal/adapters/storage/order"
	"naphtha/internal/config"
	"naphtha/internal/domain/redirect"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if cfg.UsesDefaultSecret() {
		slog.Warn("default_secrets_in_use", "env", cfg.Env)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	timedDB := storage.NewTimedDB(db, logger, storage.SlowQueryThreshold())
	defer timedDB.Close()

	ctx := context.Background()
	if err := storage.EnsureSchema(ctx, timedDB); err != nil {
		log.Fatalf("failed to prepare schema: %v", err)
	}

	redirects := redirect.DefaultTable()
	if cfg.RedirectsFile != "" {
		redirects, err = redirect.LoadFile(cfg.RedirectsFile)
		if err != nil {
			log.Fatalf("failed to load redirects: %v", err)
		}
	}

	handler := web.NewMux(cfg, web.Deps{
		ContactStore: contactStore.NewSQLiteStore(timedDB),
		OrderStore:   orderStore.NewSQLiteStore(timedDB),
		Redirects:    redirects,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env,
			"db", cfg.DBPath, "redirects", len(redirects))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	slog.Info("server_stopping", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_failed", "error", err.Error())
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
