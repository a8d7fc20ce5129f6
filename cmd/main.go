package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"moneypots/internal/config"
	"moneypots/internal/httpapi"
	"moneypots/internal/sched"
	"moneypots/internal/storage/file"
	pgstore "moneypots/internal/storage/postgres"
	"moneypots/internal/storage/sqlite"
	"moneypots/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Pick the persistence backend: postgres, then sqlite, then JSON file.
	var gw store.Gateway
	var ready httpapi.ReadyChecker
	var closeFn func()

	switch {
	case cfg.Storage.PostgresURL != "":
		pg, err := pgstore.Open(ctx, cfg.Storage.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		gw, ready = pg, pg
		closeFn = func() { pg.Close() }
		logger.Info("storage backend: postgres")
	case cfg.Storage.SQLitePath != "":
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite", "err", err, "path", cfg.Storage.SQLitePath)
			os.Exit(1)
		}
		gw, ready = db, db
		closeFn = func() { _ = db.Close() }
		logger.Info("storage backend: sqlite", "path", cfg.Storage.SQLitePath)
	default:
		gw = file.New(cfg.Storage.File)
		logger.Info("storage backend: file", "path", cfg.Storage.File)
	}

	st := store.New(ctx, gw, logger)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.New(st, ready, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var runner *sched.Runner
	if cfg.Schedule.AutoProcess {
		runner = sched.New(st, logger)
		if err := runner.Register(cfg.Schedule.TransferCron, cfg.Schedule.WithdrawalCron); err != nil {
			logger.Error("failed to register scheduled jobs", "err", err)
			os.Exit(1)
		}
		runner.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pots service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if runner != nil {
		runner.Stop()
	}
	if closeFn != nil {
		closeFn()
	}
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
