// Package main initializes and starts the console HTTP server, setting up
// configuration, logging, the durable store backend, the record stores,
// handlers and routing.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/config"
	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/logger"
	"github.com/autoshop/console/internal/server/handler/http"
	"github.com/autoshop/console/internal/store"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse environment and command-line configuration.
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx := context.Background()

	// Open the durable store backend.
	var backend kv.Store
	switch cfg.Backend {
	case config.BackendFile:
		backend, err = kv.NewFile(cfg.DataDir)
	case config.BackendPostgres:
		backend, err = kv.OpenPostgres(cfg.DatabaseDSN)
	case config.BackendRedis:
		backend, err = kv.OpenRedis(ctx, cfg.RedisURL)
	case config.BackendMemory:
		backend = kv.NewMemory()
	}
	if err != nil {
		zapLogger.Fatal("cannot open durable store", zap.String("backend", cfg.Backend), zap.Error(err))
	}

	// Rehydrate the record stores. Each store owns one namespace.
	users, err := store.NewUserStore(ctx, backend, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init user store", zap.Error(err))
	}
	auth, err := store.NewAuthStore(ctx, backend, users, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init auth store", zap.Error(err))
	}
	customers, err := store.NewCustomerStore(ctx, backend, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init customer store", zap.Error(err))
	}
	receptions, err := store.NewReceptionStore(ctx, backend, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init reception store", zap.Error(err))
	}
	tasks, err := store.NewTaskStore(ctx, backend, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init task store", zap.Error(err))
	}
	messages, err := store.NewMessageStore(ctx, backend, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init message store", zap.Error(err))
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(http.Handlers{
		Auth:       &http.AuthHandler{Auth: auth},
		Customers:  &http.CustomerHandler{Customers: customers},
		Users:      &http.UserHandler{Users: users},
		Receptions: &http.ReceptionHandler{Receptions: receptions, Customers: customers},
		Tasks:      &http.TaskHandler{Tasks: tasks},
		Messages:   &http.MessageHandler{Messages: messages},
	}, auth, zapLogger)

	server := &nethttp.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// Serve until interrupted, then drain pending durable writes.
	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		zapLogger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	<-stop.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server shutdown", zap.Error(err))
	}

	for _, s := range []interface{ Flush() }{users, auth, customers, receptions, tasks, messages} {
		s.Flush()
	}
}
