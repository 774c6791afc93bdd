// Command formkit-server serves a descriptor-driven form over HTTP: GET
// renders the form, POST validates and submits it.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/session"
)

func main() {
	cfg := MustLoad()

	logger := setupLogger(cfg.Env)
	logger.Info("starting formkit-server",
		slog.String("env", cfg.Env),
		slog.String("descriptor", cfg.Descriptor),
	)

	ctx := context.Background()

	loader := formkit.NewLoader()
	doc, err := loader.Load(ctx, schema.SourceFromFile(cfg.Descriptor))
	if err != nil {
		logger.Error("load descriptor", slog.String("error", err.Error()))
		os.Exit(1)
	}

	form, err := formkit.NewParser().Form(ctx, doc)
	if err != nil {
		logger.Error("parse descriptor", slog.String("error", err.Error()))
		os.Exit(1)
	}

	renderer, err := vanilla.New()
	if err != nil {
		logger.Error("initialise renderer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	submit := func(ctx context.Context, values map[string]string) error {
		logger.Info("form submitted", slog.Int("fields", len(values)))
		return nil
	}

	handler, err := session.NewHandler(form, renderer, submit,
		session.WithLogger(logger),
	)
	if err != nil {
		logger.Error("initialise handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/", handler)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", slog.String("address", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
