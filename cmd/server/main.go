// Package main is the entry point for the task dialog service. It wires all
// dependencies using samber/do v2, starts the HTTP server, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/taskdialog/internal/adapters/http"
	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/taskdialog/internal/app"
	"github.com/jsamuelsen11/taskdialog/internal/app/taskdialog"
	"github.com/jsamuelsen11/taskdialog/internal/platform/config"
	"github.com/jsamuelsen11/taskdialog/internal/platform/health"
	"github.com/jsamuelsen11/taskdialog/internal/platform/httpclient"
	"github.com/jsamuelsen11/taskdialog/internal/platform/logging"
	"github.com/jsamuelsen11/taskdialog/internal/platform/telemetry"
	"github.com/jsamuelsen11/taskdialog/internal/ports"

)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv(config.ProfileEnv)
	if profile == "" {
		return fmt.Errorf("%s environment variable is required (e.g. local, dev, prod)", config.ProfileEnv)
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*acl.TaskClient](injector), ports.ImpactDegraded)
	registry.Register(do.MustInvoke[*taskdialog.Manager](injector), ports.ImpactCritical)

	if err := server.Listen(); err != nil {
		return err
	}

	logger.Info("dialog host configured",
		slog.String("url", "http://"+server.Addr()+"/"),
		slog.Int("max_open", cfg.Dialog.MaxOpen),
		slog.Duration("idle_timeout", cfg.Dialog.IdleTimeout),
		slog.Bool("close_on_success", cfg.Dialog.CloseOnSuccess),
		slog.String("todo_api", cfg.Client.BaseURL),
	)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, "todo-api", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*acl.TaskClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewTaskClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TaskSubmitter, error) {
		client := do.MustInvoke[*acl.TaskClient](i)
		return app.NewTaskService(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*taskdialog.Manager, error) {
		submitter := do.MustInvoke[ports.TaskSubmitter](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return taskdialog.NewManager(&cfg.Dialog, submitter, metrics, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.DefaultCheckTimeout), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.DialogHandler, error) {
		return handlers.NewDialogHandler(do.MustInvoke[*taskdialog.Manager](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.PageHandler, error) {
		return handlers.NewPageHandler(do.MustInvoke[*taskdialog.Manager](i), cfg.Dialog.ReturnPath), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		dialogH := do.MustInvoke[*handlers.DialogHandler](i)
		pageH := do.MustInvoke[*handlers.PageHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(dialogH, pageH, healthH,
			middleware.Chain(
				middleware.Recovery(logger),
				middleware.RequestID(),
				middleware.CorrelationID(),
				middleware.OpenTelemetry(metrics),
				middleware.Logging(logger),
				middleware.Timeout(cfg.Server.WriteTimeout, middleware.RedirectForms(adapthttp.FormTimeoutTarget)),
			),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
