// Package main is taskctl, a terminal host for the task creation dialog. It
// opens a dialog on a running taskdialog service, prompts for the title and
// description, and submits until the task is created or the user presses
// Ctrl-C.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/clients/dialogapi"
	"github.com/jsamuelsen11/taskdialog/internal/platform/config"
	"github.com/jsamuelsen11/taskdialog/internal/platform/httpclient"
	"github.com/jsamuelsen11/taskdialog/internal/platform/logging"
)

const defaultURL = "http://localhost:8080"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, errCancelled) {
			fmt.Fprintln(os.Stderr, "cancelled")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	baseURL := os.Getenv("TASKCTL_URL")
	if baseURL == "" {
		baseURL = defaultURL
	}

	flag.StringVar(&baseURL, "url", baseURL, "base URL of the taskdialog service (env TASKCTL_URL)")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(*logLevel, "text", os.Stderr)

	client := httpclient.New(&config.ClientConfig{
		BaseURL: baseURL,
		Timeout: *timeout,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     time.Second,
			Multiplier:      2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       10 * time.Second,
			HalfOpenLimit: 1,
		},
	}, "taskdialog", nil, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := &surveyPrompter{out: os.Stdout}
	created, err := runSession(ctx, dialogapi.New(client, logger), p)
	if err != nil {
		return err
	}

	if created != nil {
		p.Info(fmt.Sprintf("Created task #%d: %s", created.ID, created.Title))
	} else {
		p.Info("Task created.")
	}
	return nil
}
