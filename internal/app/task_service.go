// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskSubmitter.
var _ ports.TaskSubmitter = (*TaskService)(nil)

// errNoTask reports a client that claimed success without a task.
var errNoTask = errors.New("task client returned no task")

// TaskService implements ports.TaskSubmitter by forwarding drafts to the
// downstream TODO API through the TaskClient port. The downstream service
// owns validation and persistence; TaskService only decides which failures
// the user may see.
type TaskService struct {
	client ports.TaskClient
	logger *slog.Logger
}

// NewTaskService creates a TaskService. A nil logger discards output.
func NewTaskService(client ports.TaskClient, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TaskService{
		client: client,
		logger: logger,
	}
}

// SubmitTask creates a pending task from the draft.
//
// Expected downstream refusals become an unsuccessful Result: a validation
// failure carries its field summary as the user-facing reason, while
// conflicts, authorization failures and unavailability carry none. Any
// other error is returned as is and treated by the caller as a fault.
func (s *TaskService) SubmitTask(ctx context.Context, draft task.Draft) (task.Result, error) {
	s.logger.InfoContext(ctx, "creating task", slog.String("title", draft.Title))

	t := task.FromDraft(draft)
	created, err := s.client.CreateTask(ctx, &t)
	if err == nil && created == nil {
		err = errNoTask
	}
	if err == nil {
		s.logger.InfoContext(ctx, "task created", slog.Int64("task_id", created.ID))
		return task.Succeeded(created), nil
	}

	s.logger.ErrorContext(ctx, "failed to create task",
		slog.String("operation", "SubmitTask"),
		slog.String("title", draft.Title),
		slog.Any("error", err),
	)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return task.Rejected(verr.Summary()), nil
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrUnavailable):
		return task.Result{}, nil
	default:
		return task.Result{}, err
	}
}
