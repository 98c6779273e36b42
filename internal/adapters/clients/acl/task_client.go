package acl

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	acltask "github.com/jsamuelsen11/taskdialog/internal/adapters/clients/acl/task"
	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
	"github.com/jsamuelsen11/taskdialog/internal/platform/httpclient"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TaskClient    = (*TaskClient)(nil)
	_ ports.HealthChecker = (*TaskClient)(nil)
)

const todosPath = "/api/v1/todos"

// TaskClient is the outbound adapter for the downstream TODO API, which owns
// task persistence. It implements [ports.TaskClient].
//
// Requests and responses are translated by the [acltask] package. HTTP
// errors are mapped to domain errors (ErrValidation, ErrConflict, etc.) by
// [TranslateHTTPError]. The underlying [httpclient.Client] provides circuit
// breaking, rate limiting, retry with exponential backoff, and tracing.
type TaskClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewTaskClient creates a TaskClient that sends requests through the given
// [httpclient.Client]. The client's BaseURL should point to the downstream
// TODO API root (e.g. "https://todo-api.example.com").
func NewTaskClient(client *httpclient.Client, logger *slog.Logger) *TaskClient {
	return &TaskClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// CreateTask sends POST /api/v1/todos with the translated request body and
// returns the created task. Returns a *domain.ValidationError (or
// domain.ErrValidation) if the downstream rejects the payload.
//
// Each call gets a fresh idempotency key, so retries inside the HTTP client
// cannot create the task twice while separate submissions stay distinct.
func (c *TaskClient) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	reqDTO := acltask.ToCreateTodoRequest(t)
	ctx = httpclient.WithIdempotencyKey(ctx, uuid.NewString())

	var dto acltask.TodoDTO
	if err := c.req.Do(ctx, http.MethodPost, todosPath, reqDTO, &dto); err != nil {
		return nil, err
	}

	created := acltask.ToDomainTask(&dto)
	c.logger.DebugContext(ctx, "downstream created todo", slog.Int64("todo_id", created.ID))
	return &created, nil
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry]. The value "todo-api" matches the service name used
// by the underlying [httpclient.Client] for tracing and metrics.
func (c *TaskClient) Name() string {
	return "todo-api"
}

// HealthCheck reports the downstream TODO API's availability based on the
// circuit breaker state. No network call is made.
//
// Dialogs stay usable while the downstream fails: submissions are rejected
// with a message instead.
func (c *TaskClient) HealthCheck(_ context.Context) error {
	return httpclient.BreakerHealth(c.Name(), c.req.CircuitBreakerState())
}
