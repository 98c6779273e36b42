package ports

import (
	"context"

	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
)

// TaskSubmitter is the submission collaborator a task creation dialog
// delegates to. Implemented by the application layer; called by the dialog.
type TaskSubmitter interface {
	// SubmitTask is called with a trimmed draft whose fields are both
	// non-empty. A Result with Success=false is an expected rejection and
	// its Error (possibly empty) is shown to the user. A non-nil error is an
	// unexpected fault; its detail is logged and never shown.
	SubmitTask(ctx context.Context, draft task.Draft) (task.Result, error)
}

// TaskClient defines the client port for the backend that persists tasks.
// Implemented by the ACL adapter; called by the application layer.
type TaskClient interface {
	// CreateTask creates a new task and returns the created entity with
	// backend-assigned fields (ID, timestamps).
	// Returns domain.ErrValidation if the backend rejects the payload.
	CreateTask(ctx context.Context, t *task.Task) (*task.Task, error)
}
