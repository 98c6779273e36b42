package ports

import (
	"context"

	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
)

// DialogService defines the service port for hosting task creation dialogs.
// Implemented by the dialog manager; called by inbound adapters (handlers).
// Each method addresses one open dialog by ID and returns
// domain.ErrNotFound once the dialog has been closed.
type DialogService interface {
	// Open mounts a new dialog with empty fields.
	// Returns domain.ErrUnavailable when no more dialogs can be opened.
	Open(ctx context.Context) (dialog.View, error)

	// Get returns the current view of a dialog.
	Get(ctx context.Context, id string) (dialog.View, error)

	// Edit replaces one field's value and clears any error message.
	// Returns domain.ErrValidation for an unknown field and
	// domain.ErrConflict while a submission is in flight.
	Edit(ctx context.Context, id string, field dialog.Field, value string) (dialog.View, error)

	// Submit validates the form and, when valid, hands it to the
	// submission collaborator. The outcome never carries an error: every
	// failure is reported through the view's error message.
	Submit(ctx context.Context, id string) (*Submission, error)

	// Close handles the close icon and the Cancel button. It reports
	// whether the dialog was closed; it is not while submitting.
	Close(ctx context.Context, id string) (bool, error)

	// Click handles a click on the backdrop or the panel. Only a click on
	// the backdrop itself closes the dialog.
	Click(ctx context.Context, id string, target dialog.Target) (bool, error)
}

// Submission reports the outcome of one submit attempt.
type Submission struct {
	Outcome dialog.Outcome
	View    dialog.View

	// Task is the created task on OutcomeSubmitted, when known.
	Task *task.Task

	// Closed is true when the dialog was unmounted after the attempt.
	Closed bool
}
