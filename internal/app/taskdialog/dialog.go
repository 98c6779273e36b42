// Package taskdialog implements the task creation dialog and the manager
// that mounts and unmounts dialogs on behalf of inbound adapters.
//
// A Dialog owns one form (title and description) and its UI status. It
// never persists anything itself: a valid submission is handed to a
// ports.TaskSubmitter, and the dialog only reflects what the collaborator
// reports. Every failure ends up as a message in the dialog's error banner.
package taskdialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

// Errors returned by Dialog.Edit.
var (
	ErrInputsDisabled = errors.New("inputs are disabled while submitting")
	ErrUnknownField   = errors.New("unknown field")
)

var errSubmitterPanic = errors.New("task submitter panicked")

// Option configures a Dialog.
type Option func(*Dialog)

// WithLogger sets the logger used to report submission faults.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dialog) {
		d.logger = logger
	}
}

// WithClock overrides the time source used for OpenedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(d *Dialog) {
		d.now = now
	}
}

// Dialog is a single task creation dialog. It is safe for concurrent use.
//
// The mutex guards the form and the UI status. It is never held while the
// submitter or onClose runs; the submitting flag alone keeps a second
// submission from starting while one is in flight.
type Dialog struct {
	id        string
	submitter ports.TaskSubmitter
	onClose   func()
	logger    *slog.Logger
	now       func() time.Time

	mu         sync.Mutex
	form       task.Draft
	submitting bool
	err        string
	state      dialog.State
	openedAt   time.Time
	updatedAt  time.Time
	holds      int
}

// New creates a dialog with empty fields and no error. onClose is called
// whenever the user asks to dismiss the dialog and may be called more than
// once; a nil onClose is treated as a no-op.
func New(id string, submitter ports.TaskSubmitter, onClose func(), opts ...Option) *Dialog {
	d := &Dialog{
		id:        id,
		submitter: submitter,
		onClose:   onClose,
		logger:    slog.Default(),
		now:       time.Now,
		state:     dialog.StateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.onClose == nil {
		d.onClose = func() {}
	}

	d.openedAt = d.now()
	d.updatedAt = d.openedAt
	return d
}

// ID returns the dialog's identifier.
func (d *Dialog) ID() string {
	return d.id
}

// Edit replaces the value of one field. Values longer than the field's cap
// are truncated to it. Any error message is cleared.
func (d *Dialog) Edit(field dialog.Field, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.submitting {
		return ErrInputsDisabled
	}

	switch field {
	case dialog.FieldTitle:
		d.form.Title = task.Clamp(value, task.TitleMaxLen)
	case dialog.FieldDescription:
		d.form.Description = task.Clamp(value, task.DescriptionMaxLen)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	d.err = ""
	d.state = dialog.StateIdle
	d.updatedAt = d.now()
	return nil
}

// Click handles a pointer click. A click whose target is the backdrop
// itself dismisses the dialog, even while a submission is in flight.
// Clicks on the panel or anything inside it do nothing.
func (d *Dialog) Click(target dialog.Target) bool {
	if target != dialog.TargetBackdrop {
		return false
	}
	d.onClose()
	return true
}

// Close handles the close icon and the Cancel button. Both are disabled
// while submitting, in which case Close does nothing and returns false.
func (d *Dialog) Close() bool {
	d.mu.Lock()
	submitting := d.submitting
	d.mu.Unlock()

	if submitting {
		return false
	}
	d.onClose()
	return true
}

// Submit validates the form and, if both fields are non-empty after
// trimming, calls the submitter once with the trimmed values.
//
// Submit never returns an error. Failures are reported through the
// returned outcome and the view's error message. On success the form keeps
// its values and the dialog stays open; closing it is up to the owner.
// The created task is returned when the submitter reports one.
func (d *Dialog) Submit(ctx context.Context) (dialog.Outcome, *task.Task) {
	d.mu.Lock()
	if d.submitting {
		d.mu.Unlock()
		return dialog.OutcomeIgnored, nil
	}

	draft := d.form.Trimmed()
	if draft.Title == "" || draft.Description == "" {
		d.err = dialog.MsgFieldsRequired
		d.state = dialog.StateInvalid
		d.updatedAt = d.now()
		d.mu.Unlock()
		return dialog.OutcomeInvalid, nil
	}

	d.submitting = true
	d.err = ""
	d.state = dialog.StateSubmitting
	d.updatedAt = d.now()
	d.mu.Unlock()

	result, err := d.callSubmitter(ctx, draft)
	if err != nil {
		d.logger.ErrorContext(ctx, "task submission faulted",
			slog.String("operation", "Dialog.Submit"),
			slog.String("dialog_id", d.id),
			slog.Any("error", err),
		)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.submitting = false
	d.updatedAt = d.now()

	switch {
	case err != nil:
		d.err = dialog.MsgUnexpected
		d.state = dialog.StateErrored
		return dialog.OutcomeFaulted, nil
	case !result.Success:
		d.err = result.Error
		if d.err == "" {
			d.err = dialog.MsgSubmitFailed
		}
		d.state = dialog.StateErrored
		return dialog.OutcomeRejected, nil
	default:
		d.err = ""
		d.state = dialog.StateIdle
		return dialog.OutcomeSubmitted, result.Task
	}
}

// View returns a snapshot of the dialog for rendering.
func (d *Dialog) View() dialog.View {
	d.mu.Lock()
	defer d.mu.Unlock()

	label := dialog.LabelSubmit
	if d.submitting {
		label = dialog.LabelSubmitting
	}

	return dialog.View{
		ID:    d.id,
		State: d.state,
		Title: fieldView(d.form.Title, task.TitleMaxLen, task.TitleWarnLen, d.submitting),
		Description: fieldView(d.form.Description, task.DescriptionMaxLen, task.DescriptionWarnLen,
			d.submitting),
		Error:          d.err,
		Submitting:     d.submitting,
		SubmitDisabled: d.submitting || !d.form.Complete(),
		CancelDisabled: d.submitting,
		SubmitLabel:    label,
		OpenedAt:       d.openedAt,
		UpdatedAt:      d.updatedAt,
	}
}

// idleFor reports whether the dialog has gone untouched for at least
// timeout as of now. A dialog with a submission in flight, or one held by
// a caller about to act on it, is never idle.
func (d *Dialog) idleFor(now time.Time, timeout time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.submitting && d.holds == 0 && now.Sub(d.updatedAt) >= timeout
}

func (d *Dialog) hold() {
	d.mu.Lock()
	d.holds++
	d.mu.Unlock()
}

func (d *Dialog) release() {
	d.mu.Lock()
	d.holds--
	d.mu.Unlock()
}

// callSubmitter runs the submitter, turning a panic into an error so that
// the dialog always leaves the submitting state.
func (d *Dialog) callSubmitter(ctx context.Context, draft task.Draft) (result task.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errSubmitterPanic, r)
		}
	}()
	return d.submitter.SubmitTask(ctx, draft)
}

func fieldView(value string, maxLen, warnLen int, disabled bool) dialog.FieldView {
	n := task.Len(value)
	return dialog.FieldView{
		Value:     value,
		Count:     n,
		Max:       maxLen,
		NearLimit: n > warnLen,
		Disabled:  disabled,
	}
}
