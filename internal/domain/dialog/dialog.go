// Package dialog defines the vocabulary of the task creation dialog: its
// UI states, the fields and click targets a user can act on, the outcome of
// a submit attempt, and the read-only view a host renders.
//
// The behavior lives in internal/app/taskdialog; this package only holds types
// so that ports and adapters can refer to them without importing the
// application layer.
package dialog

// User-facing messages. They are fixed strings; hosts render them verbatim.
const (
	MsgFieldsRequired = "Both title and description are required"
	MsgSubmitFailed   = "Failed to create task"
	MsgUnexpected     = "An unexpected error occurred"
)

// Submit button labels.
const (
	LabelSubmit     = "Create Task"
	LabelSubmitting = "Creating Task..."
)

// State is the dialog's UI status.
type State string

const (
	StateIdle       State = "idle"
	StateInvalid    State = "invalid"
	StateSubmitting State = "submitting"
	StateErrored    State = "errored"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// Field names an editable form field.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
)

// String implements fmt.Stringer.
func (f Field) String() string {
	return string(f)
}

// IsValid returns true if the field is one of the defined constants.
func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldDescription:
		return true
	default:
		return false
	}
}

// Target is where a click landed: the dimmed backdrop or the panel on top
// of it (including anything inside the panel).
type Target string

const (
	TargetBackdrop Target = "backdrop"
	TargetPanel    Target = "panel"
)

// String implements fmt.Stringer.
func (t Target) String() string {
	return string(t)
}

// IsValid returns true if the target is one of the defined constants.
func (t Target) IsValid() bool {
	switch t {
	case TargetBackdrop, TargetPanel:
		return true
	default:
		return false
	}
}

// Outcome classifies how a submit attempt ended.
type Outcome string

const (
	// OutcomeInvalid: a field was blank, the collaborator was not called.
	OutcomeInvalid Outcome = "invalid"
	// OutcomeSubmitted: the collaborator reported success.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeRejected: the collaborator reported failure.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFaulted: the collaborator returned an error or panicked.
	OutcomeFaulted Outcome = "faulted"
	// OutcomeIgnored: a submission was already in flight.
	OutcomeIgnored Outcome = "ignored"
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	return string(o)
}
