package dialog

import (
	"strconv"
	"time"
)

// View is a point-in-time snapshot of a dialog, carrying everything a host
// needs to render it: the raw field values, counters, the error banner and
// which controls are disabled.
type View struct {
	ID    string
	State State

	Title       FieldView
	Description FieldView

	// Error is the message in the error banner; empty when none is shown.
	Error string

	Submitting     bool
	SubmitDisabled bool
	CancelDisabled bool
	SubmitLabel    string

	OpenedAt  time.Time
	UpdatedAt time.Time
}

// FieldView describes one input control.
type FieldView struct {
	Value     string
	Count     int
	Max       int
	NearLimit bool
	Disabled  bool
}

// Counter renders the "n/max" character counter.
func (f FieldView) Counter() string {
	return strconv.Itoa(f.Count) + "/" + strconv.Itoa(f.Max)
}

// HasError reports whether the error banner is shown.
func (v View) HasError() bool {
	return v.Error != ""
}
