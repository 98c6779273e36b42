// Package task holds the task entity created through the dialog, the draft
// the dialog edits, and the result a submission collaborator reports.
package task

import "time"

// Task is a created task as reported by the backend that owns persistence.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FromDraft builds a new pending task from a trimmed draft.
func FromDraft(d Draft) Task {
	return Task{
		Title:       d.Title,
		Description: d.Description,
		Status:      StatusPending,
	}
}
