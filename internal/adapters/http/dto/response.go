// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

// FieldResponse represents one input control of a dialog.
type FieldResponse struct {
	Value     string `json:"value"`
	Count     int    `json:"count"`
	Max       int    `json:"max"`
	Counter   string `json:"counter"`
	NearLimit bool   `json:"near_limit"`
	Disabled  bool   `json:"disabled"`
}

// DialogResponse represents the current state of a dialog in HTTP responses.
type DialogResponse struct {
	ID             string        `json:"id"`
	State          string        `json:"state"`
	Title          FieldResponse `json:"title"`
	Description    FieldResponse `json:"description"`
	Error          string        `json:"error,omitempty"`
	Submitting     bool          `json:"submitting"`
	SubmitDisabled bool          `json:"submit_disabled"`
	CancelDisabled bool          `json:"cancel_disabled"`
	SubmitLabel    string        `json:"submit_label"`
	OpenedAt       string        `json:"opened_at"`
	UpdatedAt      string        `json:"updated_at"`
}

// TaskResponse represents a created task in HTTP responses.
type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// SubmitResponse reports the outcome of a submit attempt. Task is set only
// when the attempt succeeded and the backend returned the created task.
type SubmitResponse struct {
	Outcome string         `json:"outcome"`
	Dialog  DialogResponse `json:"dialog"`
	Task    *TaskResponse  `json:"task,omitempty"`
	Closed  bool           `json:"closed"`
}

// CloseResponse reports whether a close or click request closed the dialog.
type CloseResponse struct {
	Closed bool `json:"closed"`
}

// ToDialogResponse converts a dialog view to an HTTP response DTO.
func ToDialogResponse(v *dialog.View) DialogResponse {
	return DialogResponse{
		ID:             v.ID,
		State:          v.State.String(),
		Title:          toFieldResponse(v.Title),
		Description:    toFieldResponse(v.Description),
		Error:          v.Error,
		Submitting:     v.Submitting,
		SubmitDisabled: v.SubmitDisabled,
		CancelDisabled: v.CancelDisabled,
		SubmitLabel:    v.SubmitLabel,
		OpenedAt:       v.OpenedAt.Format(time.RFC3339),
		UpdatedAt:      v.UpdatedAt.Format(time.RFC3339),
	}
}

// ToTaskResponse converts a domain Task to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

// ToSubmitResponse converts a submission outcome to an HTTP response DTO.
func ToSubmitResponse(s *ports.Submission) SubmitResponse {
	resp := SubmitResponse{
		Outcome: s.Outcome.String(),
		Dialog:  ToDialogResponse(&s.View),
		Closed:  s.Closed,
	}
	if s.Task != nil {
		t := ToTaskResponse(s.Task)
		resp.Task = &t
	}
	return resp
}

func toFieldResponse(f dialog.FieldView) FieldResponse {
	return FieldResponse{
		Value:     f.Value,
		Count:     f.Count,
		Max:       f.Max,
		Counter:   f.Counter(),
		NearLimit: f.NearLimit,
		Disabled:  f.Disabled,
	}
}
