package dto

import (
	"fmt"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
)

const msgRequired = "is required"

// EditFieldRequest represents the JSON body for replacing a field's value.
// Value is a pointer so that an explicit empty string (clearing the field)
// can be told apart from a missing value.
type EditFieldRequest struct {
	Value *string `json:"value"`
}

// Validate checks that a value is present.
// Returns a *domain.ValidationError if any checks fail.
func (r *EditFieldRequest) Validate() error {
	if r.Value == nil {
		return &domain.ValidationError{Fields: map[string]string{"value": msgRequired}}
	}
	return nil
}

// ClickRequest represents the JSON body for a click on the dialog.
type ClickRequest struct {
	Target string `json:"target"`
}

// Validate checks that the target is one of the known click targets.
// Returns a *domain.ValidationError if any checks fail.
func (r *ClickRequest) Validate() error {
	switch {
	case r.Target == "":
		return &domain.ValidationError{Fields: map[string]string{"target": msgRequired}}
	case !dialog.Target(r.Target).IsValid():
		return &domain.ValidationError{Fields: map[string]string{
			"target": fmt.Sprintf("must be one of: %s, %s", dialog.TargetBackdrop, dialog.TargetPanel),
		}}
	default:
		return nil
	}
}
