package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
)

// errCancelled is returned by runSession when the user dismissed the dialog.
var errCancelled = errors.New("cancelled")

// dialogs is the part of the dialog API a terminal session drives.
type dialogs interface {
	Open(ctx context.Context) (*dto.DialogResponse, error)
	Edit(ctx context.Context, id string, field dialog.Field, value string) (*dto.DialogResponse, error)
	Submit(ctx context.Context, id string) (*dto.SubmitResponse, error)
	Close(ctx context.Context, id string) (bool, error)
}

// runSession opens a dialog and prompts for its fields until a submission
// succeeds or the user cancels. Prompts are pre-filled with the dialog's
// current values, so a rejected attempt only needs the wrong field fixed.
func runSession(ctx context.Context, api dialogs, p prompter) (*dto.TaskResponse, error) {
	v, err := api.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening dialog: %w", err)
	}
	id := v.ID

	for {
		v, err = promptField(ctx, api, p, v, dialog.FieldTitle)
		if err != nil {
			return nil, cancelOnAbort(ctx, api, p, id, err)
		}
		v, err = promptField(ctx, api, p, v, dialog.FieldDescription)
		if err != nil {
			return nil, cancelOnAbort(ctx, api, p, id, err)
		}

		p.Info(dialog.LabelSubmitting)
		sub, err := api.Submit(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("submitting dialog: %w", err)
		}

		if sub.Outcome == dialog.OutcomeSubmitted.String() {
			if !sub.Closed {
				if _, err := api.Close(ctx, id); err != nil {
					return nil, fmt.Errorf("closing dialog: %w", err)
				}
			}
			return sub.Task, nil
		}

		if sub.Dialog.Error != "" {
			p.Info("Error: " + sub.Dialog.Error)
		}
		v = &sub.Dialog
	}
}

// promptField asks for one field and stores the answer in the dialog.
func promptField(
	ctx context.Context,
	api dialogs,
	p prompter,
	v *dto.DialogResponse,
	field dialog.Field,
) (*dto.DialogResponse, error) {
	cfg := inputConfig{Message: "Title", Default: v.Title.Value, MaxLen: v.Title.Max}
	if field == dialog.FieldDescription {
		cfg = inputConfig{
			Message:   "Description",
			Default:   v.Description.Value,
			MaxLen:    v.Description.Max,
			Multiline: true,
		}
	}

	value, err := p.Ask(ctx, cfg)
	if err != nil {
		return nil, err
	}

	updated, err := api.Edit(ctx, v.ID, field, value)
	if err != nil {
		return nil, fmt.Errorf("editing %s: %w", field, err)
	}

	fv := updated.Title
	if field == dialog.FieldDescription {
		fv = updated.Description
	}
	if fv.NearLimit {
		p.Info(fmt.Sprintf("%s %s (near limit)", cfg.Message, fv.Counter))
	}
	return updated, nil
}

// cancelOnAbort presses Cancel when err is a Ctrl-C and returns errCancelled;
// any other error is returned unchanged.
func cancelOnAbort(ctx context.Context, api dialogs, p prompter, id string, err error) error {
	if !errors.Is(err, errAborted) {
		return err
	}
	closed, closeErr := api.Close(ctx, id)
	if closeErr != nil {
		return fmt.Errorf("closing dialog: %w", closeErr)
	}
	if !closed {
		p.Info("A submission is still in progress.")
	}
	return errCancelled
}
