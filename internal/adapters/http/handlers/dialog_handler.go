package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

// DialogHandler handles the JSON API for task creation dialogs.
type DialogHandler struct {
	svc ports.DialogService
}

// NewDialogHandler creates a new DialogHandler with the given service port.
func NewDialogHandler(svc ports.DialogService) *DialogHandler {
	return &DialogHandler{svc: svc}
}

// OpenDialog handles POST /api/v1/dialogs.
func (h *DialogHandler) OpenDialog(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Open(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/dialogs/"+v.ID)
	writeJSON(w, http.StatusCreated, dto.ToDialogResponse(&v))
}

// GetDialog handles GET /api/v1/dialogs/{id}.
func (h *DialogHandler) GetDialog(w http.ResponseWriter, r *http.Request) {
	id, err := dialogID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDialogResponse(&v))
}

// EditField handles PUT /api/v1/dialogs/{id}/fields/{field}.
func (h *DialogHandler) EditField(w http.ResponseWriter, r *http.Request) {
	id, err := dialogID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.EditFieldRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	field := dialog.Field(chi.URLParam(r, "field"))
	v, err := h.svc.Edit(r.Context(), id, field, *req.Value)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToDialogResponse(&v))
}

// SubmitDialog handles POST /api/v1/dialogs/{id}/submit. The response is
// 200 for every outcome; the outcome and the dialog's error message say
// how the attempt went.
func (h *DialogHandler) SubmitDialog(w http.ResponseWriter, r *http.Request) {
	id, err := dialogID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	sub, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToSubmitResponse(sub))
}

// CloseDialog handles POST /api/v1/dialogs/{id}/close.
func (h *DialogHandler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	id, err := dialogID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	closed, err := h.svc.Close(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !closed {
		dto.WriteErrorResponse(w, r, fmt.Errorf("dialog %q is submitting: %w", id, domain.ErrConflict))
		return
	}

	writeJSON(w, http.StatusOK, dto.CloseResponse{Closed: true})
}

// ClickDialog handles POST /api/v1/dialogs/{id}/click.
func (h *DialogHandler) ClickDialog(w http.ResponseWriter, r *http.Request) {
	id, err := dialogID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ClickRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	closed, err := h.svc.Click(r.Context(), id, dialog.Target(req.Target))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CloseResponse{Closed: closed})
}
