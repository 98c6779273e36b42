package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/platform/logging"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

// Form actions posted by the dialog page.
const (
	actionSubmit   = "submit"
	actionCancel   = "cancel"
	actionBackdrop = "backdrop"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	indexTemplate  = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/index.html"))
	dialogTemplate = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/dialog.html"))
)

type pageData struct {
	Title   string
	Refresh bool
	Dialog  *dialog.View
}

// PageHandler serves the server-rendered HTML host for task creation
// dialogs. Every form post answers with a 303 redirect, so a reload never
// re-sends an action.
type PageHandler struct {
	svc        ports.DialogService
	returnPath string
}

// NewPageHandler creates a new PageHandler. Closed dialogs redirect to
// returnPath.
func NewPageHandler(svc ports.DialogService, returnPath string) *PageHandler {
	return &PageHandler{svc: svc, returnPath: returnPath}
}

// Index handles GET / and renders the page that opens a dialog.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	render(w, r, indexTemplate, "index.html", &pageData{Title: "Tasks"})
}

// OpenPage handles POST /dialogs.
func (h *PageHandler) OpenPage(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Open(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	http.Redirect(w, r, dialogPath(v.ID), http.StatusSeeOther)
}

// ShowPage handles GET /dialogs/{id}. A dialog that is no longer open
// redirects to the return path.
func (h *PageHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	id, err := dialogID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.Redirect(w, r, h.returnPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	render(w, r, dialogTemplate, "dialog.html", &pageData{
		Title:   "Create New Task",
		Refresh: v.Submitting,
		Dialog:  &v,
	})
}

// ActPage handles POST /dialogs/{id}. Changed title and description values
// are applied before a submit; cancel and backdrop close the dialog.
func (h *PageHandler) ActPage(w http.ResponseWriter, r *http.Request) {
	id, err := dialogID(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if !parseForm(w, r) {
		return
	}

	var closed bool
	switch action := r.PostFormValue("action"); action {
	case actionSubmit:
		closed, err = h.submit(r, id)
	case actionCancel:
		closed, err = h.svc.Close(r.Context(), id)
	case actionBackdrop:
		closed, err = h.svc.Click(r.Context(), id, dialog.TargetBackdrop)
	default:
		err = &domain.ValidationError{Fields: map[string]string{
			"action": fmt.Sprintf("must be one of: %s, %s, %s", actionSubmit, actionCancel, actionBackdrop),
		}}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Redirect(w, r, h.returnPath, http.StatusSeeOther)
	case err != nil:
		dto.WriteErrorResponse(w, r, err)
	case closed:
		http.Redirect(w, r, h.returnPath, http.StatusSeeOther)
	default:
		http.Redirect(w, r, dialogPath(id), http.StatusSeeOther)
	}
}

// submit applies the posted field values that differ from the dialog's
// current ones, then submits. It reports whether the dialog was closed.
func (h *PageHandler) submit(r *http.Request, id string) (bool, error) {
	ctx := r.Context()

	v, err := h.svc.Get(ctx, id)
	if err != nil {
		return false, err
	}

	edits := []struct {
		field   dialog.Field
		current string
	}{
		{dialog.FieldTitle, v.Title.Value},
		{dialog.FieldDescription, v.Description.Value},
	}
	for _, e := range edits {
		if !r.PostForm.Has(e.field.String()) {
			continue
		}
		value := formValue(r, e.field)
		if value == e.current {
			continue
		}
		if _, err := h.svc.Edit(ctx, id, e.field, value); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// A submission is already in flight; show its progress.
				return false, nil
			}
			return false, err
		}
	}

	sub, err := h.svc.Submit(ctx, id)
	if err != nil {
		return false, err
	}
	return sub.Closed, nil
}

// formValue returns a posted field with line breaks as "\n". Browsers send
// textarea line breaks as CRLF but count them as one character against
// maxlength, so a value at the cap would otherwise arrive over it.
func formValue(r *http.Request, field dialog.Field) string {
	return strings.ReplaceAll(r.PostForm.Get(field.String()), "\r\n", "\n")
}

func render(w http.ResponseWriter, r *http.Request, t *template.Template, name string, data *pageData) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "rendering page failed",
			slog.String("operation", "PageHandler.render"),
			slog.String("template", name),
			slog.Any("error", err),
		)
		dto.WriteErrorResponse(w, r, fmt.Errorf("rendering %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func dialogPath(id string) string {
	return "/dialogs/" + id
}
