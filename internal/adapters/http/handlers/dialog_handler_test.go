package handlers_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
	"github.com/jsamuelsen11/taskdialog/mocks"
)

func newDialogHandler(t *testing.T) (*handlers.DialogHandler, *mocks.MockDialogService) {
	t.Helper()
	svc := mocks.NewMockDialogService(t)
	return handlers.NewDialogHandler(svc), svc
}

func dialogRequest(method, path string, body *bytes.Buffer, params map[string]string) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
	}
	return withChiParams(req, params)
}

// --- OpenDialog ---

func TestOpenDialog_Success(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Open(mock.Anything).Return(idleView(), nil)

	rec := httptest.NewRecorder()
	h.OpenDialog(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dialogs", nil))

	requireStatus(t, rec, http.StatusCreated)
	if loc := rec.Header().Get("Location"); loc != "/api/v1/dialogs/"+testDialogID {
		t.Errorf("Location = %q, want %q", loc, "/api/v1/dialogs/"+testDialogID)
	}

	resp := decodeJSON[dto.DialogResponse](t, rec)
	if resp.ID != testDialogID {
		t.Errorf("ID = %q, want %q", resp.ID, testDialogID)
	}
	if resp.Title.Counter != "0/100" {
		t.Errorf("Title.Counter = %q, want %q", resp.Title.Counter, "0/100")
	}
	if resp.Description.Counter != "0/500" {
		t.Errorf("Description.Counter = %q, want %q", resp.Description.Counter, "0/500")
	}
	if resp.Error != "" {
		t.Errorf("Error = %q, want empty", resp.Error)
	}
}

func TestOpenDialog_AtCapacity(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Open(mock.Anything).
		Return(dialog.View{}, fmt.Errorf("opening dialog: %w", domain.ErrUnavailable))

	rec := httptest.NewRecorder()
	h.OpenDialog(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dialogs", nil))

	requireStatus(t, rec, http.StatusServiceUnavailable)
}

// --- GetDialog ---

func TestGetDialog_Success(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Get(mock.Anything, testDialogID).Return(filledView("Write report", "Q3"), nil)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodGet, "/api/v1/dialogs/"+testDialogID, nil, map[string]string{"id": testDialogID})
	h.GetDialog(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.DialogResponse](t, rec)
	if resp.Title.Value != "Write report" {
		t.Errorf("Title.Value = %q, want %q", resp.Title.Value, "Write report")
	}
	if resp.SubmitDisabled {
		t.Error("SubmitDisabled = true, want false")
	}
}

func TestGetDialog_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Get(mock.Anything, "gone").
		Return(dialog.View{}, fmt.Errorf("dialog %q: %w", "gone", domain.ErrNotFound))

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodGet, "/api/v1/dialogs/gone", nil, map[string]string{"id": "gone"})
	h.GetDialog(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestGetDialog_MissingID(t *testing.T) {
	t.Parallel()
	h, _ := newDialogHandler(t)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodGet, "/api/v1/dialogs/", nil, map[string]string{})
	h.GetDialog(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- EditField ---

func TestEditField_Success(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Edit(mock.Anything, testDialogID, dialog.FieldTitle, "Write report").
		Return(filledView("Write report", ""), nil)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodPut, "/api/v1/dialogs/"+testDialogID+"/fields/title",
		jsonBody(t, map[string]string{"value": "Write report"}),
		map[string]string{"id": testDialogID, "field": "title"})
	h.EditField(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.DialogResponse](t, rec)
	if resp.Title.Count != 12 {
		t.Errorf("Title.Count = %d, want 12", resp.Title.Count)
	}
}

func TestEditField_ClearsWithEmptyValue(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Edit(mock.Anything, testDialogID, dialog.FieldDescription, "").
		Return(idleView(), nil)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodPut, "/api/v1/dialogs/"+testDialogID+"/fields/description",
		jsonBody(t, map[string]string{"value": ""}),
		map[string]string{"id": testDialogID, "field": "description"})
	h.EditField(rec, req)

	requireStatus(t, rec, http.StatusOK)
}

func TestEditField_MissingValue(t *testing.T) {
	t.Parallel()
	h, _ := newDialogHandler(t)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodPut, "/api/v1/dialogs/"+testDialogID+"/fields/title",
		jsonBody(t, map[string]string{}),
		map[string]string{"id": testDialogID, "field": "title"})
	h.EditField(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestEditField_MalformedBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "not json", body: "{not json", wantMsg: "invalid JSON"},
		{name: "empty", body: "", wantMsg: "is required"},
		{name: "unknown field", body: `{"value":"x","colour":"red"}`, wantMsg: "invalid JSON"},
		{name: "trailing data", body: `{"value":"x"} {"value":"y"}`, wantMsg: "invalid JSON"},
		{name: "too large", body: `{"value":"` + strings.Repeat("a", 70<<10) + `"}`, wantMsg: "must be at most"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newDialogHandler(t)

			rec := httptest.NewRecorder()
			req := dialogRequest(http.MethodPut, "/api/v1/dialogs/"+testDialogID+"/fields/title",
				bytes.NewBufferString(tt.body),
				map[string]string{"id": testDialogID, "field": "title"})
			h.EditField(rec, req)

			requireStatus(t, rec, http.StatusBadRequest)
			resp := decodeJSON[dto.ErrorResponse](t, rec)
			if len(resp.Errors) != 1 || resp.Errors[0].Location != "/body" {
				t.Fatalf("errors = %+v, want one /body entry", resp.Errors)
			}
			if !strings.Contains(resp.Errors[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", resp.Errors[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestEditField_ServiceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "unknown field",
			err:        &domain.ValidationError{Fields: map[string]string{"field": `unknown field "status"`}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "submitting",
			err:        fmt.Errorf("inputs are disabled while submitting: %w", domain.ErrConflict),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "closed",
			err:        fmt.Errorf("dialog %q: %w", testDialogID, domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newDialogHandler(t)

			svc.EXPECT().Edit(mock.Anything, testDialogID, mock.Anything, "x").Return(dialog.View{}, tt.err)

			rec := httptest.NewRecorder()
			req := dialogRequest(http.MethodPut, "/api/v1/dialogs/"+testDialogID+"/fields/status",
				jsonBody(t, map[string]string{"value": "x"}),
				map[string]string{"id": testDialogID, "field": "status"})
			h.EditField(rec, req)

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}

// --- SubmitDialog ---

func TestSubmitDialog_Outcomes(t *testing.T) {
	t.Parallel()

	created := &task.Task{ID: 7, Title: "Write report", Description: "Q3", Status: task.StatusPending}

	tests := []struct {
		name      string
		sub       *ports.Submission
		wantError string
		wantTask  bool
	}{
		{
			name: "submitted and closed",
			sub: &ports.Submission{
				Outcome: dialog.OutcomeSubmitted,
				View:    filledView("Write report", "Q3"),
				Task:    created,
				Closed:  true,
			},
			wantTask: true,
		},
		{
			name: "invalid",
			sub: func() *ports.Submission {
				v := idleView()
				v.State = dialog.StateInvalid
				v.Error = dialog.MsgFieldsRequired
				return &ports.Submission{Outcome: dialog.OutcomeInvalid, View: v}
			}(),
			wantError: dialog.MsgFieldsRequired,
		},
		{
			name: "rejected",
			sub: func() *ports.Submission {
				v := filledView("Write report", "Q3")
				v.State = dialog.StateErrored
				v.Error = "Title already exists"
				return &ports.Submission{Outcome: dialog.OutcomeRejected, View: v}
			}(),
			wantError: "Title already exists",
		},
		{
			name: "faulted",
			sub: func() *ports.Submission {
				v := filledView("Write report", "Q3")
				v.State = dialog.StateErrored
				v.Error = dialog.MsgUnexpected
				return &ports.Submission{Outcome: dialog.OutcomeFaulted, View: v}
			}(),
			wantError: dialog.MsgUnexpected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newDialogHandler(t)

			svc.EXPECT().Submit(mock.Anything, testDialogID).Return(tt.sub, nil)

			rec := httptest.NewRecorder()
			req := dialogRequest(http.MethodPost, "/api/v1/dialogs/"+testDialogID+"/submit", nil,
				map[string]string{"id": testDialogID})
			h.SubmitDialog(rec, req)

			requireStatus(t, rec, http.StatusOK)
			resp := decodeJSON[dto.SubmitResponse](t, rec)
			if resp.Outcome != tt.sub.Outcome.String() {
				t.Errorf("Outcome = %q, want %q", resp.Outcome, tt.sub.Outcome)
			}
			if resp.Dialog.Error != tt.wantError {
				t.Errorf("Dialog.Error = %q, want %q", resp.Dialog.Error, tt.wantError)
			}
			if (resp.Task != nil) != tt.wantTask {
				t.Errorf("Task present = %v, want %v", resp.Task != nil, tt.wantTask)
			}
			if resp.Closed != tt.sub.Closed {
				t.Errorf("Closed = %v, want %v", resp.Closed, tt.sub.Closed)
			}
		})
	}
}

func TestSubmitDialog_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Submit(mock.Anything, testDialogID).Return(nil, domain.ErrNotFound)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodPost, "/api/v1/dialogs/"+testDialogID+"/submit", nil,
		map[string]string{"id": testDialogID})
	h.SubmitDialog(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

// --- CloseDialog ---

func TestCloseDialog_Closed(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Close(mock.Anything, testDialogID).Return(true, nil)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodPost, "/api/v1/dialogs/"+testDialogID+"/close", nil,
		map[string]string{"id": testDialogID})
	h.CloseDialog(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.CloseResponse](t, rec)
	if !resp.Closed {
		t.Error("Closed = false, want true")
	}
}

func TestCloseDialog_WhileSubmitting(t *testing.T) {
	t.Parallel()
	h, svc := newDialogHandler(t)

	svc.EXPECT().Close(mock.Anything, testDialogID).Return(false, nil)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodPost, "/api/v1/dialogs/"+testDialogID+"/close", nil,
		map[string]string{"id": testDialogID})
	h.CloseDialog(rec, req)

	requireStatus(t, rec, http.StatusConflict)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/problem+json")
	}
}

// --- ClickDialog ---

func TestClickDialog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target dialog.Target
		closed bool
	}{
		{name: "backdrop closes", target: dialog.TargetBackdrop, closed: true},
		{name: "panel keeps open", target: dialog.TargetPanel, closed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newDialogHandler(t)

			svc.EXPECT().Click(mock.Anything, testDialogID, tt.target).Return(tt.closed, nil)

			rec := httptest.NewRecorder()
			req := dialogRequest(http.MethodPost, "/api/v1/dialogs/"+testDialogID+"/click",
				jsonBody(t, dto.ClickRequest{Target: tt.target.String()}),
				map[string]string{"id": testDialogID})
			h.ClickDialog(rec, req)

			requireStatus(t, rec, http.StatusOK)
			resp := decodeJSON[dto.CloseResponse](t, rec)
			if resp.Closed != tt.closed {
				t.Errorf("Closed = %v, want %v", resp.Closed, tt.closed)
			}
		})
	}
}

func TestClickDialog_UnknownTarget(t *testing.T) {
	t.Parallel()
	h, _ := newDialogHandler(t)

	rec := httptest.NewRecorder()
	req := dialogRequest(http.MethodPost, "/api/v1/dialogs/"+testDialogID+"/click",
		jsonBody(t, dto.ClickRequest{Target: "title"}),
		map[string]string{"id": testDialogID})
	h.ClickDialog(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}
