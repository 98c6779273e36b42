package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
)

const testDialogID = "dlg-1"

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// idleView returns the view of a freshly opened dialog.
func idleView() dialog.View {
	return dialog.View{
		ID:             testDialogID,
		State:          dialog.StateIdle,
		Title:          dialog.FieldView{Max: 100},
		Description:    dialog.FieldView{Max: 500},
		SubmitDisabled: true,
		SubmitLabel:    dialog.LabelSubmit,
		OpenedAt:       testTime,
		UpdatedAt:      testTime,
	}
}

// filledView returns the view of a dialog with both fields set.
func filledView(title, description string) dialog.View {
	v := idleView()
	v.Title.Value = title
	v.Title.Count = len([]rune(title))
	v.Description.Value = description
	v.Description.Count = len([]rune(description))
	v.SubmitDisabled = false
	return v
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
