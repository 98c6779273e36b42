package dto_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/domain"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &domain.ValidationError{Fields: map[string]string{"title": domain.MsgRequired}}, want: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("dialog d-1: %w", domain.ErrNotFound), want: http.StatusNotFound},
		{name: "forbidden", err: domain.ErrForbidden, want: http.StatusForbidden},
		{name: "edit while submitting", err: fmt.Errorf("editing title: %w", domain.ErrConflict), want: http.StatusConflict},
		{name: "no capacity", err: fmt.Errorf("opening dialog: %w", domain.ErrUnavailable), want: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dto.StatusFor(tt.err), tt.name)
	}
}

func TestNewErrorResponse(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPut, "/api/v1/dialogs/d-1/fields/title?x=1", nil)
	got := dto.NewErrorResponse(r, fmt.Errorf("dialog d-1 is submitting: %w", domain.ErrConflict))

	assert.Equal(t, dto.ErrorResponse{
		Type:     "about:blank",
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   "dialog d-1 is submitting: conflict",
		Instance: "/api/v1/dialogs/d-1/fields/title",
	}, got)
}

func TestNewErrorResponse_ValidationFields(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/dialogs/d-1/submit", nil)
	got := dto.NewErrorResponse(r, &domain.ValidationError{Fields: map[string]string{
		"title":       domain.MsgRequired,
		"description": "must be at most 500 characters",
	}})

	assert.Equal(t, "description: must be at most 500 characters; title: is required", got.Detail)
	assert.Equal(t, []dto.ErrorDetail{
		{Location: "/description", Message: "must be at most 500 characters"},
		{Location: "/title", Message: domain.MsgRequired},
	}, got.Errors)
}

func TestNewErrorResponse_HidesInternalDetail(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/v1/dialogs/d-1", nil)
	got := dto.NewErrorResponse(r, errors.New("dial tcp 10.0.0.7:8080: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.NotContains(t, got.Detail, "10.0.0.7")
	assert.Nil(t, got.Errors)
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantRetryAfter string
	}{
		{name: "not found", err: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "unavailable", err: domain.ErrUnavailable, wantStatus: http.StatusServiceUnavailable, wantRetryAfter: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			dto.WriteErrorResponse(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dialogs", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, dto.ProblemContentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantRetryAfter, rec.Header().Get("Retry-After"))

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "/api/v1/dialogs", body.Instance)
		})
	}
}

// Not parallel: swaps the default logger.
func TestWriteErrorResponse_LogsUnhandledErrors(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := httptest.NewRequest(http.MethodGet, "/api/v1/dialogs/d-1", nil)
	dto.WriteErrorResponse(httptest.NewRecorder(), r, errors.New("template exploded"))
	dto.WriteErrorResponse(httptest.NewRecorder(), r, domain.ErrNotFound)

	assert.Contains(t, buf.String(), "template exploded")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "domain errors are not logged")
}
