package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
)

// ProblemContentType is the media type of every error body.
const ProblemContentType = "application/problem+json"

// UnavailableRetryAfter is sent as Retry-After, in seconds, with every 503.
// Dialog capacity and the task store both recover on that order of time.
const UnavailableRetryAfter = 5

// internalDetail replaces the message of errors that map to 500 so that
// downstream wording never reaches the browser.
const internalDetail = "the server could not complete the request"

// ErrorResponse represents an RFC 9457 Problem Details response.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one rejected draft field. Location is the JSON pointer of
// the field in the request body, e.g. "/title".
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// statusBySentinel is checked in order; the first sentinel err wraps wins.
var statusBySentinel = []struct {
	sentinel error
	status   int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnavailable, http.StatusServiceUnavailable},
}

// StatusFor maps err to the HTTP status it is reported with.
func StatusFor(err error) int {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.sentinel) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// NewProblem builds a bare problem for status.
func NewProblem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}
}

// NewErrorResponse creates the problem for a domain error. Validation
// failures list every rejected field.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := StatusFor(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = internalDetail
	}
	resp := NewProblem(r, status, detail)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Detail = verr.Summary()
		resp.Errors = fieldDetails(verr.Fields)
	}
	return resp
}

// WriteErrorResponse reports err as problem+json. Errors without a domain
// sentinel are logged since the client only sees a generic detail.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)
	if resp.Status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "unhandled error",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	WriteProblem(w, r, resp)
}

// WriteProblem encodes resp with its status. A 503 carries Retry-After.
func WriteProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", ProblemContentType)
	if resp.Status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", strconv.Itoa(UnavailableRetryAfter))
	}
	w.WriteHeader(resp.Status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode problem", slog.Any("error", err))
	}
}

func fieldDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{Location: "/" + field, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return strings.Compare(a.Location, b.Location)
	})
	return details
}
