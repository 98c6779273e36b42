package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/domain"
)

// maxBodyBytes bounds JSON and form bodies. A dialog request carries at most
// one field value of a few hundred characters.
const maxBodyBytes = 64 << 10

func dialogID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return "", &domain.ValidationError{
			Fields: map[string]string{"id": domain.MsgRequired},
		}
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// bodyError turns a failure to read or parse a request body into the
// validation error reported to the client.
func bodyError(err error, what string) error {
	msg := "invalid " + what
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		msg = fmt.Sprintf("must be at most %d bytes", tooLarge.Limit)
	case errors.Is(err, io.EOF):
		msg = domain.MsgRequired
	}
	return &domain.ValidationError{Fields: map[string]string{"body": msg}}
}

// decodeJSONBody decodes exactly one JSON value into dst. Unknown fields
// and trailing data are rejected. On failure it writes a 400 and returns
// false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil && dec.Decode(&struct{}{}) != io.EOF {
		err = errors.New("trailing data")
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, bodyError(err, "JSON"))
		return false
	}
	return true
}

type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON body into dst and validates it,
// writing the error response itself when either step fails.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// parseForm parses a form post, writing a 400 on failure.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		dto.WriteErrorResponse(w, r, bodyError(err, "form"))
		return false
	}
	return true
}
