// Package acl keeps downstream HTTP representations out of the domain. The
// task subpackage translates task payloads; this package turns downstream
// error responses into domain errors and runs the request lifecycle shared
// by every client.
package acl

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
)

// maxErrorBodySize limits how much of an error response body is read.
const maxErrorBodySize = 64 << 10

// msgInvalid replaces a field message that is empty once markup is removed.
const msgInvalid = "is invalid"

// textPolicy strips every tag. Downstream text ends up in the dialog's
// error banner and must not carry markup into it.
var textPolicy = bluemonday.StrictPolicy()

// sentinelByStatus covers the statuses with a fixed domain meaning. 400 and
// 422 are handled apart since they may carry field errors; any 5xx is
// ErrUnavailable.
var sentinelByStatus = map[int]error{
	http.StatusNotFound:     domain.ErrNotFound,
	http.StatusConflict:     domain.ErrConflict,
	http.StatusUnauthorized: domain.ErrForbidden,
	http.StatusForbidden:    domain.ErrForbidden,
	http.StatusGone:         domain.ErrNotFound,
}

// problem is the part of an RFC 9457 body the translation reads.
type problem struct {
	Detail string `json:"detail"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

// TranslateHTTPError maps a non-2xx response to a domain error. A 400 or
// 422 with field errors becomes a *domain.ValidationError; otherwise the
// problem's detail, stripped of markup, prefixes the wrapped sentinel.
func TranslateHTTPError(resp *http.Response) error {
	p := readProblem(resp)

	detail := plainText(p.Detail)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	status := resp.StatusCode
	if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
		if verr := fieldErrors(p); verr != nil {
			return verr
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)
	}
	if sentinel, ok := sentinelByStatus[status]; ok {
		return fmt.Errorf("%s: %w", detail, sentinel)
	}
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)
	}
	return fmt.Errorf("unexpected status %d: %s", status, detail)
}

// readProblem decodes a problem (or plain JSON) error body. Anything else
// yields the zero problem.
func readProblem(resp *http.Response) problem {
	var p problem
	if resp.Body == nil {
		return p
	}
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || (mt != "application/problem+json" && mt != "application/json") {
		return p
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&p); err != nil {
		return problem{}
	}
	return p
}

func fieldErrors(p problem) *domain.ValidationError {
	if len(p.Errors) == 0 {
		return nil
	}
	fields := make(map[string]string, len(p.Errors))
	for _, e := range p.Errors {
		msg := plainText(e.Message)
		if msg == "" {
			msg = msgInvalid
		}
		fields[fieldName(e.Location)] = msg
	}
	return &domain.ValidationError{Fields: fields}
}

// fieldName reduces a location to the bare field name. Both the
// "body.title" form and the JSON pointer "/title" form are accepted.
func fieldName(location string) string {
	name := plainText(location)
	name = strings.TrimPrefix(name, "body.")
	return strings.TrimPrefix(name, "/")
}

// plainText removes all markup from s. The policy escapes what it keeps, so
// entities are decoded back; renderers escape again on output.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
