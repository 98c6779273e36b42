package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
)

var errInternalServer = errors.New("internal server error")

const panicPage = `<!doctype html><title>Something went wrong</title>` +
	`<p>Something went wrong. <a href="/">Start over</a>.</p>`

// Recovery turns a handler panic into a 500. Browsers (Accept: text/html)
// get a short page linking back to the start; API clients get an RFC 9457
// problem. The panic value and stack are logged, never sent. Nothing is
// written when the handler had already started its response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				stack := debug.Stack()
				if p, ok := v.(*handlerPanic); ok {
					v, stack = p.value, p.stack
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(stack)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				if rw.headerWritten {
					return
				}

				if strings.Contains(r.Header.Get("Accept"), "text/html") {
					rw.Header().Set("Content-Type", "text/html; charset=utf-8")
					rw.WriteHeader(http.StatusInternalServerError)
					_, _ = rw.Write([]byte(panicPage))
					return
				}
				dto.WriteErrorResponse(rw, r, errInternalServer)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
