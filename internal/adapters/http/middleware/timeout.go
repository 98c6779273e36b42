package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"mime"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskdialog/internal/platform/logging"
)

// TimeoutOption configures Timeout.
type TimeoutOption func(*timeoutConfig)

type timeoutConfig struct {
	formTarget func(*http.Request) string
}

// RedirectForms makes a timed-out HTML form post answer 303 to target(r)
// instead of a problem body, so the browser lands back on a page that
// shows whatever state the dialog reached.
func RedirectForms(target func(*http.Request) string) TimeoutOption {
	return func(c *timeoutConfig) {
		c.formTarget = target
	}
}

// Timeout bounds each request by timeout. The handler runs with a deadline
// on its context; if it has not produced a response by then the client gets
// a 504 problem (or a redirect, see RedirectForms) and anything the handler
// writes afterwards is dropped. A submission that outlives its request keeps
// running and settles on its own.
//
// A handler panic is re-raised on the serving goroutine, so an outer
// Recovery still answers it. One that happens after the timeout response
// was sent is logged.
func Timeout(timeout time.Duration, opts ...TimeoutOption) func(http.Handler) http.Handler {
	var cfg timeoutConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			bw := &bufferedWriter{header: make(http.Header)}
			done := make(chan struct{})
			go func() {
				defer close(done)
				defer func() {
					v := recover()
					if v == nil {
						return
					}
					p := &handlerPanic{value: v, stack: debug.Stack()}
					if !bw.fail(p) {
						logging.FromContext(r.Context()).ErrorContext(r.Context(), "panic after request timed out",
							slog.String("panic", p.String()),
							slog.String("stack", string(p.stack)),
							slog.String("method", r.Method),
							slog.String("path", r.URL.Path),
						)
					}
				}()
				next.ServeHTTP(bw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				if p := bw.panicValue(); p != nil {
					p.raise()
				}
				bw.copyTo(w)
			case <-ctx.Done():
				if p := bw.abandon(); p != nil {
					p.raise()
				}
				if cfg.formTarget != nil && isFormPost(r) {
					http.Redirect(w, r, cfg.formTarget(r), http.StatusSeeOther)
					return
				}
				dto.WriteProblem(w, r, dto.NewProblem(r, http.StatusGatewayTimeout, "request timed out"))
			}
		})
	}
}

func isFormPost(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

// handlerPanic carries a panic out of Timeout's handler goroutine together
// with the stack it was raised on.
type handlerPanic struct {
	value any
	stack []byte
}

func (p *handlerPanic) String() string {
	return fmt.Sprint(p.value)
}

// raise panics on the calling goroutine. http.ErrAbortHandler is raised
// as is so the server still aborts the response quietly.
func (p *handlerPanic) raise() {
	if p.value == http.ErrAbortHandler {
		panic(p.value)
	}
	panic(p)
}

// bufferedWriter holds the handler's response until Timeout decides who
// answers. Once abandoned it swallows every write.
type bufferedWriter struct {
	mu        sync.Mutex
	header    http.Header
	status    int
	body      []byte
	abandoned bool
	panicked  *handlerPanic
}

func (b *bufferedWriter) Header() http.Header {
	return b.header
}

func (b *bufferedWriter) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 {
		b.status = http.StatusOK
	}
	if !b.abandoned {
		b.body = append(b.body, p...)
	}
	return len(p), nil
}

// abandon discards whatever the handler buffered. Nothing it wrote has
// reached the client yet, so the timeout response replaces it whole. It
// returns the handler's panic when one was recorded first.
func (b *bufferedWriter) abandon() *handlerPanic {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.abandoned = true
	b.body = nil
	return b.panicked
}

// fail records the handler's panic. It reports false once the writer has
// been abandoned, when nobody is left to raise it.
func (b *bufferedWriter) fail(p *handlerPanic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.abandoned {
		return false
	}
	b.panicked = p
	return true
}

func (b *bufferedWriter) panicValue() *handlerPanic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.panicked
}

func (b *bufferedWriter) copyTo(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	maps.Copy(w.Header(), b.header)
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}
