package taskdialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/dialog"
	"github.com/jsamuelsen11/taskdialog/internal/platform/config"
	"github.com/jsamuelsen11/taskdialog/internal/platform/telemetry"
	"github.com/jsamuelsen11/taskdialog/internal/ports"
)

const tracerName = "taskdialog"

// Compile-time interface checks.
var (
	_ ports.DialogService = (*Manager)(nil)
	_ ports.HealthChecker = (*Manager)(nil)
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNow overrides the manager's time source. Dialogs opened by the
// manager share it.
func WithNow(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator overrides how dialog IDs are generated.
func WithIDGenerator(newID func() string) ManagerOption {
	return func(m *Manager) {
		m.newID = newID
	}
}

// Manager owns the set of open dialogs and implements ports.DialogService.
// It plays the part of the dialog's parent: each dialog's onClose unmounts
// it from the manager, and after a successful submission the manager closes
// the dialog when configured to.
//
// Lock order is Manager.mu before Dialog.mu. Dialogs never call back into
// the manager while holding their own lock.
type Manager struct {
	cfg       *config.DialogConfig
	submitter ports.TaskSubmitter
	metrics   *telemetry.Metrics
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string

	mu      sync.Mutex
	dialogs map[string]*Dialog
}

// NewManager creates a Manager. Submissions from every dialog go to
// submitter. If metrics is nil, metric recording is skipped.
func NewManager(
	cfg *config.DialogConfig,
	submitter ports.TaskSubmitter,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
	opts ...ManagerOption,
) *Manager {
	m := &Manager{
		cfg:       cfg,
		submitter: submitter,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
		dialogs:   make(map[string]*Dialog),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open mounts a new dialog. When the manager is at capacity it first evicts
// dialogs that have been idle for longer than the configured idle timeout.
func (m *Manager) Open(ctx context.Context) (dialog.View, error) {
	m.mu.Lock()
	if m.full() {
		m.evictIdleLocked(ctx)
	}
	if m.full() {
		open := len(m.dialogs)
		m.mu.Unlock()

		m.logger.WarnContext(ctx, "dialog capacity reached", slog.Int("open", open))
		return dialog.View{}, fmt.Errorf("opening dialog: %d dialogs open: %w", open, domain.ErrUnavailable)
	}

	id := m.newID()
	d := New(id, m.submitter, func() { m.unmount(context.WithoutCancel(ctx), id, "closed") },
		WithLogger(m.logger),
		WithClock(m.now),
	)
	m.dialogs[id] = d
	m.mu.Unlock()

	m.metrics.AddOpenDialogs(ctx, 1)
	m.logger.InfoContext(ctx, "dialog opened", slog.String("dialog_id", id))

	return d.View(), nil
}

// Get returns the current view of a dialog.
func (m *Manager) Get(_ context.Context, id string) (dialog.View, error) {
	d, err := m.lookup(id)
	if err != nil {
		return dialog.View{}, err
	}
	return d.View(), nil
}

// Edit replaces one field's value.
func (m *Manager) Edit(ctx context.Context, id string, field dialog.Field, value string) (dialog.View, error) {
	if !field.IsValid() {
		return dialog.View{}, &domain.ValidationError{Fields: map[string]string{
			"field": fmt.Sprintf("unknown field %q", field),
		}}
	}

	d, release, err := m.acquire(id)
	if err != nil {
		return dialog.View{}, err
	}
	defer release()

	if err := d.Edit(field, value); err != nil {
		if errors.Is(err, ErrInputsDisabled) {
			m.logger.DebugContext(ctx, "edit rejected while submitting",
				slog.String("dialog_id", id),
				slog.String("field", field.String()),
			)
			return dialog.View{}, fmt.Errorf("%w: %w", err, domain.ErrConflict)
		}
		return dialog.View{}, err
	}

	return d.View(), nil
}

// Submit runs one submit attempt on a dialog. The attempt is detached from
// ctx cancellation so that it always settles; an abandoned request does not
// leave the dialog stuck in the submitting state.
func (m *Manager) Submit(ctx context.Context, id string) (*ports.Submission, error) {
	d, release, err := m.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "dialog.Submit",
		trace.WithAttributes(attribute.String("dialog.id", id)),
	)
	defer span.End()

	start := m.now()
	outcome, created := d.Submit(context.WithoutCancel(ctx))

	span.SetAttributes(telemetry.AttrOutcome.String(outcome.String()))
	if outcome == dialog.OutcomeFaulted {
		span.SetStatus(codes.Error, "task submission faulted")
	}
	m.metrics.RecordSubmission(ctx, outcome.String(), m.now().Sub(start))

	sub := &ports.Submission{
		Outcome: outcome,
		View:    d.View(),
		Task:    created,
	}

	if outcome == dialog.OutcomeSubmitted && m.cfg.CloseOnSuccess {
		sub.Closed = m.unmount(ctx, id, "submitted")
	}

	m.logger.InfoContext(ctx, "dialog submit attempt",
		slog.String("dialog_id", id),
		slog.String("outcome", outcome.String()),
		slog.Bool("closed", sub.Closed),
	)

	return sub, nil
}

// Close handles the close icon and the Cancel button.
func (m *Manager) Close(_ context.Context, id string) (bool, error) {
	d, err := m.lookup(id)
	if err != nil {
		return false, err
	}
	return d.Close(), nil
}

// Click handles a click on the backdrop or the panel.
func (m *Manager) Click(_ context.Context, id string, target dialog.Target) (bool, error) {
	if !target.IsValid() {
		return false, &domain.ValidationError{Fields: map[string]string{
			"target": fmt.Sprintf("unknown target %q", target),
		}}
	}

	d, err := m.lookup(id)
	if err != nil {
		return false, err
	}
	return d.Click(target), nil
}

// Name implements ports.HealthChecker.
func (m *Manager) Name() string {
	return "dialogs"
}

// HealthCheck reports whether the manager can open another dialog. Idle
// dialogs count as free capacity since Open would evict them.
func (m *Manager) HealthCheck(_ context.Context) error {
	if m.cfg.MaxOpen <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	busy := 0
	for _, d := range m.dialogs {
		if !d.idleFor(now, m.cfg.IdleTimeout) {
			busy++
		}
	}
	if busy >= m.cfg.MaxOpen {
		return fmt.Errorf("dialogs: at capacity (%d of %d in use)", busy, m.cfg.MaxOpen)
	}
	return nil
}

func (m *Manager) lookup(id string) (*Dialog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.dialogs[id]
	if !ok {
		return nil, fmt.Errorf("dialog %q: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// acquire looks up a dialog and holds it so that eviction by a concurrent
// Open skips it until release is called. Lookup and hold happen under
// m.mu, the same lock eviction runs under.
func (m *Manager) acquire(id string) (*Dialog, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.dialogs[id]
	if !ok {
		return nil, nil, fmt.Errorf("dialog %q: %w", id, domain.ErrNotFound)
	}
	d.hold()
	return d, d.release, nil
}

// unmount removes a dialog. It reports whether the dialog was still
// mounted, so repeated calls are harmless.
func (m *Manager) unmount(ctx context.Context, id, reason string) bool {
	m.mu.Lock()
	_, ok := m.dialogs[id]
	delete(m.dialogs, id)
	m.mu.Unlock()

	if !ok {
		return false
	}

	m.metrics.AddOpenDialogs(ctx, -1)
	m.logger.InfoContext(ctx, "dialog closed",
		slog.String("dialog_id", id),
		slog.String("reason", reason),
	)
	return true
}

// full reports whether Open must refuse. The caller holds m.mu.
func (m *Manager) full() bool {
	return m.cfg.MaxOpen > 0 && len(m.dialogs) >= m.cfg.MaxOpen
}

// evictIdleLocked unmounts every idle dialog. The caller holds m.mu.
func (m *Manager) evictIdleLocked(ctx context.Context) {
	now := m.now()
	for id, d := range m.dialogs {
		if !d.idleFor(now, m.cfg.IdleTimeout) {
			continue
		}
		delete(m.dialogs, id)
		m.metrics.AddOpenDialogs(ctx, -1)
		m.logger.InfoContext(ctx, "dialog closed",
			slog.String("dialog_id", id),
			slog.String("reason", "evicted"),
		)
	}
}
