package taskdialog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/platform/config"
	"github.com/jsamuelsen11/taskdialog/mocks"
)

func TestManager_HeldDialogIsNotEvicted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cfg := &config.DialogConfig{MaxOpen: 1, IdleTimeout: time.Minute, CloseOnSuccess: true, ReturnPath: "/"}
	m := NewManager(cfg, mocks.NewMockTaskSubmitter(t), nil, slog.New(slog.DiscardHandler),
		WithNow(func() time.Time { return now }),
	)

	v, err := m.Open(ctx)
	require.NoError(t, err)
	now = now.Add(time.Hour)

	// A submit or edit has looked the dialog up but not yet acted on it.
	_, release, err := m.acquire(v.ID)
	require.NoError(t, err)

	_, err = m.Open(ctx)
	require.ErrorIs(t, err, domain.ErrUnavailable, "held dialog must not be evicted")

	_, err = m.Get(ctx, v.ID)
	require.NoError(t, err)

	release()

	_, err = m.Open(ctx)
	require.NoError(t, err, "released idle dialog is evictable again")

	_, err = m.Get(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestManager_AcquireUnknownDialog(t *testing.T) {
	t.Parallel()

	m := NewManager(&config.DialogConfig{MaxOpen: 1, IdleTimeout: time.Minute},
		mocks.NewMockTaskSubmitter(t), nil, slog.New(slog.DiscardHandler))

	_, _, err := m.acquire("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
