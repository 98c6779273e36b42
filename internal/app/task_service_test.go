package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/taskdialog/internal/domain"
	"github.com/jsamuelsen11/taskdialog/internal/domain/task"
	"github.com/jsamuelsen11/taskdialog/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewTaskService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewTaskService(mocks.NewMockTaskClient(t), nil)
	if svc.logger == nil {
		t.Fatal("NewTaskService(nil logger) should create a no-op logger, got nil")
	}
}

func TestTaskService_SubmitTask_Success(t *testing.T) {
	t.Parallel()

	mockClient := mocks.NewMockTaskClient(t)
	svc := NewTaskService(mockClient, discardLogger())

	created := &task.Task{
		ID:          12,
		Title:       "Buy milk",
		Description: "2% low fat, 1 gallon",
		Status:      task.StatusPending,
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	mockClient.EXPECT().
		CreateTask(mock.Anything, mock.MatchedBy(func(t *task.Task) bool {
			return t.Title == "Buy milk" &&
				t.Description == "2% low fat, 1 gallon" &&
				t.Status == task.StatusPending &&
				t.ID == 0
		})).
		Return(created, nil)

	got, err := svc.SubmitTask(context.Background(), task.Draft{Title: "Buy milk", Description: "2% low fat, 1 gallon"})
	if err != nil {
		t.Fatalf("SubmitTask() error = %v, want nil", err)
	}
	if !got.Success {
		t.Fatalf("SubmitTask() Success = false, want true (error %q)", got.Error)
	}
	if got.Task != created {
		t.Errorf("SubmitTask() Task = %+v, want %+v", got.Task, created)
	}
}

func TestTaskService_SubmitTask_NilTaskIsFault(t *testing.T) {
	t.Parallel()

	mockClient := mocks.NewMockTaskClient(t)
	svc := NewTaskService(mockClient, discardLogger())

	mockClient.EXPECT().CreateTask(mock.Anything, mock.Anything).Return(nil, nil)

	got, err := svc.SubmitTask(context.Background(), task.Draft{Title: "Buy milk", Description: "today"})
	if !errors.Is(err, errNoTask) {
		t.Fatalf("SubmitTask() error = %v, want %v", err, errNoTask)
	}
	if got.Success || got.Task != nil {
		t.Errorf("SubmitTask() = %+v, want zero Result", got)
	}
}

func TestTaskService_SubmitTask_Failures(t *testing.T) {
	t.Parallel()

	faultErr := errors.New("dial tcp: connection refused")

	tests := []struct {
		name        string
		clientErr   error
		wantErr     error
		wantMessage string
	}{
		{
			name: "validation error carries field summary",
			clientErr: fmt.Errorf("creating task: %w", &domain.ValidationError{Fields: map[string]string{
				"title":       "must be unique",
				"description": domain.MsgRequired,
			}}),
			wantMessage: "description: is required; title: must be unique",
		},
		{
			name:      "bare validation sentinel",
			clientErr: fmt.Errorf("creating task: %w", domain.ErrValidation),
		},
		{
			name:      "conflict",
			clientErr: fmt.Errorf("creating task: %w", domain.ErrConflict),
		},
		{
			name:      "forbidden",
			clientErr: domain.ErrForbidden,
		},
		{
			name:      "unavailable",
			clientErr: fmt.Errorf("todo-api: %w", domain.ErrUnavailable),
		},
		{
			name:      "not found is a fault",
			clientErr: domain.ErrNotFound,
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "transport error is a fault",
			clientErr: faultErr,
			wantErr:   faultErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockClient := mocks.NewMockTaskClient(t)
			svc := NewTaskService(mockClient, discardLogger())

			mockClient.EXPECT().CreateTask(mock.Anything, mock.Anything).Return(nil, tt.clientErr)

			got, err := svc.SubmitTask(context.Background(), task.Draft{Title: "Buy milk", Description: "Details"})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SubmitTask() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("SubmitTask() error = %v, want nil", err)
			}
			if got.Success {
				t.Fatal("SubmitTask() Success = true, want false")
			}
			if got.Error != tt.wantMessage {
				t.Errorf("SubmitTask() Error = %q, want %q", got.Error, tt.wantMessage)
			}
			if got.Task != nil {
				t.Errorf("SubmitTask() Task = %+v, want nil", got.Task)
			}
		})
	}
}
