package task

import (
	"time"

	domtask "github.com/jsamuelsen11/taskdialog/internal/domain/task"
)

// ToDomainTask converts a downstream TodoDTO to a domain Task. Unknown
// statuses fall back to pending; unparsable timestamps become zero values.
func ToDomainTask(dto *TodoDTO) domtask.Task {
	createdAt, _ := time.Parse(time.RFC3339, dto.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, dto.UpdatedAt)

	status := domtask.Status(dto.Status)
	if !status.IsValid() {
		status = domtask.StatusPending
	}

	return domtask.Task{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ToCreateTodoRequest converts a domain Task to a downstream
// CreateTodoRequestDTO.
func ToCreateTodoRequest(t *domtask.Task) CreateTodoRequestDTO {
	return CreateTodoRequestDTO{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
	}
}
