// Package task implements the Anti-Corruption Layer translators between the
// downstream TODO API's todo resources and domain tasks.
package task

// TodoDTO matches the downstream Todo schema.
// IDs are int64, matching the downstream schema's format: int64.
type TodoDTO struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	Category        string `json:"category,omitempty"`
	ProgressPercent int64  `json:"progress_percent"`
	GroupID         *int64 `json:"group_id,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// CreateTodoRequestDTO matches the downstream CreateTodoRequest schema.
// Only the fields a task creation dialog produces are sent; the downstream
// applies its own defaults for category, progress and group.
type CreateTodoRequestDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}
