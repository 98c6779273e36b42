package task

// Result is what a submission collaborator reports for one attempt.
// A false Success with an empty Error means "rejected, no reason given".
type Result struct {
	Success bool
	Error   string

	// Task is the created task when the collaborator knows it.
	Task *Task
}

// Succeeded returns a successful Result for the created task.
func Succeeded(t *Task) Result {
	return Result{Success: true, Task: t}
}

// Rejected returns an unsuccessful Result carrying a user-facing reason.
func Rejected(reason string) Result {
	return Result{Error: reason}
}
