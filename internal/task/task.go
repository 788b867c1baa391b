// Package task defines the task entity.
package task

// Task is a description plus a completion flag.
type Task struct {
	Description string
	IsCompleted bool
}

// New returns an open task with the given description.
// The description is stored as given, including the empty string.
func New(description string) Task {
	return Task{Description: description}
}

// Complete marks the task as completed.
func (t *Task) Complete() {
	t.IsCompleted = true
}
