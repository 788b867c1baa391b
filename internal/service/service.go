// Package service provides task operations on top of a repository.
package service

import (
	"context"

	"tasklist/internal/task"
)

// Service defines the task operations used by commands.
// Commands never talk to a repository directly.
type Service interface {
	// AddTask creates an open task with the given description and stores it.
	// The description is not validated; an empty string is stored as-is.
	AddTask(ctx context.Context, description string) error

	// AllTasks returns all tasks in the order they were added.
	AllTasks(ctx context.Context) ([]task.Task, error)
}
