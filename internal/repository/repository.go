// Package repository defines the storage abstraction for tasks.
package repository

import (
	"context"
	"io"

	"tasklist/internal/task"
)

// Repository stores tasks in insertion order.
// Implementations never deduplicate and never drop a task.
type Repository interface {
	// AddTask appends a task to the collection.
	AddTask(ctx context.Context, t task.Task) error

	// AllTasks returns every stored task in the order it was added.
	// The returned slice belongs to the caller.
	AllTasks(ctx context.Context) ([]task.Task, error)
}

// Close closes repo if it holds resources (implements io.Closer).
// Repositories without resources are left alone.
func Close(repo Repository) error {
	if c, ok := repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
