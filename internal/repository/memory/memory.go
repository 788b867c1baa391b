// Package memory implements repository.Repository with an in-process slice.
package memory

import (
	"context"
	"sync"

	"tasklist/internal/task"
)

// Repository keeps tasks in a slice for the lifetime of the process.
type Repository struct {
	mu    sync.RWMutex
	tasks []task.Task
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{
		tasks: make([]task.Task, 0),
	}
}

// AddTask appends t. It never fails.
func (r *Repository) AddTask(ctx context.Context, t task.Task) error {
	r.mu.Lock()
	r.tasks = append(r.tasks, t)
	r.mu.Unlock()
	return nil
}

// AllTasks returns a copy of the stored tasks in insertion order.
// Changing the returned slice does not change the repository.
func (r *Repository) AllTasks(ctx context.Context) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]task.Task, len(r.tasks))
	copy(result, r.tasks)
	return result, nil
}
