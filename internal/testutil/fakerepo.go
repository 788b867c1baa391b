package testutil

import (
	"context"
	"sync"

	"tasklist/internal/task"
)

// FakeRepository is an in-memory repository.Repository with error injection.
type FakeRepository struct {
	mu     sync.Mutex
	tasks  []task.Task
	closed bool

	// Error injection for testing
	AddTaskErr  error
	AllTasksErr error
	CloseErr    error
}

// NewFakeRepository creates an empty FakeRepository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

// Seed stores tasks directly, bypassing AddTask.
func (f *FakeRepository) Seed(tasks ...task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// Tasks returns a snapshot of the stored tasks.
func (f *FakeRepository) Tasks() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]task.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Closed reports whether Close was called.
func (f *FakeRepository) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// AddTask implements repository.Repository.
func (f *FakeRepository) AddTask(ctx context.Context, t task.Task) error {
	if f.AddTaskErr != nil {
		return f.AddTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	return nil
}

// AllTasks implements repository.Repository.
func (f *FakeRepository) AllTasks(ctx context.Context) ([]task.Task, error) {
	if f.AllTasksErr != nil {
		return nil, f.AllTasksErr
	}
	return f.Tasks(), nil
}

// Close implements io.Closer.
func (f *FakeRepository) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return f.CloseErr
}
