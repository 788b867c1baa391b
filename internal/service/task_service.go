package service

import (
	"context"
	"fmt"

	"tasklist/internal/repository"
	"tasklist/internal/task"
)

// TaskService implements Service. It depends only on repository.Repository.
type TaskService struct {
	repo repository.Repository
}

// New returns a TaskService backed by repo. A nil repo yields ErrRepositoryNil.
func New(repo repository.Repository) (*TaskService, error) {
	if repo == nil {
		return nil, ErrRepositoryNil
	}
	return &TaskService{repo: repo}, nil
}

// AddTask stores a new open task with the given description.
func (s *TaskService) AddTask(ctx context.Context, description string) error {
	if err := s.repo.AddTask(ctx, task.New(description)); err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	return nil
}

// AllTasks returns every stored task in insertion order.
func (s *TaskService) AllTasks(ctx context.Context) ([]task.Task, error) {
	tasks, err := s.repo.AllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
