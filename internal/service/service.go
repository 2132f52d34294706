package service

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a task does not exist on the backend.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the backend rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// Service defines the interface for task backend operations.
// The view and the commands never import a backend package directly.
type Service interface {
	// ListTasks returns every task in backend order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new, open task.
	CreateTask(ctx context.Context, title string) error

	// UpdateTask replaces a task's title.
	UpdateTask(ctx context.Context, id, title string) error

	// CompleteTask marks a task as completed.
	CompleteTask(ctx context.Context, id string) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
