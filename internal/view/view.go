// Package view holds the task list page state and its handlers.
//
// Every mutation is one backend call followed by an unconditional refetch of
// the whole list. There is no optimistic update: the displayed tasks are
// always exactly the last successful ListTasks response. Failures are logged
// at debug level and returned; they never touch the displayed list.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"todo/internal/service"
)

// ErrEmptyTitle is returned when an add is attempted with an empty draft.
// No request is made in that case.
var ErrEmptyTitle = errors.New("title required")

// ErrNotEditable is returned by StartEdit for unknown or completed tasks.
var ErrNotEditable = errors.New("task not editable")

// View is the in-memory state of the task list page. It is not safe for
// concurrent use; callers serialize handler calls.
type View struct {
	svc    service.Service
	logger *log.Logger

	tasks        []service.Task
	title        string
	editingID    string
	editingTitle string
	loaded       bool
}

// New creates an empty view. Call Load to populate it.
func New(svc service.Service, logger *log.Logger) *View {
	if logger == nil {
		logger = log.Default()
	}
	return &View{svc: svc, logger: logger}
}

// Tasks returns a copy of the displayed tasks.
func (v *View) Tasks() []service.Task {
	out := make([]service.Task, len(v.tasks))
	copy(out, v.tasks)
	return out
}

// Loaded reports whether at least one fetch has succeeded.
func (v *View) Loaded() bool { return v.loaded }

// Title returns the new-task draft.
func (v *View) Title() string { return v.title }

// SetTitle updates the new-task draft.
func (v *View) SetTitle(title string) { v.title = title }

// EditingID returns the id of the task being edited, or "".
func (v *View) EditingID() string { return v.editingID }

// EditingTitle returns the edit buffer.
func (v *View) EditingTitle() string { return v.editingTitle }

// SetEditingTitle updates the edit buffer.
func (v *View) SetEditingTitle(title string) { v.editingTitle = title }

// Task looks up a displayed task by id.
func (v *View) Task(id string) (service.Task, bool) {
	for _, t := range v.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Load fetches the full task list. On failure the previous list is kept.
func (v *View) Load(ctx context.Context) error {
	tasks, err := v.svc.ListTasks(ctx)
	if err != nil {
		v.logger.Debug("fetch tasks", "err", err)
		return fmt.Errorf("fetch tasks: %w", err)
	}
	v.tasks = tasks
	v.loaded = true
	if v.editingID != "" {
		if t, ok := v.Task(v.editingID); !ok || t.Completed {
			v.CancelEdit()
		}
	}
	return nil
}

// Add creates a task from the draft. An empty draft issues no request.
func (v *View) Add(ctx context.Context) error {
	if v.title == "" {
		return ErrEmptyTitle
	}
	err := v.svc.CreateTask(ctx, v.title)
	if err != nil {
		v.logger.Debug("add task", "title", v.title, "err", err)
		err = fmt.Errorf("add task: %w", err)
	} else {
		v.title = ""
	}
	return v.refetch(ctx, err)
}

// StartEdit puts a task into edit mode, replacing any other task being
// edited. The edit buffer starts as the task's current title.
func (v *View) StartEdit(id string) error {
	t, ok := v.Task(id)
	if !ok || t.Completed {
		return ErrNotEditable
	}
	v.editingID = t.ID
	v.editingTitle = t.Title
	return nil
}

// CancelEdit leaves edit mode without saving.
func (v *View) CancelEdit() {
	v.editingID = ""
	v.editingTitle = ""
}

// CommitEdit saves the edit buffer, as happens when the edit field loses
// focus. Outside edit mode it does nothing. An empty buffer is a silent
// no-op that stays in edit mode.
func (v *View) CommitEdit(ctx context.Context) error {
	if v.editingID == "" || v.editingTitle == "" {
		return nil
	}
	err := v.svc.UpdateTask(ctx, v.editingID, v.editingTitle)
	if err != nil {
		v.logger.Debug("update task", "id", v.editingID, "err", err)
		err = fmt.Errorf("update task: %w", err)
	} else {
		v.CancelEdit()
	}
	return v.refetch(ctx, err)
}

// Complete marks a task completed.
func (v *View) Complete(ctx context.Context, id string) error {
	err := v.svc.CompleteTask(ctx, id)
	if err != nil {
		v.logger.Debug("complete task", "id", id, "err", err)
		err = fmt.Errorf("complete task: %w", err)
	}
	return v.refetch(ctx, err)
}

// Delete removes a task.
func (v *View) Delete(ctx context.Context, id string) error {
	err := v.svc.DeleteTask(ctx, id)
	if err != nil {
		v.logger.Debug("delete task", "id", id, "err", err)
		err = fmt.Errorf("delete task: %w", err)
	}
	return v.refetch(ctx, err)
}

// refetch reloads the list after a mutation, whether or not it succeeded.
// The mutation error takes precedence over a fetch error.
func (v *View) refetch(ctx context.Context, mutationErr error) error {
	loadErr := v.Load(ctx)
	if mutationErr != nil {
		return mutationErr
	}
	return loadErr
}
