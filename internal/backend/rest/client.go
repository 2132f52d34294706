// Package rest implements service.Service against the task REST backend:
//
//	GET    /tasks
//	POST   /tasks              {"title": ...}
//	PUT    /tasks/:id          {"title": ...}
//	PUT    /tasks/:id/complete
//	DELETE /tasks/:id
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"todo/internal/api"
	"todo/internal/service"
)

// Client implements service.Service over an api.Client.
type Client struct {
	api *api.Client
}

// New wraps an API client.
func New(c *api.Client) *Client {
	return &Client{api: c}
}

type taskPayload struct {
	ID        service.ID `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
}

type titlePayload struct {
	Title string `json:"title"`
}

// ListTasks returns every task in backend order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	resp, err := c.api.Get(ctx, "/tasks")
	if err != nil {
		return nil, wrapError(err)
	}

	if err := validateTaskList(resp.Body); err != nil {
		return nil, err
	}

	var payload []taskPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}

	tasks := make([]service.Task, 0, len(payload))
	for _, p := range payload {
		tasks = append(tasks, service.Task{
			ID:        string(p.ID),
			Title:     p.Title,
			Completed: p.Completed,
		})
	}
	return tasks, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, title string) error {
	_, err := c.api.Post(ctx, "/tasks", titlePayload{Title: title})
	return wrapError(err)
}

// UpdateTask replaces a task's title.
func (c *Client) UpdateTask(ctx context.Context, id, title string) error {
	_, err := c.api.Put(ctx, taskPath(id), titlePayload{Title: title})
	return wrapError(err)
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, id string) error {
	_, err := c.api.Put(ctx, taskPath(id)+"/complete", nil)
	return wrapError(err)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.api.Delete(ctx, taskPath(id))
	return wrapError(err)
}

func taskPath(id string) string {
	return "/tasks/" + id
}

// wrapError maps a 404 onto service.ErrNotFound and keeps everything else.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", service.ErrNotFound, apiErr.Path)
	}
	return err
}
