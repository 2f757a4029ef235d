package vcd

import (
	"context"
	"fmt"
)

// Task is an asynchronous Cloud Director task.
type Task struct {
	Href          string     `json:"href"`
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name,omitempty"`
	Operation     string     `json:"operation,omitempty"`
	OperationName string     `json:"operationName,omitempty"`
	Status        string     `json:"status"`
	Error         *TaskError `json:"error,omitempty"`
}

// TaskError is the error attached to a failed task.
type TaskError struct {
	MajorErrorCode int    `json:"majorErrorCode"`
	MinorErrorCode string `json:"minorErrorCode"`
	Message        string `json:"message"`
}

// TaskList is the task container embedded in entities.
type TaskList struct {
	Task []Task `json:"task"`
}

// List returns the tasks, tolerating a nil list.
func (l *TaskList) List() []Task {
	if l == nil {
		return nil
	}
	return l.Task
}

// GetTask fetches the task at href.
func (c *Client) GetTask(ctx context.Context, href string) (*Task, error) {
	var task Task
	if _, err := c.legacy(ctx, getRequest(href, nil), &task); err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.Status == "" {
		return nil, fmt.Errorf("get task %s: response has no status", href)
	}
	return &task, nil
}
