package service

import (
	"context"

	"pacemaker/entities"
)

type TaskService interface {
	Create(ctx context.Context, uid, projectID string, in TaskInput) (*entities.Task, error)
	Get(ctx context.Context, uid, id string) (*entities.Task, error)
	ListByProject(ctx context.Context, uid, projectID string) ([]entities.Task, error)
	Update(ctx context.Context, uid, id string, p TaskPatch) (*entities.Task, error)
	Delete(ctx context.Context, uid, id string) error

	// ToggleDone flips completion based on the caller's view of the current state
	// and records a complete/uncomplete log for today.
	ToggleDone(ctx context.Context, uid, id string, currentIsDone bool) (*entities.Task, error)
	// Toggle reads the current state first and then behaves like ToggleDone.
	Toggle(ctx context.Context, uid, id string) (*entities.Task, error)
	RecentLogs(ctx context.Context, uid string, days int) ([]entities.TaskLog, error)
}

type TaskInput struct {
	Title string  `json:"title"`
	Notes *string `json:"notes"`
}

type TaskPatch struct {
	Title *string `json:"title"`
	Notes *string `json:"notes"`
}
