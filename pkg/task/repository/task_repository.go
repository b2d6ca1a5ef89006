package repository

import (
	"context"
	"time"

	"pacemaker/entities"
)

type TaskRepository interface {
	Create(ctx context.Context, t *entities.Task) error
	FindByID(ctx context.Context, id, uid string) (*entities.Task, error)
	ListByProject(ctx context.Context, projectID, uid string) ([]entities.Task, error)
	Update(ctx context.Context, id, uid string, upd map[string]any) (*entities.Task, error)
	Delete(ctx context.Context, id, uid string) error
	// SetDone writes is_done/done_at together; doneAt must be nil when done is false.
	SetDone(ctx context.Context, id, uid string, done bool, doneAt *time.Time) error
	// Backlog lists open tasks (with project) that are not items of planID.
	Backlog(ctx context.Context, uid, planID string) ([]entities.Task, error)

	InsertLog(ctx context.Context, l *entities.TaskLog) error
	LogsSince(ctx context.Context, uid, fromDate string) ([]entities.TaskLog, error)
}
