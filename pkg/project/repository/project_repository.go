package repository

import (
	"context"

	"pacemaker/entities"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *entities.Project) error
	FindByID(ctx context.Context, id, uid string) (*entities.Project, error)
	ListActive(ctx context.Context, uid string) ([]entities.Project, error)
	Update(ctx context.Context, id, uid string, upd map[string]any) (*entities.Project, error)
	// Delete removes the project together with its tasks, their plan items and logs.
	Delete(ctx context.Context, id, uid string) error
	Counts(ctx context.Context, uid string) (entities.Counts, error)
}
