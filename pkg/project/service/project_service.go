package service

import (
	"context"

	"pacemaker/entities"
)

type ProjectService interface {
	Create(ctx context.Context, uid string, in ProjectInput) (*entities.Project, error)
	Get(ctx context.Context, uid, id string) (*entities.Project, error)
	List(ctx context.Context, uid string) ([]entities.Project, error)
	Update(ctx context.Context, uid, id string, p ProjectPatch) (*entities.Project, error)
	Delete(ctx context.Context, uid, id string) error
	Counts(ctx context.Context, uid string) (entities.Counts, error)
}

type ProjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProjectPatch only applies non-nil fields.
type ProjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}
