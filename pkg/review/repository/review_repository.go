package repository

import (
	"context"

	"pacemaker/entities"
)

type ReviewRepository interface {
	// Get returns nil, nil when the plan has no review yet.
	Get(ctx context.Context, uid, planID string) (*entities.WeeklyReview, error)
	Upsert(ctx context.Context, r *entities.WeeklyReview) error
}
