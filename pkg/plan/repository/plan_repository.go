package repository

import (
	"context"

	"pacemaker/entities"
)

type PlanRepository interface {
	Create(ctx context.Context, p *entities.WeeklyPlan) error
	FindByWeek(ctx context.Context, uid, weekKey string) (*entities.WeeklyPlan, error)
	FindByID(ctx context.Context, id, uid string) (*entities.WeeklyPlan, error)

	// ListItems returns the plan's items joined with task and project, by sort_order.
	ListItems(ctx context.Context, uid, planID string) ([]entities.PlanItemView, error)
	// PickedOn returns items picked for the given YYYY-MM-DD date, across plans.
	PickedOn(ctx context.Context, uid, date string) ([]entities.PlanItemView, error)
	FindItem(ctx context.Context, uid, planID, taskID string) (*entities.WeeklyPlanItem, error)
	// MaxSortOrder reports the highest sort_order in the plan; ok is false when empty.
	MaxSortOrder(ctx context.Context, uid, planID string) (max int, ok bool, err error)
	CreateItem(ctx context.Context, it *entities.WeeklyPlanItem) error
	UpdateItem(ctx context.Context, id, uid string, upd map[string]any) error
	DeleteItem(ctx context.Context, id, uid string) error
}
