package service

import (
	"context"
	"time"

	"pacemaker/entities"
	"pacemaker/pkg/plan/reorder"
)

type PlanService interface {
	GetOrCreatePlan(ctx context.Context, uid string, date time.Time) (*entities.WeeklyPlan, error)
	Week(ctx context.Context, uid string, date time.Time) (*WeekView, error)
	ListItems(ctx context.Context, uid, planID string) ([]entities.PlanItemView, error)
	AddItem(ctx context.Context, uid, planID, taskID string) (*entities.WeeklyPlanItem, error)
	RemoveItem(ctx context.Context, uid, itemID string) error
	PickForToday(ctx context.Context, uid, itemID string) error
	Unpick(ctx context.Context, uid, itemID string) error
	TodayItems(ctx context.Context, uid string) ([]entities.PlanItemView, error)

	// Reorder moves the item at from to to and persists only changed sort orders.
	// On a failed write it returns the reloaded list together with the error.
	Reorder(ctx context.Context, uid, planID string, from, to int) (*ReorderResult, error)
	// ReorderByID resolves a drag of itemID onto overID into indexes.
	ReorderByID(ctx context.Context, uid, planID, itemID, overID string) (*ReorderResult, error)
}

type WeekView struct {
	Plan    *entities.WeeklyPlan    `json:"plan"`
	Label   string                  `json:"label"`
	Items   []entities.PlanItemView `json:"items"`
	Backlog []entities.Task         `json:"backlog"`
}

type ReorderResult struct {
	Items    []entities.PlanItemView `json:"items"`
	Changes  []reorder.Change        `json:"changes"`
	Resynced bool                    `json:"resynced"`
}
