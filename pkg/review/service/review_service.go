package service

import (
	"context"
	"time"

	"pacemaker/entities"
)

type ReviewService interface {
	Get(ctx context.Context, uid, planID string) (*entities.WeeklyReview, error)
	Save(ctx context.Context, uid, planID string, in ReviewInput) (*entities.WeeklyReview, error)
	// Overview gathers the week's plan, label, review and computed stats.
	Overview(ctx context.Context, uid string, date time.Time) (*Overview, error)
}

type ReviewInput struct {
	WhatWorked    *string `json:"what_worked"`
	WhatBlocked   *string `json:"what_blocked"`
	NextWeekFocus *string `json:"next_week_focus"`
}

type Overview struct {
	Plan   *entities.WeeklyPlan   `json:"plan"`
	Label  string                 `json:"label"`
	Review *entities.WeeklyReview `json:"review"`
	Stats  entities.WeeklyStats   `json:"stats"`
}
