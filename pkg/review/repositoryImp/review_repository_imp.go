package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pacemaker/database"
	"pacemaker/entities"
	"pacemaker/pkg/review/repository"
)

type reviewRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReviewRepository { return &reviewRepo{db} }

func (r *reviewRepo) Get(ctx context.Context, uid, planID string) (*entities.WeeklyReview, error) {
	var rv entities.WeeklyReview
	err := r.db.WithContext(ctx).Where("user_id = ? AND weekly_plan_id = ?", uid, planID).First(&rv).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find weekly review: %w", err)
	}
	return &rv, nil
}

func (r *reviewRepo) Upsert(ctx context.Context, rv *entities.WeeklyReview) error {
	rv.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "weekly_plan_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"what_worked":     rv.WhatWorked,
			"what_blocked":    rv.WhatBlocked,
			"next_week_focus": rv.NextWeekFocus,
			"updated_at":      rv.UpdatedAt,
		}),
	}).Create(rv).Error
	if err != nil {
		return fmt.Errorf("upsert weekly review: %w", err)
	}
	return nil
}
