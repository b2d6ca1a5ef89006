package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeeklyPlan struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"size:64;not null;uniqueIndex:idx_weekly_plans_user_week,priority:1" json:"user_id"`
	WeekKey       string    `gorm:"size:8;not null;uniqueIndex:idx_weekly_plans_user_week,priority:2" json:"week_key"`
	WeekStartDate string    `gorm:"size:10;not null" json:"week_start_date"` // YYYY-MM-DD, a Monday
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *WeeklyPlan) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type WeeklyPlanItem struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	UserID         string    `gorm:"index;size:64;not null" json:"user_id"`
	WeeklyPlanID   string    `gorm:"size:36;not null;uniqueIndex:idx_plan_items_plan_task,priority:1" json:"weekly_plan_id"`
	TaskID         string    `gorm:"size:36;not null;index;uniqueIndex:idx_plan_items_plan_task,priority:2" json:"task_id"`
	SortOrder      int       `gorm:"not null" json:"sort_order"`
	PickedForToday bool      `gorm:"not null" json:"picked_for_today"`
	PickedDate     *string   `gorm:"size:10" json:"picked_date"` // set iff PickedForToday
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (i *WeeklyPlanItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type WeeklyReview struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"index;size:64;not null" json:"user_id"`
	WeeklyPlanID  string    `gorm:"size:36;not null;uniqueIndex" json:"weekly_plan_id"`
	WhatWorked    *string   `json:"what_worked"`
	WhatBlocked   *string   `json:"what_blocked"`
	NextWeekFocus *string   `json:"next_week_focus"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *WeeklyReview) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
