package serviceImp

import (
	"context"
	"strings"
	"time"

	"pacemaker/entities"
	planrepo "pacemaker/pkg/plan/repository"
	planservice "pacemaker/pkg/plan/service"
	repo "pacemaker/pkg/review/repository"
	"pacemaker/pkg/review/service"
	"pacemaker/pkg/review/stats"
	"pacemaker/pkg/week"
)

type reviewSvc struct {
	reviews repo.ReviewRepository
	plans   planrepo.PlanRepository
	weeks   planservice.PlanService
}

func NewReviewService(r repo.ReviewRepository, p planrepo.PlanRepository, weeks planservice.PlanService) service.ReviewService {
	return &reviewSvc{reviews: r, plans: p, weeks: weeks}
}

func (s *reviewSvc) Get(ctx context.Context, uid, planID string) (*entities.WeeklyReview, error) {
	if _, err := s.plans.FindByID(ctx, planID, uid); err != nil {
		return nil, err
	}
	return s.reviews.Get(ctx, uid, planID)
}

func (s *reviewSvc) Save(ctx context.Context, uid, planID string, in service.ReviewInput) (*entities.WeeklyReview, error) {
	if _, err := s.plans.FindByID(ctx, planID, uid); err != nil {
		return nil, err
	}
	rv := &entities.WeeklyReview{
		UserID:        uid,
		WeeklyPlanID:  planID,
		WhatWorked:    blankToNil(in.WhatWorked),
		WhatBlocked:   blankToNil(in.WhatBlocked),
		NextWeekFocus: blankToNil(in.NextWeekFocus),
	}
	if err := s.reviews.Upsert(ctx, rv); err != nil {
		return nil, err
	}
	return s.reviews.Get(ctx, uid, planID)
}

func (s *reviewSvc) Overview(ctx context.Context, uid string, date time.Time) (*service.Overview, error) {
	plan, err := s.weeks.GetOrCreatePlan(ctx, uid, date)
	if err != nil {
		return nil, err
	}
	items, err := s.plans.ListItems(ctx, uid, plan.ID)
	if err != nil {
		return nil, err
	}
	rv, err := s.reviews.Get(ctx, uid, plan.ID)
	if err != nil {
		return nil, err
	}
	label, err := week.Label(plan.WeekStartDate, plan.WeekKey)
	if err != nil {
		return nil, err
	}
	return &service.Overview{Plan: plan, Label: label, Review: rv, Stats: stats.Compute(items)}, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
