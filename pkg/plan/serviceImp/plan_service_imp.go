package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pacemaker/database"
	"pacemaker/entities"
	planrepo "pacemaker/pkg/plan/repository"
	"pacemaker/pkg/plan/reorder"
	"pacemaker/pkg/plan/service"
	taskrepo "pacemaker/pkg/task/repository"
	"pacemaker/pkg/week"
)

type PlanSvc struct {
	plans planrepo.PlanRepository
	tasks taskrepo.TaskRepository
	loc   *time.Location
	now   func() time.Time
}

var _ service.PlanService = (*PlanSvc)(nil)

func NewPlanService(pr planrepo.PlanRepository, tr taskrepo.TaskRepository, loc *time.Location) *PlanSvc {
	if loc == nil {
		loc = time.UTC
	}
	return &PlanSvc{plans: pr, tasks: tr, loc: loc, now: time.Now}
}

func (s *PlanSvc) WithClock(now func() time.Time) *PlanSvc {
	s.now = now
	return s
}

func (s *PlanSvc) today() string { return week.DateKey(s.now().In(s.loc)) }

func (s *PlanSvc) GetOrCreatePlan(ctx context.Context, uid string, date time.Time) (*entities.WeeklyPlan, error) {
	date = date.In(s.loc)
	key := week.Key(date)
	p, err := s.plans.FindByWeek(ctx, uid, key)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, err
	}
	p = &entities.WeeklyPlan{UserID: uid, WeekKey: key, WeekStartDate: week.DateKey(week.WeekStart(date))}
	if err := s.plans.Create(ctx, p); err != nil {
		if database.IsUniqueViolation(err) {
			// another request created it first
			return s.plans.FindByWeek(ctx, uid, key)
		}
		return nil, err
	}
	zap.S().Infow("weekly plan created", "uid", uid, "week_key", key)
	return p, nil
}

func (s *PlanSvc) Week(ctx context.Context, uid string, date time.Time) (*service.WeekView, error) {
	p, err := s.GetOrCreatePlan(ctx, uid, date)
	if err != nil {
		return nil, err
	}
	items, err := s.plans.ListItems(ctx, uid, p.ID)
	if err != nil {
		return nil, err
	}
	backlog, err := s.tasks.Backlog(ctx, uid, p.ID)
	if err != nil {
		return nil, err
	}
	label, err := week.Label(p.WeekStartDate, p.WeekKey)
	if err != nil {
		return nil, err
	}
	return &service.WeekView{Plan: p, Label: label, Items: items, Backlog: backlog}, nil
}

func (s *PlanSvc) ListItems(ctx context.Context, uid, planID string) ([]entities.PlanItemView, error) {
	if _, err := s.plans.FindByID(ctx, planID, uid); err != nil {
		return nil, err
	}
	return s.plans.ListItems(ctx, uid, planID)
}

func (s *PlanSvc) AddItem(ctx context.Context, uid, planID, taskID string) (*entities.WeeklyPlanItem, error) {
	if _, err := s.plans.FindByID(ctx, planID, uid); err != nil {
		return nil, err
	}
	if _, err := s.tasks.FindByID(ctx, taskID, uid); err != nil {
		return nil, err
	}
	existing, err := s.plans.FindItem(ctx, uid, planID, taskID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, err
	}

	next := 0
	if top, ok, err := s.plans.MaxSortOrder(ctx, uid, planID); err != nil {
		return nil, err
	} else if ok {
		next = top + 1
	}
	it := &entities.WeeklyPlanItem{UserID: uid, WeeklyPlanID: planID, TaskID: taskID, SortOrder: next}
	if err := s.plans.CreateItem(ctx, it); err != nil {
		if database.IsUniqueViolation(err) {
			zap.S().Debugw("task already in weekly plan", "plan_id", planID, "task_id", taskID)
			return s.plans.FindItem(ctx, uid, planID, taskID)
		}
		return nil, err
	}
	return it, nil
}

func (s *PlanSvc) RemoveItem(ctx context.Context, uid, itemID string) error {
	return s.plans.DeleteItem(ctx, itemID, uid)
}

func (s *PlanSvc) PickForToday(ctx context.Context, uid, itemID string) error {
	today := s.today()
	return s.plans.UpdateItem(ctx, itemID, uid, map[string]any{
		"picked_for_today": true,
		"picked_date":      &today,
	})
}

func (s *PlanSvc) Unpick(ctx context.Context, uid, itemID string) error {
	return s.plans.UpdateItem(ctx, itemID, uid, map[string]any{
		"picked_for_today": false,
		"picked_date":      nil,
	})
}

func (s *PlanSvc) TodayItems(ctx context.Context, uid string) ([]entities.PlanItemView, error) {
	return s.plans.PickedOn(ctx, uid, s.today())
}

func (s *PlanSvc) Reorder(ctx context.Context, uid, planID string, from, to int) (*service.ReorderResult, error) {
	items, err := s.ListItems(ctx, uid, planID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, uid, planID, items, from, to)
}

func (s *PlanSvc) ReorderByID(ctx context.Context, uid, planID, itemID, overID string) (*service.ReorderResult, error) {
	items, err := s.ListItems(ctx, uid, planID)
	if err != nil {
		return nil, err
	}
	from, to := reorder.IndexOf(items, itemID), reorder.IndexOf(items, overID)
	if from < 0 || to < 0 {
		return nil, entities.ErrNotFound
	}
	return s.apply(ctx, uid, planID, items, from, to)
}

func (s *PlanSvc) apply(ctx context.Context, uid, planID string, items []entities.PlanItemView, from, to int) (*service.ReorderResult, error) {
	cmd, err := reorder.Plan(items, from, to)
	if err != nil {
		return nil, err
	}
	res := &service.ReorderResult{Items: cmd.After, Changes: cmd.Changes}
	if len(cmd.Changes) == 0 {
		return res, nil
	}

	// each change targets a different row, so the writes are independent
	var g errgroup.Group
	for _, c := range cmd.Changes {
		g.Go(func() error {
			if err := s.plans.UpdateItem(ctx, c.ID, uid, map[string]any{"sort_order": c.SortOrder}); err != nil {
				return fmt.Errorf("item %s: %w", c.ID, err)
			}
			return nil
		})
	}
	if werr := g.Wait(); werr != nil {
		zap.S().Warnw("reorder failed, reloading plan items", "plan_id", planID, "err", werr)
		fresh, err := s.plans.ListItems(ctx, uid, planID)
		if err != nil {
			return nil, errors.Join(werr, err)
		}
		return &service.ReorderResult{Items: fresh, Changes: cmd.Changes, Resynced: true}, fmt.Errorf("save order: %w", werr)
	}
	return res, nil
}
