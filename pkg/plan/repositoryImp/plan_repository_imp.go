package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pacemaker/database"
	"pacemaker/entities"
	"pacemaker/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) Create(ctx context.Context, p *entities.WeeklyPlan) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create weekly plan: %w", err)
	}
	return nil
}

func (r *planRepo) FindByWeek(ctx context.Context, uid, weekKey string) (*entities.WeeklyPlan, error) {
	return r.first(ctx, "user_id = ? AND week_key = ?", uid, weekKey)
}

func (r *planRepo) FindByID(ctx context.Context, id, uid string) (*entities.WeeklyPlan, error) {
	return r.first(ctx, "id = ? AND user_id = ?", id, uid)
}

func (r *planRepo) first(ctx context.Context, query string, args ...any) (*entities.WeeklyPlan, error) {
	var p entities.WeeklyPlan
	if err := r.db.WithContext(ctx).Where(query, args...).First(&p).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("find weekly plan: %w", err)
	}
	return &p, nil
}

type itemRow struct {
	ID             string
	WeeklyPlanID   string
	TaskID         string
	SortOrder      int
	PickedForToday bool
	PickedDate     *string
	UpdatedAt      time.Time
	TaskTitle      string
	TaskNotes      *string
	TaskIsDone     bool
	TaskDoneAt     *time.Time
	ProjectID      string
	ProjectName    *string
}

const itemColumns = `weekly_plan_items.id AS id,
weekly_plan_items.weekly_plan_id AS weekly_plan_id,
weekly_plan_items.task_id AS task_id,
weekly_plan_items.sort_order AS sort_order,
weekly_plan_items.picked_for_today AS picked_for_today,
weekly_plan_items.picked_date AS picked_date,
weekly_plan_items.updated_at AS updated_at,
tasks.title AS task_title,
tasks.notes AS task_notes,
tasks.is_done AS task_is_done,
tasks.done_at AS task_done_at,
tasks.project_id AS project_id,
projects.name AS project_name`

func (r *planRepo) itemQuery(ctx context.Context, uid string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("weekly_plan_items").
		Select(itemColumns).
		Joins("JOIN tasks ON tasks.id = weekly_plan_items.task_id AND tasks.user_id = weekly_plan_items.user_id").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id").
		Where("weekly_plan_items.user_id = ?", uid).
		Order("weekly_plan_items.sort_order ASC, weekly_plan_items.created_at ASC")
}

func (r *planRepo) ListItems(ctx context.Context, uid, planID string) ([]entities.PlanItemView, error) {
	var rows []itemRow
	if err := r.itemQuery(ctx, uid).Where("weekly_plan_items.weekly_plan_id = ?", planID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list plan items: %w", err)
	}
	return toViews(rows), nil
}

func (r *planRepo) PickedOn(ctx context.Context, uid, date string) ([]entities.PlanItemView, error) {
	var rows []itemRow
	err := r.itemQuery(ctx, uid).
		Where("weekly_plan_items.picked_for_today = ? AND weekly_plan_items.picked_date = ?", true, date).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list today items: %w", err)
	}
	return toViews(rows), nil
}

func toViews(rows []itemRow) []entities.PlanItemView {
	out := make([]entities.PlanItemView, 0, len(rows))
	for _, row := range rows {
		v := entities.PlanItemView{
			ID:             row.ID,
			WeeklyPlanID:   row.WeeklyPlanID,
			TaskID:         row.TaskID,
			SortOrder:      row.SortOrder,
			PickedForToday: row.PickedForToday,
			PickedDate:     row.PickedDate,
			UpdatedAt:      row.UpdatedAt,
			Task: entities.TaskRef{
				ID:        row.TaskID,
				Title:     row.TaskTitle,
				Notes:     row.TaskNotes,
				IsDone:    row.TaskIsDone,
				DoneAt:    row.TaskDoneAt,
				ProjectID: row.ProjectID,
			},
		}
		if row.ProjectName != nil {
			v.Task.Project = &entities.ProjectRef{ID: row.ProjectID, Name: *row.ProjectName}
		}
		out = append(out, v)
	}
	return out
}

func (r *planRepo) FindItem(ctx context.Context, uid, planID, taskID string) (*entities.WeeklyPlanItem, error) {
	var it entities.WeeklyPlanItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND weekly_plan_id = ? AND task_id = ?", uid, planID, taskID).
		First(&it).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("find plan item: %w", err)
	}
	return &it, nil
}

func (r *planRepo) MaxSortOrder(ctx context.Context, uid, planID string) (int, bool, error) {
	var orders []int
	err := r.db.WithContext(ctx).Model(&entities.WeeklyPlanItem{}).
		Where("user_id = ? AND weekly_plan_id = ?", uid, planID).
		Order("sort_order DESC").
		Limit(1).
		Pluck("sort_order", &orders).Error
	if err != nil {
		return 0, false, fmt.Errorf("max sort order: %w", err)
	}
	if len(orders) == 0 {
		return 0, false, nil
	}
	return orders[0], true, nil
}

func (r *planRepo) CreateItem(ctx context.Context, it *entities.WeeklyPlanItem) error {
	if err := r.db.WithContext(ctx).Create(it).Error; err != nil {
		return fmt.Errorf("create plan item: %w", err)
	}
	return nil
}

func (r *planRepo) UpdateItem(ctx context.Context, id, uid string, upd map[string]any) error {
	res := r.db.WithContext(ctx).Model(&entities.WeeklyPlanItem{}).Where("id = ? AND user_id = ?", id, uid).Updates(upd)
	if res.Error != nil {
		return fmt.Errorf("update plan item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func (r *planRepo) DeleteItem(ctx context.Context, id, uid string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).Delete(&entities.WeeklyPlanItem{})
	if res.Error != nil {
		return fmt.Errorf("delete plan item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
