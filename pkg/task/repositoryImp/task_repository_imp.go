package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pacemaker/database"
	"pacemaker/entities"
	"pacemaker/pkg/task/repository"
)

type taskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TaskRepository { return &taskRepo{db} }

func (r *taskRepo) Create(ctx context.Context, t *entities.Task) error {
	if err := r.db.WithContext(ctx).Omit("Project").Create(t).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *taskRepo) FindByID(ctx context.Context, id, uid string) (*entities.Task, error) {
	var t entities.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&t).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID, uid string) ([]entities.Task, error) {
	var out []entities.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, uid).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (r *taskRepo) Update(ctx context.Context, id, uid string, upd map[string]any) (*entities.Task, error) {
	res := r.db.WithContext(ctx).Model(&entities.Task{}).Where("id = ? AND user_id = ?", id, uid).Updates(upd)
	if res.Error != nil {
		return nil, fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrNotFound
	}
	return r.FindByID(ctx, id, uid)
}

func (r *taskRepo) Delete(ctx context.Context, id, uid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? AND user_id = ?", id, uid).Delete(&entities.WeeklyPlanItem{}).Error; err != nil {
			return fmt.Errorf("delete plan items: %w", err)
		}
		if err := tx.Where("task_id = ? AND user_id = ?", id, uid).Delete(&entities.TaskLog{}).Error; err != nil {
			return fmt.Errorf("delete task logs: %w", err)
		}
		res := tx.Where("id = ? AND user_id = ?", id, uid).Delete(&entities.Task{})
		if res.Error != nil {
			return fmt.Errorf("delete task: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrNotFound
		}
		return nil
	})
}

func (r *taskRepo) SetDone(ctx context.Context, id, uid string, done bool, doneAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&entities.Task{}).
		Where("id = ? AND user_id = ?", id, uid).
		Updates(map[string]any{"is_done": done, "done_at": doneAt})
	if res.Error != nil {
		return fmt.Errorf("set task done: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func (r *taskRepo) Backlog(ctx context.Context, uid, planID string) ([]entities.Task, error) {
	planned := r.db.Model(&entities.WeeklyPlanItem{}).Select("task_id").Where("weekly_plan_id = ? AND user_id = ?", planID, uid)
	var out []entities.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ? AND is_done = ?", uid, false).
		Where("id NOT IN (?)", planned).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list backlog: %w", err)
	}
	return out, nil
}

func (r *taskRepo) InsertLog(ctx context.Context, l *entities.TaskLog) error {
	// callers inspect unique violations, so keep the driver error in the chain
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return fmt.Errorf("insert task log: %w", err)
	}
	return nil
}

func (r *taskRepo) LogsSince(ctx context.Context, uid, fromDate string) ([]entities.TaskLog, error) {
	var out []entities.TaskLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND occurred_date >= ?", uid, fromDate).
		Order("occurred_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list task logs: %w", err)
	}
	return out, nil
}
